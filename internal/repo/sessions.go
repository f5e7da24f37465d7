package repo

import (
	"encoding/json"
	"fmt"
	"os"

	"SecureDash/internal/model"
)

// SessionRepository — персистентное хранилище сессий: вся карта
// token → Session сохраняется и читается целиком.
type SessionRepository interface {
	Load() (map[string]model.Session, error)
	Save(sessions map[string]model.Session) error
}

type fileSessionRepo struct {
	path string
}

// NewSessionRepository создаёт файловый репозиторий сессий (JSON-файл).
func NewSessionRepository(path string) SessionRepository {
	return &fileSessionRepo{path: path}
}

func (r *fileSessionRepo) Load() (map[string]model.Session, error) {
	b, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return map[string]model.Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	sessions := map[string]model.Session{}
	if err := json.Unmarshal(b, &sessions); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return sessions, nil
}

func (r *fileSessionRepo) Save(sessions map[string]model.Session) error {
	b, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	if err := writeFileAtomic(r.path, b, 0o600); err != nil {
		return fmt.Errorf("write sessions: %w", err)
	}
	return nil
}
