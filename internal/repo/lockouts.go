package repo

import (
	"encoding/json"
	"fmt"
	"os"

	"SecureDash/internal/model"
)

// LockoutRepository — персистентное хранилище счётчиков неудачных попыток:
// вся карта ip → LockoutState сохраняется и читается целиком.
type LockoutRepository interface {
	Load() (map[string]model.LockoutState, error)
	Save(lockouts map[string]model.LockoutState) error
}

type fileLockoutRepo struct {
	path string
}

// NewLockoutRepository создаёт файловый репозиторий локаутов (JSON-файл).
func NewLockoutRepository(path string) LockoutRepository {
	return &fileLockoutRepo{path: path}
}

func (r *fileLockoutRepo) Load() (map[string]model.LockoutState, error) {
	b, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return map[string]model.LockoutState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read lockouts: %w", err)
	}
	lockouts := map[string]model.LockoutState{}
	if err := json.Unmarshal(b, &lockouts); err != nil {
		return nil, fmt.Errorf("decode lockouts: %w", err)
	}
	return lockouts, nil
}

func (r *fileLockoutRepo) Save(lockouts map[string]model.LockoutState) error {
	b, err := json.Marshal(lockouts)
	if err != nil {
		return fmt.Errorf("encode lockouts: %w", err)
	}
	if err := writeFileAtomic(r.path, b, 0o600); err != nil {
		return fmt.Errorf("write lockouts: %w", err)
	}
	return nil
}
