package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"sync"
	"time"

	"SecureDash/internal/model"
	"SecureDash/internal/repo"
)

// tokenBytes — энтропия токена сессии (как secrets.token_urlsafe(32)).
const tokenBytes = 32

// SessionStore выдаёт и проверяет токены сессий. Карта сессий живёт в
// памяти за мьютексом и синхронно сбрасывается на диск при каждой мутации;
// с диска читается один раз при старте.
type SessionStore struct {
	repo repo.SessionRepository
	ttl  time.Duration

	mu       sync.Mutex
	sessions map[string]model.Session
	now      func() time.Time
}

// NewSessionStore загружает сохранённые сессии и создаёт стор.
func NewSessionStore(r repo.SessionRepository, ttl time.Duration) (*SessionStore, error) {
	sessions, err := r.Load()
	if err != nil {
		return nil, err
	}
	return &SessionStore{
		repo:     r,
		ttl:      ttl,
		sessions: sessions,
		now:      time.Now,
	}, nil
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Create создаёт сессию для владельца credential и возвращает токен и срок
// действия. Вероятность коллизии токена считается пренебрежимой.
func (s *SessionStore) Create(credential string) (token string, expires time.Time, err error) {
	token, err = newToken()
	if err != nil {
		return "", time.Time{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	created := s.now()
	expires = created.Add(s.ttl)
	s.sessions[token] = model.Session{Credential: credential, Created: created, Expires: expires}
	if err := s.repo.Save(s.sessions); err != nil {
		delete(s.sessions, token)
		return "", time.Time{}, err
	}
	return token, expires, nil
}

// Validate проверяет токен. Истёкшая сессия удаляется при проверке
// (ленивое истечение, фоновой чистки нет).
func (s *SessionStore) Validate(token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return false, nil
	}
	if sess.Expired(s.now()) {
		delete(s.sessions, token)
		if err := s.repo.Save(s.sessions); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// OwnerOf возвращает credential владельца токена. Без побочных эффектов.
func (s *SessionStore) OwnerOf(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return "", false
	}
	return sess.Credential, true
}

// Revoke удаляет сессию. Идемпотентно: отсутствующий токен — не ошибка.
func (s *SessionStore) Revoke(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[token]; !ok {
		return nil
	}
	delete(s.sessions, token)
	return s.repo.Save(s.sessions)
}
