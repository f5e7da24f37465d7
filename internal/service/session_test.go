package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SecureDash/internal/repo"
)

func newTestSessionStore(t *testing.T, ttl time.Duration) (*SessionStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.json")
	s, err := NewSessionStore(repo.NewSessionRepository(path), ttl)
	require.NoError(t, err)
	return s, path
}

func TestSessionStore_CreateValidate(t *testing.T) {
	s, _ := newTestSessionStore(t, 72*time.Hour)

	token, expires, err := s.Create("p:o")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.GreaterOrEqual(t, len(token), 43) // 32 байта в base64 без паддинга
	assert.True(t, expires.After(time.Now()))

	ok, err := s.Validate(token)
	require.NoError(t, err)
	assert.True(t, ok)

	owner, ok := s.OwnerOf(token)
	assert.True(t, ok)
	assert.Equal(t, "p:o", owner)
}

func TestSessionStore_ValidateUnknownToken(t *testing.T) {
	s, _ := newTestSessionStore(t, time.Hour)
	ok, err := s.Validate("no-such-token")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok = s.OwnerOf("no-such-token")
	assert.False(t, ok)
}

// Тест: токен действителен строго до T+D, в T+D уже нет; истёкший удаляется
func TestSessionStore_Expiry(t *testing.T) {
	s, _ := newTestSessionStore(t, time.Hour)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	token, expires, err := s.Create("p:o")
	require.NoError(t, err)
	assert.True(t, expires.Equal(base.Add(time.Hour)))

	s.now = func() time.Time { return base.Add(time.Hour - time.Second) }
	ok, err := s.Validate(token)
	require.NoError(t, err)
	assert.True(t, ok)

	s.now = func() time.Time { return base.Add(time.Hour) }
	ok, err = s.Validate(token)
	require.NoError(t, err)
	assert.False(t, ok)

	// ленивое истечение удалило запись
	_, ok = s.OwnerOf(token)
	assert.False(t, ok)
}

func TestSessionStore_Revoke(t *testing.T) {
	s, _ := newTestSessionStore(t, time.Hour)
	token, _, err := s.Create("p:o")
	require.NoError(t, err)

	require.NoError(t, s.Revoke(token))
	ok, err := s.Validate(token)
	require.NoError(t, err)
	assert.False(t, ok)

	// повторный отзыв — не ошибка
	require.NoError(t, s.Revoke(token))
	require.NoError(t, s.Revoke("never-existed"))
}

// Тест: сессии переживают перезапуск (новый стор над тем же файлом)
func TestSessionStore_PersistAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	s1, err := NewSessionStore(repo.NewSessionRepository(path), 72*time.Hour)
	require.NoError(t, err)

	token, _, err := s1.Create("p:o")
	require.NoError(t, err)

	s2, err := NewSessionStore(repo.NewSessionRepository(path), 72*time.Hour)
	require.NoError(t, err)
	ok, err := s2.Validate(token)
	require.NoError(t, err)
	assert.True(t, ok)

	owner, ok := s2.OwnerOf(token)
	assert.True(t, ok)
	assert.Equal(t, "p:o", owner)
}

func TestSessionStore_TokensUnique(t *testing.T) {
	s, _ := newTestSessionStore(t, time.Hour)
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		token, _, err := s.Create("p:o")
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}
