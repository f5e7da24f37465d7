package repo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SecureDash/internal/model"
)

func TestWriteFileAtomic_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	require.NoError(t, writeFileAtomic(path, []byte("v1"), 0o600))
	require.NoError(t, writeFileAtomic(path, []byte("v2"), 0o600))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(b))

	// временных файлов не остаётся
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBlobRepository_LoadSaveList(t *testing.T) {
	dir := t.TempDir()
	r := NewBlobRepository(dir)

	_, found, err := r.Load("deadbeefdeadbeef")
	require.NoError(t, err)
	assert.False(t, found, "absent slot must not be an error")

	require.NoError(t, r.Save("deadbeefdeadbeef", []byte{0x01, 0x02}))
	b, found, err := r.Load("deadbeefdeadbeef")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte{0x01, 0x02}, b)

	// перезапись полностью заменяет содержимое
	require.NoError(t, r.Save("deadbeefdeadbeef", []byte{0xff}))
	b, _, err = r.Load("deadbeefdeadbeef")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff}, b)

	slots, err := r.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"deadbeefdeadbeef"}, slots)
}

func TestSessionRepository_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	r := NewSessionRepository(path)

	// отсутствующий файл — пустая карта
	m, err := r.Load()
	require.NoError(t, err)
	assert.Empty(t, m)

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m["tok"] = model.Session{Credential: "p:o", Created: created, Expires: created.Add(72 * time.Hour)}
	require.NoError(t, r.Save(m))

	got, err := r.Load()
	require.NoError(t, err)
	require.Contains(t, got, "tok")
	assert.Equal(t, "p:o", got["tok"].Credential)
	assert.True(t, got["tok"].Expires.Equal(created.Add(72*time.Hour)))
}

func TestLockoutRepository_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lockouts.json")
	r := NewLockoutRepository(path)

	m, err := r.Load()
	require.NoError(t, err)
	assert.Empty(t, m)

	until := time.Date(2025, 6, 1, 12, 15, 0, 0, time.UTC)
	m["1.2.3.4"] = model.LockoutState{Count: 5, LockedUntil: &until}
	m["5.6.7.8"] = model.LockoutState{Count: 2}
	require.NoError(t, r.Save(m))

	got, err := r.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, got["1.2.3.4"].Count)
	require.NotNil(t, got["1.2.3.4"].LockedUntil)
	assert.True(t, got["1.2.3.4"].LockedUntil.Equal(until))
	assert.Nil(t, got["5.6.7.8"].LockedUntil)
}

func TestAuditLog_AppendFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "login_attempts.log")
	l := NewAuditLog(path).(*fileAuditLog)
	l.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, l.Append("1.2.3.4", true, "Login successful"))
	require.NoError(t, l.Append("1.2.3.4", false, "Invalid credentials - 4 attempts remaining"))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "IP: 1.2.3.4")
	assert.Contains(t, lines[0], "SUCCESS")
	assert.Contains(t, lines[1], "FAILED")
	assert.Contains(t, lines[1], "4 attempts remaining")
}
