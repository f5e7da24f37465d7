package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SecureDash/internal/crypto"
	"SecureDash/internal/repo"
)

func records(raw ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(raw))
	for _, r := range raw {
		out = append(out, json.RawMessage(r))
	}
	return out
}

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	return NewVault(repo.NewBlobRepository(t.TempDir()))
}

func TestSlotID_DeterministicFixedLength(t *testing.T) {
	id1 := SlotID("pass:1234")
	id2 := SlotID("pass:1234")
	id3 := SlotID("pass:5678")

	assert.Equal(t, id1, id2)
	assert.NotEqual(t, id1, id3)
	assert.Len(t, id1, 16)
	assert.Regexp(t, "^[0-9a-f]{16}$", id1)
}

func TestVault_SealOpenRoundTrip(t *testing.T) {
	v := newTestVault(t)
	in := records(`{"name":"example.com","key":"abc"}`, `{"name":"other.io"}`)

	blob, err := v.Seal("pass:1234", in)
	require.NoError(t, err)
	require.Greater(t, len(blob), crypto.SaltLen)

	out, err := v.Open("pass:1234", blob)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.JSONEq(t, string(in[0]), string(out[0]))
	assert.JSONEq(t, string(in[1]), string(out[1]))
}

// Тест: соль свежая на каждую запись — блобы одного и того же списка различны
func TestVault_FreshSaltPerSeal(t *testing.T) {
	v := newTestVault(t)
	in := records(`{"name":"x"}`)

	b1, err := v.Seal("pass:1234", in)
	require.NoError(t, err)
	b2, err := v.Seal("pass:1234", in)
	require.NoError(t, err)

	assert.NotEqual(t, b1[:crypto.SaltLen], b2[:crypto.SaltLen])
	assert.NotEqual(t, b1, b2)
}

func TestVault_OpenWrongCredential(t *testing.T) {
	v := newTestVault(t)
	blob, err := v.Seal("owner:1111", records(`{"name":"x"}`))
	require.NoError(t, err)

	_, err = v.Open("intruder:2222", blob)
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

// Тест: порча любого байта блоба приводит к отказу, а не к мусорным данным
func TestVault_OpenTamperedBlob(t *testing.T) {
	v := newTestVault(t)
	blob, err := v.Seal("owner:1111", records(`{"name":"x"}`))
	require.NoError(t, err)

	for i := range blob {
		tampered := make([]byte, len(blob))
		copy(tampered, blob)
		tampered[i] ^= 0x01

		_, err := v.Open("owner:1111", tampered)
		assert.ErrorIsf(t, err, ErrDecryptFailed, "byte %d flip must fail", i)
	}
}

func TestVault_OpenShortBlob(t *testing.T) {
	v := newTestVault(t)
	_, err := v.Open("owner:1111", []byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestVault_ReadSlot(t *testing.T) {
	v := newTestVault(t)

	// слот никогда не писался — пустой список, не ошибка
	out, err := v.ReadSlot("fresh:0000")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = v.Seal("fresh:0000", records(`{"name":"x"}`))
	require.NoError(t, err)

	out, err = v.ReadSlot("fresh:0000")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.JSONEq(t, `{"name":"x"}`, string(out[0]))

	// чужой credential видит свой (пустой) слот, а не чужие данные
	out, err = v.ReadSlot("other:9999")
	require.NoError(t, err)
	assert.Empty(t, out)
}

// Тест: перезапись слота полностью заменяет прежний список
func TestVault_SealOverwrites(t *testing.T) {
	v := newTestVault(t)
	_, err := v.Seal("owner:1111", records(`{"name":"a"}`, `{"name":"b"}`))
	require.NoError(t, err)
	_, err = v.Seal("owner:1111", records(`{"name":"c"}`))
	require.NoError(t, err)

	out, err := v.ReadSlot("owner:1111")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.JSONEq(t, `{"name":"c"}`, string(out[0]))
}
