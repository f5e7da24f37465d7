package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"SecureDash/internal/crypto"
	"SecureDash/internal/repo"
)

// ErrDecryptFailed — единственный исход неудачного Open: неверный credential,
// испорченный блоб и битый JSON неразличимы для вызывающего.
var ErrDecryptFailed = errors.New("decrypt failed")

// slotIDLen — длина идентификатора слота в hex-символах.
const slotIDLen = 16

// Vault шифрует и расшифровывает список записей пользователя.
// Слот адресуется односторонним идентификатором от credential.
type Vault struct {
	blobs repo.BlobRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex // сериализация записи по слоту
}

// NewVault создаёт Vault поверх репозитория блобов.
func NewVault(blobs repo.BlobRepository) *Vault {
	return &Vault{blobs: blobs, locks: map[string]*sync.Mutex{}}
}

// SlotID возвращает идентификатор слота: усечённый SHA-256 от credential.
// Риск коллизий усечённого хеша принят.
func SlotID(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:])[:slotIDLen]
}

func (v *Vault) slotLock(slot string) *sync.Mutex {
	v.mu.Lock()
	defer v.mu.Unlock()
	l, ok := v.locks[slot]
	if !ok {
		l = &sync.Mutex{}
		v.locks[slot] = l
	}
	return l
}

// Seal шифрует записи под credential и атомарно сохраняет блоб в слот,
// полностью перезаписывая прежнее содержимое. Соль генерируется заново
// при каждой записи. Возвращает сохранённый блоб (salt‖ciphertext).
func (v *Vault) Seal(credential string, records []json.RawMessage) ([]byte, error) {
	if records == nil {
		records = []json.RawMessage{}
	}
	plain, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}

	salt, err := crypto.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	key := crypto.DeriveKey(credential, salt)
	sealed, err := crypto.Encrypt(plain, key)
	if err != nil {
		return nil, fmt.Errorf("encrypt records: %w", err)
	}
	blob := append(salt, sealed...)

	slot := SlotID(credential)
	l := v.slotLock(slot)
	l.Lock()
	defer l.Unlock()
	if err := v.blobs.Save(slot, blob); err != nil {
		return nil, err
	}
	return blob, nil
}

// Open расшифровывает блоб под credential. Любая причина неудачи —
// ErrDecryptFailed, без уточнения (намеренно, чтобы не давать оракула).
func (v *Vault) Open(credential string, blob []byte) ([]json.RawMessage, error) {
	if len(blob) <= crypto.SaltLen {
		return nil, ErrDecryptFailed
	}
	salt, sealed := blob[:crypto.SaltLen], blob[crypto.SaltLen:]
	key := crypto.DeriveKey(credential, salt)

	plain, err := crypto.Decrypt(sealed, key)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	var records []json.RawMessage
	if err := json.Unmarshal(plain, &records); err != nil {
		return nil, ErrDecryptFailed
	}
	return records, nil
}

// ReadSlot читает и расшифровывает слот credential.
// Отсутствующий слот — пустой список (семантика первого входа).
func (v *Vault) ReadSlot(credential string) ([]json.RawMessage, error) {
	blob, found, err := v.blobs.Load(SlotID(credential))
	if err != nil {
		return nil, err
	}
	if !found {
		return []json.RawMessage{}, nil
	}
	return v.Open(credential, blob)
}
