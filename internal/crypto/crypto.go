package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeyLen — длина ключа для AES-256 (в байтах).
	KeyLen = 32
	// SaltLen — длина соли для PBKDF2 (в байтах).
	SaltLen = 16
	// iterations — число итераций PBKDF2; намеренно медленно,
	// чтобы перебор по захваченному блобу был дорогим.
	iterations = 100_000
)

// DeriveKey выводит симметричный ключ из credential и соли через
// PBKDF2-HMAC-SHA256. Детерминировано: одна пара credential+salt
// всегда даёт один и тот же ключ.
func DeriveKey(credential string, salt []byte) []byte {
	return pbkdf2.Key([]byte(credential), salt, iterations, KeyLen, sha256.New)
}

// NewSalt генерирует свежую случайную соль.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// Encrypt шифрует plain с помощью AES-GCM и заданного ключа.
// Возвращает nonce‖ciphertext одним срезом.
func Encrypt(plain, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

// Decrypt расшифровывает nonce‖ciphertext. Любая порча данных или чужой
// ключ приводят к ошибке аутентификации GCM.
func Decrypt(sealed, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, errors.New("sealed data too short")
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
