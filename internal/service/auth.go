package service

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// credentialSep соединяет пароль и OTP в одну строку credential.
const credentialSep = ":"

// ErrUnauthenticated — токен отсутствует, истёк или отозван.
var ErrUnauthenticated = errors.New("invalid or expired session")

// LockedError — вход с этого IP временно запрещён.
type LockedError struct {
	RetryAfterSeconds int
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("locked, retry after %ds", e.RetryAfterSeconds)
}

// InvalidCredentialsError — неверная пара пароль/OTP.
type InvalidCredentialsError struct {
	AttemptsRemaining int
}

func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("invalid credentials, %d attempts remaining", e.AttemptsRemaining)
}

// Credential собирает строку credential из пароля и OTP.
func Credential(password, otp string) string {
	return password + credentialSep + otp
}

// AuthService связывает LockoutGuard, проверку credentials, SessionStore и
// Vault в операции входа/выхода и чтения/записи данных. Наружу отдаются
// только исходы из таксономии ошибок; внутренние причины не протекают.
type AuthService struct {
	sessions *SessionStore
	lockouts *LockoutGuard
	vault    *Vault

	expected string // операторский credential из конфигурации
	logger   *zap.SugaredLogger
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(sessions *SessionStore, lockouts *LockoutGuard, vault *Vault, password, otp string, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{
		sessions: sessions,
		lockouts: lockouts,
		vault:    vault,
		expected: Credential(password, otp),
		logger:   logger,
	}
}

// Login проверяет блокировку IP, сверяет credentials и создаёт сессию.
// До сверки credentials при активной блокировке возвращается LockedError.
func (a *AuthService) Login(ip, password, otp string) (token string, expires time.Time, err error) {
	locked, remaining, err := a.lockouts.CheckLocked(ip)
	if err != nil {
		return "", time.Time{}, err
	}
	if locked {
		return "", time.Time{}, &LockedError{RetryAfterSeconds: remaining}
	}

	supplied := Credential(password, otp)
	// сравнение за постоянное время; секрет операторский, но таймингом
	// всё равно не светим
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(a.expected)) != 1 {
		justLocked, attemptsLeft, err := a.lockouts.RecordFailure(ip)
		if err != nil {
			return "", time.Time{}, err
		}
		if justLocked {
			return "", time.Time{}, &LockedError{RetryAfterSeconds: int(a.lockouts.duration.Seconds())}
		}
		return "", time.Time{}, &InvalidCredentialsError{AttemptsRemaining: attemptsLeft}
	}

	if err := a.lockouts.RecordSuccess(ip); err != nil {
		return "", time.Time{}, err
	}
	token, expires, err = a.sessions.Create(supplied)
	if err != nil {
		return "", time.Time{}, err
	}
	a.logger.Infow("login ok", "ip", ip, "slot", SlotID(supplied))
	return token, expires, nil
}

// ValidateToken проверяет, что токен принадлежит живой сессии.
func (a *AuthService) ValidateToken(token string) (bool, error) {
	return a.sessions.Validate(token)
}

// Logout отзывает сессию. Идемпотентно.
func (a *AuthService) Logout(token string) error {
	return a.sessions.Revoke(token)
}

// ReadData возвращает записи владельца токена. Ни разу не записанный слот —
// пустой список.
func (a *AuthService) ReadData(token string) ([]json.RawMessage, error) {
	credential, err := a.authorize(token)
	if err != nil {
		return nil, err
	}
	return a.vault.ReadSlot(credential)
}

// WriteData перезаписывает записи владельца токена.
func (a *AuthService) WriteData(token string, records []json.RawMessage) error {
	credential, err := a.authorize(token)
	if err != nil {
		return err
	}
	_, err = a.vault.Seal(credential, records)
	return err
}

func (a *AuthService) authorize(token string) (string, error) {
	ok, err := a.sessions.Validate(token)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrUnauthenticated
	}
	credential, ok := a.sessions.OwnerOf(token)
	if !ok {
		return "", ErrUnauthenticated
	}
	return credential, nil
}
