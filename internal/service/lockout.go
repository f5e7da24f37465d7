package service

import (
	"fmt"
	"sync"
	"time"

	"SecureDash/internal/model"
	"SecureDash/internal/repo"
)

// LockoutGuard — счётчик неудачных входов по IP с временной блокировкой.
// Состояния на IP: Clear(0) → Warning(1..threshold-1) → Locked(until).
// Карта живёт в памяти за мьютексом; каждая смена состояния синхронно
// сохраняется на диск до ответа вызывающему.
type LockoutGuard struct {
	repo      repo.LockoutRepository
	audit     repo.AuditLog
	threshold int
	duration  time.Duration

	mu       sync.Mutex
	lockouts map[string]model.LockoutState
	now      func() time.Time
}

// NewLockoutGuard загружает сохранённые локауты и создаёт guard.
func NewLockoutGuard(r repo.LockoutRepository, audit repo.AuditLog, threshold int, duration time.Duration) (*LockoutGuard, error) {
	lockouts, err := r.Load()
	if err != nil {
		return nil, err
	}
	return &LockoutGuard{
		repo:      r,
		audit:     audit,
		threshold: threshold,
		duration:  duration,
		lockouts:  lockouts,
		now:       time.Now,
	}, nil
}

// CheckLocked проверяет блокировку IP. Вызывается до проверки credentials
// на каждой попытке входа. Истёкшая блокировка лениво сбрасывается в Clear.
func (g *LockoutGuard) CheckLocked(ip string) (locked bool, remainingSeconds int, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	state, ok := g.lockouts[ip]
	if !ok || state.LockedUntil == nil {
		return false, 0, nil
	}

	now := g.now()
	if now.Before(*state.LockedUntil) {
		remaining := int(state.LockedUntil.Sub(now).Seconds())
		_ = g.audit.Append(ip, false, fmt.Sprintf("Rejected - locked for %ds more", remaining))
		return true, remaining, nil
	}

	// срок блокировки вышел — сбрасываем при следующей проверке
	g.lockouts[ip] = model.LockoutState{}
	if err := g.repo.Save(g.lockouts); err != nil {
		return false, 0, err
	}
	return false, 0, nil
}

// RecordFailure фиксирует неудачную попытку. При достижении порога ставит
// блокировку на duration. Состояние сохраняется до ответа вызывающему.
func (g *LockoutGuard) RecordFailure(ip string) (justLocked bool, attemptsRemaining int, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	state := g.lockouts[ip]
	state.Count++

	if state.Count >= g.threshold {
		until := g.now().Add(g.duration)
		state.LockedUntil = &until
		g.lockouts[ip] = state
		if err := g.repo.Save(g.lockouts); err != nil {
			return false, 0, err
		}
		_ = g.audit.Append(ip, false, fmt.Sprintf("LOCKED OUT - %d failed attempts", g.threshold))
		return true, 0, nil
	}

	g.lockouts[ip] = state
	if err := g.repo.Save(g.lockouts); err != nil {
		return false, 0, err
	}
	remaining := g.threshold - state.Count
	_ = g.audit.Append(ip, false, fmt.Sprintf("Invalid credentials - %d attempts remaining", remaining))
	return false, remaining, nil
}

// RecordSuccess сбрасывает счётчик IP в ноль при успешном входе.
func (g *LockoutGuard) RecordSuccess(ip string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.lockouts[ip]; ok {
		g.lockouts[ip] = model.LockoutState{}
		if err := g.repo.Save(g.lockouts); err != nil {
			return err
		}
	}
	_ = g.audit.Append(ip, true, "Login successful")
	return nil
}
