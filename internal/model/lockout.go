package model

import "time"

// LockoutState — счётчик неудачных попыток входа для одного IP.
// LockedUntil == nil, пока порог не достигнут.
type LockoutState struct {
	Count       int        `json:"count"`
	LockedUntil *time.Time `json:"locked_until"`
}
