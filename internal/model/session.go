package model

import "time"

// Session — серверная сессия: владелец (credential, открывший сессию) и
// абсолютные временные метки. После создания запись не меняется.
type Session struct {
	Credential string    `json:"credential"`
	Created    time.Time `json:"created"`
	Expires    time.Time `json:"expires"`
}

// Expired сообщает, истекла ли сессия на момент now.
// Граница включена: в момент Expires сессия уже недействительна.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.Expires)
}
