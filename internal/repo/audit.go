package repo

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// AuditLog — append-only журнал попыток входа. Ядро его только пишет;
// читают операторы.
type AuditLog interface {
	Append(ip string, success bool, reason string) error
}

type fileAuditLog struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewAuditLog создаёт файловый журнал попыток входа.
func NewAuditLog(path string) AuditLog {
	return &fileAuditLog{path: path, now: time.Now}
}

// Append дописывает одну строку в конец журнала.
// Формат: timestamp | IP | SUCCESS/FAILED | причина.
func (l *fileAuditLog) Append(ip string, success bool, reason string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	status := "FAILED"
	if success {
		status = "SUCCESS"
	}
	line := fmt.Sprintf("%s | IP: %-15s | %-7s | %s\n",
		l.now().Format(time.RFC3339), ip, status, reason)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}
	return nil
}
