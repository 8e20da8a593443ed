package repository

import (
	"sync"
	"time"

	"github.com/barbizo19/Bankist/internal/domain/audit"
)

type AuditRepository interface {
	Create(entry *audit.AuditLog) error
	List() []*audit.AuditLog
}

// auditRepository is a process-resident append-only log of engine decisions.
// It exists for observability within the running session; like the rest of
// the state it is rebuilt empty on restart.
type auditRepository struct {
	mu   sync.Mutex
	logs []*audit.AuditLog
}

func NewAuditRepository() AuditRepository {
	return &auditRepository{}
}

func (r *auditRepository) Create(entry *audit.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	cp := *entry
	r.logs = append(r.logs, &cp)
	return nil
}

func (r *auditRepository) List() []*audit.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*audit.AuditLog, len(r.logs))
	copy(out, r.logs)
	return out
}
