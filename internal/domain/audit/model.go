package audit

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	EventID   uuid.UUID              `json:"event_id"`
	Timestamp time.Time              `json:"timestamp"`
	Handle    string                 `json:"handle,omitempty"`
	Action    string                 `json:"action"`
	Status    string                 `json:"status"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}
