package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/barbizo19/Bankist/internal/domain/audit"
)

func TestAuditRepository_CreateAndList(t *testing.T) {
	repo := NewAuditRepository()

	err := repo.Create(&audit.AuditLog{
		EventID: uuid.New(),
		Handle:  "js",
		Action:  "LOGIN",
		Status:  "success",
	})
	assert.NoError(t, err)

	err = repo.Create(&audit.AuditLog{
		EventID:  uuid.New(),
		Handle:   "js",
		Action:   "TRANSFER_DECLINED",
		Status:   "declined",
		Metadata: map[string]interface{}{"reason": "insufficient_balance"},
	})
	assert.NoError(t, err)

	logs := repo.List()
	assert.Len(t, logs, 2)
	assert.Equal(t, "LOGIN", logs[0].Action)
	assert.Equal(t, "TRANSFER_DECLINED", logs[1].Action)
}

func TestAuditRepository_SetsTimestamp(t *testing.T) {
	repo := NewAuditRepository()

	before := time.Now()
	err := repo.Create(&audit.AuditLog{Handle: "jd", Action: "LOGIN", Status: "failed"})
	assert.NoError(t, err)

	logs := repo.List()
	assert.Len(t, logs, 1)
	assert.False(t, logs[0].Timestamp.IsZero())
	assert.True(t, !logs[0].Timestamp.Before(before))
}

func TestAuditRepository_ListReturnsCopy(t *testing.T) {
	repo := NewAuditRepository()

	_ = repo.Create(&audit.AuditLog{Handle: "js", Action: "LOGIN", Status: "success"})

	logs := repo.List()
	logs[0] = nil

	assert.NotNil(t, repo.List()[0])
}
