package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog is append-only evidence: rows are inserted in the same
// transaction as the mutation they describe and are never updated.
type AuditLog struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	FinancialRecordID *uuid.UUID `gorm:"type:uuid;index" json:"financial_record_id,omitempty"`

	Action    string         `gorm:"size:100;not null" json:"action"`
	OldValues datatypes.JSON `gorm:"type:jsonb" json:"old_values,omitempty"`
	NewValues datatypes.JSON `gorm:"type:jsonb" json:"new_values,omitempty"`

	IPAddress *string `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent *string `gorm:"size:255" json:"user_agent,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func (m *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
