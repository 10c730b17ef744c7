package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Permission names a (resource, action) capability. CollegeID NULL means
// global: attachable to roles in any tenant.
type Permission struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CollegeID *uuid.UUID `gorm:"type:uuid;index" json:"college_id,omitempty"`

	Name        string  `gorm:"size:100;unique;not null" json:"name"`
	Description *string `gorm:"size:500" json:"description,omitempty"`
	Resource    string  `gorm:"size:100;not null" json:"resource"`
	Action      string  `gorm:"size:100;not null" json:"action"`

	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Permission) TableName() string {
	return "permissions"
}

func (m *Permission) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsGlobal reports whether the permission is tenant-independent.
func (m *Permission) IsGlobal() bool {
	return m.CollegeID == nil
}

// Claim is the "resource:action" form carried in JWT claims.
func (m *Permission) Claim() string {
	return m.Resource + ":" + m.Action
}
