package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is tenant-scoped: it may only be assigned to users of the same
// college. The check lives in the service layer, the FK alone cannot
// express it.
type Role struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CollegeID uuid.UUID `gorm:"type:uuid;not null;index" json:"college_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description *string `gorm:"size:500" json:"description,omitempty"`

	Permissions []Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`

	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Role) TableName() string {
	return "roles"
}

func (m *Role) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
