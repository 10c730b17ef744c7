package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// College is the tenant root: users, roles, financial and hostel data all
// hang off a college and never cross it.
type College struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name    string    `gorm:"size:255;unique;not null" json:"name"`
	Code    string    `gorm:"size:20;unique;not null" json:"code"`
	Address *string   `gorm:"size:500" json:"address,omitempty"`

	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (College) TableName() string {
	return "colleges"
}

func (m *College) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
