package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User belongs to exactly one college. Email and username are unique
// system-wide, not just within the tenant.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CollegeID uuid.UUID `gorm:"type:uuid;not null;index" json:"college_id"`

	Email     string `gorm:"size:255;unique;not null" json:"email"`
	Username  string `gorm:"size:50;unique;not null" json:"username"`
	Password  string `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	FirstName string `gorm:"size:50;not null" json:"first_name"`
	LastName  string `gorm:"size:50;not null" json:"last_name"`

	StudentID  *string `gorm:"size:50;unique" json:"student_id,omitempty"`
	EmployeeID *string `gorm:"size:50;unique" json:"employee_id,omitempty"`

	IsVerified bool `gorm:"not null;default:false" json:"is_verified"`

	Roles []Role `gorm:"many2many:user_roles" json:"roles,omitempty"`

	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (m *User) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
