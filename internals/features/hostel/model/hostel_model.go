package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HostelRoom struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CollegeID uuid.UUID `gorm:"type:uuid;not null;index" json:"college_id"`

	RoomNumber string `gorm:"size:20;unique;not null" json:"room_number"`
	RoomType   string `gorm:"size:20;not null" json:"room_type"` // single, double, triple
	Capacity   int    `gorm:"not null" json:"capacity"`

	MonthlyRent     float64 `gorm:"type:numeric(10,2);not null" json:"monthly_rent"`
	SecurityDeposit float64 `gorm:"type:numeric(10,2);not null" json:"security_deposit"`

	Occupancies []HostelOccupancy `gorm:"foreignKey:RoomID" json:"occupancies,omitempty"`

	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HostelRoom) TableName() string {
	return "hostel_rooms"
}

func (m *HostelRoom) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// HostelOccupancy is append-only history: check-out closes a row, nothing
// ever deletes one. check_out_date NULL means currently occupying.
type HostelOccupancy struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	RoomID uuid.UUID `gorm:"type:uuid;not null;index" json:"room_id"`

	CheckInDate  time.Time  `gorm:"not null" json:"check_in_date"`
	CheckOutDate *time.Time `json:"check_out_date,omitempty"`

	// what was actually collected, independent of the room's nominal deposit
	SecurityDepositPaid float64 `gorm:"type:numeric(10,2);not null;default:0" json:"security_deposit_paid"`

	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HostelOccupancy) TableName() string {
	return "hostel_occupancies"
}

func (m *HostelOccupancy) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
