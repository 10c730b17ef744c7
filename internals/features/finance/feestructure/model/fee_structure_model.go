package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeeStructure holds the per-program component fees. The total is always
// derived from the components at read time and never stored, so the two
// can never drift apart.
type FeeStructure struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CollegeID uuid.UUID `gorm:"type:uuid;not null;index" json:"college_id"`

	ProgramName  string `gorm:"size:255;not null" json:"program_name"`
	AcademicYear string `gorm:"size:20;not null" json:"academic_year"`
	Semester     string `gorm:"size:20;not null" json:"semester"`

	TuitionFee     float64 `gorm:"type:numeric(10,2);not null" json:"tuition_fee"`
	LabFee         float64 `gorm:"type:numeric(10,2);not null;default:0" json:"lab_fee"`
	LibraryFee     float64 `gorm:"type:numeric(10,2);not null;default:0" json:"library_fee"`
	SportsFee      float64 `gorm:"type:numeric(10,2);not null;default:0" json:"sports_fee"`
	DevelopmentFee float64 `gorm:"type:numeric(10,2);not null;default:0" json:"development_fee"`

	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FeeStructure) TableName() string {
	return "fee_structures"
}

func (m *FeeStructure) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TotalFee is the exact sum of the five components.
func (m *FeeStructure) TotalFee() float64 {
	return m.TuitionFee + m.LabFee + m.LibraryFee + m.SportsFee + m.DevelopmentFee
}
