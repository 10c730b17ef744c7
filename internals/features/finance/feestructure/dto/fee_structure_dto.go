package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	model "github.com/beerappa88/University-Finance-Application/internals/features/finance/feestructure/model"
)

var validate = validator.New()

/* =========================
   REQUEST: Create
   ========================= */

type CreateFeeStructureRequest struct {
	CollegeID    uuid.UUID `json:"college_id" validate:"required"`
	ProgramName  string    `json:"program_name" validate:"required,max=255"`
	AcademicYear string    `json:"academic_year" validate:"required,max=20"`
	Semester     string    `json:"semester" validate:"required,max=20"`

	TuitionFee     float64 `json:"tuition_fee" validate:"required,gte=0"`
	LabFee         float64 `json:"lab_fee" validate:"gte=0"`
	LibraryFee     float64 `json:"library_fee" validate:"gte=0"`
	SportsFee      float64 `json:"sports_fee" validate:"gte=0"`
	DevelopmentFee float64 `json:"development_fee" validate:"gte=0"`
}

func (r *CreateFeeStructureRequest) Validate() error {
	return validate.Struct(r)
}

func (r *CreateFeeStructureRequest) ToModel(createdBy *uuid.UUID) *model.FeeStructure {
	return &model.FeeStructure{
		CollegeID:      r.CollegeID,
		ProgramName:    r.ProgramName,
		AcademicYear:   r.AcademicYear,
		Semester:       r.Semester,
		TuitionFee:     r.TuitionFee,
		LabFee:         r.LabFee,
		LibraryFee:     r.LibraryFee,
		SportsFee:      r.SportsFee,
		DevelopmentFee: r.DevelopmentFee,
		CreatedBy:      createdBy,
		IsActive:       true,
	}
}

/* =========================
   RESPONSE — total_fee computed here, never read from storage
   ========================= */

type FeeStructureResponse struct {
	ID           uuid.UUID `json:"id"`
	CollegeID    uuid.UUID `json:"college_id"`
	ProgramName  string    `json:"program_name"`
	AcademicYear string    `json:"academic_year"`
	Semester     string    `json:"semester"`

	TuitionFee     float64 `json:"tuition_fee"`
	LabFee         float64 `json:"lab_fee"`
	LibraryFee     float64 `json:"library_fee"`
	SportsFee      float64 `json:"sports_fee"`
	DevelopmentFee float64 `json:"development_fee"`
	TotalFee       float64 `json:"total_fee"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModel(m *model.FeeStructure) FeeStructureResponse {
	return FeeStructureResponse{
		ID:             m.ID,
		CollegeID:      m.CollegeID,
		ProgramName:    m.ProgramName,
		AcademicYear:   m.AcademicYear,
		Semester:       m.Semester,
		TuitionFee:     m.TuitionFee,
		LabFee:         m.LabFee,
		LibraryFee:     m.LibraryFee,
		SportsFee:      m.SportsFee,
		DevelopmentFee: m.DevelopmentFee,
		TotalFee:       m.TotalFee(),
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
	}
}

func FromModels(ms []model.FeeStructure) []FeeStructureResponse {
	out := make([]FeeStructureResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
