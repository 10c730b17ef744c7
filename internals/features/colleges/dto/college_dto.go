package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	model "github.com/beerappa88/University-Finance-Application/internals/features/colleges/model"
)

var validate = validator.New()

/* =========================
   REQUEST: Create
   ========================= */

type CreateCollegeRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=255"`
	Code    string  `json:"code" validate:"required,min=2,max=20"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}

func (r *CreateCollegeRequest) Validate() error {
	return validate.Struct(r)
}

func (r *CreateCollegeRequest) ToModel(createdBy *uuid.UUID) *model.College {
	return &model.College{
		Name:      r.Name,
		Code:      r.Code,
		Address:   r.Address,
		CreatedBy: createdBy,
		IsActive:  true,
	}
}

/* =========================
   RESPONSE
   ========================= */

type CollegeResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Address   *string   `json:"address,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModel(m *model.College) CollegeResponse {
	return CollegeResponse{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		Address:   m.Address,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

func FromModels(ms []model.College) []CollegeResponse {
	out := make([]CollegeResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
