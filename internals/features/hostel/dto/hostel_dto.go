package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	model "github.com/beerappa88/University-Finance-Application/internals/features/hostel/model"
)

var validate = validator.New()

/* =========================
   REQUEST: Create room
   ========================= */

type CreateHostelRoomRequest struct {
	CollegeID  uuid.UUID `json:"college_id" validate:"required"`
	RoomNumber string    `json:"room_number" validate:"required,max=20"`
	RoomType   string    `json:"room_type" validate:"required,oneof=single double triple"`
	Capacity   int       `json:"capacity" validate:"required,min=1,max=10"`

	MonthlyRent     float64 `json:"monthly_rent" validate:"required,gte=0"`
	SecurityDeposit float64 `json:"security_deposit" validate:"gte=0"`
}

func (r *CreateHostelRoomRequest) Validate() error {
	return validate.Struct(r)
}

func (r *CreateHostelRoomRequest) ToModel(createdBy *uuid.UUID) *model.HostelRoom {
	return &model.HostelRoom{
		CollegeID:       r.CollegeID,
		RoomNumber:      r.RoomNumber,
		RoomType:        r.RoomType,
		Capacity:        r.Capacity,
		MonthlyRent:     r.MonthlyRent,
		SecurityDeposit: r.SecurityDeposit,
		CreatedBy:       createdBy,
		IsActive:        true,
	}
}

/* =========================
   REQUEST: Check-in / check-out
   ========================= */

type CheckInRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`

	// "YYYY-MM-DD"; empty = today
	CheckInDate         *string `json:"check_in_date" validate:"omitempty,datetime=2006-01-02"`
	SecurityDepositPaid float64 `json:"security_deposit_paid" validate:"gte=0"`
}

func (r *CheckInRequest) Validate() error {
	return validate.Struct(r)
}

func (r *CheckInRequest) ResolveCheckIn(now time.Time) (time.Time, error) {
	if r.CheckInDate == nil || *r.CheckInDate == "" {
		return now, nil
	}
	return time.Parse("2006-01-02", *r.CheckInDate)
}

/* =========================
   RESPONSE
   ========================= */

type HostelRoomResponse struct {
	ID         uuid.UUID `json:"id"`
	CollegeID  uuid.UUID `json:"college_id"`
	RoomNumber string    `json:"room_number"`
	RoomType   string    `json:"room_type"`
	Capacity   int       `json:"capacity"`

	MonthlyRent     float64 `json:"monthly_rent"`
	SecurityDeposit float64 `json:"security_deposit"`

	// derived: current occupants and free beds
	Occupied int64 `json:"occupied"`
	FreeBeds int64 `json:"free_beds"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func FromRoomModel(m *model.HostelRoom, occupied int64) HostelRoomResponse {
	free := int64(m.Capacity) - occupied
	if free < 0 {
		free = 0
	}
	return HostelRoomResponse{
		ID:              m.ID,
		CollegeID:       m.CollegeID,
		RoomNumber:      m.RoomNumber,
		RoomType:        m.RoomType,
		Capacity:        m.Capacity,
		MonthlyRent:     m.MonthlyRent,
		SecurityDeposit: m.SecurityDeposit,
		Occupied:        occupied,
		FreeBeds:        free,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
	}
}
