package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	model "github.com/beerappa88/University-Finance-Application/internals/features/users/user/model"
)

var validate = validator.New()

/* =========================
   REQUEST: Create user
   ========================= */

type CreateUserRequest struct {
	CollegeID  uuid.UUID `json:"college_id" validate:"required"`
	Email      string    `json:"email" validate:"required,email"`
	Username   string    `json:"username" validate:"required,min=3,max=50"`
	Password   string    `json:"password" validate:"required,min=8"`
	FirstName  string    `json:"first_name" validate:"required,min=1,max=50"`
	LastName   string    `json:"last_name" validate:"required,min=1,max=50"`
	StudentID  *string   `json:"student_id" validate:"omitempty,max=50"`
	EmployeeID *string   `json:"employee_id" validate:"omitempty,max=50"`
}

func (r *CreateUserRequest) Validate() error {
	return validate.Struct(r)
}

// ToModel builds the user row. Password here is the bcrypt hash, not the
// plaintext from the request.
func (r *CreateUserRequest) ToModel(hashedPassword string, createdBy *uuid.UUID) *model.User {
	return &model.User{
		CollegeID:  r.CollegeID,
		Email:      r.Email,
		Username:   r.Username,
		Password:   hashedPassword,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		StudentID:  r.StudentID,
		EmployeeID: r.EmployeeID,
		CreatedBy:  createdBy,
		IsActive:   true,
	}
}

/* =========================
   REQUEST: Assign role
   ========================= */

type AssignRoleRequest struct {
	RoleID uuid.UUID `json:"role_id" validate:"required"`
}

func (r *AssignRoleRequest) Validate() error {
	return validate.Struct(r)
}

/* =========================
   RESPONSE
   ========================= */

type RoleBrief struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UserResponse is the outbound shape; it never carries the password hash.
type UserResponse struct {
	ID         uuid.UUID   `json:"id"`
	CollegeID  uuid.UUID   `json:"college_id"`
	Email      string      `json:"email"`
	Username   string      `json:"username"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	StudentID  *string     `json:"student_id,omitempty"`
	EmployeeID *string     `json:"employee_id,omitempty"`
	IsVerified bool        `json:"is_verified"`
	IsActive   bool        `json:"is_active"`
	Roles      []RoleBrief `json:"roles"`
	CreatedAt  time.Time   `json:"created_at"`
}

func FromUserModel(m *model.User) UserResponse {
	roles := make([]RoleBrief, 0, len(m.Roles))
	for i := range m.Roles {
		roles = append(roles, RoleBrief{ID: m.Roles[i].ID, Name: m.Roles[i].Name})
	}
	return UserResponse{
		ID:         m.ID,
		CollegeID:  m.CollegeID,
		Email:      m.Email,
		Username:   m.Username,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		StudentID:  m.StudentID,
		EmployeeID: m.EmployeeID,
		IsVerified: m.IsVerified,
		IsActive:   m.IsActive,
		Roles:      roles,
		CreatedAt:  m.CreatedAt,
	}
}

func FromUserModels(ms []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromUserModel(&ms[i]))
	}
	return out
}
