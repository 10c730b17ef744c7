package dto

import (
	"time"

	"github.com/google/uuid"

	model "github.com/beerappa88/University-Finance-Application/internals/features/users/user/model"
)

/* =========================
   REQUEST: Create role
   ========================= */

type CreateRoleRequest struct {
	CollegeID   uuid.UUID `json:"college_id" validate:"required"`
	Name        string    `json:"name" validate:"required,min=2,max=100"`
	Description *string   `json:"description" validate:"omitempty,max=500"`
}

func (r *CreateRoleRequest) Validate() error {
	return validate.Struct(r)
}

func (r *CreateRoleRequest) ToModel(createdBy *uuid.UUID) *model.Role {
	return &model.Role{
		CollegeID:   r.CollegeID,
		Name:        r.Name,
		Description: r.Description,
		CreatedBy:   createdBy,
		IsActive:    true,
	}
}

/* =========================
   REQUEST: Create permission
   ========================= */

type CreatePermissionRequest struct {
	CollegeID   *uuid.UUID `json:"college_id"` // nil = global permission
	Name        string     `json:"name" validate:"required,min=2,max=100"`
	Resource    string     `json:"resource" validate:"required,min=2,max=100"`
	Action      string     `json:"action" validate:"required,min=2,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=500"`
}

func (r *CreatePermissionRequest) Validate() error {
	return validate.Struct(r)
}

func (r *CreatePermissionRequest) ToModel(createdBy *uuid.UUID) *model.Permission {
	return &model.Permission{
		CollegeID:   r.CollegeID,
		Name:        r.Name,
		Resource:    r.Resource,
		Action:      r.Action,
		Description: r.Description,
		CreatedBy:   createdBy,
		IsActive:    true,
	}
}

/* =========================
   REQUEST: Attach permission to role
   ========================= */

type AttachPermissionRequest struct {
	PermissionID uuid.UUID `json:"permission_id" validate:"required"`
}

func (r *AttachPermissionRequest) Validate() error {
	return validate.Struct(r)
}

/* =========================
   RESPONSE
   ========================= */

type PermissionResponse struct {
	ID        uuid.UUID  `json:"id"`
	CollegeID *uuid.UUID `json:"college_id,omitempty"`
	Name      string     `json:"name"`
	Resource  string     `json:"resource"`
	Action    string     `json:"action"`
	IsActive  bool       `json:"is_active"`
}

func FromPermissionModel(m *model.Permission) PermissionResponse {
	return PermissionResponse{
		ID:        m.ID,
		CollegeID: m.CollegeID,
		Name:      m.Name,
		Resource:  m.Resource,
		Action:    m.Action,
		IsActive:  m.IsActive,
	}
}

type RoleResponse struct {
	ID          uuid.UUID            `json:"id"`
	CollegeID   uuid.UUID            `json:"college_id"`
	Name        string               `json:"name"`
	Description *string              `json:"description,omitempty"`
	Permissions []PermissionResponse `json:"permissions"`
	IsActive    bool                 `json:"is_active"`
	CreatedAt   time.Time            `json:"created_at"`
}

func FromRoleModel(m *model.Role) RoleResponse {
	perms := make([]PermissionResponse, 0, len(m.Permissions))
	for i := range m.Permissions {
		perms = append(perms, FromPermissionModel(&m.Permissions[i]))
	}
	return RoleResponse{
		ID:          m.ID,
		CollegeID:   m.CollegeID,
		Name:        m.Name,
		Description: m.Description,
		Permissions: perms,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}
