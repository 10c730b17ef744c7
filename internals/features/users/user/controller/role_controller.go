package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beerappa88/University-Finance-Application/internals/constants"
	dto "github.com/beerappa88/University-Finance-Application/internals/features/users/user/dto"
	model "github.com/beerappa88/University-Finance-Application/internals/features/users/user/model"
	helper "github.com/beerappa88/University-Finance-Application/internals/helpers"
	helperAuth "github.com/beerappa88/University-Finance-Application/internals/helpers/auth"
	"github.com/beerappa88/University-Finance-Application/internals/helpers/errs"
)

type RoleController struct {
	DB *gorm.DB
}

/* =========================
   Create role (POST /roles)
   ========================= */

func (h *RoleController) Create(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceRole, constants.ActionCreate); err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}
	// roles are created inside the caller's own tenant only
	if err := helperAuth.EnsureCollege(c, req.CollegeID); err != nil {
		return helper.JsonFromError(c, err)
	}

	var createdBy *uuid.UUID
	if uid, err := helperAuth.GetUserID(c); err == nil {
		createdBy = &uid
	}

	role := req.ToModel(createdBy)
	if err := h.DB.WithContext(c.Context()).Create(role).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create role")
	}
	return helper.JsonCreated(c, "Role created", dto.FromRoleModel(role))
}

/* =========================
   List roles (GET /roles) — college-scoped
   ========================= */

func (h *RoleController) List(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceRole, constants.ActionRead); err != nil {
		return helper.JsonFromError(c, err)
	}
	collegeID, err := helperAuth.GetCollegeID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var roles []model.Role
	if err := h.DB.WithContext(c.Context()).
		Preload("Permissions").
		Where("college_id = ?", collegeID).
		Order("name ASC").Find(&roles).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	out := make([]dto.RoleResponse, 0, len(roles))
	for i := range roles {
		out = append(out, dto.FromRoleModel(&roles[i]))
	}
	return helper.JsonOK(c, "OK", out)
}

/* =========================
   Attach permission (POST /roles/:id/permissions)
   ========================= */

func (h *RoleController) AttachPermission(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceRole, constants.ActionUpdate); err != nil {
		return helper.JsonFromError(c, err)
	}

	roleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var req dto.AttachPermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := h.DB.WithContext(c.Context())

	var role model.Role
	if err := db.First(&role, "id = ?", roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFromError(c, errs.NotFound("role not found"))
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if err := helperAuth.EnsureCollege(c, role.CollegeID); err != nil {
		return helper.JsonFromError(c, err)
	}

	var perm model.Permission
	if err := db.First(&perm, "id = ?", req.PermissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFromError(c, errs.NotFound("permission not found"))
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	// global permissions (no college) attach anywhere; scoped ones must match
	if !perm.IsGlobal() && *perm.CollegeID != role.CollegeID {
		return helper.JsonFromError(c, errs.TenantMismatch("permission belongs to a different college"))
	}

	if err := db.Model(&role).Association("Permissions").Append(&perm); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to attach permission")
	}

	if err := db.Preload("Permissions").First(&role, "id = ?", roleID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonUpdated(c, "Permission attached", dto.FromRoleModel(&role))
}

/* =========================
   Create permission (POST /permissions)
   ========================= */

func (h *RoleController) CreatePermission(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceRole, constants.ActionCreate); err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.CreatePermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.CollegeID != nil {
		if err := helperAuth.EnsureCollege(c, *req.CollegeID); err != nil {
			return helper.JsonFromError(c, err)
		}
	}

	var count int64
	if err := h.DB.WithContext(c.Context()).Model(&model.Permission{}).
		Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if count > 0 {
		return helper.JsonFromError(c, errs.Conflict("permission name already in use"))
	}

	var createdBy *uuid.UUID
	if uid, err := helperAuth.GetUserID(c); err == nil {
		createdBy = &uid
	}

	perm := req.ToModel(createdBy)
	if err := h.DB.WithContext(c.Context()).Create(perm).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create permission")
	}
	return helper.JsonCreated(c, "Permission created", dto.FromPermissionModel(perm))
}
