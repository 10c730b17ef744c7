package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beerappa88/University-Finance-Application/internals/constants"
	dto "github.com/beerappa88/University-Finance-Application/internals/features/users/user/dto"
	model "github.com/beerappa88/University-Finance-Application/internals/features/users/user/model"
	service "github.com/beerappa88/University-Finance-Application/internals/features/users/user/service"
	helper "github.com/beerappa88/University-Finance-Application/internals/helpers"
	helperAuth "github.com/beerappa88/University-Finance-Application/internals/helpers/auth"
	"github.com/beerappa88/University-Finance-Application/internals/helpers/errs"
)

type UserController struct {
	DB *gorm.DB
}

/* =========================
   List (GET /users) — college-scoped
   ========================= */

func (h *UserController) List(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceUser, constants.ActionRead); err != nil {
		return helper.JsonFromError(c, err)
	}
	collegeID, err := helperAuth.GetCollegeID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	pg := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.Context()).Model(&model.User{}).
		Where("college_id = ?", collegeID)

	if v := strings.TrimSpace(c.Query("q")); v != "" {
		like := "%" + strings.ToLower(v) + "%"
		q = q.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if v := strings.TrimSpace(c.Query("active")); v != "" {
		q = q.Where("is_active = ?", strings.EqualFold(v, "true"))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var users []model.User
	if err := q.Preload("Roles").Order("created_at DESC").
		Offset(pg.Offset).Limit(pg.Limit).Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	return helper.JsonList(c, "OK", dto.FromUserModels(users), helper.BuildPagination(pg, total))
}

/* =========================
   Get (GET /users/:id)
   ========================= */

func (h *UserController) GetByID(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceUser, constants.ActionRead); err != nil {
		return helper.JsonFromError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	user, err := service.FindUserWithRoles(h.DB.WithContext(c.Context()), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	// tenant guard: users are only visible inside their own college
	if err := helperAuth.EnsureCollege(c, user.CollegeID); err != nil {
		return helper.JsonFromError(c, err)
	}

	return helper.JsonOK(c, "OK", dto.FromUserModel(user))
}

/* =========================
   Assign role (POST /users/:id/roles)
   ========================= */

func (h *UserController) AssignRole(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceRole, constants.ActionUpdate); err != nil {
		return helper.JsonFromError(c, err)
	}

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.ensureUserCollege(c, userID); err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.AssignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := service.AssignRole(h.DB.WithContext(c.Context()), userID, req.RoleID); err != nil {
		return helper.JsonFromError(c, err)
	}

	user, err := service.FindUserWithRoles(h.DB.WithContext(c.Context()), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Role assigned", dto.FromUserModel(user))
}

/* =========================
   Remove role (DELETE /users/:id/roles/:role_id)
   ========================= */

func (h *UserController) RemoveRole(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceRole, constants.ActionUpdate); err != nil {
		return helper.JsonFromError(c, err)
	}

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	roleID, err := uuid.Parse(c.Params("role_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid role_id")
	}
	if err := h.ensureUserCollege(c, userID); err != nil {
		return helper.JsonFromError(c, err)
	}

	if err := service.RemoveRole(h.DB.WithContext(c.Context()), userID, roleID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Role removed", nil)
}

// ensureUserCollege verifies the target user belongs to the caller's
// college before any role mutation touches them.
func (h *UserController) ensureUserCollege(c *fiber.Ctx, userID uuid.UUID) error {
	var target model.User
	if err := h.DB.WithContext(c.Context()).
		Select("college_id").First(&target, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("user not found")
		}
		return err
	}
	return helperAuth.EnsureCollege(c, target.CollegeID)
}
