package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beerappa88/University-Finance-Application/internals/constants"
	dto "github.com/beerappa88/University-Finance-Application/internals/features/colleges/dto"
	model "github.com/beerappa88/University-Finance-Application/internals/features/colleges/model"
	helper "github.com/beerappa88/University-Finance-Application/internals/helpers"
	helperAuth "github.com/beerappa88/University-Finance-Application/internals/helpers/auth"
	"github.com/beerappa88/University-Finance-Application/internals/helpers/errs"
)

type CollegeController struct {
	DB *gorm.DB
}

/* =========================
   Create (POST /colleges)
   ========================= */

func (h *CollegeController) Create(c *fiber.Ctx) error {
	// authorize first, validate later
	if err := helperAuth.RequirePermission(c, constants.ResourceCollege, constants.ActionCreate); err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.CreateCollegeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// (name, code) must be globally unique
	var count int64
	if err := h.DB.WithContext(c.Context()).Model(&model.College{}).
		Where("LOWER(name) = ? OR LOWER(code) = ?", strings.ToLower(req.Name), strings.ToLower(req.Code)).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if count > 0 {
		return helper.JsonFromError(c, errs.Conflict("college name or code already in use"))
	}

	var createdBy *uuid.UUID
	if uid, err := helperAuth.GetUserID(c); err == nil {
		createdBy = &uid
	}

	college := req.ToModel(createdBy)
	if err := h.DB.WithContext(c.Context()).Create(college).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create college")
	}

	return helper.JsonCreated(c, "College created", dto.FromModel(college))
}

/* =========================
   Get (GET /colleges/:id)
   ========================= */

func (h *CollegeController) GetByID(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceCollege, constants.ActionRead); err != nil {
		return helper.JsonFromError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var college model.College
	if err := h.DB.WithContext(c.Context()).First(&college, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFromError(c, errs.NotFound("college not found"))
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	return helper.JsonOK(c, "OK", dto.FromModel(&college))
}

/* =========================
   List (GET /colleges)
   ========================= */

func (h *CollegeController) List(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceCollege, constants.ActionRead); err != nil {
		return helper.JsonFromError(c, err)
	}

	pg := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.Context()).Model(&model.College{})
	if v := strings.TrimSpace(c.Query("active")); v != "" {
		q = q.Where("is_active = ?", strings.EqualFold(v, "true"))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var colleges []model.College
	if err := q.Order("created_at DESC").Offset(pg.Offset).Limit(pg.Limit).Find(&colleges).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	return helper.JsonList(c, "OK", dto.FromModels(colleges), helper.BuildPagination(pg, total))
}
