package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beerappa88/University-Finance-Application/internals/constants"
	dto "github.com/beerappa88/University-Finance-Application/internals/features/finance/feestructure/dto"
	model "github.com/beerappa88/University-Finance-Application/internals/features/finance/feestructure/model"
	helper "github.com/beerappa88/University-Finance-Application/internals/helpers"
	helperAuth "github.com/beerappa88/University-Finance-Application/internals/helpers/auth"
	"github.com/beerappa88/University-Finance-Application/internals/helpers/errs"
)

type FeeStructureController struct {
	DB *gorm.DB
}

/* =========================
   Create (POST /fee-structures)
   ========================= */

func (h *FeeStructureController) Create(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceFeeStructure, constants.ActionCreate); err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.CreateFeeStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := helperAuth.EnsureCollege(c, req.CollegeID); err != nil {
		return helper.JsonFromError(c, err)
	}

	var createdBy *uuid.UUID
	if uid, err := helperAuth.GetUserID(c); err == nil {
		createdBy = &uid
	}

	fs := req.ToModel(createdBy)
	if err := h.DB.WithContext(c.Context()).Create(fs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create fee structure")
	}
	return helper.JsonCreated(c, "Fee structure created", dto.FromModel(fs))
}

/* =========================
   Get (GET /fee-structures/:id)
   ========================= */

func (h *FeeStructureController) GetByID(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceFeeStructure, constants.ActionRead); err != nil {
		return helper.JsonFromError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var fs model.FeeStructure
	if err := h.DB.WithContext(c.Context()).First(&fs, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFromError(c, errs.NotFound("fee structure not found"))
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if err := helperAuth.EnsureCollege(c, fs.CollegeID); err != nil {
		return helper.JsonFromError(c, err)
	}

	return helper.JsonOK(c, "OK", dto.FromModel(&fs))
}

/* =========================
   List (GET /fee-structures)
   ========================= */

func (h *FeeStructureController) List(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceFeeStructure, constants.ActionRead); err != nil {
		return helper.JsonFromError(c, err)
	}
	collegeID, err := helperAuth.GetCollegeID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	pg := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.Context()).Model(&model.FeeStructure{}).
		Where("college_id = ?", collegeID)

	if v := strings.TrimSpace(c.Query("program")); v != "" {
		q = q.Where("LOWER(program_name) = ?", strings.ToLower(v))
	}
	if v := strings.TrimSpace(c.Query("academic_year")); v != "" {
		q = q.Where("academic_year = ?", v)
	}
	if v := strings.TrimSpace(c.Query("semester")); v != "" {
		q = q.Where("semester = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var list []model.FeeStructure
	if err := q.Order("program_name ASC, academic_year DESC").
		Offset(pg.Offset).Limit(pg.Limit).Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	return helper.JsonList(c, "OK", dto.FromModels(list), helper.BuildPagination(pg, total))
}
