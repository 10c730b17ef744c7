package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beerappa88/University-Finance-Application/internals/configs"
	"github.com/beerappa88/University-Finance-Application/internals/constants"
	auditService "github.com/beerappa88/University-Finance-Application/internals/features/audit/service"
	dto "github.com/beerappa88/University-Finance-Application/internals/features/finance/records/dto"
	model "github.com/beerappa88/University-Finance-Application/internals/features/finance/records/model"
	service "github.com/beerappa88/University-Finance-Application/internals/features/finance/records/service"
	helper "github.com/beerappa88/University-Finance-Application/internals/helpers"
	helperAuth "github.com/beerappa88/University-Finance-Application/internals/helpers/auth"
	"github.com/beerappa88/University-Finance-Application/internals/helpers/errs"
)

type FinancialRecordController struct {
	DB *gorm.DB
}

func (h *FinancialRecordController) settings() service.Settings {
	return service.Settings{
		LateFeePercentage: configs.LateFeePercentage,
		GracePeriodDays:   configs.GracePeriodDays,
	}
}

func actorFrom(c *fiber.Ctx) (auditService.Actor, error) {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return auditService.Actor{}, err
	}
	ip := c.IP()
	ua := c.Get("User-Agent")
	return auditService.Actor{UserID: userID, IPAddress: &ip, UserAgent: &ua}, nil
}

/* =========================
   Create (POST /financial-records)
   ========================= */

func (h *FinancialRecordController) Create(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceFinancialRecord, constants.ActionCreate); err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.CreateFinancialRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := helperAuth.EnsureCollege(c, req.FinancialRecordCollegeID); err != nil {
		return helper.JsonFromError(c, err)
	}

	actor, err := actorFrom(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	rec, err := req.ToModel(&actor.UserID)
	if err != nil {
		return helper.JsonFromError(c, errs.Validation("invalid due_date"))
	}
	if err := service.Create(h.DB.WithContext(c.Context()), rec, actor); err != nil {
		return helper.JsonFromError(c, err)
	}

	return helper.JsonCreated(c, "Financial record created", rec)
}

/* =========================
   Get / List
   ========================= */

func (h *FinancialRecordController) GetByID(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceFinancialRecord, constants.ActionRead); err != nil {
		return helper.JsonFromError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var rec model.FinancialRecord
	if err := h.DB.WithContext(c.Context()).
		First(&rec, "financial_record_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFromError(c, errs.NotFound("financial record not found"))
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if err := helperAuth.EnsureCollege(c, rec.FinancialRecordCollegeID); err != nil {
		return helper.JsonFromError(c, err)
	}

	return helper.JsonOK(c, "OK", rec)
}

func (h *FinancialRecordController) List(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceFinancialRecord, constants.ActionRead); err != nil {
		return helper.JsonFromError(c, err)
	}
	collegeID, err := helperAuth.GetCollegeID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	pg := helper.ResolvePaging(c, 20, 200)

	q := h.DB.WithContext(c.Context()).Model(&model.FinancialRecord{}).
		Where("financial_record_college_id = ?", collegeID)

	if v := strings.TrimSpace(c.Query("user_id")); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("financial_record_user_id = ?", id)
		}
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		q = q.Where("financial_record_status = ?", v)
	}
	if v := strings.TrimSpace(c.Query("type")); v != "" {
		q = q.Where("financial_record_type = ?", v)
	}
	if v := strings.TrimSpace(c.Query("academic_year")); v != "" {
		q = q.Where("financial_record_academic_year = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var records []model.FinancialRecord
	if err := q.Order("financial_record_created_at DESC").
		Offset(pg.Offset).Limit(pg.Limit).Find(&records).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	return helper.JsonList(c, "OK", records, helper.BuildPagination(pg, total))
}

/* =========================
   Transitions
   ========================= */

func (h *FinancialRecordController) Pay(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceFinancialRecord, constants.ActionPay); err != nil {
		return helper.JsonFromError(c, err)
	}

	id, err := h.scopedRecordID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.PayFinancialRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actor, err := actorFrom(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	rec, err := service.Pay(h.DB.WithContext(c.Context()), id,
		model.PaymentMethod(req.PaymentMethod), req.ReferenceNumber, time.Now().UTC(), actor)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Record paid", rec)
}

func (h *FinancialRecordController) Cancel(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceFinancialRecord, constants.ActionCancel); err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := h.scopedRecordID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	actor, err := actorFrom(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	rec, err := service.Cancel(h.DB.WithContext(c.Context()), id, actor)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Record cancelled", rec)
}

func (h *FinancialRecordController) Refund(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceFinancialRecord, constants.ActionRefund); err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := h.scopedRecordID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	actor, err := actorFrom(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	rec, err := service.Refund(h.DB.WithContext(c.Context()), id, actor)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Record refunded", rec)
}

func (h *FinancialRecordController) WriteOffLateFee(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceFinancialRecord, constants.ActionWriteOffLateFee); err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := h.scopedRecordID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	actor, err := actorFrom(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	rec, err := service.WriteOffLateFee(h.DB.WithContext(c.Context()), id, actor)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Late fee written off", rec)
}

// SweepOverdue (POST /financial-records/sweep-overdue) applies the
// time-driven pending→overdue transition across the caller's college.
func (h *FinancialRecordController) SweepOverdue(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceFinancialRecord, constants.ActionUpdate); err != nil {
		return helper.JsonFromError(c, err)
	}
	collegeID, err := helperAuth.GetCollegeID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	actor, err := actorFrom(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	n, err := service.SweepOverdue(h.DB.WithContext(c.Context()), collegeID, time.Now().UTC(), h.settings(), actor)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Overdue sweep complete", fiber.Map{"transitioned": n})
}

// scopedRecordID parses :id and verifies the record belongs to the
// caller's college before any transition is attempted.
func (h *FinancialRecordController) scopedRecordID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errs.Validation("invalid id")
	}
	var rec model.FinancialRecord
	if err := h.DB.WithContext(c.Context()).
		Select("financial_record_college_id").
		First(&rec, "financial_record_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, errs.NotFound("financial record not found")
		}
		return uuid.Nil, err
	}
	if err := helperAuth.EnsureCollege(c, rec.FinancialRecordCollegeID); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
