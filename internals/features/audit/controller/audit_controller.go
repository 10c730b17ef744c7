package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beerappa88/University-Finance-Application/internals/constants"
	model "github.com/beerappa88/University-Finance-Application/internals/features/audit/model"
	helper "github.com/beerappa88/University-Finance-Application/internals/helpers"
	helperAuth "github.com/beerappa88/University-Finance-Application/internals/helpers/auth"
)

type AuditController struct {
	DB *gorm.DB
}

/* =========================
   List (GET /audit-logs)
   ========================= */

// List returns audit rows scoped to the caller's college: only entries
// whose acting user belongs to the same tenant are visible.
func (h *AuditController) List(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceAuditLog, constants.ActionRead); err != nil {
		return helper.JsonFromError(c, err)
	}
	collegeID, err := helperAuth.GetCollegeID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	pg := helper.ResolvePaging(c, 50, 200)

	q := h.DB.WithContext(c.Context()).Model(&model.AuditLog{}).
		Where("user_id IN (SELECT id FROM users WHERE college_id = ?)", collegeID)

	if v := strings.TrimSpace(c.Query("financial_record_id")); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("financial_record_id = ?", id)
		}
	}
	if v := strings.TrimSpace(c.Query("action")); v != "" {
		q = q.Where("action = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var logs []model.AuditLog
	if err := q.Order("created_at DESC").Offset(pg.Offset).Limit(pg.Limit).Find(&logs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	return helper.JsonList(c, "OK", logs, helper.BuildPagination(pg, total))
}
