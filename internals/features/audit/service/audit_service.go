// file: internals/features/audit/service/audit_service.go
package service

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "github.com/beerappa88/University-Finance-Application/internals/features/audit/model"
)

// Actor carries request provenance for the audit trail.
type Actor struct {
	UserID    uuid.UUID
	IPAddress *string
	UserAgent *string
}

// Record inserts one audit row. Callers pass the same *gorm.DB (usually a
// transaction handle) that applies the mutation, so the row commits or
// rolls back together with it.
func Record(db *gorm.DB, actor Actor, financialRecordID *uuid.UUID, action string, oldValues, newValues any) error {
	row := &model.AuditLog{
		UserID:            actor.UserID,
		FinancialRecordID: financialRecordID,
		Action:            action,
		IPAddress:         actor.IPAddress,
		UserAgent:         actor.UserAgent,
	}

	if oldValues != nil {
		b, err := json.Marshal(oldValues)
		if err != nil {
			return err
		}
		row.OldValues = datatypes.JSON(b)
	}
	if newValues != nil {
		b, err := json.Marshal(newValues)
		if err != nil {
			return err
		}
		row.NewValues = datatypes.JSON(b)
	}

	return db.Create(row).Error
}

// RetentionCutoff is the timestamp before which audit rows fall outside the
// compliance window.
func RetentionCutoff(now time.Time, retentionDays int) time.Time {
	return now.AddDate(0, 0, -retentionDays)
}

// PurgeBefore deletes audit rows older than the cutoff. This is the only
// sanctioned delete on the table; nothing inside the retention window is
// ever touched. No scheduler here — the caller decides when to run it.
func PurgeBefore(db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.Where("created_at < ?", cutoff).Delete(&model.AuditLog{})
	return res.RowsAffected, res.Error
}
