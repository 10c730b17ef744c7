// file: internals/features/finance/records/service/lifecycle_service.go
//
// Every state transition runs inside one transaction: lock the row, check
// legality, mutate, write exactly one audit entry. Either all of it
// commits or none of it does.
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	auditService "github.com/beerappa88/University-Finance-Application/internals/features/audit/service"
	model "github.com/beerappa88/University-Finance-Application/internals/features/finance/records/model"
	userModel "github.com/beerappa88/University-Finance-Application/internals/features/users/user/model"
	"github.com/beerappa88/University-Finance-Application/internals/helpers/errs"
)

// Audit action names
const (
	ActionCreated           = "financial_record.created"
	ActionPaid              = "financial_record.paid"
	ActionMarkedOverdue     = "financial_record.marked_overdue"
	ActionCancelled         = "financial_record.cancelled"
	ActionRefunded          = "financial_record.refunded"
	ActionLateFeeWrittenOff = "financial_record.late_fee_written_off"
)

// Settings carries the deployment tunables the lifecycle depends on.
type Settings struct {
	LateFeePercentage float64
	GracePeriodDays   int
}

// lockForUpdate serializes concurrent transitions on the same row.
// SQLite (tests) serializes writes on its own and rejects FOR UPDATE.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func loadLocked(tx *gorm.DB, id uuid.UUID) (*model.FinancialRecord, error) {
	var rec model.FinancialRecord
	err := lockForUpdate(tx).First(&rec, "financial_record_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("financial record not found")
		}
		return nil, err
	}
	return &rec, nil
}

/* =========================
   Create
   ========================= */

// Create validates tenant consistency and reference-number uniqueness,
// persists the record (status pending) and audits the creation.
func Create(db *gorm.DB, rec *model.FinancialRecord, actor auditService.Actor) error {
	if !rec.FinancialRecordType.Valid() {
		return errs.Validation("unknown transaction type %q", rec.FinancialRecordType)
	}
	if rec.FinancialRecordAmount <= 0 {
		return errs.Validation("amount must be positive")
	}

	// the billed user must belong to the record's college
	var user userModel.User
	if err := db.First(&user, "id = ?", rec.FinancialRecordUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("user not found")
		}
		return err
	}
	if user.CollegeID != rec.FinancialRecordCollegeID {
		return errs.TenantMismatch("user belongs to a different college than the record")
	}

	if rec.FinancialRecordReferenceNumber != nil {
		var count int64
		if err := db.Model(&model.FinancialRecord{}).
			Where("financial_record_reference_number = ?", *rec.FinancialRecordReferenceNumber).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errs.Conflict("reference_number already in use")
		}
	}

	rec.FinancialRecordStatus = model.StatusPending
	rec.FinancialRecordLateFee = 0

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		return auditService.Record(tx, actor, &rec.FinancialRecordID, ActionCreated, nil, rec.Snapshot())
	})
}

/* =========================
   Pay
   ========================= */

// Pay moves pending or overdue to paid at the given timestamp. An accrued
// late fee is preserved, not waived — write-off is a separate, audited op.
func Pay(db *gorm.DB, id uuid.UUID, method model.PaymentMethod, referenceNumber *string, paidAt time.Time, actor auditService.Actor) (*model.FinancialRecord, error) {
	if !method.Valid() {
		return nil, errs.Validation("unknown payment method %q", method)
	}

	var out *model.FinancialRecord
	err := db.Transaction(func(tx *gorm.DB) error {
		rec, err := loadLocked(tx, id)
		if err != nil {
			return err
		}
		if !model.CanTransition(rec.FinancialRecordStatus, model.StatusPaid) {
			return errs.InvalidTransition(string(rec.FinancialRecordStatus), string(model.StatusPaid))
		}

		if referenceNumber != nil {
			var count int64
			if err := tx.Model(&model.FinancialRecord{}).
				Where("financial_record_reference_number = ? AND financial_record_id <> ?", *referenceNumber, id).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return errs.Conflict("reference_number already in use")
			}
		}

		old := rec.Snapshot()
		rec.FinancialRecordStatus = model.StatusPaid
		rec.FinancialRecordPaidDate = &paidAt
		rec.FinancialRecordPaymentMethod = &method
		if referenceNumber != nil {
			rec.FinancialRecordReferenceNumber = referenceNumber
		}

		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		if err := auditService.Record(tx, actor, &rec.FinancialRecordID, ActionPaid, old, rec.Snapshot()); err != nil {
			return err
		}
		out = rec
		return nil
	})
	return out, err
}

/* =========================
   Mark overdue (time-driven)
   ========================= */

// MarkOverdue applies the automatic pending→overdue transition for one
// record, observed at `now`. Inside the grace window it is a no-op
// returning the record unchanged. The late fee is a single flat charge.
func MarkOverdue(db *gorm.DB, id uuid.UUID, now time.Time, cfg Settings, actor auditService.Actor) (*model.FinancialRecord, bool, error) {
	var out *model.FinancialRecord
	changed := false
	err := db.Transaction(func(tx *gorm.DB) error {
		rec, err := loadLocked(tx, id)
		if err != nil {
			return err
		}
		out = rec

		if rec.FinancialRecordStatus != model.StatusPending || rec.FinancialRecordPaidDate != nil {
			return nil
		}
		if !model.OverdueEligible(now, rec.FinancialRecordDueDate, cfg.GracePeriodDays) {
			return nil
		}

		old := rec.Snapshot()
		rec.FinancialRecordStatus = model.StatusOverdue
		rec.FinancialRecordLateFee = model.ComputeLateFee(rec.FinancialRecordAmount, cfg.LateFeePercentage)

		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		if err := auditService.Record(tx, actor, &rec.FinancialRecordID, ActionMarkedOverdue, old, rec.Snapshot()); err != nil {
			return err
		}
		changed = true
		return nil
	})
	return out, changed, err
}

// SweepOverdue applies MarkOverdue to every eligible pending record of a
// college. Returns how many records transitioned.
func SweepOverdue(db *gorm.DB, collegeID uuid.UUID, now time.Time, cfg Settings, actor auditService.Actor) (int, error) {
	cutoff := now.AddDate(0, 0, -cfg.GracePeriodDays)

	var ids []uuid.UUID
	if err := db.Model(&model.FinancialRecord{}).
		Where("financial_record_college_id = ?", collegeID).
		Where("financial_record_status = ?", model.StatusPending).
		Where("financial_record_paid_date IS NULL").
		Where("financial_record_due_date < ?", cutoff).
		Pluck("financial_record_id", &ids).Error; err != nil {
		return 0, err
	}

	n := 0
	for _, id := range ids {
		// per-record transaction keeps one failure from blocking the rest
		if _, changed, err := MarkOverdue(db, id, now, cfg, actor); err != nil {
			return n, err
		} else if changed {
			n++
		}
	}
	return n, nil
}

/* =========================
   Cancel / Refund
   ========================= */

func Cancel(db *gorm.DB, id uuid.UUID, actor auditService.Actor) (*model.FinancialRecord, error) {
	return transition(db, id, model.StatusCancelled, ActionCancelled, actor)
}

func Refund(db *gorm.DB, id uuid.UUID, actor auditService.Actor) (*model.FinancialRecord, error) {
	return transition(db, id, model.StatusRefunded, ActionRefunded, actor)
}

func transition(db *gorm.DB, id uuid.UUID, to model.TransactionStatus, action string, actor auditService.Actor) (*model.FinancialRecord, error) {
	var out *model.FinancialRecord
	err := db.Transaction(func(tx *gorm.DB) error {
		rec, err := loadLocked(tx, id)
		if err != nil {
			return err
		}
		if !model.CanTransition(rec.FinancialRecordStatus, to) {
			return errs.InvalidTransition(string(rec.FinancialRecordStatus), string(to))
		}

		old := rec.Snapshot()
		rec.FinancialRecordStatus = to

		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		if err := auditService.Record(tx, actor, &rec.FinancialRecordID, action, old, rec.Snapshot()); err != nil {
			return err
		}
		out = rec
		return nil
	})
	return out, err
}

/* =========================
   Write off late fee
   ========================= */

// WriteOffLateFee zeroes an accrued late fee. The permission check happens
// at the boundary; here we only refuse pointless or terminal cases.
func WriteOffLateFee(db *gorm.DB, id uuid.UUID, actor auditService.Actor) (*model.FinancialRecord, error) {
	var out *model.FinancialRecord
	err := db.Transaction(func(tx *gorm.DB) error {
		rec, err := loadLocked(tx, id)
		if err != nil {
			return err
		}
		if rec.FinancialRecordStatus == model.StatusCancelled || rec.FinancialRecordStatus == model.StatusRefunded {
			return errs.Validation("cannot write off a %s record", rec.FinancialRecordStatus)
		}
		if rec.FinancialRecordLateFee == 0 {
			return errs.Validation("no late fee to write off")
		}

		old := rec.Snapshot()
		rec.FinancialRecordLateFee = 0

		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		if err := auditService.Record(tx, actor, &rec.FinancialRecordID, ActionLateFeeWrittenOff, old, rec.Snapshot()); err != nil {
			return err
		}
		out = rec
		return nil
	})
	return out, err
}
