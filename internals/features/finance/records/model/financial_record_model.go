// file: internals/features/finance/records/model/financial_record_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enums
   ========================= */

type TransactionType string

const (
	TransactionCollegeFee  TransactionType = "college_fee"
	TransactionHostelRent  TransactionType = "hostel_rent"
	TransactionMessDues    TransactionType = "mess_dues"
	TransactionLibraryDues TransactionType = "library_dues"
	TransactionScholarship TransactionType = "scholarship"
	TransactionRefund      TransactionType = "refund"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionCollegeFee, TransactionHostelRent, TransactionMessDues,
		TransactionLibraryDues, TransactionScholarship, TransactionRefund:
		return true
	}
	return false
}

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusPaid      TransactionStatus = "paid"
	StatusOverdue   TransactionStatus = "overdue"
	StatusCancelled TransactionStatus = "cancelled"
	StatusRefunded  TransactionStatus = "refunded"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentUPI          PaymentMethod = "upi"
	PaymentCheque       PaymentMethod = "cheque"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentBankTransfer, PaymentUPI, PaymentCheque:
		return true
	}
	return false
}

/* =========================
   Transition rules (pure)
   ========================= */

// CanTransition encodes the full lifecycle graph:
//
//	pending → paid | overdue | cancelled
//	overdue → paid | cancelled
//	paid    → refunded
//
// Everything else is illegal.
func CanTransition(from, to TransactionStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusPaid || to == StatusOverdue || to == StatusCancelled
	case StatusOverdue:
		return to == StatusPaid || to == StatusCancelled
	case StatusPaid:
		return to == StatusRefunded
	default:
		// cancelled and refunded are terminal
		return false
	}
}

// OverdueEligible reports whether a still-pending, unpaid record has passed
// its grace window. Inside due_date + graceDays nothing accrues.
func OverdueEligible(now, dueDate time.Time, graceDays int) bool {
	return now.After(dueDate.AddDate(0, 0, graceDays))
}

// ComputeLateFee is the flat, one-time charge applied on entering overdue.
func ComputeLateFee(amount, lateFeePercentage float64) float64 {
	return amount * lateFeePercentage
}

/* =========================
   Model: financial_records
   ========================= */

type FinancialRecord struct {
	FinancialRecordID uuid.UUID `json:"financial_record_id" gorm:"column:financial_record_id;type:uuid;primaryKey"`

	// tenant scope
	FinancialRecordCollegeID uuid.UUID `json:"financial_record_college_id" gorm:"column:financial_record_college_id;type:uuid;not null;index"`
	FinancialRecordUserID    uuid.UUID `json:"financial_record_user_id"    gorm:"column:financial_record_user_id;type:uuid;not null;index"`

	FinancialRecordType   TransactionType   `json:"financial_record_type"   gorm:"column:financial_record_type;type:varchar(20);not null"`
	FinancialRecordAmount float64           `json:"financial_record_amount" gorm:"column:financial_record_amount;type:numeric(10,2);not null"`
	FinancialRecordStatus TransactionStatus `json:"financial_record_status" gorm:"column:financial_record_status;type:varchar(20);not null;default:'pending'"`

	FinancialRecordDueDate  time.Time  `json:"financial_record_due_date"            gorm:"column:financial_record_due_date;not null"`
	FinancialRecordPaidDate *time.Time `json:"financial_record_paid_date,omitempty" gorm:"column:financial_record_paid_date"`

	FinancialRecordPaymentMethod   *PaymentMethod `json:"financial_record_payment_method,omitempty"   gorm:"column:financial_record_payment_method;type:varchar(20)"`
	FinancialRecordReferenceNumber *string        `json:"financial_record_reference_number,omitempty" gorm:"column:financial_record_reference_number;size:100;unique"`
	FinancialRecordDescription     *string        `json:"financial_record_description,omitempty"      gorm:"column:financial_record_description;type:text"`

	FinancialRecordLateFee float64 `json:"financial_record_late_fee" gorm:"column:financial_record_late_fee;type:numeric(10,2);not null;default:0"`

	FinancialRecordAcademicYear string  `json:"financial_record_academic_year"      gorm:"column:financial_record_academic_year;size:20;not null"`
	FinancialRecordSemester     *string `json:"financial_record_semester,omitempty" gorm:"column:financial_record_semester;size:20"`

	FinancialRecordCreatedBy *uuid.UUID `json:"financial_record_created_by,omitempty" gorm:"column:financial_record_created_by;type:uuid"`
	FinancialRecordIsActive  bool       `json:"financial_record_is_active"            gorm:"column:financial_record_is_active;not null;default:true"`
	FinancialRecordCreatedAt time.Time  `json:"financial_record_created_at"           gorm:"column:financial_record_created_at;autoCreateTime"`
	FinancialRecordUpdatedAt time.Time  `json:"financial_record_updated_at"           gorm:"column:financial_record_updated_at;autoUpdateTime"`
}

func (FinancialRecord) TableName() string {
	return "financial_records"
}

func (m *FinancialRecord) BeforeCreate(tx *gorm.DB) error {
	if m.FinancialRecordID == uuid.Nil {
		m.FinancialRecordID = uuid.New()
	}
	return nil
}

// Snapshot is the audit-trail view of the record: the mutable fields that
// old_values/new_values capture around a transition.
type Snapshot struct {
	Status        TransactionStatus `json:"status"`
	Amount        float64           `json:"amount"`
	LateFee       float64           `json:"late_fee"`
	PaidDate      *time.Time        `json:"paid_date,omitempty"`
	PaymentMethod *PaymentMethod    `json:"payment_method,omitempty"`
	ReferenceNo   *string           `json:"reference_number,omitempty"`
}

func (m *FinancialRecord) Snapshot() Snapshot {
	return Snapshot{
		Status:        m.FinancialRecordStatus,
		Amount:        m.FinancialRecordAmount,
		LateFee:       m.FinancialRecordLateFee,
		PaidDate:      m.FinancialRecordPaidDate,
		PaymentMethod: m.FinancialRecordPaymentMethod,
		ReferenceNo:   m.FinancialRecordReferenceNumber,
	}
}
