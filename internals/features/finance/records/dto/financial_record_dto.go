package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	model "github.com/beerappa88/University-Finance-Application/internals/features/finance/records/model"
)

var validate = validator.New()

/* =========================
   REQUEST: Create
   ========================= */

type CreateFinancialRecordRequest struct {
	FinancialRecordCollegeID uuid.UUID `json:"financial_record_college_id" validate:"required"`
	FinancialRecordUserID    uuid.UUID `json:"financial_record_user_id"    validate:"required"`

	FinancialRecordType   string  `json:"financial_record_type"   validate:"required,oneof=college_fee hostel_rent mess_dues library_dues scholarship refund"`
	FinancialRecordAmount float64 `json:"financial_record_amount" validate:"required,gt=0"`

	// "YYYY-MM-DD"
	FinancialRecordDueDate string `json:"financial_record_due_date" validate:"required,datetime=2006-01-02"`

	FinancialRecordReferenceNumber *string `json:"financial_record_reference_number" validate:"omitempty,max=100"`
	FinancialRecordDescription     *string `json:"financial_record_description"`

	FinancialRecordAcademicYear string  `json:"financial_record_academic_year" validate:"required,max=20"`
	FinancialRecordSemester     *string `json:"financial_record_semester" validate:"omitempty,max=20"`
}

func (r *CreateFinancialRecordRequest) Validate() error {
	return validate.Struct(r)
}

func (r *CreateFinancialRecordRequest) ToModel(createdBy *uuid.UUID) (*model.FinancialRecord, error) {
	due, err := time.Parse("2006-01-02", r.FinancialRecordDueDate)
	if err != nil {
		return nil, err
	}
	return &model.FinancialRecord{
		FinancialRecordCollegeID:       r.FinancialRecordCollegeID,
		FinancialRecordUserID:          r.FinancialRecordUserID,
		FinancialRecordType:            model.TransactionType(r.FinancialRecordType),
		FinancialRecordAmount:          r.FinancialRecordAmount,
		FinancialRecordDueDate:         due,
		FinancialRecordReferenceNumber: r.FinancialRecordReferenceNumber,
		FinancialRecordDescription:     r.FinancialRecordDescription,
		FinancialRecordAcademicYear:    r.FinancialRecordAcademicYear,
		FinancialRecordSemester:        r.FinancialRecordSemester,
		FinancialRecordCreatedBy:       createdBy,
		FinancialRecordIsActive:        true,
	}, nil
}

/* =========================
   REQUEST: Pay
   ========================= */

type PayFinancialRecordRequest struct {
	PaymentMethod   string  `json:"payment_method" validate:"required,oneof=cash card bank_transfer upi cheque"`
	ReferenceNumber *string `json:"reference_number" validate:"omitempty,max=100"`
}

func (r *PayFinancialRecordRequest) Validate() error {
	return validate.Struct(r)
}
