package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	auditModel "github.com/beerappa88/University-Finance-Application/internals/features/audit/model"
	auditService "github.com/beerappa88/University-Finance-Application/internals/features/audit/service"
	collegeModel "github.com/beerappa88/University-Finance-Application/internals/features/colleges/model"
	model "github.com/beerappa88/University-Finance-Application/internals/features/finance/records/model"
	userModel "github.com/beerappa88/University-Finance-Application/internals/features/users/user/model"
	"github.com/beerappa88/University-Finance-Application/internals/helpers/errs"
)

var testSettings = Settings{LateFeePercentage: 0.05, GracePeriodDays: 7}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&collegeModel.College{},
		&userModel.User{},
		&userModel.Role{},
		&userModel.Permission{},
		&model.FinancialRecord{},
		&auditModel.AuditLog{},
	))
	return db
}

type fixture struct {
	db      *gorm.DB
	college *collegeModel.College
	user    *userModel.User
	actor   auditService.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := openTestDB(t)

	college := &collegeModel.College{Name: "IIT Goa", Code: "IITG", IsActive: true}
	require.NoError(t, db.Create(college).Error)

	user := &userModel.User{
		CollegeID: college.ID,
		Email:     "student@example.edu",
		Username:  "student",
		Password:  "hash",
		FirstName: "Stu",
		LastName:  "Dent",
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)

	admin := &userModel.User{
		CollegeID: college.ID,
		Email:     "admin@example.edu",
		Username:  "admin",
		Password:  "hash",
		FirstName: "Ad",
		LastName:  "Min",
		IsActive:  true,
	}
	require.NoError(t, db.Create(admin).Error)

	return &fixture{
		db:      db,
		college: college,
		user:    user,
		actor:   auditService.Actor{UserID: admin.ID},
	}
}

func (f *fixture) createRecord(t *testing.T, dueDate time.Time) *model.FinancialRecord {
	t.Helper()
	rec := &model.FinancialRecord{
		FinancialRecordCollegeID:    f.college.ID,
		FinancialRecordUserID:       f.user.ID,
		FinancialRecordType:         model.TransactionCollegeFee,
		FinancialRecordAmount:       1000,
		FinancialRecordDueDate:      dueDate,
		FinancialRecordAcademicYear: "2026-27",
		FinancialRecordIsActive:     true,
	}
	require.NoError(t, Create(f.db, rec, f.actor))
	return rec
}

func (f *fixture) auditCount(t *testing.T, recID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&auditModel.AuditLog{}).
		Where("financial_record_id = ?", recID).Count(&n).Error)
	return n
}

func TestCreateStartsPendingAndAudits(t *testing.T) {
	f := newFixture(t)
	rec := f.createRecord(t, time.Now().AddDate(0, 0, 30))

	require.Equal(t, model.StatusPending, rec.FinancialRecordStatus)
	require.Zero(t, rec.FinancialRecordLateFee)
	require.EqualValues(t, 1, f.auditCount(t, rec.FinancialRecordID))

	var row auditModel.AuditLog
	require.NoError(t, f.db.First(&row, "financial_record_id = ?", rec.FinancialRecordID).Error)
	require.Equal(t, ActionCreated, row.Action)
	require.Equal(t, f.actor.UserID, row.UserID)
	require.NotEmpty(t, row.NewValues)
}

func TestCreateRejectsCrossTenantUser(t *testing.T) {
	f := newFixture(t)

	other := &collegeModel.College{Name: "NIT Surat", Code: "NITS", IsActive: true}
	require.NoError(t, f.db.Create(other).Error)

	rec := &model.FinancialRecord{
		FinancialRecordCollegeID:    other.ID,
		FinancialRecordUserID:       f.user.ID,
		FinancialRecordType:         model.TransactionHostelRent,
		FinancialRecordAmount:       500,
		FinancialRecordDueDate:      time.Now().AddDate(0, 0, 30),
		FinancialRecordAcademicYear: "2026-27",
	}
	err := Create(f.db, rec, f.actor)
	require.True(t, errs.IsKind(err, errs.KindTenantMismatch))

	// nothing persisted, nothing audited
	var n int64
	require.NoError(t, f.db.Model(&model.FinancialRecord{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestCreateRejectsBadInput(t *testing.T) {
	f := newFixture(t)

	rec := &model.FinancialRecord{
		FinancialRecordCollegeID:    f.college.ID,
		FinancialRecordUserID:       f.user.ID,
		FinancialRecordType:         "parking_fine",
		FinancialRecordAmount:       100,
		FinancialRecordDueDate:      time.Now(),
		FinancialRecordAcademicYear: "2026-27",
	}
	require.True(t, errs.IsKind(Create(f.db, rec, f.actor), errs.KindValidation))

	rec.FinancialRecordType = model.TransactionCollegeFee
	rec.FinancialRecordAmount = 0
	require.True(t, errs.IsKind(Create(f.db, rec, f.actor), errs.KindValidation))
}

func TestCreateReferenceNumberConflict(t *testing.T) {
	f := newFixture(t)
	ref := "TXN-001"

	first := &model.FinancialRecord{
		FinancialRecordCollegeID:       f.college.ID,
		FinancialRecordUserID:          f.user.ID,
		FinancialRecordType:            model.TransactionCollegeFee,
		FinancialRecordAmount:          100,
		FinancialRecordDueDate:         time.Now().AddDate(0, 0, 30),
		FinancialRecordReferenceNumber: &ref,
		FinancialRecordAcademicYear:    "2026-27",
	}
	require.NoError(t, Create(f.db, first, f.actor))

	second := &model.FinancialRecord{
		FinancialRecordCollegeID:       f.college.ID,
		FinancialRecordUserID:          f.user.ID,
		FinancialRecordType:            model.TransactionMessDues,
		FinancialRecordAmount:          200,
		FinancialRecordDueDate:         time.Now().AddDate(0, 0, 30),
		FinancialRecordReferenceNumber: &ref,
		FinancialRecordAcademicYear:    "2026-27",
	}
	err := Create(f.db, second, f.actor)
	require.True(t, errs.IsKind(err, errs.KindUniquenessConflict))
}

func TestPayPendingRecord(t *testing.T) {
	f := newFixture(t)
	rec := f.createRecord(t, time.Now().AddDate(0, 0, 30))

	paidAt := time.Now()
	ref := "TXN-PAY-1"
	out, err := Pay(f.db, rec.FinancialRecordID, model.PaymentUPI, &ref, paidAt, f.actor)
	require.NoError(t, err)
	require.Equal(t, model.StatusPaid, out.FinancialRecordStatus)
	require.NotNil(t, out.FinancialRecordPaidDate)
	require.Equal(t, model.PaymentUPI, *out.FinancialRecordPaymentMethod)
	require.Equal(t, ref, *out.FinancialRecordReferenceNumber)

	// create + pay
	require.EqualValues(t, 2, f.auditCount(t, rec.FinancialRecordID))
}

func TestPayOverdueKeepsLateFee(t *testing.T) {
	f := newFixture(t)
	rec := f.createRecord(t, time.Now().AddDate(0, 0, -30))

	_, changed, err := MarkOverdue(f.db, rec.FinancialRecordID, time.Now(), testSettings, f.actor)
	require.NoError(t, err)
	require.True(t, changed)

	out, err := Pay(f.db, rec.FinancialRecordID, model.PaymentCash, nil, time.Now(), f.actor)
	require.NoError(t, err)
	require.Equal(t, model.StatusPaid, out.FinancialRecordStatus)
	require.InDelta(t, 50.0, out.FinancialRecordLateFee, 1e-9)

	// create + overdue + pay
	require.EqualValues(t, 3, f.auditCount(t, rec.FinancialRecordID))
}

func TestPayTerminalRecordFails(t *testing.T) {
	f := newFixture(t)
	rec := f.createRecord(t, time.Now().AddDate(0, 0, 30))

	_, err := Cancel(f.db, rec.FinancialRecordID, f.actor)
	require.NoError(t, err)

	_, err = Pay(f.db, rec.FinancialRecordID, model.PaymentCash, nil, time.Now(), f.actor)
	require.True(t, errs.IsKind(err, errs.KindInvalidTransition))

	// failed transition must not change state or add audit rows
	var got model.FinancialRecord
	require.NoError(t, f.db.First(&got, "financial_record_id = ?", rec.FinancialRecordID).Error)
	require.Equal(t, model.StatusCancelled, got.FinancialRecordStatus)
	require.EqualValues(t, 2, f.auditCount(t, rec.FinancialRecordID))
}

func TestMarkOverdueInsideGraceIsNoop(t *testing.T) {
	f := newFixture(t)
	due := time.Now().AddDate(0, 0, -3)
	rec := f.createRecord(t, due)

	out, changed, err := MarkOverdue(f.db, rec.FinancialRecordID, time.Now(), testSettings, f.actor)
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, model.StatusPending, out.FinancialRecordStatus)
	require.Zero(t, out.FinancialRecordLateFee)
	require.EqualValues(t, 1, f.auditCount(t, rec.FinancialRecordID))
}

func TestMarkOverdueAppliesFlatLateFeeOnce(t *testing.T) {
	f := newFixture(t)
	rec := f.createRecord(t, time.Now().AddDate(0, 0, -30))

	out, changed, err := MarkOverdue(f.db, rec.FinancialRecordID, time.Now(), testSettings, f.actor)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, model.StatusOverdue, out.FinancialRecordStatus)
	require.InDelta(t, 50.0, out.FinancialRecordLateFee, 1e-9)

	// second pass is a no-op, the fee does not compound
	out, changed, err = MarkOverdue(f.db, rec.FinancialRecordID, time.Now(), testSettings, f.actor)
	require.NoError(t, err)
	require.False(t, changed)
	require.InDelta(t, 50.0, out.FinancialRecordLateFee, 1e-9)
	require.EqualValues(t, 2, f.auditCount(t, rec.FinancialRecordID))
}

func TestSweepOverdue(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	past1 := f.createRecord(t, now.AddDate(0, 0, -30))
	past2 := f.createRecord(t, now.AddDate(0, 0, -10))
	inGrace := f.createRecord(t, now.AddDate(0, 0, -2))
	future := f.createRecord(t, now.AddDate(0, 0, 30))

	// a paid record past its due date must not be swept
	paid := f.createRecord(t, now.AddDate(0, 0, -30))
	_, err := Pay(f.db, paid.FinancialRecordID, model.PaymentCard, nil, now, f.actor)
	require.NoError(t, err)

	n, err := SweepOverdue(f.db, f.college.ID, now, testSettings, f.actor)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	for id, want := range map[uuid.UUID]model.TransactionStatus{
		past1.FinancialRecordID:   model.StatusOverdue,
		past2.FinancialRecordID:   model.StatusOverdue,
		inGrace.FinancialRecordID: model.StatusPending,
		future.FinancialRecordID:  model.StatusPending,
		paid.FinancialRecordID:    model.StatusPaid,
	} {
		var got model.FinancialRecord
		require.NoError(t, f.db.First(&got, "financial_record_id = ?", id).Error)
		require.Equal(t, want, got.FinancialRecordStatus)
	}
}

func TestRefundRequiresPaid(t *testing.T) {
	f := newFixture(t)
	rec := f.createRecord(t, time.Now().AddDate(0, 0, 30))

	_, err := Refund(f.db, rec.FinancialRecordID, f.actor)
	require.True(t, errs.IsKind(err, errs.KindInvalidTransition))

	_, err = Pay(f.db, rec.FinancialRecordID, model.PaymentCash, nil, time.Now(), f.actor)
	require.NoError(t, err)

	out, err := Refund(f.db, rec.FinancialRecordID, f.actor)
	require.NoError(t, err)
	require.Equal(t, model.StatusRefunded, out.FinancialRecordStatus)

	// refunded is terminal
	_, err = Cancel(f.db, rec.FinancialRecordID, f.actor)
	require.True(t, errs.IsKind(err, errs.KindInvalidTransition))
}

func TestWriteOffLateFee(t *testing.T) {
	f := newFixture(t)
	rec := f.createRecord(t, time.Now().AddDate(0, 0, -30))

	// nothing accrued yet
	_, err := WriteOffLateFee(f.db, rec.FinancialRecordID, f.actor)
	require.True(t, errs.IsKind(err, errs.KindValidation))

	_, _, err = MarkOverdue(f.db, rec.FinancialRecordID, time.Now(), testSettings, f.actor)
	require.NoError(t, err)

	out, err := WriteOffLateFee(f.db, rec.FinancialRecordID, f.actor)
	require.NoError(t, err)
	require.Zero(t, out.FinancialRecordLateFee)
	require.Equal(t, model.StatusOverdue, out.FinancialRecordStatus)

	// create + overdue + write-off
	require.EqualValues(t, 3, f.auditCount(t, rec.FinancialRecordID))
}

func TestWriteOffRefusesTerminalRecords(t *testing.T) {
	f := newFixture(t)
	rec := f.createRecord(t, time.Now().AddDate(0, 0, 30))

	_, err := Cancel(f.db, rec.FinancialRecordID, f.actor)
	require.NoError(t, err)

	_, err = WriteOffLateFee(f.db, rec.FinancialRecordID, f.actor)
	require.True(t, errs.IsKind(err, errs.KindValidation))
}

func TestNotFoundRecord(t *testing.T) {
	f := newFixture(t)

	_, err := Pay(f.db, uuid.New(), model.PaymentCash, nil, time.Now(), f.actor)
	require.True(t, errs.IsKind(err, errs.KindNotFound))

	_, _, err = MarkOverdue(f.db, uuid.New(), time.Now(), testSettings, f.actor)
	require.True(t, errs.IsKind(err, errs.KindNotFound))
}
