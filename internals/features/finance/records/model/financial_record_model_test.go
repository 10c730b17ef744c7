package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]TransactionStatus]bool{
		{StatusPending, StatusPaid}:      true,
		{StatusPending, StatusOverdue}:   true,
		{StatusPending, StatusCancelled}: true,
		{StatusOverdue, StatusPaid}:      true,
		{StatusOverdue, StatusCancelled}: true,
		{StatusPaid, StatusRefunded}:     true,
	}

	all := []TransactionStatus{StatusPending, StatusPaid, StatusOverdue, StatusCancelled, StatusRefunded}
	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]TransactionStatus{from, to}]
			assert.Equalf(t, want, CanTransition(from, to), "%s → %s", from, to)
		}
	}
}

func TestCanTransitionTerminalStates(t *testing.T) {
	all := []TransactionStatus{StatusPending, StatusPaid, StatusOverdue, StatusCancelled, StatusRefunded}
	for _, to := range all {
		assert.False(t, CanTransition(StatusCancelled, to), "cancelled must be terminal")
		assert.False(t, CanTransition(StatusRefunded, to), "refunded must be terminal")
	}
}

func TestOverdueEligibleGraceWindow(t *testing.T) {
	due := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	grace := 7

	// D+6: still inside the grace window
	assert.False(t, OverdueEligible(due.AddDate(0, 0, 6), due, grace))
	// exactly D+7: boundary, still not eligible
	assert.False(t, OverdueEligible(due.AddDate(0, 0, 7), due, grace))
	// D+8: past the window
	assert.True(t, OverdueEligible(due.AddDate(0, 0, 8), due, grace))
}

func TestComputeLateFee(t *testing.T) {
	assert.InDelta(t, 50.0, ComputeLateFee(1000, 0.05), 1e-9)
	assert.InDelta(t, 0.0, ComputeLateFee(0, 0.05), 1e-9)
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, TransactionCollegeFee.Valid())
	assert.True(t, StatusRefunded.Valid())
	assert.True(t, PaymentUPI.Valid())

	assert.False(t, TransactionType("parking_fee").Valid())
	assert.False(t, TransactionStatus("archived").Valid())
	assert.False(t, PaymentMethod("crypto").Valid())
}
