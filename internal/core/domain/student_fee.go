package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FeeStatus indicates how much of an obligation has been settled.
type FeeStatus string

const (
	StatusPending FeeStatus = "Pending"
	StatusPartial FeeStatus = "Partial"
	StatusPaid    FeeStatus = "Paid"
)

// PeriodOneTime labels obligations that are not split into installments.
const PeriodOneTime = "One-Time"

// PeriodMonthly labels obligations derived from a plain monthly amount with no
// installment definitions.
const PeriodMonthly = "Monthly"

// StudentFee is one payable line item for a student, fee type, academic year and
// period. Created once by the assignment engine, then mutated in place by the
// concession and payment engines. Never hard-deleted once PaidAmount > 0.
type StudentFee struct {
	FeeID        string          `json:"feeID"` // Primary Key (UUID)
	StudentID    string          `json:"studentID"`
	FeeTypeID    string          `json:"feeTypeID"`
	FeeTypeName  string          `json:"feeTypeName"`
	AcademicYear string          `json:"academicYear"`
	Period       string          `json:"period"` // installment title, month or "One-Time"
	TotalFee     decimal.Decimal `json:"totalFee"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	Concession   decimal.Decimal `json:"concession"`
	DueAmount    decimal.Decimal `json:"dueAmount"`
	Status       FeeStatus       `json:"status"`
	DueDate      *time.Time      `json:"dueDate,omitempty"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// Recalculate re-derives DueAmount and Status from the current amounts:
// due = max(0, total - paid - concession); Paid iff due <= 0, else Partial iff
// paid > 0, else Pending. Every mutation of a StudentFee must go through this.
func (f *StudentFee) Recalculate() {
	due := f.TotalFee.Sub(f.PaidAmount).Sub(f.Concession)
	if due.IsNegative() {
		due = decimal.Zero
	}
	f.DueAmount = due

	switch {
	case due.LessThanOrEqual(decimal.Zero):
		f.Status = StatusPaid
	case f.PaidAmount.GreaterThan(decimal.Zero):
		f.Status = StatusPartial
	default:
		f.Status = StatusPending
	}
}

// ApplyAllocation applies one payment line: the concession is granted first, then
// the payment amount, re-deriving due/status after each step. The amount must not
// exceed the due remaining after the concession.
func (f *StudentFee) ApplyAllocation(amount, concession decimal.Decimal) error {
	if concession.GreaterThan(decimal.Zero) {
		f.Concession = f.Concession.Add(concession)
		f.Recalculate()
	}
	if amount.GreaterThan(f.DueAmount) {
		return fmt.Errorf("amount %s exceeds due %s", amount.String(), f.DueAmount.String())
	}
	f.PaidAmount = f.PaidAmount.Add(amount)
	f.Recalculate()
	return nil
}

// ConcessionShortfall is the concession a closing ledger line must carry so that
// the obligation's active ledger lines sum to its concession. recorded is the
// concession those lines already carry.
func (f StudentFee) ConcessionShortfall(recorded decimal.Decimal) decimal.Decimal {
	short := f.Concession.Sub(recorded)
	if short.IsNegative() {
		return decimal.Zero
	}
	return short
}

// RewindAllocation undoes one ledger line's contribution on reversal. The paid
// amount must stay non-negative; the concession is clamped at zero because
// amendments may have lowered it since the payment.
func (f *StudentFee) RewindAllocation(amountPaid, concession decimal.Decimal) error {
	f.PaidAmount = f.PaidAmount.Sub(amountPaid)
	if f.PaidAmount.IsNegative() {
		return fmt.Errorf("reversal of %s would drive paid amount below zero", amountPaid.String())
	}
	f.Concession = f.Concession.Sub(concession)
	if f.Concession.IsNegative() {
		f.Concession = decimal.Zero
	}
	f.Recalculate()
	return nil
}
