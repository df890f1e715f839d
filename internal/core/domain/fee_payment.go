package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeePayment is one immutable receipt line recording a payment transaction against
// a single obligation. Branch, location, class and section are stored as of payment
// time so historical receipts stay accurate after a student moves. Once created the
// row only ever changes through cancellation (IsActive = false) on reversal.
type FeePayment struct {
	PaymentID        string          `json:"paymentID"` // Primary Key (UUID)
	ReceiptNo        string          `json:"receiptNo"` // shared by all lines of one payment call
	Branch           string          `json:"branch"`
	Location         string          `json:"location"`
	AcademicYear     string          `json:"academicYear"`
	StudentID        string          `json:"studentID"`
	ClassName        string          `json:"className"`
	Section          string          `json:"section"`
	InstallmentName  string          `json:"installmentName"` // obligation period label
	FeeTypeName      string          `json:"feeTypeName"`
	GrossAmount      decimal.Decimal `json:"grossAmount"`
	ConcessionAmount decimal.Decimal `json:"concessionAmount"`
	NetPayable       decimal.Decimal `json:"netPayable"`
	AmountPaid       decimal.Decimal `json:"amountPaid"` // this transaction only
	DueAmount        decimal.Decimal `json:"dueAmount"`  // remaining due after this payment
	PaymentMode      string          `json:"paymentMode"`
	PaymentDate      time.Time       `json:"paymentDate"`
	Note             string          `json:"note"`
	CollectedBy      string          `json:"collectedBy"`
	CollectedByName  string          `json:"collectedByName"`
	IsActive         bool            `json:"isActive"`
	AuditFields
}

// PaymentAllocation is one line of a payment request: how much of the tendered
// amount (and how much new concession) lands on a specific obligation.
type PaymentAllocation struct {
	FeeID            string
	Amount           decimal.Decimal
	ConcessionAmount decimal.Decimal
}

// PaymentDetails carries the per-call payment metadata shared by all allocations.
type PaymentDetails struct {
	Mode            string
	Date            time.Time
	Note            string
	CollectedBy     string
	CollectedByName string
}

// PaymentResult is the outcome of a recorded payment.
type PaymentResult struct {
	ReceiptNo string
	TotalPaid decimal.Decimal
	Payments  []FeePayment
}
