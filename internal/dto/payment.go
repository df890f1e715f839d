package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentAllocationRequest is one line of a payment: how much lands on one
// obligation. Amounts must be non-negative; at least one of amount/concession
// must be positive for the line to take effect.
type PaymentAllocationRequest struct {
	FeeID            string          `json:"feeID" binding:"required"`
	Amount           decimal.Decimal `json:"amount"`
	ConcessionAmount decimal.Decimal `json:"concessionAmount"`
}

// RecordPaymentRequest records one receipt covering one or more obligations.
type RecordPaymentRequest struct {
	StudentID    string                     `json:"studentID" binding:"required"`
	AcademicYear string                     `json:"academicYear" binding:"required"`
	Allocations  []PaymentAllocationRequest `json:"allocations" binding:"required,min=1"`
	PaymentMode  string                     `json:"paymentMode"`
	PaymentDate  string                     `json:"paymentDate"` // YYYY-MM-DD, defaults to today
	Note         string                     `json:"note"`
}

// PaymentReceiptResponse is returned after a successful payment.
type PaymentReceiptResponse struct {
	ReceiptNo       string          `json:"receiptNo"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	CollectedByName string          `json:"collectedByName"`
}

// PaymentHistoryItem is one ledger line in a student's payment history.
type PaymentHistoryItem struct {
	PaymentID        string          `json:"paymentID"`
	ReceiptNo        string          `json:"receiptNo"`
	AcademicYear     string          `json:"academicYear"`
	PaymentDate      time.Time       `json:"paymentDate"`
	FeeTypeName      string          `json:"feeTypeName"`
	InstallmentName  string          `json:"installmentName"`
	GrossAmount      decimal.Decimal `json:"grossAmount"`
	ConcessionAmount decimal.Decimal `json:"concessionAmount"`
	AmountPaid       decimal.Decimal `json:"amountPaid"`
	DueAmount        decimal.Decimal `json:"dueAmount"`
	PaymentMode      string          `json:"paymentMode"`
	CollectedByName  string          `json:"collectedByName"`
	IsActive         bool            `json:"isActive"`
}

// SequenceRequest identifies the counter scope for admission/receipt issuance.
type SequenceRequest struct {
	Branch       string `json:"branch" binding:"required"`
	AcademicYear string `json:"academicYear" binding:"required"`
}
