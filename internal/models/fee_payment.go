package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeePayment maps to the fee_payments table. Rows are immutable once inserted
// except for the is_active flag flipped on reversal.
type FeePayment struct {
	PaymentID        string          `json:"paymentID"` // Primary Key (UUID)
	ReceiptNo        string          `json:"receiptNo"`
	Branch           string          `json:"branch"`
	Location         string          `json:"location"`
	AcademicYear     string          `json:"academicYear"`
	StudentID        string          `json:"studentID"`
	ClassName        string          `json:"className"`
	Section          string          `json:"section"`
	InstallmentName  string          `json:"installmentName"`
	FeeTypeName      string          `json:"feeTypeName"`
	GrossAmount      decimal.Decimal `json:"grossAmount"`
	ConcessionAmount decimal.Decimal `json:"concessionAmount"`
	NetPayable       decimal.Decimal `json:"netPayable"`
	AmountPaid       decimal.Decimal `json:"amountPaid"`
	DueAmount        decimal.Decimal `json:"dueAmount"`
	PaymentMode      string          `json:"paymentMode"`
	PaymentDate      time.Time       `json:"paymentDate"`
	Note             string          `json:"note"`
	CollectedBy      string          `json:"collectedBy"`
	CollectedByName  string          `json:"collectedByName"`
	IsActive         bool            `json:"isActive"`
	AuditFields
}
