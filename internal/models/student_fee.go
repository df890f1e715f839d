package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeStatus indicates how much of an obligation has been settled.
type FeeStatus string

const (
	Pending FeeStatus = "Pending"
	Partial FeeStatus = "Partial"
	Paid    FeeStatus = "Paid"
)

// StudentFee maps to the student_fees table.
type StudentFee struct {
	FeeID        string          `json:"feeID"` // Primary Key (UUID)
	StudentID    string          `json:"studentID"`
	FeeTypeID    string          `json:"feeTypeID"`
	FeeTypeName  string          `json:"feeTypeName"`
	AcademicYear string          `json:"academicYear"`
	Period       string          `json:"period"`
	TotalFee     decimal.Decimal `json:"totalFee"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	Concession   decimal.Decimal `json:"concession"`
	DueAmount    decimal.Decimal `json:"dueAmount"`
	Status       FeeStatus       `json:"status"`
	DueDate      *time.Time      `json:"dueDate,omitempty"` // Nullable
	IsActive     bool            `json:"isActive"`
	AuditFields
}
