package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Assignment outcome statuses. A skip is a logged no-op, not an error: bulk flows
// expect most students to be "not applicable" for most templates.
const (
	AssignStatusAssigned = "assigned"
	AssignStatusSkipped  = "skipped"
)

// AssignFeeRequest asks for one fee structure to be applied to one student.
type AssignFeeRequest struct {
	StudentID      string `json:"studentID" binding:"required"`
	FeeStructureID string `json:"feeStructureID" binding:"required"`
}

// AssignResult reports what a single assignment did.
type AssignResult struct {
	Status  string `json:"status"` // assigned or skipped
	Reason  string `json:"reason,omitempty"`
	Created int    `json:"created"` // obligations created
}

// AutoEnrollRequest enrolls a student into every fee structure of their class,
// year and branch.
type AutoEnrollRequest struct {
	StudentID      string `json:"studentID" binding:"required"`
	ClassName      string `json:"className" binding:"required"`
	AcademicYear   string `json:"academicYear" binding:"required"`
	IsNewAdmission bool   `json:"isNewAdmission"`
}

// AutoEnrollResult carries the created-obligation count plus any per-structure
// failures; failures never roll back work done for other structures.
type AutoEnrollResult struct {
	AssignedCount int      `json:"assignedCount"`
	SkippedCount  int      `json:"skippedCount"`
	Errors        []string `json:"errors,omitempty"`
}

// ApplyConcessionRequest applies a named concession scheme to selected obligations.
type ApplyConcessionRequest struct {
	StudentID    string   `json:"studentID" binding:"required"`
	Title        string   `json:"title" binding:"required"`
	AcademicYear string   `json:"academicYear" binding:"required"`
	FeeIDs       []string `json:"feeIDs" binding:"required,min=1"`
}

// SpecialFeeRequest assigns a one-off fee to a set of students.
type SpecialFeeRequest struct {
	StudentIDs   []string        `json:"studentIDs" binding:"required,min=1"`
	FeeTypeID    string          `json:"feeTypeID" binding:"required"`
	FeeTypeName  string          `json:"feeTypeName" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	AcademicYear string          `json:"academicYear" binding:"required"`
}

// SpecialFeeResult reports how many students received the fee and how many were
// skipped as duplicates.
type SpecialFeeResult struct {
	AssignedCount int `json:"assignedCount"`
	SkippedCount  int `json:"skippedCount"`
}

// UpdateStudentFeeRequest amends an obligation's total and concession.
type UpdateStudentFeeRequest struct {
	TotalFee   decimal.Decimal `json:"totalFee" binding:"required"`
	Concession decimal.Decimal `json:"concession"`
}

// StudentFeeDetail is one row of a student's fee schedule as shown on the
// collection screen, ordered by due date then installment number.
type StudentFeeDetail struct {
	Sr         int             `json:"sr"`
	FeeID      string          `json:"feeID"`
	Title      string          `json:"title"`
	Period     string          `json:"period"`
	Payable    decimal.Decimal `json:"payable"`
	PaidAmount decimal.Decimal `json:"paidAmount"`
	Concession decimal.Decimal `json:"concession"`
	DueAmount  decimal.Decimal `json:"dueAmount"`
	Status     string          `json:"status"`
	DueDate    *time.Time      `json:"dueDate,omitempty"`
}
