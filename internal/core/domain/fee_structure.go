package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeStructure is a class-level fee template. Templates are authored externally and
// are never mutated by the ledger core; the assignment engine only reads them.
type FeeStructure struct {
	FeeStructureID    string          `json:"feeStructureID"`
	ClassName         string          `json:"className"`
	FeeTypeID         string          `json:"feeTypeID"`
	FeeTypeName       string          `json:"feeTypeName"`
	AcademicYear      string          `json:"academicYear"`
	Branch            string          `json:"branch"`   // specific branch name or BranchAll
	Location          string          `json:"location"` // location scope when Branch is "All"
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	MonthlyAmount     decimal.Decimal `json:"monthlyAmount"`
	InstallmentsCount int             `json:"installmentsCount"`
	IsNewAdmission    bool            `json:"isNewAdmission"` // applies only to newly admitted students
	FeeGroup          string          `json:"feeGroup"`
	AuditFields
}

// FeeInstallment is one chronological period definition a multi-period fee is split
// into. Definitions are scoped per branch (or "All") and academic year, and link to a
// fee type either explicitly by ID or implicitly by normalized title match.
type FeeInstallment struct {
	FeeInstallmentID string    `json:"feeInstallmentID"`
	InstallmentNo    int       `json:"installmentNo"`
	Title            string    `json:"title"`
	Branch           string    `json:"branch"`
	Location         string    `json:"location"`
	AcademicYear     string    `json:"academicYear"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	LastPayDate      time.Time `json:"lastPayDate"`
	FeeTypeID        string    `json:"feeTypeID"` // optional explicit link
	AuditFields
}
