package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeStructure maps to the class_fee_structures table.
type FeeStructure struct {
	FeeStructureID    string          `json:"feeStructureID"` // Primary Key (UUID)
	ClassName         string          `json:"className"`
	FeeTypeID         string          `json:"feeTypeID"`
	FeeTypeName       string          `json:"feeTypeName"`
	AcademicYear      string          `json:"academicYear"`
	Branch            string          `json:"branch"`
	Location          string          `json:"location"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	MonthlyAmount     decimal.Decimal `json:"monthlyAmount"`
	InstallmentsCount int             `json:"installmentsCount"`
	IsNewAdmission    bool            `json:"isNewAdmission"`
	FeeGroup          string          `json:"feeGroup"`
	AuditFields
}

// FeeInstallment maps to the fee_installments table.
type FeeInstallment struct {
	FeeInstallmentID string    `json:"feeInstallmentID"` // Primary Key (UUID)
	InstallmentNo    int       `json:"installmentNo"`
	Title            string    `json:"title"`
	Branch           string    `json:"branch"`
	Location         string    `json:"location"`
	AcademicYear     string    `json:"academicYear"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	LastPayDate      time.Time `json:"lastPayDate"`
	FeeTypeID        string    `json:"feeTypeID"`
	AuditFields
}
