package models

import "github.com/shopspring/decimal"

// Concession maps to the concessions table. Rows sharing a title form one scheme.
type Concession struct {
	ConcessionID string          `json:"concessionID"` // Primary Key (UUID)
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Branch       string          `json:"branch"`
	Location     string          `json:"location"`
	AcademicYear string          `json:"academicYear"`
	FeeTypeID    string          `json:"feeTypeID"`
	Value        decimal.Decimal `json:"value"`
	IsPercentage bool            `json:"isPercentage"`
	AuditFields
}
