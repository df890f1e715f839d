package domain

import "github.com/shopspring/decimal"

// Concession is a discount rule. Rules sharing a title form one named scheme
// (e.g. "Sibling Discount") with one row per fee type; each row is either a
// percentage of the payable amount or a flat value capped at the payable amount.
type Concession struct {
	ConcessionID string          `json:"concessionID"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Branch       string          `json:"branch"` // specific branch name or BranchAll
	Location     string          `json:"location"`
	AcademicYear string          `json:"academicYear"`
	FeeTypeID    string          `json:"feeTypeID"`
	Value        decimal.Decimal `json:"value"`
	IsPercentage bool            `json:"isPercentage"`
	AuditFields
}

// AmountFor computes the concession delta for a payable amount. Flat values never
// exceed the payable amount.
func (c Concession) AmountFor(payable decimal.Decimal) decimal.Decimal {
	if c.IsPercentage {
		return payable.Mul(c.Value).Div(decimal.NewFromInt(100))
	}
	if c.Value.GreaterThan(payable) {
		return payable
	}
	return c.Value
}
