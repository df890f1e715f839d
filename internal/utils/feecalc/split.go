// Package feecalc holds the fee arithmetic shared by the assignment engine:
// installment splitting and fee title normalization.
package feecalc

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ten = decimal.NewFromInt(10)

// SplitTotal divides total across n chronological periods. Every period except the
// first receives base = floor(total/n) rounded down to the nearest 10; the first
// period absorbs the remainder. The returned amounts always sum exactly to total
// for total >= 0 and n >= 1, and all non-first amounts are multiples of 10.
func SplitTotal(total decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []decimal.Decimal{total}
	}

	base := total.Div(decimal.NewFromInt(int64(n))).Div(ten).Floor().Mul(ten)
	first := total.Sub(base.Mul(decimal.NewFromInt(int64(n - 1))))

	amounts := make([]decimal.Decimal, n)
	amounts[0] = first
	for i := 1; i < n; i++ {
		amounts[i] = base
	}
	return amounts
}

// NormalizeTitle canonicalizes a fee or installment title for matching: lowercase,
// drop a trailing " fee", fix the recurring "admisson" typo in source data, trim.
func NormalizeTitle(title string) string {
	if title == "" {
		return ""
	}
	t := strings.ToLower(title)
	t = strings.ReplaceAll(t, " fee", "")
	t = strings.ReplaceAll(t, "admisson", "admission")
	return strings.TrimSpace(t)
}
