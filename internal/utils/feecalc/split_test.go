package feecalc_test

import (
	"testing"

	"github.com/schoolworks/fee_management_app/internal/utils/feecalc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestSplitTotal_ThreeInstallments(t *testing.T) {
	amounts := feecalc.SplitTotal(dec(1000), 3)

	require.Len(t, amounts, 3)
	assert.True(t, amounts[0].Equal(dec(340)), "first = %s", amounts[0])
	assert.True(t, amounts[1].Equal(dec(330)))
	assert.True(t, amounts[2].Equal(dec(330)))
}

func TestSplitTotal_SumsExactly(t *testing.T) {
	totals := []int64{0, 1, 9, 10, 999, 1000, 1205, 36000, 54321}
	for _, total := range totals {
		for n := 1; n <= 12; n++ {
			amounts := feecalc.SplitTotal(dec(total), n)
			require.Len(t, amounts, n)

			sum := decimal.Zero
			for _, a := range amounts {
				sum = sum.Add(a)
			}
			assert.True(t, sum.Equal(dec(total)), "total=%d n=%d sum=%s", total, n, sum)

			// Non-first amounts stay multiples of 10.
			for i := 1; i < n; i++ {
				assert.True(t, amounts[i].Mod(dec(10)).IsZero(), "total=%d n=%d i=%d amount=%s", total, n, i, amounts[i])
			}
		}
	}
}

func TestSplitTotal_SinglePeriodKeepsTotal(t *testing.T) {
	amounts := feecalc.SplitTotal(dec(1205), 1)
	require.Len(t, amounts, 1)
	assert.True(t, amounts[0].Equal(dec(1205)))
}

func TestSplitTotal_ZeroPeriods(t *testing.T) {
	assert.Nil(t, feecalc.SplitTotal(dec(1000), 0))
}

func TestNormalizeTitle(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"June Fee":      "june",
		"Tuition Fee":   "tuition",
		"Admisson Fee":  "admission",
		"  Term 1 Fee ": "term 1",
		"Transport":     "transport",
	}
	for in, want := range cases {
		assert.Equal(t, want, feecalc.NormalizeTitle(in), "input %q", in)
	}
}
