package result

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Percentage formats correct/total as a percentage with at most one decimal
// place: "0%", "50%", "33.3%". A zero total yields "0%".
func Percentage(correct, total int) string {
	if total <= 0 || correct <= 0 {
		return "0%"
	}
	p := decimal.NewFromInt(int64(correct)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(total)), 1)
	return p.String() + "%"
}

// Fraction is the "correct/total" label shown next to the percentage.
func Fraction(correct, total int) string {
	return strconv.Itoa(correct) + "/" + strconv.Itoa(total)
}
