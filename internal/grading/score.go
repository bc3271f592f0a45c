package grading

import "github.com/shopspring/decimal"

const scorePlaces = 2

// Percent is correct/submitted*100 rounded half-up to two places. No answers
// scores zero.
func Percent(correct, submitted int) decimal.Decimal {
	if submitted <= 0 {
		return decimal.Zero.Round(scorePlaces)
	}
	return decimal.NewFromInt(int64(correct)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(submitted))).
		Round(scorePlaces)
}
