package oddsmath

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidOdds is returned for odds values outside the American-odds domain.
// American odds are never exactly zero.
var ErrInvalidOdds = errors.New("invalid american odds")

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// ToDecimalMultiplier converts American odds to a decimal multiplier: the total
// return per unit staked, stake included.
// American +150 → 2.50
// American -150 → 1.6667
func ToDecimalMultiplier(odds decimal.Decimal) (decimal.Decimal, error) {
	if odds.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: cannot be 0", ErrInvalidOdds)
	}

	if odds.IsPositive() {
		// Underdog price: profit per 100 staked.
		return one.Add(odds.Div(hundred)), nil
	}

	// Favorite price: stake required per 100 profit.
	return one.Add(hundred.Div(odds.Abs())), nil
}
