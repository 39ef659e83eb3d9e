package domain

import "github.com/shopspring/decimal"

// AmountEpsilon is the currency minor-unit tolerance. Two amounts whose
// absolute difference is below it are considered equal.
var AmountEpsilon = decimal.NewFromFloat(0.01)

// AmountsEqual reports whether a and b are equal within AmountEpsilon.
func AmountsEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(AmountEpsilon)
}
