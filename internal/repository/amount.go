package repository

import (
	"strings"

	"github.com/shopspring/decimal"
)

var amountCleaner = strings.NewReplacer(",", "", `"`, "", "'", "")

// parseAmount parses a currency string from a ledger export, tolerating
// thousands separators and stray quotes ("1,234.56" or '2080.00').
func parseAmount(value string) (decimal.Decimal, error) {
	clean := amountCleaner.Replace(strings.TrimSpace(value))
	if clean == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(clean)
}
