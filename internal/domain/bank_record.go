package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankRecord represents one settled fuel-card transaction from the bank
// settlement export. TotalAmount is the amount reconciled against the book
// ledger; the remaining amount fields are carried for reporting only.
type BankRecord struct {
	AccountNo          string
	SettlementDate     string
	TransactionDate    string
	Time               string
	InvoiceNumber      string
	Product            string
	Liter              decimal.Decimal
	Price              decimal.Decimal
	AmountBeforeVAT    decimal.Decimal
	VAT                decimal.Decimal
	TotalAmount        decimal.Decimal
	WHTOnePercent      decimal.Decimal
	TotalAmountAfterWD decimal.Decimal
	MerchantID         string
	FuelBrand          string
	RawDate            time.Time // transaction date at calendar-day resolution
}
