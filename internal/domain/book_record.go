package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookRecord represents one general-ledger posting from the book export.
// Description is free text that should echo the bank invoice number; it is
// the primary matching key. DocumentNo is an internal id and plays no part
// in matching.
type BookRecord struct {
	DocumentNo  string
	PostingDate string
	Description string
	Amount      decimal.Decimal
	RawDate     time.Time // posting date at calendar-day resolution
}
