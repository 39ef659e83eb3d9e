package domain

import "github.com/shopspring/decimal"

// ReconSummary contains the aggregate counters for one reconciliation run.
// It is recomputed from the result set every run and holds no state of its
// own.
type ReconSummary struct {
	TotalBank           int // results carrying a bank record
	TotalBook           int // results carrying a book record
	MatchedCount        int
	VarianceCount       int
	UnmatchedBankCount  int
	UnmatchedBookCount  int
	MatchRate           float64 // percentage in [0, 100]
	TotalVarianceAmount decimal.Decimal
}
