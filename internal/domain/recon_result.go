package domain

import "github.com/shopspring/decimal"

// MatchStatus classifies the outcome of reconciling one record pair (or
// one leftover record).
type MatchStatus string

const (
	StatusMatched       MatchStatus = "MATCHED"
	StatusVariance      MatchStatus = "VARIANCE" // matched on id but amounts differ
	StatusUnmatchedBank MatchStatus = "UNMATCHED_BANK"
	StatusUnmatchedBook MatchStatus = "UNMATCHED_BOOK"
)

// FixType is a root-cause category for a discrepancy.
type FixType string

const (
	FixTransposedDigits FixType = "TRANSPOSED_DIGITS" // e.g. 54 vs 45
	FixScalingError     FixType = "SCALING_ERROR"     // e.g. 100 vs 1000
	FixIDTypo           FixType = "ID_TYPO"           // e.g. INV-01 vs INV-0l
	FixTimingDiff       FixType = "TIMING_DIFF"
	FixUnknown          FixType = "UNKNOWN"
)

// SmartFix is an advisory annotation proposing a likely explanation for a
// variance or orphan. It is never authoritative; Confidence runs 0-100.
// SuggestedRecord, when set, is the bank record proposed as the true
// counterpart of the book record.
type SmartFix struct {
	Type            FixType
	Message         string
	Confidence      int
	SuggestedRecord *BankRecord
}

// ReconResult is the unit of reconciliation output. At least one of
// BankRecord and BookRecord is always present: both for a matched pair or
// a variance, exactly one for an orphan. AmountDifference is signed
// book-minus-bank for variances and the full exposure for orphans.
type ReconResult struct {
	ID               string
	BankRecord       *BankRecord
	BookRecord       *BookRecord
	Status           MatchStatus
	AmountDifference decimal.Decimal
	Notes            string
	SmartFix         *SmartFix
}
