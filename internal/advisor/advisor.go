// Package advisor post-processes reconciliation results, proposing at most
// one best-confidence explanatory fix per variance or book orphan. Fixes
// are advisory hypotheses with a confidence score, never authoritative, and
// the advisor never changes a result's status.
package advisor

import (
	"fmt"

	"github.com/fleetfuel/reconciliation-engine/internal/domain"
)

// Heuristic confidence scores. A variance already has its counterpart
// pinned down by the id match, so its hypotheses score higher than the
// cross-ledger scans run for book orphans.
const (
	confVarianceTransposition = 90
	confVarianceScaling       = 85
	confOrphanIDTypo          = 85
	confOrphanScaling         = 80
	confOrphanTransposition   = 75
)

// orphanDateWindowDays bounds how far apart a book posting and a bank
// candidate may be for the amount heuristics to apply.
const orphanDateWindowDays = 2

// Advisor proposes smart fixes for flagged reconciliation results.
type Advisor struct{}

// NewAdvisor creates a new Advisor.
func NewAdvisor() *Advisor {
	return &Advisor{}
}

// Advise returns a new result sequence in which VARIANCE and UNMATCHED_BOOK
// entries may carry a SmartFix; every other entry passes through unchanged.
// unmatchedBank is the candidate pool for book orphans and must be captured
// once, before any fix is attached, so every book record sees the same pool.
// An empty pool yields no fixes.
func (a *Advisor) Advise(results []domain.ReconResult, unmatchedBank []domain.BankRecord) []domain.ReconResult {
	out := make([]domain.ReconResult, len(results))

	for i, res := range results {
		out[i] = res

		if res.BookRecord == nil {
			continue
		}

		var fix *domain.SmartFix
		switch res.Status {
		case domain.StatusVariance:
			fix = a.varianceFix(res)
		case domain.StatusUnmatchedBook:
			fix = a.orphanFix(res.BookRecord, unmatchedBank)
		default:
			continue
		}

		if fix != nil {
			out[i].SmartFix = fix
		}
	}

	return out
}

// varianceFix explains a pair already linked by the id match but disagreeing
// on amount. Transposition is checked first; the first satisfied test wins.
func (a *Advisor) varianceFix(res domain.ReconResult) *domain.SmartFix {
	if res.BankRecord == nil {
		return nil
	}

	bankAmt := res.BankRecord.TotalAmount
	bookAmt := res.BookRecord.Amount

	if isPotentialTransposition(bankAmt, bookAmt) {
		return &domain.SmartFix{
			Type:            domain.FixTransposedDigits,
			Message:         fmt.Sprintf("Possible transposed digits. Correct amount likely %s.", bankAmt.StringFixed(2)),
			Confidence:      confVarianceTransposition,
			SuggestedRecord: res.BankRecord,
		}
	}

	if isScalingError(bankAmt, bookAmt) {
		return &domain.SmartFix{
			Type:            domain.FixScalingError,
			Message:         "Possible decimal/scaling error.",
			Confidence:      confVarianceScaling,
			SuggestedRecord: res.BankRecord,
		}
	}

	return nil
}

// orphanFix scans the unmatched bank pool for the candidate that best
// explains a book orphan, keeping the single highest-confidence hypothesis.
// Ties go to the first candidate encountered in scan order.
func (a *Advisor) orphanFix(book *domain.BookRecord, candidates []domain.BankRecord) *domain.SmartFix {
	var best *domain.SmartFix

	for i := range candidates {
		fix := a.candidateFix(book, &candidates[i])
		if fix == nil {
			continue
		}
		if best == nil || fix.Confidence > best.Confidence {
			best = fix
		}
	}

	return best
}

// candidateFix evaluates one bank candidate against a book orphan. The
// checks are mutually exclusive and tried in order: id typo, transposition
// near the posting date, scaling near the posting date.
func (a *Advisor) candidateFix(book *domain.BookRecord, cand *domain.BankRecord) *domain.SmartFix {
	dist := levenshteinDistance(book.Description, cand.InvoiceNumber)
	maxDist := 1
	if len(book.Description) > 5 {
		maxDist = 2
	}

	switch {
	case dist > 0 && dist <= maxDist && domain.AmountsEqual(book.Amount, cand.TotalAmount):
		return &domain.SmartFix{
			Type:            domain.FixIDTypo,
			Message:         fmt.Sprintf("Typo in invoice id detected (found: %s).", cand.InvoiceNumber),
			Confidence:      confOrphanIDTypo,
			SuggestedRecord: cand,
		}

	case isPotentialTransposition(book.Amount, cand.TotalAmount) && withinDays(book.RawDate, cand.RawDate, orphanDateWindowDays):
		return &domain.SmartFix{
			Type:            domain.FixTransposedDigits,
			Message:         "Amount mismatch (transposed digits?) found near date.",
			Confidence:      confOrphanTransposition,
			SuggestedRecord: cand,
		}

	case isScalingError(cand.TotalAmount, book.Amount) && withinDays(book.RawDate, cand.RawDate, orphanDateWindowDays):
		return &domain.SmartFix{
			Type:            domain.FixScalingError,
			Message:         "Possible decimal point error.",
			Confidence:      confOrphanScaling,
			SuggestedRecord: cand,
		}
	}

	return nil
}
