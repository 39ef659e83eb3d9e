// Package summary reduces a reconciliation result set to the scalar
// counters reported to downstream collaborators.
package summary

import (
	"github.com/shopspring/decimal"

	"github.com/fleetfuel/reconciliation-engine/internal/domain"
)

// Aggregate computes the run summary from scratch. It is a pure reduction
// with no side effects; orphan exposures are excluded from the variance
// total. The match rate counts each MATCHED result twice because one match
// consumes one record from each ledger; it is 0 when there are no records.
func Aggregate(results []domain.ReconResult) domain.ReconSummary {
	s := domain.ReconSummary{TotalVarianceAmount: decimal.Zero}

	for _, res := range results {
		if res.BankRecord != nil {
			s.TotalBank++
		}
		if res.BookRecord != nil {
			s.TotalBook++
		}

		switch res.Status {
		case domain.StatusMatched:
			s.MatchedCount++
		case domain.StatusVariance:
			s.VarianceCount++
			s.TotalVarianceAmount = s.TotalVarianceAmount.Add(res.AmountDifference.Abs())
		case domain.StatusUnmatchedBank:
			s.UnmatchedBankCount++
		case domain.StatusUnmatchedBook:
			s.UnmatchedBookCount++
		}
	}

	if total := s.TotalBank + s.TotalBook; total > 0 {
		s.MatchRate = float64(s.MatchedCount*2) / float64(total) * 100
	}

	return s
}
