package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fleetfuel/reconciliation-engine/internal/advisor"
	"github.com/fleetfuel/reconciliation-engine/internal/domain"
	"github.com/fleetfuel/reconciliation-engine/internal/matcher"
	"github.com/fleetfuel/reconciliation-engine/internal/summary"
)

// FallbackNarrative replaces the generated report text when the analysis
// agent is unavailable. Reconciliation results are always kept regardless.
const FallbackNarrative = "Automated analysis is unavailable for this run. Review the flagged results below."

// defaultSampleLimit bounds how many flagged results are sent to the
// narrative generator.
const defaultSampleLimit = 15

// NarrativeGenerator produces free-form report text for a finished run.
// Implementations live outside the reconciliation core.
type NarrativeGenerator interface {
	Generate(ctx context.Context, sum domain.ReconSummary, flagged []domain.ReconResult) (string, error)
}

// ReconciliationService orchestrates one reconciliation run: ingestion,
// matching cascade, smart-fix advisory pass, summary, and narrative.
type ReconciliationService struct {
	bankRepo    domain.BankRecordRepository
	bookRepo    domain.BookRecordRepository
	cascade     *matcher.Cascade
	advisor     *advisor.Advisor
	narrator    NarrativeGenerator // optional
	logger      *zap.Logger
	sampleLimit int
}

// NewReconciliationService creates a new ReconciliationService. narrator may
// be nil, in which case the report carries no narrative.
func NewReconciliationService(
	bankRepo domain.BankRecordRepository,
	bookRepo domain.BookRecordRepository,
	narrator NarrativeGenerator,
	logger *zap.Logger,
) *ReconciliationService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ReconciliationService{
		bankRepo:    bankRepo,
		bookRepo:    bookRepo,
		cascade:     matcher.NewCascade(),
		advisor:     advisor.NewAdvisor(),
		narrator:    narrator,
		logger:      logger,
		sampleLimit: defaultSampleLimit,
	}
}

// Reconcile performs a full reconciliation run over both ledger exports.
func (s *ReconciliationService) Reconcile(ctx context.Context) (domain.ReconReport, error) {
	var (
		bankRecords []domain.BankRecord
		bookRecords []domain.BookRecord
	)

	// The two exports are independent; load them concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bankRecords, err = s.bankRepo.GetRecords(gctx)
		if err != nil {
			return fmt.Errorf("fetching bank records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		bookRecords, err = s.bookRepo.GetRecords(gctx)
		if err != nil {
			return fmt.Errorf("fetching book records: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.ReconReport{}, err
	}

	s.logger.Info("matching ledgers",
		zap.Int("bank_records", len(bankRecords)),
		zap.Int("book_records", len(bookRecords)))

	results := s.cascade.Match(bankRecords, bookRecords)

	// The advisory candidate pool is captured before any fix is attached so
	// every book orphan sees the same unmatched bank records.
	results = s.advisor.Advise(results, unmatchedBankRecords(results))

	sum := summary.Aggregate(results)

	report := domain.ReconReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Summary:     sum,
		Results:     results,
	}
	report.Narrative = s.narrate(ctx, sum, results)

	return report, nil
}

// narrate asks the narrative generator for report text. A failure downgrades
// to the fallback message and never disturbs the result set.
func (s *ReconciliationService) narrate(ctx context.Context, sum domain.ReconSummary, results []domain.ReconResult) string {
	if s.narrator == nil {
		return ""
	}

	flagged := make([]domain.ReconResult, 0, s.sampleLimit)
	for _, res := range results {
		if res.Status == domain.StatusMatched {
			continue
		}
		flagged = append(flagged, res)
		if len(flagged) == s.sampleLimit {
			break
		}
	}

	text, err := s.narrator.Generate(ctx, sum, flagged)
	if err != nil {
		s.logger.Warn("narrative generation failed, using fallback", zap.Error(err))
		return FallbackNarrative
	}
	return text
}

func unmatchedBankRecords(results []domain.ReconResult) []domain.BankRecord {
	var unmatched []domain.BankRecord
	for _, res := range results {
		if res.Status == domain.StatusUnmatchedBank && res.BankRecord != nil {
			unmatched = append(unmatched, *res.BankRecord)
		}
	}
	return unmatched
}
