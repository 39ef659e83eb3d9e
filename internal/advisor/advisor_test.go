package advisor_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetfuel/reconciliation-engine/internal/advisor"
	"github.com/fleetfuel/reconciliation-engine/internal/domain"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func varianceResult(bankAmt, bookAmt float64) domain.ReconResult {
	bank := &domain.BankRecord{InvoiceNumber: "395443", TotalAmount: decimal.NewFromFloat(bankAmt)}
	book := &domain.BookRecord{Description: "395443", Amount: decimal.NewFromFloat(bookAmt)}
	return domain.ReconResult{
		ID:               "recon-0001",
		BankRecord:       bank,
		BookRecord:       book,
		Status:           domain.StatusVariance,
		AmountDifference: book.Amount.Sub(bank.TotalAmount),
	}
}

func TestAdvise_VarianceTransposition(t *testing.T) {
	a := advisor.NewAdvisor()

	results := a.Advise([]domain.ReconResult{varianceResult(54.00, 45.00)}, nil)

	fix := results[0].SmartFix
	if fix == nil {
		t.Fatal("Expected a smart fix on a transposed variance")
	}
	if fix.Type != domain.FixTransposedDigits {
		t.Errorf("Expected TRANSPOSED_DIGITS, got %s", fix.Type)
	}
	if fix.Confidence != 90 {
		t.Errorf("Expected confidence 90, got %d", fix.Confidence)
	}
	if fix.SuggestedRecord == nil || fix.SuggestedRecord.InvoiceNumber != "395443" {
		t.Error("Expected the paired bank record as the suggestion")
	}
}

func TestAdvise_VarianceScaling(t *testing.T) {
	a := advisor.NewAdvisor()

	results := a.Advise([]domain.ReconResult{varianceResult(1000.00, 100.00)}, nil)

	fix := results[0].SmartFix
	if fix == nil {
		t.Fatal("Expected a smart fix on a scaling variance")
	}
	if fix.Type != domain.FixScalingError {
		t.Errorf("Expected SCALING_ERROR, got %s", fix.Type)
	}
	if fix.Confidence != 85 {
		t.Errorf("Expected confidence 85, got %d", fix.Confidence)
	}
}

func TestAdvise_VarianceWithoutExplanation(t *testing.T) {
	a := advisor.NewAdvisor()

	// 156 is neither a multiple of nine nor a factor-of-ten relation.
	results := a.Advise([]domain.ReconResult{varianceResult(5200.00, 5044.00)}, nil)

	if results[0].SmartFix != nil {
		t.Errorf("Expected no smart fix, got %+v", results[0].SmartFix)
	}
	if results[0].Status != domain.StatusVariance {
		t.Errorf("Advisor must not reclassify results, got %s", results[0].Status)
	}
}

func TestAdvise_OrphanIDTypo(t *testing.T) {
	a := advisor.NewAdvisor()

	book := &domain.BookRecord{
		Description: "395444", // one digit off
		Amount:      decimal.NewFromFloat(2080.00),
		RawDate:     day(t, "2024-03-15"),
	}
	orphan := domain.ReconResult{
		BookRecord:       book,
		Status:           domain.StatusUnmatchedBook,
		AmountDifference: book.Amount.Neg(),
	}
	pool := []domain.BankRecord{{
		InvoiceNumber: "395443",
		TotalAmount:   decimal.NewFromFloat(2080.00),
		RawDate:       day(t, "2024-03-15"),
	}}

	results := a.Advise([]domain.ReconResult{orphan}, pool)

	fix := results[0].SmartFix
	if fix == nil {
		t.Fatal("Expected an id-typo fix")
	}
	if fix.Type != domain.FixIDTypo {
		t.Errorf("Expected ID_TYPO, got %s", fix.Type)
	}
	if fix.Confidence != 85 {
		t.Errorf("Expected confidence 85, got %d", fix.Confidence)
	}
	if fix.SuggestedRecord == nil || fix.SuggestedRecord.InvoiceNumber != "395443" {
		t.Error("Expected the candidate bank record as the suggestion")
	}
}

func TestAdvise_OrphanShortDescriptionTighterTypoBound(t *testing.T) {
	a := advisor.NewAdvisor()

	// Five characters or fewer allows only a single edit. Distance here is
	// two, so no typo fix may be proposed.
	book := &domain.BookRecord{
		Description: "12345",
		Amount:      decimal.NewFromFloat(500.00),
		RawDate:     day(t, "2024-03-15"),
	}
	orphan := domain.ReconResult{BookRecord: book, Status: domain.StatusUnmatchedBook}
	pool := []domain.BankRecord{{
		InvoiceNumber: "12543",
		TotalAmount:   decimal.NewFromFloat(500.00),
		RawDate:       day(t, "2024-03-15"),
	}}

	results := a.Advise([]domain.ReconResult{orphan}, pool)

	if fix := results[0].SmartFix; fix != nil && fix.Type == domain.FixIDTypo {
		t.Errorf("Expected no id-typo fix for distance 2 on a short id, got %+v", fix)
	}
}

func TestAdvise_OrphanTranspositionNearDate(t *testing.T) {
	a := advisor.NewAdvisor()

	book := &domain.BookRecord{
		Description: "manual journal entry",
		Amount:      decimal.NewFromFloat(45.00),
		RawDate:     day(t, "2024-03-15"),
	}
	orphan := domain.ReconResult{BookRecord: book, Status: domain.StatusUnmatchedBook}
	pool := []domain.BankRecord{{
		InvoiceNumber: "777777",
		TotalAmount:   decimal.NewFromFloat(54.00),
		RawDate:       day(t, "2024-03-16"),
	}}

	results := a.Advise([]domain.ReconResult{orphan}, pool)

	fix := results[0].SmartFix
	if fix == nil {
		t.Fatal("Expected a transposition fix near the posting date")
	}
	if fix.Type != domain.FixTransposedDigits || fix.Confidence != 75 {
		t.Errorf("Expected TRANSPOSED_DIGITS at confidence 75, got %s at %d", fix.Type, fix.Confidence)
	}
}

func TestAdvise_OrphanTranspositionOutsideDateWindow(t *testing.T) {
	a := advisor.NewAdvisor()

	book := &domain.BookRecord{
		Description: "manual journal entry",
		Amount:      decimal.NewFromFloat(45.00),
		RawDate:     day(t, "2024-03-15"),
	}
	orphan := domain.ReconResult{BookRecord: book, Status: domain.StatusUnmatchedBook}
	pool := []domain.BankRecord{{
		InvoiceNumber: "777777",
		TotalAmount:   decimal.NewFromFloat(54.00),
		RawDate:       day(t, "2024-03-19"),
	}}

	results := a.Advise([]domain.ReconResult{orphan}, pool)

	if results[0].SmartFix != nil {
		t.Errorf("Expected no fix outside the two-day window, got %+v", results[0].SmartFix)
	}
}

func TestAdvise_OrphanScalingNearDate(t *testing.T) {
	a := advisor.NewAdvisor()

	book := &domain.BookRecord{
		Description: "manual journal entry",
		Amount:      decimal.NewFromFloat(120.00),
		RawDate:     day(t, "2024-03-15"),
	}
	orphan := domain.ReconResult{BookRecord: book, Status: domain.StatusUnmatchedBook}
	pool := []domain.BankRecord{{
		InvoiceNumber: "888888",
		TotalAmount:   decimal.NewFromFloat(1200.00),
		RawDate:       day(t, "2024-03-14"),
	}}

	results := a.Advise([]domain.ReconResult{orphan}, pool)

	fix := results[0].SmartFix
	if fix == nil {
		t.Fatal("Expected a scaling fix near the posting date")
	}
	if fix.Type != domain.FixScalingError || fix.Confidence != 80 {
		t.Errorf("Expected SCALING_ERROR at confidence 80, got %s at %d", fix.Type, fix.Confidence)
	}
}

func TestAdvise_OrphanKeepsHighestConfidence(t *testing.T) {
	a := advisor.NewAdvisor()

	// The first candidate only supports a transposition hypothesis (75),
	// the second an id typo (85). The typo must win despite scan order.
	book := &domain.BookRecord{
		Description: "395444",
		Amount:      decimal.NewFromFloat(2080.00),
		RawDate:     day(t, "2024-03-15"),
	}
	orphan := domain.ReconResult{BookRecord: book, Status: domain.StatusUnmatchedBook}
	pool := []domain.BankRecord{
		{
			InvoiceNumber: "000000",
			TotalAmount:   decimal.NewFromFloat(2008.00), // anagram of 2080.00
			RawDate:       day(t, "2024-03-15"),
		},
		{
			InvoiceNumber: "395443",
			TotalAmount:   decimal.NewFromFloat(2080.00),
			RawDate:       day(t, "2024-03-15"),
		},
	}

	results := a.Advise([]domain.ReconResult{orphan}, pool)

	fix := results[0].SmartFix
	if fix == nil {
		t.Fatal("Expected a smart fix")
	}
	if fix.Type != domain.FixIDTypo || fix.Confidence != 85 {
		t.Errorf("Expected the higher-confidence ID_TYPO fix, got %s at %d", fix.Type, fix.Confidence)
	}
}

func TestAdvise_PassThroughStatuses(t *testing.T) {
	a := advisor.NewAdvisor()

	bank := &domain.BankRecord{InvoiceNumber: "111111", TotalAmount: decimal.NewFromFloat(10.00)}
	matched := domain.ReconResult{
		BankRecord: bank,
		BookRecord: &domain.BookRecord{Description: "111111", Amount: decimal.NewFromFloat(10.00)},
		Status:     domain.StatusMatched,
	}
	bankOrphan := domain.ReconResult{
		BankRecord: bank,
		Status:     domain.StatusUnmatchedBank,
	}

	results := a.Advise([]domain.ReconResult{matched, bankOrphan}, []domain.BankRecord{*bank})

	for _, res := range results {
		if res.SmartFix != nil {
			t.Errorf("Expected no fix on status %s, got %+v", res.Status, res.SmartFix)
		}
	}
}

func TestAdvise_EmptyCandidatePool(t *testing.T) {
	a := advisor.NewAdvisor()

	orphan := domain.ReconResult{
		BookRecord: &domain.BookRecord{Description: "222222", Amount: decimal.NewFromFloat(99.00)},
		Status:     domain.StatusUnmatchedBook,
	}

	results := a.Advise([]domain.ReconResult{orphan}, nil)

	if results[0].SmartFix != nil {
		t.Errorf("Expected no fix with an empty pool, got %+v", results[0].SmartFix)
	}
}
