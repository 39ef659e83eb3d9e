package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fleetfuel/reconciliation-engine/internal/domain"
)

// OutputFormatter defines the interface for formatting a reconciliation
// report.
type OutputFormatter interface {
	Format(report domain.ReconReport) ([]byte, error)
	FileExtension() string
}

// JSONFormatter formats the report as JSON
type JSONFormatter struct {
	PrettyPrint bool
}

func NewJSONFormatter(prettyPrint bool) *JSONFormatter {
	return &JSONFormatter{
		PrettyPrint: prettyPrint,
	}
}

// Format implements the OutputFormatter interface for JSON
func (f *JSONFormatter) Format(report domain.ReconReport) ([]byte, error) {
	if f.PrettyPrint {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}

func (f *JSONFormatter) FileExtension() string {
	return "json"
}

// TextFormatter renders the report as a plain-text terminal summary: the
// aggregate block first, then one line per flagged result.
type TextFormatter struct{}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format implements the OutputFormatter interface for plain text
func (f *TextFormatter) Format(report domain.ReconReport) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Reconciliation run %s (%s)\n", report.RunID, report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "  matched:        %d\n", report.Summary.MatchedCount)
	fmt.Fprintf(&b, "  variance:       %d (total %s)\n", report.Summary.VarianceCount, report.Summary.TotalVarianceAmount.StringFixed(2))
	fmt.Fprintf(&b, "  unmatched bank: %d\n", report.Summary.UnmatchedBankCount)
	fmt.Fprintf(&b, "  unmatched book: %d\n", report.Summary.UnmatchedBookCount)
	fmt.Fprintf(&b, "  match rate:     %.1f%%\n", report.Summary.MatchRate)

	flagged := false
	for _, res := range report.Results {
		if res.Status == domain.StatusMatched {
			continue
		}
		if !flagged {
			b.WriteString("\nFlagged results:\n")
			flagged = true
		}
		b.WriteString(formatResultLine(res))
	}

	if report.Narrative != "" {
		fmt.Fprintf(&b, "\n%s\n", report.Narrative)
	}

	return []byte(b.String()), nil
}

func (f *TextFormatter) FileExtension() string {
	return "txt"
}

func formatResultLine(res domain.ReconResult) string {
	var b strings.Builder

	switch res.Status {
	case domain.StatusVariance:
		fmt.Fprintf(&b, "  [%s] %-14s inv %s: bank %s vs book %s (diff %s)\n",
			res.ID, res.Status,
			res.BankRecord.InvoiceNumber,
			res.BankRecord.TotalAmount.StringFixed(2),
			res.BookRecord.Amount.StringFixed(2),
			res.AmountDifference.StringFixed(2))
	case domain.StatusUnmatchedBank:
		fmt.Fprintf(&b, "  [%s] %-14s inv %s: %s\n",
			res.ID, res.Status,
			res.BankRecord.InvoiceNumber,
			res.BankRecord.TotalAmount.StringFixed(2))
	case domain.StatusUnmatchedBook:
		fmt.Fprintf(&b, "  [%s] %-14s doc %s: %s\n",
			res.ID, res.Status,
			res.BookRecord.DocumentNo,
			res.BookRecord.Amount.StringFixed(2))
	}

	if res.SmartFix != nil {
		fmt.Fprintf(&b, "      fix: %s (%d%%) %s\n",
			res.SmartFix.Type, res.SmartFix.Confidence, res.SmartFix.Message)
	}

	return b.String()
}
