// Package matcher implements the matching cascade that partitions a bank
// settlement export and a book ledger export into matched pairs, variances,
// and orphans.
//
// Matching is a greedy first-fit cascade, not an optimal bipartite
// assignment: each phase binds the earliest unclaimed counterpart in input
// order. Correctness means no record is ever claimed twice, and the output
// is deterministic for a fixed input ordering.
package matcher

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fleetfuel/reconciliation-engine/internal/domain"
)

// Cascade runs the ordered matching phases over two record sequences.
type Cascade struct{}

// NewCascade creates a new Cascade.
func NewCascade() *Cascade {
	return &Cascade{}
}

// Match reconciles the two inputs. Every bank record and every book record
// appears in exactly one of the returned results. Inputs may be empty; the
// cascade never fails, a record that matches nothing falls through to the
// orphan phases.
func (c *Cascade) Match(bankRecords []domain.BankRecord, bookRecords []domain.BookRecord) []domain.ReconResult {
	b := newResultBuilder(len(bankRecords), len(bookRecords))

	// Phase 1: exact invoice id. The book description should echo the bank
	// invoice number.
	for bankIdx := range bankRecords {
		bank := &bankRecords[bankIdx]

		bookIdx := b.findBook(bookRecords, func(book *domain.BookRecord) bool {
			return book.Description == bank.InvoiceNumber
		})
		if bookIdx < 0 {
			continue
		}

		book := &bookRecords[bookIdx]
		b.claim(bankIdx, bookIdx)

		if domain.AmountsEqual(book.Amount, bank.TotalAmount) {
			b.add(domain.ReconResult{
				BankRecord:       bank,
				BookRecord:       book,
				Status:           domain.StatusMatched,
				AmountDifference: decimal.Zero,
			})
			continue
		}

		// Positive difference means the book overstates the bank.
		b.add(domain.ReconResult{
			BankRecord:       bank,
			BookRecord:       book,
			Status:           domain.StatusVariance,
			AmountDifference: book.Amount.Sub(bank.TotalAmount),
		})
	}

	// Phase 2: same calendar day and same amount, for records whose id is
	// missing or wrong.
	for bankIdx := range bankRecords {
		if b.bankClaimed(bankIdx) {
			continue
		}
		bank := &bankRecords[bankIdx]

		bookIdx := b.findBook(bookRecords, func(book *domain.BookRecord) bool {
			return book.RawDate.Equal(bank.RawDate) && domain.AmountsEqual(book.Amount, bank.TotalAmount)
		})
		if bookIdx < 0 {
			continue
		}

		b.claim(bankIdx, bookIdx)
		b.add(domain.ReconResult{
			BankRecord:       bank,
			BookRecord:       &bookRecords[bookIdx],
			Status:           domain.StatusMatched,
			AmountDifference: decimal.Zero,
			Notes:            "Inferred match by date and amount",
		})
	}

	// Phase 3: bank orphans. Full exposure, positive.
	for bankIdx := range bankRecords {
		if b.bankClaimed(bankIdx) {
			continue
		}
		b.add(domain.ReconResult{
			BankRecord:       &bankRecords[bankIdx],
			Status:           domain.StatusUnmatchedBank,
			AmountDifference: bankRecords[bankIdx].TotalAmount,
		})
	}

	// Phase 4: book orphans. Full exposure, negative.
	for bookIdx := range bookRecords {
		if b.bookClaimed(bookIdx) {
			continue
		}
		b.add(domain.ReconResult{
			BookRecord:       &bookRecords[bookIdx],
			Status:           domain.StatusUnmatchedBook,
			AmountDifference: bookRecords[bookIdx].Amount.Neg(),
		})
	}

	return b.results()
}

// resultBuilder accumulates claimed indices and results for one Match call.
// Claims are tracked per ledger so a phase can only consume records left
// unclaimed by earlier phases.
type resultBuilder struct {
	bank []bool
	book []bool
	out  []domain.ReconResult
}

func newResultBuilder(bankLen, bookLen int) *resultBuilder {
	return &resultBuilder{
		bank: make([]bool, bankLen),
		book: make([]bool, bookLen),
		out:  make([]domain.ReconResult, 0, bankLen+bookLen),
	}
}

// findBook returns the index of the first unclaimed book record satisfying
// the predicate, or -1.
func (b *resultBuilder) findBook(bookRecords []domain.BookRecord, pred func(*domain.BookRecord) bool) int {
	for idx := range bookRecords {
		if b.book[idx] {
			continue
		}
		if pred(&bookRecords[idx]) {
			return idx
		}
	}
	return -1
}

func (b *resultBuilder) claim(bankIdx, bookIdx int) {
	b.bank[bankIdx] = true
	b.book[bookIdx] = true
}

func (b *resultBuilder) bankClaimed(idx int) bool { return b.bank[idx] }
func (b *resultBuilder) bookClaimed(idx int) bool { return b.book[idx] }

// add assigns the next sequential result id. Ids are deterministic so a
// rerun over the same input produces identical output.
func (b *resultBuilder) add(res domain.ReconResult) {
	res.ID = fmt.Sprintf("recon-%04d", len(b.out)+1)
	b.out = append(b.out, res)
}

func (b *resultBuilder) results() []domain.ReconResult {
	return b.out
}
