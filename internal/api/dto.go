package api

import (
	"time"

	"github.com/fleetfuel/reconciliation-engine/internal/domain"
)

// Wire DTOs. Amounts cross the boundary as two-decimal strings so clients
// never see binary-float artifacts.

type reconResponse struct {
	RunID       string      `json:"run_id"`
	GeneratedAt time.Time   `json:"generated_at"`
	Summary     summaryDTO  `json:"summary"`
	Results     []resultDTO `json:"results"`
	Narrative   string      `json:"narrative,omitempty"`
}

type summaryDTO struct {
	TotalBank           int     `json:"total_bank"`
	TotalBook           int     `json:"total_book"`
	MatchedCount        int     `json:"matched_count"`
	VarianceCount       int     `json:"variance_count"`
	UnmatchedBankCount  int     `json:"unmatched_bank_count"`
	UnmatchedBookCount  int     `json:"unmatched_book_count"`
	MatchRate           float64 `json:"match_rate"`
	TotalVarianceAmount string  `json:"total_variance_amount"`
}

type resultDTO struct {
	ID               string       `json:"id"`
	Status           string       `json:"status"`
	AmountDifference string       `json:"amount_difference"`
	Notes            string       `json:"notes,omitempty"`
	Bank             *bankDTO     `json:"bank,omitempty"`
	Book             *bookDTO     `json:"book,omitempty"`
	SmartFix         *smartFixDTO `json:"smart_fix,omitempty"`
}

type bankDTO struct {
	InvoiceNumber   string `json:"invoice_number"`
	TransactionDate string `json:"transaction_date"`
	TotalAmount     string `json:"total_amount"`
	Product         string `json:"product,omitempty"`
	MerchantID      string `json:"merchant_id,omitempty"`
}

type bookDTO struct {
	DocumentNo  string `json:"document_no"`
	PostingDate string `json:"posting_date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

type smartFixDTO struct {
	Type             string `json:"type"`
	Message          string `json:"message"`
	Confidence       int    `json:"confidence"`
	SuggestedInvoice string `json:"suggested_invoice,omitempty"`
}

func toReconResponse(report domain.ReconReport) reconResponse {
	resp := reconResponse{
		RunID:       report.RunID,
		GeneratedAt: report.GeneratedAt,
		Summary:     toSummaryDTO(report.Summary),
		Results:     make([]resultDTO, 0, len(report.Results)),
		Narrative:   report.Narrative,
	}
	for _, res := range report.Results {
		resp.Results = append(resp.Results, toResultDTO(res))
	}
	return resp
}

func toSummaryDTO(s domain.ReconSummary) summaryDTO {
	return summaryDTO{
		TotalBank:           s.TotalBank,
		TotalBook:           s.TotalBook,
		MatchedCount:        s.MatchedCount,
		VarianceCount:       s.VarianceCount,
		UnmatchedBankCount:  s.UnmatchedBankCount,
		UnmatchedBookCount:  s.UnmatchedBookCount,
		MatchRate:           s.MatchRate,
		TotalVarianceAmount: s.TotalVarianceAmount.StringFixed(2),
	}
}

func toResultDTO(res domain.ReconResult) resultDTO {
	dto := resultDTO{
		ID:               res.ID,
		Status:           string(res.Status),
		AmountDifference: res.AmountDifference.StringFixed(2),
		Notes:            res.Notes,
	}

	if res.BankRecord != nil {
		dto.Bank = &bankDTO{
			InvoiceNumber:   res.BankRecord.InvoiceNumber,
			TransactionDate: res.BankRecord.TransactionDate,
			TotalAmount:     res.BankRecord.TotalAmount.StringFixed(2),
			Product:         res.BankRecord.Product,
			MerchantID:      res.BankRecord.MerchantID,
		}
	}
	if res.BookRecord != nil {
		dto.Book = &bookDTO{
			DocumentNo:  res.BookRecord.DocumentNo,
			PostingDate: res.BookRecord.PostingDate,
			Description: res.BookRecord.Description,
			Amount:      res.BookRecord.Amount.StringFixed(2),
		}
	}
	if res.SmartFix != nil {
		dto.SmartFix = &smartFixDTO{
			Type:       string(res.SmartFix.Type),
			Message:    res.SmartFix.Message,
			Confidence: res.SmartFix.Confidence,
		}
		if res.SmartFix.SuggestedRecord != nil {
			dto.SmartFix.SuggestedInvoice = res.SmartFix.SuggestedRecord.InvoiceNumber
		}
	}

	return dto
}
