// Package narrative calls the hosted analysis agent that turns a
// reconciliation run into free-form report text. The agent is an external
// collaborator: its failure is surfaced as an error and must never affect
// the already-computed reconciliation results.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/fleetfuel/reconciliation-engine/internal/domain"
	"github.com/fleetfuel/reconciliation-engine/pkg/resilience"
)

// AgentClient is an HTTP client for the analysis agent. The circuit breaker
// keeps a dead agent from stalling every run; retry covers transient
// failures underneath it.
type AgentClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
}

// NewAgentClient creates the client. baseURL is the agent root without the
// /v1/analysis suffix.
func NewAgentClient(httpClient *http.Client, baseURL string, cfg resilience.Config) *AgentClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &AgentClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         resilience.NewCircuitBreaker("narrative-agent"),
		cfg:        cfg,
	}
}

type analysisRequest struct {
	Summary    summaryPayload `json:"summary"`
	Anomalies  anomalyTally   `json:"anomalies"`
	Exceptions []string       `json:"exceptions"`
}

type summaryPayload struct {
	MatchRate           float64 `json:"match_rate"`
	MatchedCount        int     `json:"matched_count"`
	VarianceCount       int     `json:"variance_count"`
	UnmatchedBankCount  int     `json:"unmatched_bank_count"`
	UnmatchedBookCount  int     `json:"unmatched_book_count"`
	TotalVarianceAmount string  `json:"total_variance_amount"`
}

type anomalyTally struct {
	Transpositions int `json:"transpositions"`
	Scaling        int `json:"scaling"`
	Typos          int `json:"typos"`
	Timing         int `json:"timing"`
}

type analysisResponse struct {
	Report string `json:"report"`
}

// Generate sends the run summary plus a bounded sample of flagged results
// and returns the agent's report text.
func (c *AgentClient) Generate(ctx context.Context, sum domain.ReconSummary, flagged []domain.ReconResult) (string, error) {
	payload := buildRequest(sum, flagged)

	var agentResp analysisResponse

	_, err := c.cb.Execute(func() (any, error) {
		innerErr := resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := json.Marshal(payload)
			if err != nil {
				return fmt.Errorf("marshal analysis request: %w", err)
			}

			url := fmt.Sprintf("%s/v1/analysis", c.baseURL)
			httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
			if err != nil {
				return fmt.Errorf("create http request: %w", err)
			}
			httpReq.Header.Set("Content-Type", "application/json")

			resp, err := c.httpClient.Do(httpReq)
			if err != nil {
				return fmt.Errorf("http call to analysis agent: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("analysis agent returned status %d", resp.StatusCode)
			}

			return json.NewDecoder(resp.Body).Decode(&agentResp)
		})
		if innerErr != nil {
			return nil, innerErr
		}
		return agentResp, nil
	})
	if err != nil {
		return "", fmt.Errorf("generating narrative: %w", err)
	}

	return agentResp.Report, nil
}

func buildRequest(sum domain.ReconSummary, flagged []domain.ReconResult) analysisRequest {
	req := analysisRequest{
		Summary: summaryPayload{
			MatchRate:           sum.MatchRate,
			MatchedCount:        sum.MatchedCount,
			VarianceCount:       sum.VarianceCount,
			UnmatchedBankCount:  sum.UnmatchedBankCount,
			UnmatchedBookCount:  sum.UnmatchedBookCount,
			TotalVarianceAmount: sum.TotalVarianceAmount.StringFixed(2),
		},
		Exceptions: make([]string, 0, len(flagged)),
	}

	for _, res := range flagged {
		if res.SmartFix != nil {
			switch res.SmartFix.Type {
			case domain.FixTransposedDigits:
				req.Anomalies.Transpositions++
			case domain.FixScalingError:
				req.Anomalies.Scaling++
			case domain.FixIDTypo:
				req.Anomalies.Typos++
			case domain.FixTimingDiff:
				req.Anomalies.Timing++
			}
		}
		req.Exceptions = append(req.Exceptions, exceptionLine(res))
	}

	return req
}

// exceptionLine renders one flagged result as a compact line of context for
// the agent prompt.
func exceptionLine(res domain.ReconResult) string {
	fixMsg := ""
	if res.SmartFix != nil {
		fixMsg = fmt.Sprintf(" [detect: %s - %s]", res.SmartFix.Type, res.SmartFix.Message)
	}

	switch res.Status {
	case domain.StatusVariance:
		return fmt.Sprintf("Variance: inv %s (bank %s, book %s), diff %s.%s",
			res.BankRecord.InvoiceNumber,
			res.BankRecord.TotalAmount.StringFixed(2),
			res.BookRecord.Amount.StringFixed(2),
			res.AmountDifference.StringFixed(2),
			fixMsg)
	case domain.StatusUnmatchedBank:
		return fmt.Sprintf("Orphan bank: inv %s, amount %s.%s",
			res.BankRecord.InvoiceNumber,
			res.BankRecord.TotalAmount.StringFixed(2),
			fixMsg)
	default:
		return fmt.Sprintf("Orphan book: doc %s, amount %s.%s",
			res.BookRecord.DocumentNo,
			res.BookRecord.Amount.StringFixed(2),
			fixMsg)
	}
}
