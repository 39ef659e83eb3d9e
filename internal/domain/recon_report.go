package domain

import "time"

// ReconReport is the full output of one reconciliation run as handed to
// reporting collaborators. RunID identifies the run itself, not any result;
// result ids are deterministic and assigned by the matching cascade.
type ReconReport struct {
	RunID       string
	GeneratedAt time.Time
	Summary     ReconSummary
	Results     []ReconResult
	Narrative   string
}
