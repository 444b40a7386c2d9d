package domain

import "time"

// Case verdicts as they appear on the wire and in the legacy text protocol.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// CaseResult is the persisted outcome of one compared case.
type CaseResult struct {
	ID              string  `json:"id"`
	Description     string  `json:"description"`
	Status          string  `json:"status"`
	DurationSeconds float64 `json:"duration_seconds"`
	Inputs          Inputs  `json:"inputs"`
	ReferenceOutput string  `json:"cpp_output"`
	CandidateOutput string  `json:"mojo_output"`
	Reason          string  `json:"reason,omitempty"`
	Diff            string  `json:"diff,omitempty"`
	Resolved        bool    `json:"resolved,omitempty"` // marked from the faills viewer
}

// Passed reports whether the case verdict is PASS.
func (r CaseResult) Passed() bool {
	return r.Status == StatusPass
}

// SessionMeta contains metadata about one completed session.
type SessionMeta struct {
	TotalCases      int     `json:"total_cases"`
	PassedCases     int     `json:"passed_cases"`
	FailedCases     int     `json:"failed_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// SessionOutput is the complete persisted structure for one session.
type SessionOutput struct {
	Meta  SessionMeta  `json:"meta"`
	Cases []CaseResult `json:"cases"`
}

// NewSessionMeta builds meta counters from a result list.
func NewSessionMeta(results []CaseResult, duration time.Duration) SessionMeta {
	passed := 0
	failed := 0
	for _, r := range results {
		if r.Passed() {
			passed++
		} else {
			failed++
		}
	}
	return SessionMeta{
		TotalCases:      len(results),
		PassedCases:     passed,
		FailedCases:     failed,
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Timestamp:       time.Now().Format(time.RFC3339),
	}
}
