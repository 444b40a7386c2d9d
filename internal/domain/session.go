package domain

import "time"

// Session tracks counters for one full run of a comparison suite, bounded by
// collection and teardown. Counters only ever increase.
type Session struct {
	TotalTests  int // set once from the collected case count
	TestsRun    int
	TestsPassed int
	TestsFailed int
	StartTime   time.Time
}

// NewSession creates a Session for the given collected case count.
func NewSession(total int) *Session {
	return &Session{
		TotalTests: total,
		StartTime:  time.Now(),
	}
}

// RecordResult updates the run counters for one completed case.
func (s *Session) RecordResult(passed bool) {
	s.TestsRun++
	if passed {
		s.TestsPassed++
	} else {
		s.TestsFailed++
	}
}
