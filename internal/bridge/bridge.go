// Package bridge aggregates test lifecycle events and streams them to the
// TUI consumer, degrading to the legacy console format when no consumer is
// reachable. Nothing in this package may abort the host run: every failure
// path ends in fallback rendering, which cannot fail.
package bridge

import (
	"fmt"
	"io"
	"time"

	"qtb/internal/domain"
	"qtb/internal/protocol"
	"qtb/internal/ui"
)

// Hooks is the lifecycle interface the host test driver invokes. The bridge
// depends on nothing of the driver beyond these calls, which fire
// sequentially on one goroutine.
type Hooks interface {
	// SessionStarted fires after collection, before the first case.
	SessionStarted(total int)
	// CompilationStatus reports compile progress for one compared side.
	CompilationStatus(phase, info string)
	// CaseStarted fires at case setup. Inputs may be nil if not yet known.
	CaseStarted(id, description string, inputs domain.Inputs)
	// CaseFinished fires once per started case with the captured outcome.
	CaseFinished(outcome Outcome)
	// SessionFinished fires exactly once at session teardown.
	SessionFinished(duration time.Duration)
}

// Outcome carries everything captured for one completed case.
type Outcome struct {
	ReferenceOutput string
	CandidateOutput string
	Passed          bool
	Reason          string        // failure reason; defaulted when empty
	Inputs          domain.Inputs // late-bound inputs, optional
}

// Sender is the connection the reporter emits over. *transport.Client
// satisfies it.
type Sender interface {
	ConnectAny() bool
	Send(record []byte) error
	Close()
}

// Reporter is the event-reporting bridge. One Reporter serves one session;
// its fallback latch never resets within that session.
type Reporter struct {
	sender   Sender
	fallback *ui.FallbackRenderer
	debug    io.Writer

	fallbackMode bool
	session      *domain.Session
	current      *domain.Case
	inputsSent   bool
}

// NewReporter creates a Reporter and runs the front-loaded connection
// attempt. With a nil sender (or when no consumer answers) the reporter
// starts latched in fallback mode.
func NewReporter(sender Sender, fallback *ui.FallbackRenderer, debug io.Writer) *Reporter {
	r := &Reporter{
		sender:   sender,
		fallback: fallback,
		debug:    debug,
	}
	if sender == nil {
		r.fallbackMode = true
		return r
	}
	if !sender.ConnectAny() {
		r.debugf("all connection attempts failed, falling back to stdout")
		r.fallbackMode = true
	}
	return r
}

// FallbackEngaged reports whether the session is latched into text mode.
func (r *Reporter) FallbackEngaged() bool {
	return r.fallbackMode
}

// Session exposes the session counters (nil before SessionStarted).
func (r *Reporter) Session() *domain.Session {
	return r.session
}

// SessionStarted records the collected case count and emits session_start.
func (r *Reporter) SessionStarted(total int) {
	r.session = domain.NewSession(total)
	r.emit(protocol.TypeSessionStart, protocol.SessionStartData{
		TestCount: total,
		StartTime: float64(r.session.StartTime.UnixNano()) / 1e9,
	}, func() {
		r.fallback.SessionStart(total)
	})
}

// CompilationStatus emits a compilation_status event.
func (r *Reporter) CompilationStatus(phase, info string) {
	r.emit(protocol.TypeCompilationStatus, protocol.CompilationStatusData{
		Phase: phase,
		Info:  info,
	}, func() {
		r.fallback.CompilationStatus(phase, info)
	})
}

// CaseStarted creates the current case and emits test_start, plus
// test_inputs when the inputs are already known.
func (r *Reporter) CaseStarted(id, description string, inputs domain.Inputs) {
	c := domain.NewCase(id, description)
	c.Inputs = inputs
	r.current = c
	r.inputsSent = false

	r.emit(protocol.TypeTestStart, protocol.TestStartData{
		ID:          c.ID,
		Description: c.Description,
	}, func() {
		r.fallback.TestStart(c.ID, c.Description)
	})

	if len(inputs) > 0 {
		r.emitInputs()
	}
}

// CaseFinished captures the outcome, emits test_inputs (if still pending),
// test_outputs and test_result, updates the session counters and discards
// the case. A finish without a matching start is tolerated with defaults.
func (r *Reporter) CaseFinished(outcome Outcome) {
	if r.current == nil {
		r.debugf("case finished without start; substituting defaults")
		r.current = domain.NewCase("", "")
	}
	c := r.current
	c.ReferenceOutput = outcome.ReferenceOutput
	c.CandidateOutput = outcome.CandidateOutput
	if len(c.Inputs) == 0 && len(outcome.Inputs) > 0 {
		c.Inputs = outcome.Inputs
	}

	if !r.inputsSent {
		r.emitInputs()
	}

	r.emit(protocol.TypeTestOutputs, protocol.TestOutputsData{
		ID:         c.ID,
		CPPOutput:  c.ReferenceOutput,
		MojoOutput: c.CandidateOutput,
	}, func() {
		r.fallback.TestOutputs(c.ReferenceOutput, c.CandidateOutput)
	})

	status := domain.StatusFail
	if outcome.Passed {
		status = domain.StatusPass
	}
	if r.session != nil {
		r.session.RecordResult(outcome.Passed)
	}

	duration := time.Since(c.StartTime).Seconds()
	result := protocol.TestResultData{
		ID:          c.ID,
		Status:      status,
		Duration:    duration,
		Description: c.Description,
		CPPOutput:   c.ReferenceOutput,
		MojoOutput:  c.CandidateOutput,
		Inputs:      c.Inputs,
	}

	var detailed []protocol.DetailedDiff
	if status == domain.StatusFail {
		result.Reason = outcome.Reason
		if result.Reason == "" {
			result.Reason = "Test failed"
		}
		result.Diff = DiffNote(c.ReferenceOutput, c.CandidateOutput)
		if c.ReferenceOutput != "" && c.CandidateOutput != "" &&
			c.ReferenceOutput != c.CandidateOutput {
			detailed = []protocol.DetailedDiff{{
				Type:       "generic_diff",
				CPPOutput:  c.ReferenceOutput,
				MojoOutput: c.CandidateOutput,
				Summary:    "Outputs differ",
			}}
			result.DetailedDiffs = detailed
		}
	}

	r.emit(protocol.TypeTestResult, result, func() {
		r.fallback.TestResult(status, result.Reason, result.Diff, detailed)
	})

	r.current = nil
	r.inputsSent = false
}

// SessionFinished emits the final session_end event and closes the
// connection. Always the last event of a session.
func (r *Reporter) SessionFinished(duration time.Duration) {
	total, passed, failed := 0, 0, 0
	if r.session != nil {
		total = r.session.TestsRun
		passed = r.session.TestsPassed
		failed = r.session.TestsFailed
	}

	r.emit(protocol.TypeSessionEnd, protocol.SessionEndData{
		Total:    total,
		Passed:   passed,
		Failed:   failed,
		Duration: duration.Seconds(),
	}, func() {
		r.fallback.SessionEnd(total, passed, failed, duration.Seconds())
	})

	if r.sender != nil {
		r.sender.Close()
	}
}

func (r *Reporter) emitInputs() {
	c := r.current
	if c == nil {
		return
	}
	r.inputsSent = true
	inputs := c.Inputs
	if inputs == nil {
		inputs = domain.Inputs{}
	}
	r.emit(protocol.TypeTestInputs, protocol.TestInputsData{
		ID:     c.ID,
		Inputs: inputs,
	}, func() {
		r.fallback.TestInputs(inputs)
	})
}

// emit delivers one event exactly once: over the connection when possible,
// otherwise through the fallback renderer. The first send failure latches
// fallback mode for the remainder of the session.
func (r *Reporter) emit(msgType string, data any, render func()) {
	if r.fallbackMode {
		render()
		return
	}

	record, err := protocol.Encode(protocol.NewMessage(msgType, data))
	if err != nil {
		r.debugf("encode %s failed: %v; switching to fallback", msgType, err)
		r.fallbackMode = true
		render()
		return
	}

	if err := r.sender.Send(record); err != nil {
		r.debugf("send %s failed: %v; switching to fallback", msgType, err)
		r.fallbackMode = true
		render()
	}
}

func (r *Reporter) debugf(format string, args ...any) {
	if r.debug != nil {
		fmt.Fprintf(r.debug, "[bridge] "+format+"\n", args...)
	}
}
