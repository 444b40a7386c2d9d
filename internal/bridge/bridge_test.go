package bridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"qtb/internal/domain"
	"qtb/internal/protocol"
	"qtb/internal/ui"
)

// fakeSender records everything the reporter emits and can be told to start
// failing at a given send.
type fakeSender struct {
	records   [][]byte
	failFrom  int // send index at which failures begin; -1 never fails
	connectOK bool
	closed    bool
	sends     int
}

func newFakeSender() *fakeSender {
	return &fakeSender{failFrom: -1, connectOK: true}
}

func (f *fakeSender) ConnectAny() bool { return f.connectOK }

func (f *fakeSender) Send(record []byte) error {
	idx := f.sends
	f.sends++
	if f.failFrom >= 0 && idx >= f.failFrom {
		return errors.New("broken pipe")
	}
	cp := make([]byte, len(record))
	copy(cp, record)
	f.records = append(f.records, cp)
	return nil
}

func (f *fakeSender) Close() { f.closed = true }

func (f *fakeSender) types(t *testing.T) []string {
	t.Helper()
	var types []string
	for _, rec := range f.records {
		env, err := protocol.Decode(bytes.TrimSpace(rec))
		if err != nil {
			t.Fatalf("reporter emitted undecodable record: %v", err)
		}
		types = append(types, env.Type)
	}
	return types
}

func buildReporter(sender Sender) (*Reporter, *bytes.Buffer) {
	var fallbackOut bytes.Buffer
	return NewReporter(sender, ui.NewFallbackRenderer(&fallbackOut), nil), &fallbackOut
}

func runTwoCaseSession(r *Reporter) {
	r.SessionStarted(2)
	r.CaseStarted("test-pepe-001", "Simple test for cash flow calculations", domain.Inputs{
		{Name: "Cash flow value", Value: "100.00"},
		{Name: "Interest rate", Value: "0.05"},
	})
	r.CaseFinished(Outcome{
		ReferenceOutput: "NPV: 95.24",
		CandidateOutput: "NPV: 95.24",
		Passed:          true,
	})
	r.CaseStarted("test-pepe-002", "Complex test with multiple flows", domain.Inputs{
		{Name: "Cash flow sequence", Value: "[100, 150, 200]"},
		{Name: "Interest rate", Value: "0.06"},
	})
	r.CaseFinished(Outcome{
		ReferenceOutput: "NPV: 398.67",
		CandidateOutput: "NPV: 398.68",
		Passed:          false,
		Reason:          "Mojo output differs from C++ reference",
	})
	r.SessionFinished(1500 * time.Millisecond)
}

func TestReporter_EventOrder(t *testing.T) {
	sender := newFakeSender()
	r, _ := buildReporter(sender)

	runTwoCaseSession(r)

	expected := []string{
		protocol.TypeSessionStart,
		protocol.TypeTestStart, protocol.TypeTestInputs, protocol.TypeTestOutputs, protocol.TypeTestResult,
		protocol.TypeTestStart, protocol.TypeTestInputs, protocol.TypeTestOutputs, protocol.TypeTestResult,
		protocol.TypeSessionEnd,
	}
	got := sender.types(t)
	if len(got) != len(expected) {
		t.Fatalf("expected %d events, got %d: %v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("event %d: expected %s, got %s", i, expected[i], got[i])
		}
	}
	if !sender.closed {
		t.Error("connection should be closed after session end")
	}
}

func TestReporter_StartsEqualResults(t *testing.T) {
	sender := newFakeSender()
	r, _ := buildReporter(sender)

	runTwoCaseSession(r)

	starts, results := 0, 0
	for _, typ := range sender.types(t) {
		switch typ {
		case protocol.TypeTestStart:
			starts++
		case protocol.TypeTestResult:
			results++
		}
	}
	if starts != 2 || results != 2 {
		t.Errorf("expected 2 starts and 2 results, got %d and %d", starts, results)
	}
}

func TestReporter_SessionCounters(t *testing.T) {
	sender := newFakeSender()
	r, _ := buildReporter(sender)

	runTwoCaseSession(r)

	s := r.Session()
	if s.TestsRun != 2 || s.TestsPassed != 1 || s.TestsFailed != 1 {
		t.Errorf("unexpected counters: run=%d passed=%d failed=%d",
			s.TestsRun, s.TestsPassed, s.TestsFailed)
	}
	if s.TestsPassed+s.TestsFailed != s.TestsRun {
		t.Error("passed + failed must equal tests run")
	}
	if s.TestsRun > s.TotalTests {
		t.Error("tests run must not exceed total")
	}

	// session_end payload must carry the same counters.
	last := sender.records[len(sender.records)-1]
	env, err := protocol.Decode(bytes.TrimSpace(last))
	if err != nil {
		t.Fatalf("decode session_end: %v", err)
	}
	var end protocol.SessionEndData
	if err := json.Unmarshal(env.Data, &end); err != nil {
		t.Fatalf("decode session_end payload: %v", err)
	}
	if end.Total != 2 || end.Passed != 1 || end.Failed != 1 {
		t.Errorf("unexpected summary: %+v", end)
	}
}

func TestReporter_DiffInFailedResult(t *testing.T) {
	sender := newFakeSender()
	r, _ := buildReporter(sender)

	runTwoCaseSession(r)

	var results []protocol.TestResultData
	for _, rec := range sender.records {
		env, err := protocol.Decode(bytes.TrimSpace(rec))
		if err != nil {
			t.Fatal(err)
		}
		if env.Type != protocol.TypeTestResult {
			continue
		}
		var res protocol.TestResultData
		if err := json.Unmarshal(env.Data, &res); err != nil {
			t.Fatal(err)
		}
		results = append(results, res)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	pass := results[0]
	if pass.Status != domain.StatusPass || pass.Diff != "" || pass.Reason != "" {
		t.Errorf("pass result should have no diff or reason: %+v", pass)
	}

	fail := results[1]
	if fail.Status != domain.StatusFail {
		t.Errorf("expected FAIL, got %s", fail.Status)
	}
	if fail.Diff != "0.0100 (C++: 398.67, Mojo: 398.68)" {
		t.Errorf("unexpected diff: %q", fail.Diff)
	}
	if fail.Reason != "Mojo output differs from C++ reference" {
		t.Errorf("unexpected reason: %q", fail.Reason)
	}
	if len(fail.DetailedDiffs) != 1 {
		t.Errorf("expected one detailed diff, got %d", len(fail.DetailedDiffs))
	}
}

func TestReporter_FallbackLatch(t *testing.T) {
	sender := newFakeSender()
	sender.failFrom = 3 // fail on the first test_outputs event
	r, fallbackOut := buildReporter(sender)

	runTwoCaseSession(r)

	if !r.FallbackEngaged() {
		t.Fatal("fallback latch should be set after a send failure")
	}
	// After the failing send, no further sends may be attempted.
	if sender.sends != 4 {
		t.Errorf("expected exactly 4 send attempts (3 ok + 1 failed), got %d", sender.sends)
	}

	// The failed event and everything after it must appear as text.
	out := fallbackOut.String()
	for _, marker := range []string{
		"CPP_STDOUT_BEGIN",
		"OVERALL_STATUS: PASS",
		"TEST_ITEM_ID: test-pepe-002",
		"OVERALL_STATUS: FAIL",
		"DIFF: 0.0100 (C++: 398.67, Mojo: 398.68)",
		"RUN_SCRIPT_SUMMARY_BEGIN",
		"Tests completed: 2",
		"RUN_SCRIPT_SUMMARY_END",
	} {
		if !strings.Contains(out, marker) {
			t.Errorf("fallback output missing %q:\n%s", marker, out)
		}
	}
}

func TestReporter_NilSenderRunsFallbackOnly(t *testing.T) {
	r, fallbackOut := buildReporter(nil)

	if !r.FallbackEngaged() {
		t.Fatal("nil sender should start latched")
	}
	runTwoCaseSession(r)

	out := fallbackOut.String()
	for _, marker := range []string{
		"TESTS 2",
		"TEST_ITEM_ID: test-pepe-001",
		"DESCRIPTION: Simple test for cash flow calculations",
		"SHARED_INPUT_BEGIN",
		"Cash flow value: 100.00",
		"SHARED_INPUT_END",
		"OVERALL_STATUS: PASS",
		"FAIL_REASON: Mojo output differs from C++ reference",
		"END_OF_TEST_ITEM",
		"Tests passed: 1",
		"Tests failed: 1",
		"Execution time: 1.5s",
	} {
		if !strings.Contains(out, marker) {
			t.Errorf("fallback output missing %q:\n%s", marker, out)
		}
	}
}

func TestReporter_ConnectFailureLatchesFallback(t *testing.T) {
	sender := newFakeSender()
	sender.connectOK = false
	r, fallbackOut := buildReporter(sender)

	if !r.FallbackEngaged() {
		t.Fatal("failed initial connect should latch fallback")
	}

	r.SessionStarted(1)
	if sender.sends != 0 {
		t.Error("no sends should be attempted once latched")
	}
	if !strings.Contains(fallbackOut.String(), "TESTS 1") {
		t.Error("session start should be rendered as text")
	}
}

func TestReporter_DefaultDescription(t *testing.T) {
	sender := newFakeSender()
	r, _ := buildReporter(sender)

	r.SessionStarted(1)
	r.CaseStarted("test-003", "", nil)
	r.CaseFinished(Outcome{
		ReferenceOutput: "IRR: 0.1016",
		CandidateOutput: "IRR: 0.1016",
		Passed:          true,
	})
	r.SessionFinished(time.Second)

	env, err := protocol.Decode(bytes.TrimSpace(sender.records[1]))
	if err != nil {
		t.Fatal(err)
	}
	var start protocol.TestStartData
	if err := json.Unmarshal(env.Data, &start); err != nil {
		t.Fatal(err)
	}
	if start.Description != domain.NoDescription {
		t.Errorf("expected %q, got %q", domain.NoDescription, start.Description)
	}
}

func TestReporter_LateBoundInputs(t *testing.T) {
	sender := newFakeSender()
	r, _ := buildReporter(sender)

	r.SessionStarted(1)
	r.CaseStarted("test-004", "late inputs", nil)
	r.CaseFinished(Outcome{
		ReferenceOutput: "NPV: 1.0",
		CandidateOutput: "NPV: 1.0",
		Passed:          true,
		Inputs:          domain.Inputs{{Name: "rate", Value: "0.01"}},
	})
	r.SessionFinished(time.Second)

	// Inputs unknown at setup: test_inputs must still precede test_outputs.
	types := sender.types(t)
	expected := []string{
		protocol.TypeSessionStart,
		protocol.TypeTestStart,
		protocol.TypeTestInputs,
		protocol.TypeTestOutputs,
		protocol.TypeTestResult,
		protocol.TypeSessionEnd,
	}
	for i := range expected {
		if types[i] != expected[i] {
			t.Fatalf("event %d: expected %s, got %s (all: %v)", i, expected[i], types[i], types)
		}
	}
}

func TestReporter_CompilationStatus(t *testing.T) {
	sender := newFakeSender()
	r, _ := buildReporter(sender)

	r.CompilationStatus(protocol.PhaseCPPStart, "building runners")
	r.CompilationStatus(protocol.PhaseCPPEnd, "success")

	types := sender.types(t)
	if len(types) != 2 || types[0] != protocol.TypeCompilationStatus {
		t.Errorf("unexpected events: %v", types)
	}
}
