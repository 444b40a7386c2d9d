package protocol

import "qtb/internal/domain"

// Event types understood by the TUI consumer. The set is closed; unknown
// types would be dropped on the far end.
const (
	TypeSessionStart      = "session_start"
	TypeTestStart         = "test_start"
	TypeTestInputs        = "test_inputs"
	TypeTestOutputs       = "test_outputs"
	TypeTestResult        = "test_result"
	TypeSessionEnd        = "session_end"
	TypeCompilationStatus = "compilation_status"
)

// Compilation phases carried by compilation_status events.
const (
	PhaseCPPStart  = "cpp_start"
	PhaseCPPEnd    = "cpp_end"
	PhaseMojoStart = "mojo_start"
	PhaseMojoEnd   = "mojo_end"
)

// SessionStartData is emitted after collection, before the first case.
type SessionStartData struct {
	TestCount int     `json:"test_count"`
	StartTime float64 `json:"start_time"`
}

// TestStartData is emitted at case setup.
type TestStartData struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// TestInputsData is emitted when the case inputs become known.
type TestInputsData struct {
	ID     string        `json:"id"`
	Inputs domain.Inputs `json:"inputs"`
}

// TestOutputsData carries the two captured output streams. The field names
// keep the legacy spelling the TUI parses.
type TestOutputsData struct {
	ID         string `json:"id"`
	CPPOutput  string `json:"cpp_output"`
	MojoOutput string `json:"mojo_output"`
}

// DetailedDiff is one structured entry in a result's detailed diff list.
type DetailedDiff struct {
	Type       string `json:"type"`
	CPPOutput  string `json:"cpp_output"`
	MojoOutput string `json:"mojo_output"`
	Summary    string `json:"summary"`
}

// TestResultData is emitted at case completion.
type TestResultData struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	Duration      float64        `json:"duration"`
	Description   string         `json:"description"`
	CPPOutput     string         `json:"cpp_output"`
	MojoOutput    string         `json:"mojo_output"`
	Inputs        domain.Inputs  `json:"inputs"`
	Reason        string         `json:"reason,omitempty"`
	Diff          string         `json:"diff,omitempty"`
	DetailedDiffs []DetailedDiff `json:"detailed_diffs,omitempty"`
}

// SessionEndData is emitted exactly once at session teardown.
type SessionEndData struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Duration float64 `json:"duration"`
}

// CompilationStatusData reports progress of compiling one compared side.
type CompilationStatusData struct {
	Phase string `json:"phase"`
	Info  string `json:"info"`
}
