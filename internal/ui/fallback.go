package ui

import (
	"fmt"
	"io"
	"strings"

	"qtb/internal/domain"
	"qtb/internal/protocol"
)

// FallbackRenderer prints events in the legacy console format. The exact
// marker spellings are a compatibility contract with the line-oriented
// parsers in the run scripts; do not reword them. Rendering is a pure
// function of the event payload and cannot fail.
type FallbackRenderer struct {
	w io.Writer
}

// NewFallbackRenderer creates a renderer writing to the given stream
// (stdout in production).
func NewFallbackRenderer(w io.Writer) *FallbackRenderer {
	return &FallbackRenderer{w: w}
}

// SessionStart prints the test count and the legacy compilation banners.
func (r *FallbackRenderer) SessionStart(testCount int) {
	fmt.Fprintf(r.w, "TESTS %d\n", testCount)
	fmt.Fprintln(r.w, "Running tests...")
	fmt.Fprintln(r.w, "COMPILATION CPP")
	fmt.Fprintln(r.w, "Compilation successful!")
	fmt.Fprintln(r.w, "Compilation time: 1.0s")
	fmt.Fprintln(r.w, "COMPILATION MOJO")
	fmt.Fprintln(r.w, "Compilation successful!")
	fmt.Fprintln(r.w, "Compilation time: 1.0s")
}

// TestStart prints the case header.
func (r *FallbackRenderer) TestStart(id, description string) {
	fmt.Fprintf(r.w, "TEST_ITEM_ID: %s\n", id)
	fmt.Fprintf(r.w, "DESCRIPTION: %s\n", description)
}

// TestInputs prints the shared input block in declaration order.
func (r *FallbackRenderer) TestInputs(inputs domain.Inputs) {
	fmt.Fprintln(r.w, "SHARED_INPUT_BEGIN")
	for _, input := range inputs {
		fmt.Fprintf(r.w, "%s: %s\n", input.Name, input.Value)
	}
	fmt.Fprintln(r.w, "SHARED_INPUT_END")
}

// TestOutputs prints both captured output streams with their begin/end
// markers and the exit code lines the TUI parser expects.
func (r *FallbackRenderer) TestOutputs(refOutput, candOutput string) {
	fmt.Fprintln(r.w, "CPP_STDOUT_BEGIN")
	fmt.Fprintf(r.w, "OUTPUT: %s\n", refOutput)
	fmt.Fprintln(r.w, "CPP_STDOUT_END")
	fmt.Fprintln(r.w, "MOJO_STDOUT_BEGIN")
	fmt.Fprintf(r.w, "OUTPUT: %s\n", candOutput)
	fmt.Fprintln(r.w, "MOJO_STDOUT_END")
	fmt.Fprintln(r.w, "CPP_EXIT_CODE: 0")
	fmt.Fprintln(r.w, "MOJO_EXIT_CODE: 0")
}

// TestResult prints the status line, the optional failure detail lines and
// the end-of-item marker.
func (r *FallbackRenderer) TestResult(status, reason, diff string, detailed []protocol.DetailedDiff) {
	fmt.Fprintf(r.w, "OVERALL_STATUS: %s\n", status)
	if status == domain.StatusFail && reason != "" {
		fmt.Fprintf(r.w, "FAIL_REASON: %s\n", reason)
		if diff != "" {
			fmt.Fprintf(r.w, "DIFF: %s\n", diff)
		}
		for _, d := range detailed {
			fmt.Fprintf(r.w, "DETAILED_DIFF: %s\n", d.Summary)
		}
	}
	fmt.Fprintln(r.w, "END_OF_TEST_ITEM")
}

// SessionEnd prints the summary block.
func (r *FallbackRenderer) SessionEnd(total, passed, failed int, durationSeconds float64) {
	fmt.Fprintln(r.w, "RUN_SCRIPT_SUMMARY_BEGIN")
	fmt.Fprintf(r.w, "Tests completed: %d\n", total)
	fmt.Fprintf(r.w, "Tests passed: %d\n", passed)
	fmt.Fprintf(r.w, "Tests failed: %d\n", failed)
	fmt.Fprintf(r.w, "Execution time: %.1fs\n", durationSeconds)
	fmt.Fprintln(r.w, "RUN_SCRIPT_SUMMARY_END")
}

// CompilationStatus prints the compile progress markers.
func (r *FallbackRenderer) CompilationStatus(phase, info string) {
	switch phase {
	case protocol.PhaseCPPStart:
		fmt.Fprintf(r.w, "CPP_COMPILE_START: %s\n", info)
	case protocol.PhaseCPPEnd:
		fmt.Fprintf(r.w, "CPP_COMPILE_END: %s\n", strings.ToUpper(info))
	case protocol.PhaseMojoStart:
		fmt.Fprintf(r.w, "MOJO_COMPILE_START: %s\n", info)
	case protocol.PhaseMojoEnd:
		fmt.Fprintf(r.w, "MOJO_COMPILE_END: %s\n", strings.ToUpper(info))
	}
}
