package execution

import (
	"time"

	"qtb/internal/bridge"
	"qtb/internal/domain"
	"qtb/internal/protocol"
	"qtb/internal/suite"
	"qtb/internal/ui"
)

// Executor drives the bridge hooks through a full comparison session.
// Cases run strictly sequentially; the bridge relies on that ordering.
type Executor struct {
	runner   *Runner
	hooks    bridge.Hooks
	progress *ui.ProgressBar
}

// NewExecutor creates an Executor reporting through the given hooks.
func NewExecutor(runner *Runner, hooks bridge.Hooks) *Executor {
	return &Executor{runner: runner, hooks: hooks}
}

// SetProgress sets the progress bar for the executor.
func (e *Executor) SetProgress(progress *ui.ProgressBar) {
	e.progress = progress
}

// Execute runs every case of every suite, reporting the lifecycle through
// the hooks, and returns the collected results with the session duration.
func (e *Executor) Execute(suites []*suite.Suite) ([]domain.CaseResult, time.Duration, error) {
	start := time.Now()
	total := suite.CaseCount(suites)
	e.hooks.SessionStarted(total)

	var results []domain.CaseResult
	completed, passed, failed := 0, 0, 0

	for _, s := range suites {
		if err := e.compile(s); err != nil {
			e.hooks.SessionFinished(time.Since(start))
			return results, time.Since(start), err
		}

		for _, c := range s.Cases {
			result := e.runCase(c)
			results = append(results, result)

			completed++
			if result.Passed() {
				passed++
			} else {
				failed++
			}
			if e.progress != nil {
				e.progress.Update(completed, passed, failed)
			}
		}
	}

	if e.progress != nil {
		e.progress.Finish()
	}

	duration := time.Since(start)
	e.hooks.SessionFinished(duration)
	return results, duration, nil
}

// compile runs the suite's per-side compile commands, reporting progress as
// compilation_status events. A failing compile aborts the run.
func (e *Executor) compile(s *suite.Suite) error {
	if len(s.Compile.CPP) > 0 {
		e.hooks.CompilationStatus(protocol.PhaseCPPStart, s.Name)
		if _, err := e.runner.Run(s.Compile.CPP); err != nil {
			e.hooks.CompilationStatus(protocol.PhaseCPPEnd, "failed")
			return err
		}
		e.hooks.CompilationStatus(protocol.PhaseCPPEnd, "success")
	}
	if len(s.Compile.Mojo) > 0 {
		e.hooks.CompilationStatus(protocol.PhaseMojoStart, s.Name)
		if _, err := e.runner.Run(s.Compile.Mojo); err != nil {
			e.hooks.CompilationStatus(protocol.PhaseMojoEnd, "failed")
			return err
		}
		e.hooks.CompilationStatus(protocol.PhaseMojoEnd, "success")
	}
	return nil
}

func (e *Executor) runCase(c suite.Case) domain.CaseResult {
	e.hooks.CaseStarted(c.ID, c.Description, c.Inputs)
	caseStart := time.Now()

	refOutput, refErr := e.sideOutput(c.CPPCmd, c.CPPOutput)
	candOutput, candErr := e.sideOutput(c.MojoCmd, c.MojoOutput)

	passed := refErr == nil && candErr == nil && refOutput == candOutput
	reason := ""
	switch {
	case refErr != nil:
		reason = "C++ reference runner failed: " + refErr.Error()
	case candErr != nil:
		reason = "Mojo candidate runner failed: " + candErr.Error()
	case !passed:
		reason = "Mojo output differs from C++ reference"
	}

	e.hooks.CaseFinished(bridge.Outcome{
		ReferenceOutput: refOutput,
		CandidateOutput: candOutput,
		Passed:          passed,
		Reason:          reason,
	})

	status := domain.StatusFail
	if passed {
		status = domain.StatusPass
	}
	description := c.Description
	if description == "" {
		description = domain.NoDescription
	}
	return domain.CaseResult{
		ID:              c.ID,
		Description:     description,
		Status:          status,
		DurationSeconds: time.Since(caseStart).Seconds(),
		Inputs:          c.Inputs,
		ReferenceOutput: refOutput,
		CandidateOutput: candOutput,
		Reason:          reason,
		Diff:            bridge.DiffNote(refOutput, candOutput),
	}
}

// sideOutput resolves one side's output: run its command when declared,
// otherwise use the embedded expected output.
func (e *Executor) sideOutput(cmd suite.Command, embedded string) (string, error) {
	if len(cmd) > 0 {
		return e.runner.Run(cmd)
	}
	return embedded, nil
}
