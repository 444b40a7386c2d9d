package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"qtb/internal/bridge"
	"qtb/internal/config"
	"qtb/internal/domain"
	"qtb/internal/execution"
	"qtb/internal/storage"
	"qtb/internal/suite"
	"qtb/internal/transport"
	"qtb/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	scanner   *suite.Scanner
	filter    *suite.Filter
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *suite.Scanner,
	filter *suite.Filter,
	st storage.Storage,
	formatter *ui.Formatter,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// Discover suites
	paths, err := rc.scanner.Scan(rc.config.GetSuitePath())
	if err != nil {
		return err
	}
	suites, err := suite.LoadAll(paths)
	if err != nil {
		return err
	}

	// Filter cases
	suites = rc.filter.FilterSuites(suites, rc.config.Flags.NameFilter)

	total := suite.CaseCount(suites)
	if total == 0 {
		color.Yellow("No cases to compare")
		return nil
	}

	var debugW io.Writer
	if rc.config.Debug {
		debugW = os.Stderr
	}

	// A nil Sender keeps the reporter in fallback mode from the start.
	var sender bridge.Sender
	if !rc.config.NoSocket {
		sender = transport.NewClient(rc.config.Hosts, rc.config.Port, transport.Options{
			DialTimeout:      rc.config.DialTimeout,
			ReconnectTimeout: rc.config.ReconnectTimeout,
			InitialRounds:    rc.config.InitialRounds,
			RetryDelay:       rc.config.RetryDelay,
			Debug:            debugW,
		})
	}

	reporter := bridge.NewReporter(sender, ui.NewFallbackRenderer(os.Stdout), debugW)

	runner := execution.NewRunner(rc.config.RunTimeout, rc.config.ProjectPath)
	executor := execution.NewExecutor(runner, reporter)
	if !reporter.FallbackEngaged() {
		// The plain text protocol owns stdout in fallback mode.
		executor.SetProgress(ui.NewProgressBar(total))
	}

	results, duration, err := executor.Execute(suites)
	if err != nil {
		return err
	}

	// Save results
	if err := rc.storage.Save(results, duration); err != nil {
		return fmt.Errorf("failed to save session results: %w", err)
	}
	rc.recordHistory(results, duration)

	if reporter.FallbackEngaged() {
		return nil
	}
	return rc.formatter.PrintMetaStats()
}

// recordHistory appends the run summary to the history database. Failures
// never fail the run itself.
func (rc *RunCommand) recordHistory(results []domain.CaseResult, duration time.Duration) {
	history, err := storage.OpenHistory(rc.config.GetHistoryDBPath())
	if err != nil {
		color.Yellow("history: %v", err)
		return
	}
	defer history.Close()

	if err := history.Record(domain.NewSessionMeta(results, duration)); err != nil {
		color.Yellow("history: %v", err)
	}
}
