package ui

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"

	"qtb/internal/config"
	"qtb/internal/domain"
	"qtb/internal/suite"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintMetaStats reads and displays meta statistics from the JSON results file
func (f *Formatter) PrintMetaStats() error {
	outputPath := f.config.GetOutputPath()

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}

	var output domain.SessionOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	meta := output.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                   Comparison Run Statistics                   ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	fmt.Printf("│ %-31s │ ", "Total Cases")
	color.White("%-27d │\n", meta.TotalCases)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Passed Cases")
	color.Green("%-27d │\n", meta.PassedCases)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Failed Cases")
	color.Red("%-27d │\n", meta.FailedCases)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Duration")
	durationStr := fmt.Sprintf("%.2fs", meta.DurationSeconds)
	color.White("%-27s │\n", durationStr)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Timestamp")
	color.White("%-27s │\n", meta.Timestamp)

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	if meta.FailedCases == 0 {
		color.Green("✓ All cases matched!")
	} else {
		color.Red("✗ %d case(s) diverged from the C++ reference", meta.FailedCases)
		fmt.Println()
		f.printFailedCases(output.Cases)
	}

	return nil
}

// printFailedCases lists each diverging case with its diff summary.
func (f *Formatter) printFailedCases(cases []domain.CaseResult) {
	for _, c := range cases {
		if c.Passed() {
			continue
		}
		color.Yellow("  %s", c.ID)
		if c.Diff != "" {
			color.Red("    |_ diff: %s", c.Diff)
		} else if c.Reason != "" {
			color.Red("    |_ %s", c.Reason)
		}
	}
}

// PrintSuiteList displays discovered suites and their cases without running them.
func (f *Formatter) PrintSuiteList(suites []*suite.Suite, showCases bool) error {
	total := 0
	for _, s := range suites {
		color.Cyan("%s (%d cases)", s.Name, len(s.Cases))
		if showCases {
			for _, c := range s.Cases {
				fmt.Printf("  %s", c.ID)
				if c.Description != "" {
					color.New(color.Faint).Printf("  %s", c.Description)
				}
				fmt.Println()
			}
		}
		total += len(s.Cases)
	}
	fmt.Println()
	color.White("Found %d case(s) in %d suite(s)", total, len(suites))
	return nil
}

// PrintHistory displays past session summaries newest first.
func (f *Formatter) PrintHistory(sessions []domain.SessionMeta) {
	if len(sessions) == 0 {
		color.Yellow("No recorded runs")
		return
	}

	fmt.Printf("%-22s %8s %8s %8s %10s\n", "TIMESTAMP", "TOTAL", "PASSED", "FAILED", "DURATION")
	for _, s := range sessions {
		fmt.Printf("%-22s %8d ", s.Timestamp, s.TotalCases)
		color.New(color.FgGreen).Printf("%8d ", s.PassedCases)
		if s.FailedCases > 0 {
			color.New(color.FgRed).Printf("%8d ", s.FailedCases)
		} else {
			fmt.Printf("%8d ", s.FailedCases)
		}
		fmt.Printf("%9.2fs\n", s.DurationSeconds)
	}
}
