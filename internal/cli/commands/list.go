package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"qtb/internal/config"
	"qtb/internal/suite"
	"qtb/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *suite.Scanner
	filter    *suite.Filter
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *suite.Scanner,
	filter *suite.Filter,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	paths, err := lc.scanner.Scan(lc.config.GetSuitePath())
	if err != nil {
		return err
	}
	suites, err := suite.LoadAll(paths)
	if err != nil {
		return err
	}

	// Filter cases
	suites = lc.filter.FilterSuites(suites, lc.config.Flags.NameFilter)

	if suite.CaseCount(suites) == 0 {
		color.Yellow("No cases found")
		return nil
	}

	return lc.formatter.PrintSuiteList(suites, true)
}
