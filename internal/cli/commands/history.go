package commands

import (
	"github.com/spf13/cobra"

	"qtb/internal/config"
	"qtb/internal/storage"
	"qtb/internal/ui"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, formatter *ui.Formatter) *HistoryCommand {
	return &HistoryCommand{
		config:    cfg,
		formatter: formatter,
	}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	history, err := storage.OpenHistory(hc.config.GetHistoryDBPath())
	if err != nil {
		return err
	}
	defer history.Close()

	sessions, err := history.Sessions(hc.config.Flags.Limit)
	if err != nil {
		return err
	}

	hc.formatter.PrintHistory(sessions)
	return nil
}
