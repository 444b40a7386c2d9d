package commands

import (
	"qtb/internal/cli"
	"qtb/internal/config"
	"qtb/internal/storage"
	"qtb/internal/suite"
	"qtb/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Faills  *FaillsCommand
	Listen  *ListenCommand
	History *HistoryCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := suite.NewScanner([]string{"vendor", "node_modules", "storage"})
	filter := suite.NewFilter()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	viewer := ui.NewFailureViewer(jsonStorage)

	return &Commands{
		Run:     NewRunCommand(cfg, scanner, filter, jsonStorage, formatter),
		List:    NewListCommand(cfg, scanner, filter, formatter),
		Faills:  NewFaillsCommand(cfg, jsonStorage, viewer),
		Listen:  NewListenCommand(cfg),
		History: NewHistoryCommand(cfg, formatter),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run reference/candidate comparisons",
		Long:  "Discover suite files, run every case against both binaries and stream events to a connected consumer",
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Update config with flags after parsing
			cfg.ApplyFlags(flags.ToConfigFlags())
			return nil
		},
	}
	runCmd.Flags().StringVarP(&flags.SuitePath, "suite", "s", "", "Path to a suite file or a directory to scan for *.suite.yaml files")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter cases by id pattern (supports wildcards, e.g., '*pepe*' or 'pricing-0??')")
	runCmd.Flags().IntVar(&flags.Port, "port", 0, "Consumer TCP port (overrides QTB_TUI_PORT)")
	runCmd.Flags().IntVar(&flags.Timeout, "timeout", 0, "Per-subprocess timeout in seconds")
	runCmd.Flags().BoolVar(&flags.NoSocket, "no-socket", false, "Skip the consumer connection and print the plain text protocol")
	runCmd.Flags().BoolVar(&flags.Debug, "debug", false, "Print connection diagnostics on stderr")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered comparison cases",
		Long:  "Scan and list suite files and their cases without executing them",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.ApplyFlags(flags.ToConfigFlags())
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.SuitePath, "suite", "s", "", "Path to a suite file or a directory to scan for *.suite.yaml files")
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter cases by id pattern (supports wildcards, e.g., '*pepe*' or 'pricing-0??')")
	rootCmd.AddCommand(listCmd)

	// Faills command
	faillsCmd := &cobra.Command{
		Use:   "faills",
		Short: "View output discrepancies interactively",
		Long:  "Display diverging cases from the last run in an interactive viewer",
		RunE:  c.Faills.Execute,
	}
	rootCmd.AddCommand(faillsCmd)

	// Listen command
	listenCmd := &cobra.Command{
		Use:   "listen",
		Short: "Print events from a running comparison",
		Long:  "Accept harness connections and print every received event, for debugging the wire protocol",
		RunE:  c.Listen.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.ApplyFlags(flags.ToConfigFlags())
			return nil
		},
	}
	listenCmd.Flags().IntVar(&flags.Port, "port", 0, "TCP port to listen on (overrides QTB_TUI_PORT)")
	rootCmd.AddCommand(listenCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show past run summaries",
		Long:  "List recorded session summaries from the run-history database, newest first",
		RunE:  c.History.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.ApplyFlags(flags.ToConfigFlags())
			return nil
		},
	}
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "n", 0, "Maximum number of runs to show (default 20)")
	rootCmd.AddCommand(historyCmd)
}
