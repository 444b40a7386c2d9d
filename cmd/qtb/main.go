package main

import (
	"fmt"
	"os"

	"qtb/internal/cli"
	"qtb/internal/cli/commands"
	"qtb/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "qtb",
		Short:   "Quant test bridge",
		Long:    `A comparison harness for numerical kernels. Run every case against the C++ reference and the Mojo candidate, compare outputs and stream results to a terminal UI over TCP.`,
		Version: version,
	}

	// Create initial config with defaults and environment overrides
	cfg := config.New()
	cfg.ApplyEnv()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
