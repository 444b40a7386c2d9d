package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"qtb/internal/config"
	"qtb/internal/protocol"
	"qtb/internal/transport"
)

// ListenCommand handles the listen command
type ListenCommand struct {
	config *config.Config
}

// NewListenCommand creates a new ListenCommand
func NewListenCommand(cfg *config.Config) *ListenCommand {
	return &ListenCommand{config: cfg}
}

// Execute runs the command
func (lc *ListenCommand) Execute(cmd *cobra.Command, args []string) error {
	listener, err := transport.Listen(lc.config.Port)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		listener.Close()
	}()

	color.Cyan("Listening on %s (Ctrl+C to stop)", listener.Addr())
	return listener.Serve(printEvent)
}

// printEvent renders one received event in a compact human form.
func printEvent(env protocol.Envelope) {
	switch env.Type {
	case protocol.TypeSessionStart:
		var data protocol.SessionStartData
		if json.Unmarshal(env.Data, &data) == nil {
			color.Cyan("▶ session started: %d case(s)", data.TestCount)
		}
	case protocol.TypeCompilationStatus:
		var data protocol.CompilationStatusData
		if json.Unmarshal(env.Data, &data) == nil {
			fmt.Printf("  compile %s: %s\n", data.Phase, data.Info)
		}
	case protocol.TypeTestStart:
		var data protocol.TestStartData
		if json.Unmarshal(env.Data, &data) == nil {
			fmt.Printf("• %s  %s\n", data.ID, data.Description)
		}
	case protocol.TypeTestInputs:
		var data protocol.TestInputsData
		if json.Unmarshal(env.Data, &data) == nil {
			for _, input := range data.Inputs {
				fmt.Printf("    %s: %s\n", input.Name, input.Value)
			}
		}
	case protocol.TypeTestOutputs:
		var data protocol.TestOutputsData
		if json.Unmarshal(env.Data, &data) == nil {
			fmt.Printf("    cpp:  %s\n    mojo: %s\n", data.CPPOutput, data.MojoOutput)
		}
	case protocol.TypeTestResult:
		var data protocol.TestResultData
		if json.Unmarshal(env.Data, &data) != nil {
			return
		}
		if data.Status == "PASS" {
			color.Green("    PASS (%.3fs)", data.Duration)
		} else {
			color.Red("    FAIL (%.3fs)", data.Duration)
			if data.Diff != "" {
				color.Red("    diff: %s", data.Diff)
			} else if data.Reason != "" {
				color.Red("    %s", data.Reason)
			}
		}
	case protocol.TypeSessionEnd:
		var data protocol.SessionEndData
		if json.Unmarshal(env.Data, &data) == nil {
			color.Cyan("■ session ended: %d passed, %d failed in %.2fs", data.Passed, data.Failed, data.Duration)
		}
	default:
		fmt.Printf("? unknown event type %q\n", env.Type)
	}
}
