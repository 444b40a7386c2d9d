package execution

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Runner executes one compared-side command as an opaque subprocess and
// captures its text output. What the command computes is its own business;
// the harness only compares the text.
type Runner struct {
	timeout time.Duration
	workDir string
}

// NewRunner creates a Runner with the given per-invocation timeout.
func NewRunner(timeout time.Duration, workDir string) *Runner {
	return &Runner{timeout: timeout, workDir: workDir}
}

// Run invokes the argv and returns its combined output with trailing
// whitespace trimmed. A non-zero exit or timeout is returned as an error
// alongside whatever output was produced.
func (r *Runner) Run(argv []string) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("empty command")
	}

	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = os.Environ()
	cmd.Dir = r.workDir

	output, err := cmd.CombinedOutput()
	text := strings.TrimRight(string(output), "\r\n")
	if err != nil {
		return text, fmt.Errorf("run %s: %w", argv[0], err)
	}
	return text, nil
}
