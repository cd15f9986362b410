package analyzer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/santaclaude2025/ccretro/pkg/config"
	"github.com/santaclaude2025/ccretro/pkg/logger"
)

// ExitError reports a non-zero exit of the model CLI
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("claude CLI exited with status %d", e.Code)
}

// CommandRunner runs a process with stdin attached and returns its output.
// A non-zero exit is reported as *exec.ExitError, as os/exec does.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, stdin io.Reader) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// Run implements CommandRunner. On cancellation the whole process group is
// killed, and Run returns at most CLIWaitDelay later even if grandchildren
// still hold the output pipes.
func (ExecRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.WaitDelay = config.CLIWaitDelay
	setProcessGroup(cmd)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// CLIInvoker runs `claude -p` in print mode. The prompt is passed through a
// temporary file on stdin because it can exceed argument length limits.
type CLIInvoker struct {
	Binary  string
	Model   string
	Timeout time.Duration
	Runner  CommandRunner
	TempDir string // "" means os.TempDir()
}

// NewCLIInvoker returns an invoker for the given binary and model alias
func NewCLIInvoker(binary, model string) *CLIInvoker {
	return &CLIInvoker{
		Binary:  binary,
		Model:   model,
		Timeout: config.ModelTimeout,
		Runner:  ExecRunner{},
	}
}

// Args returns the CLI arguments
func (c *CLIInvoker) Args() []string {
	return []string{"-p", "--model", c.Model, "--output-format", "text"}
}

// Invoke implements Invoker. The temp file is removed on every path.
func (c *CLIInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	f, err := os.CreateTemp(c.TempDir, "ccretro-prompt-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create prompt file: %w", err)
	}
	defer func() {
		f.Close()
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Failed to remove prompt file %s: %v", f.Name(), err)
		}
	}()

	if _, err := f.WriteString(prompt); err != nil {
		return "", fmt.Errorf("failed to write prompt file: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind prompt file: %w", err)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = config.ModelTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Info("Running %s %v (prompt %d bytes)", c.Binary, c.Args(), len(prompt))
	stdout, stderr, err := c.Runner.Run(ctx, c.Binary, c.Args(), f)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		return "", &ExitError{Code: exitErr.ExitCode(), Stderr: string(stderr)}
	case err != nil:
		return "", fmt.Errorf("failed to run %s: %w", c.Binary, err)
	}

	return string(stdout), nil
}
