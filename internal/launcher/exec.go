package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Describes a single external process invocation.
type Command struct {
	Name string   // Program to run (e.g., "docker").
	Args []string // Arguments, not including the program name.
	Dir  string   // Working directory. Empty means the caller's directory.
	Env  []string // Extra "KEY=VALUE" entries appended to the parent environment.
}

// Returns the rendered command line, for logs and error messages.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runs commands. All external process invocations go through this interface
// so that tests can substitute a fake.
type Executor interface {

	// Runs the command and returns its captured stdout.
	Output(ctx context.Context, cmd Command) ([]byte, error)

	// Runs the command and returns its combined stdout and stderr.
	CombinedOutput(ctx context.Context, cmd Command) ([]byte, error)
}

// Default executor used by this package. Tests may replace it.
var Default Executor = systemExecutor{}

// Executor backed by os/exec.
type systemExecutor struct{}

func (systemExecutor) Output(ctx context.Context, cmd Command) ([]byte, error) {
	c := newExecCmd(ctx, cmd)
	out, err := c.Output()
	if err != nil {
		return nil, newProcessError(cmd, combinedFromOutputErr(out, err), err)
	}
	return out, nil
}

func (systemExecutor) CombinedOutput(ctx context.Context, cmd Command) ([]byte, error) {
	c := newExecCmd(ctx, cmd)
	out, err := c.CombinedOutput()
	if err != nil {
		return out, newProcessError(cmd, out, err)
	}
	return out, nil
}

// Builds an exec.Cmd from a [Command].
func newExecCmd(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	return c
}

// Merges captured stdout with the stderr an exec.ExitError carries, so the
// error report contains everything the process wrote.
func combinedFromOutputErr(stdout []byte, err error) []byte {
	out := stdout
	if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
		out = append(append([]byte{}, stdout...), exitErr.Stderr...)
	}
	return out
}

// Reported when an external process could not be started or exited with a
// non-zero code. Carries the full command line and the captured output for
// diagnosis. Process failures are never retried.
type ProcessError struct {
	CommandLine string // The command line that was invoked.
	Output      []byte // Combined output captured from the process.
	cause       error  // Underlying error from os/exec.
}

func newProcessError(cmd Command, output []byte, cause error) *ProcessError {
	return &ProcessError{
		CommandLine: cmd.String(),
		Output:      output,
		cause:       cause,
	}
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("command %q failed: %v", e.CommandLine, e.cause)
	if out := strings.TrimSpace(string(e.Output)); out != "" {
		msg += "\noutput:\n" + out
	}
	return msg
}

func (e *ProcessError) Unwrap() error {
	return e.cause
}

// Runs a command with combined output capture.
//
// The command line is logged before execution. Every external invocation in
// this codebase goes through here or through [Capture].
func Run(ctx context.Context, cmd Command) ([]byte, error) {
	slog.Debug("running command", "command", cmd.String())
	return Default.CombinedOutput(ctx, cmd)
}

// Runs a command and returns its captured stdout.
func Capture(ctx context.Context, cmd Command) ([]byte, error) {
	slog.Debug("running command", "command", cmd.String())
	return Default.Output(ctx, cmd)
}
