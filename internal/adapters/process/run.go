// Package process runs external tools and translates their outcome into domain results.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/MyCarrier-DevOps/ioc-deploy/internal/domain"
)

// Command describes one external tool invocation.
type Command struct {
	// Name is the executable, looked up on PATH.
	Name string

	// Args are the command-line arguments.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Quiet captures output instead of writing it to Stdout and Stderr.
	Quiet bool

	// Stdout and Stderr receive the tool output when Quiet is false.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes cmd and waits for it to finish.
//
// A process that exits on its own is reported through CommandResult, whatever
// its status. Failing to start, being killed by a signal, or being cancelled
// through ctx is returned as an error wrapping domain.ErrToolInvocation.
func Run(ctx context.Context, cmd Command) (domain.CommandResult, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir

	var stderr bytes.Buffer
	if cmd.Quiet {
		c.Stdout = io.Discard
		c.Stderr = &stderr
	} else {
		c.Stdout = cmd.Stdout
		c.Stderr = cmd.Stderr
	}

	err := c.Run()
	if err == nil {
		return domain.CommandResult{ExitCode: 0, Stderr: stderr.String()}, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.CommandResult{}, fmt.Errorf("%w: %s: %w", domain.ErrToolInvocation, cmd.Name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return domain.CommandResult{ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}, nil
	}

	return domain.CommandResult{}, fmt.Errorf("%w: %s: %w", domain.ErrToolInvocation, cmd.Name, err)
}
