// Package build provides the adapter that builds a deployed IOC.
package build

import (
	"context"
	"io"
	"os"

	"github.com/MyCarrier-DevOps/ioc-deploy/internal/adapters/process"
	"github.com/MyCarrier-DevOps/ioc-deploy/internal/domain"
)

// Logger defines the logging interface for the build adapter.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
}

// MakeBuilder implements domain.Builder by running make in the IOC directory.
// The build output always goes to the terminal.
type MakeBuilder struct {
	binary string
	stdout io.Writer
	stderr io.Writer
	logger Logger
}

// NewMakeBuilder creates a MakeBuilder that runs "make" from PATH.
func NewMakeBuilder(log Logger) *MakeBuilder {
	return NewMakeBuilderWithOutput("make", os.Stdout, os.Stderr, log)
}

// NewMakeBuilderWithOutput creates a MakeBuilder with a custom binary and output destinations.
// This is useful for testing.
func NewMakeBuilderWithOutput(binary string, stdout, stderr io.Writer, log Logger) *MakeBuilder {
	return &MakeBuilder{
		binary: binary,
		stdout: stdout,
		stderr: stderr,
		logger: log,
	}
}

// Build runs make with dir as its working directory.
func (b *MakeBuilder) Build(ctx context.Context, dir string) (domain.CommandResult, error) {
	b.logger.Debug(ctx, "running build", map[string]interface{}{
		"cmd": b.binary,
		"dir": dir,
	})

	return process.Run(ctx, process.Command{
		Name:   b.binary,
		Dir:    dir,
		Stdout: b.stdout,
		Stderr: b.stderr,
	})
}
