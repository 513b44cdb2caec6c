// Package git provides adapters for interacting with Git repositories.
// Clones shell out to the git binary; local repository inspection uses go-git/v5.
package git

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/MyCarrier-DevOps/ioc-deploy/internal/adapters/process"
	"github.com/MyCarrier-DevOps/ioc-deploy/internal/domain"
)

// DefaultRemoteBase is prepended to "<org>/<name>" to build clone URLs.
const DefaultRemoteBase = "git@github.com:"

// Logger defines the logging interface for the git adapters.
// This interface enables dependency injection and testability.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// CLIClient implements domain.SourceControl using the git command-line client.
type CLIClient struct {
	binary     string
	remoteBase string
	stdout     io.Writer
	stderr     io.Writer
	logger     Logger
}

// NewCLIClient creates a CLIClient that clones from remoteBase using git from PATH.
// An empty remoteBase falls back to DefaultRemoteBase.
func NewCLIClient(remoteBase string, log Logger) *CLIClient {
	return NewCLIClientWithOutput("git", remoteBase, os.Stdout, os.Stderr, log)
}

// NewCLIClientWithOutput creates a CLIClient with a custom binary and output destinations.
// This is useful for testing.
func NewCLIClientWithOutput(binary, remoteBase string, stdout, stderr io.Writer, log Logger) *CLIClient {
	if remoteBase == "" {
		remoteBase = DefaultRemoteBase
	}

	return &CLIClient{
		binary:     binary,
		remoteBase: remoteBase,
		stdout:     stdout,
		stderr:     stderr,
		logger:     log,
	}
}

// RemoteURL returns the clone URL for org/name.
func (c *CLIClient) RemoteURL(org, name string) string {
	return c.remoteBase + org + "/" + name
}

// CloneArgs returns the git arguments for a shallow clone described by opts.
func (c *CLIClient) CloneArgs(opts domain.CloneOptions) []string {
	args := []string{"clone", c.RemoteURL(opts.Org, opts.Name), "--depth", "1"}
	if opts.Tag != "" {
		args = append(args, "-b", opts.Tag)
	}
	if opts.TargetDir != "" {
		args = append(args, opts.TargetDir)
	}
	return args
}

// Clone runs a shallow clone of org/name.
// A nonzero git exit status is returned in the result, not as an error.
func (c *CLIClient) Clone(ctx context.Context, opts domain.CloneOptions) (domain.CommandResult, error) {
	args := c.CloneArgs(opts)

	c.logger.Debug(ctx, "Calling '"+c.binary+" "+strings.Join(args, " ")+"'", map[string]interface{}{
		"workdir": opts.WorkDir,
		"quiet":   opts.Quiet,
	})

	return process.Run(ctx, process.Command{
		Name:   c.binary,
		Args:   args,
		Dir:    opts.WorkDir,
		Quiet:  opts.Quiet,
		Stdout: c.stdout,
		Stderr: c.stderr,
	})
}
