// Package usecases contains the application business logic.
// This package orchestrates domain entities and interfaces to fulfill use cases.
package usecases

import (
	"context"
	"fmt"
	"os"

	"github.com/MyCarrier-DevOps/ioc-deploy/internal/domain"
)

// Logger defines the logging interface required by the use cases.
// This abstracts the logger dependency to avoid coupling to a specific implementation.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// ResolverOptions tunes how the name and tag resolvers probe the remote.
type ResolverOptions struct {
	// Verbose passes probe clone output through to the terminal.
	Verbose bool

	// ScratchRoot is the parent of the disposable probe directories.
	// Empty means the system temporary directory.
	ScratchRoot string

	// NameCandidates overrides the repository name candidate strategy.
	NameCandidates NameCandidates

	// TagCandidates overrides the release tag candidate strategy.
	TagCandidates TagCandidates
}

// prober runs existence checks through throwaway shallow clones.
type prober struct {
	scm         domain.SourceControl
	logger      Logger
	verbose     bool
	scratchRoot string
}

// withScratchDir creates a disposable directory, runs fn with it and removes it
// on every exit path.
func (p *prober) withScratchDir(ctx context.Context, fn func(dir string) error) error {
	dir, err := os.MkdirTemp(p.scratchRoot, "ioc-deploy-probe-*")
	if err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			p.logger.Warn(ctx, "failed to remove scratch directory", map[string]interface{}{
				"path":  dir,
				"error": rmErr.Error(),
			})
		}
	}()

	return fn(dir)
}

// probe reports whether a shallow clone described by opts succeeds.
// Only a failure to run the client at all is returned as an error.
func (p *prober) probe(ctx context.Context, opts domain.CloneOptions) (bool, error) {
	opts.Quiet = !p.verbose

	result, err := p.scm.Clone(ctx, opts)
	if err != nil {
		return false, err
	}

	if !result.Succeeded() {
		p.logger.Debug(ctx, "probe clone failed", map[string]interface{}{
			"repository": opts.Org + "/" + opts.Name,
			"tag":        opts.Tag,
			"exit_code":  result.ExitCode,
			"stderr":     result.Stderr,
		})
	}

	return result.Succeeded(), nil
}
