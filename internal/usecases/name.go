package usecases

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MyCarrier-DevOps/ioc-deploy/internal/domain"
)

// NameCandidates generates the ordered repository names to probe for a short name.
type NameCandidates func(name string) []string

// DefaultNameCandidates keeps well-formed names as they are and expands
// anything else to ioc-common-<name>. Only one candidate is ever produced.
//
// For example "ioc-common-gigECam" is kept, while "ads-ioc" becomes
// "ioc-common-ads-ioc".
func DefaultNameCandidates(name string) []string {
	if domain.IsWellFormedName(name) {
		return []string{name}
	}
	return []string{domain.IOCNamePrefix + "-" + domain.CommonCategory + "-" + name}
}

// RepoNameResolver verifies repository names by probe-cloning them.
type RepoNameResolver struct {
	prober
	candidates NameCandidates
}

// NewRepoNameResolver creates a RepoNameResolver using scm for the probes.
func NewRepoNameResolver(scm domain.SourceControl, log Logger, opts ResolverOptions) *RepoNameResolver {
	candidates := opts.NameCandidates
	if candidates == nil {
		candidates = DefaultNameCandidates
	}

	return &RepoNameResolver{
		prober: prober{
			scm:         scm,
			logger:      log,
			verbose:     opts.Verbose,
			scratchRoot: opts.ScratchRoot,
		},
		candidates: candidates,
	}
}

// Resolve returns the first name candidate that exists in org.
// Returns an error wrapping domain.ErrNotFound if none of them do.
func (r *RepoNameResolver) Resolve(ctx context.Context, name, org string) (string, error) {
	candidates := r.candidates(name)
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: no repository name candidates for %q", domain.ErrNotFound, name)
	}

	var resolved string
	err := r.withScratchDir(ctx, func(dir string) error {
		for i, candidate := range candidates {
			if candidate != name {
				r.logger.Warn(ctx, fmt.Sprintf("%s is not an ioc name, trying %s", name, candidate), nil)
			}
			r.logger.Debug(ctx, fmt.Sprintf("Checking for %s in org %s", candidate, org), nil)

			found, err := r.probe(ctx, domain.CloneOptions{
				Org:       org,
				Name:      candidate,
				WorkDir:   dir,
				TargetDir: filepath.Join(dir, fmt.Sprintf("name-%d", i)),
			})
			if err != nil {
				return err
			}
			if found {
				resolved = candidate
				return nil
			}
		}

		return fmt.Errorf(
			"%w: error cloning repo, make sure %s exists in %s and check your permissions",
			domain.ErrNotFound,
			strings.Join(candidates, ", "),
			org,
		)
	})
	if err != nil {
		return "", err
	}

	return resolved, nil
}
