package usecases

import (
	"context"
	"fmt"
	"path/filepath"
	"unicode"
	"unicode/utf8"

	"github.com/MyCarrier-DevOps/ioc-deploy/internal/domain"
)

// TagCandidates generates the ordered tag names to probe for a release.
type TagCandidates func(release string) []string

// DefaultTagCandidates tolerates the usual release prefix mix-ups.
// In order of priority with no repeats:
//   - the release as given
//   - R1.0.0
//   - v1.0.0
//   - 1.0.0
//
// A release starting with a letter other than R or v has that letter
// replaced; a release starting with anything else gets a prefix added.
func DefaultTagCandidates(release string) []string {
	if release == "" {
		return nil
	}

	first, size := utf8.DecodeRuneInString(release)
	rest := release[size:]

	var variants []string
	switch {
	case first == 'R':
		variants = []string{release, "v" + rest, rest}
	case first == 'v':
		variants = []string{release, "R" + rest, rest}
	case unicode.IsLetter(first):
		variants = []string{release, "R" + rest, "v" + rest, rest}
	default:
		variants = []string{release, "R" + release, "v" + release}
	}

	return uniqueNonEmpty(variants)
}

func uniqueNonEmpty(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// ReleaseTagResolver verifies release tags by probe-cloning them.
type ReleaseTagResolver struct {
	prober
	candidates TagCandidates
}

// NewReleaseTagResolver creates a ReleaseTagResolver using scm for the probes.
func NewReleaseTagResolver(scm domain.SourceControl, log Logger, opts ResolverOptions) *ReleaseTagResolver {
	candidates := opts.TagCandidates
	if candidates == nil {
		candidates = DefaultTagCandidates
	}

	return &ReleaseTagResolver{
		prober: prober{
			scm:         scm,
			logger:      log,
			verbose:     opts.Verbose,
			scratchRoot: opts.ScratchRoot,
		},
		candidates: candidates,
	}
}

// Resolve returns the first variant of release that exists on org/name.
// Later variants are not probed once one succeeds.
// Returns an error wrapping domain.ErrNotFound if the variants run out.
func (r *ReleaseTagResolver) Resolve(ctx context.Context, name, org, release string) (string, error) {
	repository := org + "/" + name

	var resolved string
	err := r.withScratchDir(ctx, func(dir string) error {
		for i, tag := range r.candidates(release) {
			r.logger.Debug(ctx, fmt.Sprintf("Checking for release %s in %s", tag, repository), nil)

			found, err := r.probe(ctx, domain.CloneOptions{
				Org:       org,
				Name:      name,
				Tag:       tag,
				WorkDir:   dir,
				TargetDir: filepath.Join(dir, fmt.Sprintf("tag-%d", i)),
			})
			if err != nil {
				return err
			}
			if !found {
				r.logger.Warn(ctx, fmt.Sprintf("Did not find release %s in %s", tag, repository), nil)
				continue
			}

			r.logger.Info(ctx, fmt.Sprintf("Release %s exists in %s", tag, repository), nil)
			resolved = tag
			return nil
		}

		return fmt.Errorf("%w: unable to find %s in %s", domain.ErrNotFound, release, repository)
	})
	if err != nil {
		return "", err
	}

	return resolved, nil
}
