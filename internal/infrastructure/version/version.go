// Package version determines which release of ioc-deploy is running.
package version

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// Unknown is reported when no better version can be found.
const Unknown = "unknown.dev"

// Describer describes a checkout by its nearest tag.
type Describer interface {
	Describe(ctx context.Context) (string, error)
}

// DescriberFactory opens a Describer for the checkout containing path.
type DescriberFactory func(path string) (Describer, error)

// Lookup resolves the running version.
//
// In order: the version stamped at build time, the tag describing the git
// checkout the executable lives in, the release directory the executable was
// installed under (e.g. .../R1.2.0/bin/ioc-deploy), and finally Unknown.
type Lookup struct {
	buildVersion string
	executable   func() (string, error)
	describe     DescriberFactory
}

// NewLookup creates a Lookup for the current executable.
func NewLookup(buildVersion string, describe DescriberFactory) *Lookup {
	return NewLookupWithExecutable(buildVersion, os.Executable, describe)
}

// NewLookupWithExecutable creates a Lookup with a custom executable locator.
// This is useful for testing.
func NewLookupWithExecutable(
	buildVersion string,
	executable func() (string, error),
	describe DescriberFactory,
) *Lookup {
	return &Lookup{
		buildVersion: buildVersion,
		executable:   executable,
		describe:     describe,
	}
}

// Version returns the best available version string. It never fails.
func (l *Lookup) Version(ctx context.Context) string {
	if l.buildVersion != "" {
		return l.buildVersion
	}

	exe, err := l.executable()
	if err != nil {
		return Unknown
	}
	if resolved, evalErr := filepath.EvalSymlinks(exe); evalErr == nil {
		exe = resolved
	}
	dir := filepath.Dir(exe)

	if l.describe != nil {
		if d, openErr := l.describe(dir); openErr == nil {
			if v, descErr := d.Describe(ctx); descErr == nil && v != "" {
				return v
			}
		}
	}

	if release := filepath.Base(filepath.Dir(dir)); strings.HasPrefix(release, "R") {
		return release
	}

	return Unknown
}
