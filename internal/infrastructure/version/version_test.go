package version

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDescriber implements Describer for testing.
type mockDescriber struct {
	version string
	err     error
}

func (m *mockDescriber) Describe(_ context.Context) (string, error) {
	return m.version, m.err
}

// describerFactory returns a DescriberFactory recording the paths it was asked to open.
func describerFactory(d Describer, openErr error, opened *[]string) DescriberFactory {
	return func(path string) (Describer, error) {
		*opened = append(*opened, path)
		if openErr != nil {
			return nil, openErr
		}
		return d, nil
	}
}

// installedExecutable creates <root>/<release>/bin/ioc-deploy and returns its path.
func installedExecutable(t *testing.T, release string) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), release, "bin")
	require.NoError(t, os.MkdirAll(bin, 0o755))
	exe := filepath.Join(bin, "ioc-deploy")
	require.NoError(t, os.WriteFile(exe, []byte{}, 0o755))
	return exe
}

func TestLookup_Version(t *testing.T) {
	errNoRepo := errors.New("not a repository")

	tests := []struct {
		name         string
		buildVersion string
		release      string
		describer    Describer
		openErr      error
		want         string
	}{
		{
			name:         "build version wins",
			buildVersion: "R9.0.0",
			release:      "R1.0.0",
			describer:    &mockDescriber{version: "R2.0.0"},
			want:         "R9.0.0",
		},
		{
			name:      "git checkout describe",
			release:   "engineering_tools",
			describer: &mockDescriber{version: "R2.0.0-4-gabcdef1"},
			want:      "R2.0.0-4-gabcdef1",
		},
		{
			name:    "release directory",
			release: "R1.4.2",
			openErr: errNoRepo,
			want:    "R1.4.2",
		},
		{
			name:      "describe failure falls back to release directory",
			release:   "R1.4.2",
			describer: &mockDescriber{err: errors.New("no tags")},
			want:      "R1.4.2",
		},
		{
			name:    "unknown",
			release: "latest",
			openErr: errNoRepo,
			want:    Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exe := installedExecutable(t, tt.release)
			var opened []string

			lookup := NewLookupWithExecutable(
				tt.buildVersion,
				func() (string, error) { return exe, nil },
				describerFactory(tt.describer, tt.openErr, &opened),
			)

			assert.Equal(t, tt.want, lookup.Version(context.Background()))
			if tt.buildVersion == "" {
				require.Len(t, opened, 1)
				resolved, err := filepath.EvalSymlinks(filepath.Dir(exe))
				require.NoError(t, err)
				assert.Equal(t, resolved, opened[0])
			}
		})
	}
}

func TestLookup_ExecutableError(t *testing.T) {
	lookup := NewLookupWithExecutable("", func() (string, error) {
		return "", errors.New("no executable")
	}, nil)

	assert.Equal(t, Unknown, lookup.Version(context.Background()))
}

func TestLookup_FollowsSymlink(t *testing.T) {
	exe := installedExecutable(t, "R3.1.0")
	link := filepath.Join(t.TempDir(), "ioc-deploy")
	if err := os.Symlink(exe, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	lookup := NewLookupWithExecutable("", func() (string, error) { return link, nil }, nil)

	assert.Equal(t, "R3.1.0", lookup.Version(context.Background()))
}

func TestNewLookup(t *testing.T) {
	lookup := NewLookup("R1.0.0", nil)

	require.NotNil(t, lookup)
	assert.Equal(t, "R1.0.0", lookup.Version(context.Background()))
}
