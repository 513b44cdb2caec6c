package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/ioc-deploy/internal/domain"
)

// testLogger is a minimal logger for testing that doesn't output anything.
type testLogger struct{}

func (l *testLogger) Debug(_ context.Context, _ string, _ map[string]interface{}) {}
func (l *testLogger) Warn(_ context.Context, _ string, _ map[string]interface{})  {}

// requireGit skips the test when the git binary is unavailable.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// runGit executes a git command in the given directory.
func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, output)
	}
}

// setupRemote publishes a bare repository <root>/<org>/<name> carrying the
// given tags and returns root as a file:// remote base.
func setupRemote(t *testing.T, org, name string, tags ...string) string {
	t.Helper()
	requireGit(t)

	work := t.TempDir()
	runGit(t, work, "init")
	runGit(t, work, "config", "user.email", "test@example.com")
	runGit(t, work, "config", "user.name", "Test User")
	require.NoError(t, os.WriteFile(filepath.Join(work, "Makefile"), []byte("all:\n\t@true\n"), 0o644))
	runGit(t, work, "add", ".")
	runGit(t, work, "commit", "-m", "Initial commit")
	for _, tag := range tags {
		runGit(t, work, "tag", tag)
	}

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, org), 0o755))
	runGit(t, root, "clone", "--bare", work, filepath.Join(root, org, name))

	return "file://" + root + "/"
}

func TestCLIClient_Clone_Integration(t *testing.T) {
	remote := setupRemote(t, "pcdshub", "ioc-common-gigECam", "R1.0.0")
	client := NewCLIClientWithOutput("git", remote, &bytes.Buffer{}, &bytes.Buffer{}, &testLogger{})
	ctx := context.Background()

	t.Run("existing tag", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "R1.0.0")

		result, err := client.Clone(ctx, domain.CloneOptions{
			Org:       "pcdshub",
			Name:      "ioc-common-gigECam",
			Tag:       "R1.0.0",
			TargetDir: target,
			Quiet:     true,
		})

		require.NoError(t, err)
		assert.True(t, result.Succeeded(), "stderr: %s", result.Stderr)
		assert.FileExists(t, filepath.Join(target, "Makefile"))
	})

	t.Run("default branch into work dir", func(t *testing.T) {
		work := t.TempDir()

		result, err := client.Clone(ctx, domain.CloneOptions{
			Org:     "pcdshub",
			Name:    "ioc-common-gigECam",
			WorkDir: work,
			Quiet:   true,
		})

		require.NoError(t, err)
		assert.True(t, result.Succeeded(), "stderr: %s", result.Stderr)
		assert.DirExists(t, filepath.Join(work, "ioc-common-gigECam"))
	})

	t.Run("missing tag", func(t *testing.T) {
		result, err := client.Clone(ctx, domain.CloneOptions{
			Org:       "pcdshub",
			Name:      "ioc-common-gigECam",
			Tag:       "v1.0.0",
			TargetDir: filepath.Join(t.TempDir(), "v1.0.0"),
			Quiet:     true,
		})

		require.NoError(t, err)
		assert.False(t, result.Succeeded())
		assert.NotEmpty(t, result.Stderr)
	})

	t.Run("missing repository", func(t *testing.T) {
		result, err := client.Clone(ctx, domain.CloneOptions{
			Org:       "pcdshub",
			Name:      "ioc-common-missing",
			TargetDir: filepath.Join(t.TempDir(), "missing"),
			Quiet:     true,
		})

		require.NoError(t, err)
		assert.False(t, result.Succeeded())
	})
}

func TestCLIClient_Clone_MissingBinary(t *testing.T) {
	client := NewCLIClientWithOutput(
		filepath.Join(t.TempDir(), "no-git-here"),
		"",
		&bytes.Buffer{},
		&bytes.Buffer{},
		&testLogger{},
	)

	_, err := client.Clone(context.Background(), domain.CloneOptions{Org: "pcdshub", Name: "ioc-foo-bar", Quiet: true})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrToolInvocation)
}
