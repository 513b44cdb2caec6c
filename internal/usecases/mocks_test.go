package usecases

import (
	"context"

	"github.com/MyCarrier-DevOps/ioc-deploy/internal/domain"
)

// mockLogger implements the Logger interface for testing.
type mockLogger struct {
	warnings []string
	errors   []string
}

func (m *mockLogger) Info(_ context.Context, _ string, _ map[string]interface{})  {}
func (m *mockLogger) Debug(_ context.Context, _ string, _ map[string]interface{}) {}
func (m *mockLogger) Warn(_ context.Context, msg string, _ map[string]interface{}) {
	m.warnings = append(m.warnings, msg)
}
func (m *mockLogger) Error(_ context.Context, msg string, _ error, _ map[string]interface{}) {
	m.errors = append(m.errors, msg)
}

// mockSourceControl implements domain.SourceControl for testing.
// A clone succeeds when exists reports true for its options.
type mockSourceControl struct {
	exists     func(opts domain.CloneOptions) bool
	err        error
	failStatus int
	calls      []domain.CloneOptions
}

func (m *mockSourceControl) Clone(_ context.Context, opts domain.CloneOptions) (domain.CommandResult, error) {
	m.calls = append(m.calls, opts)
	if m.err != nil {
		return domain.CommandResult{}, m.err
	}
	if m.exists != nil && m.exists(opts) {
		return domain.CommandResult{ExitCode: 0}, nil
	}
	status := m.failStatus
	if status == 0 {
		status = 128
	}
	return domain.CommandResult{ExitCode: status, Stderr: "fatal: Remote branch not found"}, nil
}

// clonedNames returns the repository name of every clone attempted.
func (m *mockSourceControl) clonedNames() []string {
	names := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		names = append(names, c.Name)
	}
	return names
}

// clonedTags returns the tag of every clone attempted.
func (m *mockSourceControl) clonedTags() []string {
	tags := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		tags = append(tags, c.Tag)
	}
	return tags
}

// repoExists reports a clone as successful when its name is one of names.
func repoExists(names ...string) func(domain.CloneOptions) bool {
	return func(opts domain.CloneOptions) bool {
		for _, n := range names {
			if opts.Name == n {
				return true
			}
		}
		return false
	}
}

// tagExists reports a clone as successful when it has no tag or its tag is one of tags.
func tagExists(tags ...string) func(domain.CloneOptions) bool {
	return func(opts domain.CloneOptions) bool {
		if opts.Tag == "" {
			return true
		}
		for _, t := range tags {
			if opts.Tag == t {
				return true
			}
		}
		return false
	}
}

// mockBuilder implements domain.Builder for testing.
type mockBuilder struct {
	exitCode int
	err      error
	dirs     []string
}

func (m *mockBuilder) Build(_ context.Context, dir string) (domain.CommandResult, error) {
	m.dirs = append(m.dirs, dir)
	if m.err != nil {
		return domain.CommandResult{}, m.err
	}
	return domain.CommandResult{ExitCode: m.exitCode}, nil
}

// mockConfirmer implements domain.Confirmer for testing.
type mockConfirmer struct {
	answer  bool
	err     error
	prompts []string
}

func (m *mockConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	m.prompts = append(m.prompts, prompt)
	return m.answer, m.err
}
