// Package domain defines the core business entities and interfaces for ioc-deploy.
package domain

import (
	"fmt"
	"strings"
)

// DeploymentRequest contains the parameters for a single IOC deployment.
// It is built once from validated command-line input and never mutated.
type DeploymentRequest struct {
	// Name is the repository short name as typed by the user, e.g. "ioc-foo-bar" or "ads-ioc".
	Name string

	// Release is the release identifier as typed by the user, e.g. "R1.0.0", "v1.0.0" or "1.0.0".
	Release string

	// IOCDir is the base directory IOCs are deployed under.
	IOCDir string

	// Org is the source-control organization that owns the IOC repositories.
	Org string

	// AutoConfirm skips the interactive confirmation prompt.
	AutoConfirm bool

	// DryRun resolves everything but skips directory creation, clone and build.
	DryRun bool

	// Verbose streams external tool output instead of capturing it.
	Verbose bool
}

// Validate checks that the request carries the fields the pipeline needs.
func (r DeploymentRequest) Validate() error {
	if r.Name == "" || r.Release == "" {
		return fmt.Errorf("%w: must provide both --name and --release", ErrValidation)
	}
	return nil
}

// StatusCode is the externally observable outcome of a deployment run.
// Exit statuses reported by the clone or build tools are passed through verbatim.
type StatusCode int

// Well-known status codes.
const (
	StatusSuccess   StatusCode = 0
	StatusException StatusCode = 1
	StatusNoConfirm StatusCode = 2
)

// CloneOptions describes a single shallow clone.
type CloneOptions struct {
	// Org is the organization owning the repository.
	Org string

	// Name is the repository name.
	Name string

	// Tag is the tag or branch to check out. Empty means the default branch.
	Tag string

	// WorkDir is the working directory git runs in. Empty means the current directory.
	WorkDir string

	// TargetDir is the directory to clone into. Empty lets git pick the repository name.
	TargetDir string

	// Quiet captures the tool output instead of passing it through to the terminal.
	Quiet bool
}

// CommandResult is the outcome of an external tool that ran to completion.
// A nonzero ExitCode is a normal negative answer, not an error.
type CommandResult struct {
	// ExitCode is the process exit status.
	ExitCode int

	// Stderr holds the captured standard error when the command ran quietly.
	Stderr string
}

// Succeeded reports whether the command exited with status zero.
func (r CommandResult) Succeeded() bool {
	return r.ExitCode == 0
}

// IOCNamePrefix is the first segment of every well-formed IOC repository name.
const IOCNamePrefix = "ioc"

// CommonCategory is the category used when a short name has to be expanded.
const CommonCategory = "common"

// IsWellFormedName reports whether name looks like ioc-<category>-<rest...>.
func IsWellFormedName(name string) bool {
	parts := strings.Split(name, "-")
	return len(parts) >= 3 && parts[0] == IOCNamePrefix
}
