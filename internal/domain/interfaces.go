// Package domain defines the core business entities and interfaces for ioc-deploy.
// This package contains no external dependencies and represents the innermost layer
// of the CLEAN architecture.
package domain

import (
	"context"
	"errors"
)

// Domain errors for request validation, resolution and deployment.
var (
	// ErrValidation indicates required request fields are missing.
	ErrValidation = errors.New("invalid deployment request")

	// ErrNotFound indicates no repository name or tag variant exists in the organization.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyDeployed indicates the deployment directory already exists.
	ErrAlreadyDeployed = errors.New("deploy directory already exists")

	// ErrToolInvocation indicates an external command could not be started or died abnormally.
	ErrToolInvocation = errors.New("external tool invocation failed")
)

// SourceControl performs shallow clones using an external version-control client.
type SourceControl interface {
	// Clone runs a shallow, single-branch clone.
	// A clone that ran but failed is reported through CommandResult.ExitCode.
	// Returns an error wrapping ErrToolInvocation if the client could not run.
	Clone(ctx context.Context, opts CloneOptions) (CommandResult, error)
}

// Builder runs the build step inside a deployed IOC directory.
type Builder interface {
	// Build runs the build tool with dir as its working directory.
	// Returns an error wrapping ErrToolInvocation if the tool could not run.
	Build(ctx context.Context, dir string) (CommandResult, error)
}

// Confirmer asks the operator to approve a deployment.
type Confirmer interface {
	// Confirm shows the prompt and reports whether the answer was affirmative.
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// OutputWriter writes plain program output.
type OutputWriter interface {
	// WriteVersion writes the tool version.
	WriteVersion(version string) error
}

// NameResolver turns a user supplied short name into an existing repository name.
type NameResolver interface {
	// Resolve returns the repository name that exists in org.
	// Returns an error wrapping ErrNotFound if no candidate exists.
	Resolve(ctx context.Context, name, org string) (string, error)
}

// TagResolver turns a user supplied release into an existing tag name.
type TagResolver interface {
	// Resolve returns the first tag variant of release that exists on org/name.
	// Returns an error wrapping ErrNotFound if no variant exists.
	Resolve(ctx context.Context, name, org, release string) (string, error)
}

// Deployer runs the full resolve, clone and build pipeline.
type Deployer interface {
	// Deploy returns the status code of the run, or an error if the
	// deployment target could not be determined.
	Deploy(ctx context.Context, req DeploymentRequest) (StatusCode, error)
}
