package usecases

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MyCarrier-DevOps/ioc-deploy/internal/domain"
)

// ConfirmPrompt is the question shown before anything is written to disk.
const ConfirmPrompt = "Confirm release source and target? y/n"

// IOCDeployer resolves, clones and builds a tagged IOC release.
type IOCDeployer struct {
	names     domain.NameResolver
	tags      domain.TagResolver
	scm       domain.SourceControl
	builder   domain.Builder
	confirmer domain.Confirmer
	logger    Logger
}

// NewIOCDeployer creates a new IOCDeployer with the given dependencies.
func NewIOCDeployer(
	names domain.NameResolver,
	tags domain.TagResolver,
	scm domain.SourceControl,
	builder domain.Builder,
	confirmer domain.Confirmer,
	log Logger,
) *IOCDeployer {
	return &IOCDeployer{
		names:     names,
		tags:      tags,
		scm:       scm,
		builder:   builder,
		confirmer: confirmer,
		logger:    log,
	}
}

// Deploy runs the deployment described by req.
//
// Errors are returned when the deployment target could not be determined or
// the tools could not be run at all. Once the clone has been attempted, a
// nonzero exit status from git or make is returned as the StatusCode with a
// nil error.
func (d *IOCDeployer) Deploy(ctx context.Context, req domain.DeploymentRequest) (domain.StatusCode, error) {
	if err := req.Validate(); err != nil {
		return domain.StatusException, err
	}

	d.logger.Info(ctx, "Running ioc-deploy: checking inputs", nil)

	name, err := d.names.Resolve(ctx, req.Name, req.Org)
	if err != nil {
		return domain.StatusException, err
	}
	if !domain.IsWellFormedName(name) {
		return domain.StatusException, fmt.Errorf(
			"%w: resolved repository name %s is not of the form ioc-<category>-<name>",
			domain.ErrValidation,
			name,
		)
	}

	tag, err := d.tags.Resolve(ctx, name, req.Org, req.Release)
	if err != nil {
		return domain.StatusException, err
	}

	deployDir := DerivePath(name, req.IOCDir, tag)

	d.logger.Info(ctx, fmt.Sprintf("Deploying %s/%s at %s to %s", req.Org, name, tag, deployDir), nil)

	exists, err := pathExists(deployDir)
	if err != nil {
		return domain.StatusException, err
	}
	if exists {
		return domain.StatusException, fmt.Errorf("%w: %s, aborting", domain.ErrAlreadyDeployed, deployDir)
	}

	if !req.AutoConfirm {
		ok, err := d.confirmer.Confirm(ctx, ConfirmPrompt)
		if err != nil {
			return domain.StatusException, fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			d.logger.Info(ctx, "deployment not confirmed", nil)
			return domain.StatusNoConfirm, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return domain.StatusException, fmt.Errorf("deployment interrupted: %w", err)
	}

	d.logger.Info(ctx, fmt.Sprintf("Cloning IOC to %s", deployDir), nil)
	status, err := d.cloneRelease(ctx, req, name, tag, deployDir)
	if err != nil {
		return domain.StatusException, err
	}
	if status != domain.StatusSuccess {
		d.logger.Error(ctx, fmt.Sprintf("Nonzero return value %d from git clone", status), nil, nil)
		return status, nil
	}

	d.logger.Info(ctx, fmt.Sprintf("Building IOC at %s", deployDir), nil)
	status, err = d.build(ctx, req, deployDir)
	if err != nil {
		return domain.StatusException, err
	}
	if status != domain.StatusSuccess {
		d.logger.Error(ctx, fmt.Sprintf("Nonzero return value %d from make", status), nil, nil)
		return status, nil
	}

	return domain.StatusSuccess, nil
}

// cloneRelease makes sure the parent directory exists and shallow-clones the tag into deployDir.
func (d *IOCDeployer) cloneRelease(
	ctx context.Context,
	req domain.DeploymentRequest,
	name, tag, deployDir string,
) (domain.StatusCode, error) {
	absDir, err := filepath.Abs(deployDir)
	if err != nil {
		return domain.StatusException, fmt.Errorf("failed to resolve %s: %w", deployDir, err)
	}
	parentDir := filepath.Dir(absDir)

	if req.DryRun {
		d.logger.Info(ctx, fmt.Sprintf("Dry-run: make %s if not existing.", parentDir), nil)
		d.logger.Debug(ctx, "Dry-run: skip git clone", nil)
		return domain.StatusSuccess, nil
	}

	d.logger.Debug(ctx, fmt.Sprintf("Ensure %s exists", parentDir), nil)
	if err := os.MkdirAll(parentDir, 0o755); err != nil {
		return domain.StatusException, fmt.Errorf("failed to create %s: %w", parentDir, err)
	}

	result, err := d.scm.Clone(ctx, domain.CloneOptions{
		Org:       req.Org,
		Name:      name,
		Tag:       tag,
		TargetDir: deployDir,
		Quiet:     !req.Verbose,
	})
	if err != nil {
		return domain.StatusException, err
	}
	if !result.Succeeded() && result.Stderr != "" {
		d.logger.Debug(ctx, "git clone output", map[string]interface{}{
			"stderr": result.Stderr,
		})
	}

	return domain.StatusCode(result.ExitCode), nil
}

// build runs the build tool in deployDir.
func (d *IOCDeployer) build(ctx context.Context, req domain.DeploymentRequest, deployDir string) (domain.StatusCode, error) {
	if req.DryRun {
		d.logger.Info(ctx, fmt.Sprintf("Dry-run: skipping make in %s", deployDir), nil)
		return domain.StatusSuccess, nil
	}

	result, err := d.builder.Build(ctx, deployDir)
	if err != nil {
		return domain.StatusException, err
	}

	return domain.StatusCode(result.ExitCode), nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check %s: %w", path, err)
}
