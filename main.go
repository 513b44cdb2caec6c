// Package main is the entry point for the ioc-deploy CLI application.
// ioc-deploy resolves an IOC repository and release tag on GitHub, shallow-clones
// the tag into the standard IOC area and builds it there.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MyCarrier-DevOps/ioc-deploy/cmd"
	"github.com/MyCarrier-DevOps/ioc-deploy/internal/adapters/build"
	"github.com/MyCarrier-DevOps/ioc-deploy/internal/adapters/git"
	logadapter "github.com/MyCarrier-DevOps/ioc-deploy/internal/adapters/logger"
	"github.com/MyCarrier-DevOps/ioc-deploy/internal/adapters/output"
	"github.com/MyCarrier-DevOps/ioc-deploy/internal/adapters/prompt"
	"github.com/MyCarrier-DevOps/ioc-deploy/internal/domain"
	"github.com/MyCarrier-DevOps/ioc-deploy/internal/infrastructure/config"
	"github.com/MyCarrier-DevOps/ioc-deploy/internal/infrastructure/version"
	"github.com/MyCarrier-DevOps/ioc-deploy/internal/usecases"
)

// buildVersion is stamped at build time with -ldflags "-X main.buildVersion=R1.2.3".
var buildVersion string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd.SetDefaultDependencies(newDependencies())
	code := cmd.Execute(ctx)

	stop()
	os.Exit(code)
}

// newDependencies wires up the production dependencies.
func newDependencies() *cmd.Dependencies {
	// Shared by the version lookup, which runs before any request-scoped logger exists.
	var appLog cmd.Logger = nopLogger{}

	return &cmd.Dependencies{
		LoggerFactory: func(verbose bool) (cmd.Logger, error) {
			adapter, err := logadapter.NewFromEnvironment(verbose)
			appLog = adapter
			return adapter, err
		},

		ConfigLoader: func() (*cmd.AppConfig, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			return &cmd.AppConfig{
				IOCDir:     cfg.IOCDir(),
				GithubOrg:  cfg.GithubOrg,
				RemoteBase: cfg.RemoteBase,
				LogLevel:   cfg.LogLevel,
				LogAppName: cfg.LogAppName,
			}, nil
		},

		SourceControlFactory: func(cfg *cmd.AppConfig, log cmd.Logger) domain.SourceControl {
			return git.NewCLIClient(cfg.RemoteBase, log)
		},

		BuilderFactory: func(log cmd.Logger) domain.Builder {
			return build.NewMakeBuilder(log)
		},

		ConfirmerFactory: func() domain.Confirmer {
			return prompt.NewConfirmer()
		},

		DeployerFactory: func(
			req domain.DeploymentRequest,
			scm domain.SourceControl,
			builder domain.Builder,
			confirmer domain.Confirmer,
			log cmd.Logger,
		) domain.Deployer {
			opts := usecases.ResolverOptions{Verbose: req.Verbose}
			return usecases.NewIOCDeployer(
				usecases.NewRepoNameResolver(scm, log, opts),
				usecases.NewReleaseTagResolver(scm, log, opts),
				scm,
				builder,
				confirmer,
				log,
			)
		},

		VersionLookup: func(ctx context.Context) string {
			lookup := version.NewLookup(buildVersion, func(path string) (version.Describer, error) {
				return git.NewGoGitDescriber(path, appLog)
			})
			return lookup.Version(ctx)
		},

		OutputWriterFactory: func() domain.OutputWriter {
			return output.NewWriter()
		},

		Stderr: os.Stderr,
	}
}

// nopLogger discards everything; it stands in until the real logger is built.
type nopLogger struct{}

func (nopLogger) Info(_ context.Context, _ string, _ map[string]interface{})           {}
func (nopLogger) Debug(_ context.Context, _ string, _ map[string]interface{})          {}
func (nopLogger) Warn(_ context.Context, _ string, _ map[string]interface{})           {}
func (nopLogger) Error(_ context.Context, _ string, _ error, _ map[string]interface{}) {}
