// Package cmd provides the CLI commands for ioc-deploy.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	logadapter "github.com/MyCarrier-DevOps/ioc-deploy/internal/adapters/logger"
	"github.com/MyCarrier-DevOps/ioc-deploy/internal/domain"
)

// Logger defines the logging interface used by the command.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// Dependencies holds all injectable dependencies for the command.
// This enables testing by allowing mock implementations to be injected.
type Dependencies struct {
	// LoggerFactory creates a logger instance, at debug level when verbose is set.
	LoggerFactory func(verbose bool) (Logger, error)

	// ConfigLoader loads application configuration.
	ConfigLoader func() (*AppConfig, error)

	// SourceControlFactory creates the git client used for probes and the real clone.
	SourceControlFactory func(cfg *AppConfig, log Logger) domain.SourceControl

	// BuilderFactory creates the build tool adapter.
	BuilderFactory func(log Logger) domain.Builder

	// ConfirmerFactory creates the interactive confirmation prompt.
	ConfirmerFactory func() domain.Confirmer

	// DeployerFactory creates a Deployer for the given request and adapters.
	DeployerFactory func(
		req domain.DeploymentRequest,
		scm domain.SourceControl,
		builder domain.Builder,
		confirmer domain.Confirmer,
		log Logger,
	) domain.Deployer

	// VersionLookup returns the running ioc-deploy version.
	VersionLookup func(ctx context.Context) string

	// OutputWriterFactory creates an OutputWriter.
	OutputWriterFactory func() domain.OutputWriter

	// Stderr is the writer for standard error (for warnings/errors).
	Stderr io.Writer
}

// AppConfig holds application configuration loaded by ConfigLoader.
type AppConfig struct {
	// IOCDir is the default deployment base directory.
	IOCDir string

	// GithubOrg is the default organization.
	GithubOrg string

	// RemoteBase is the clone URL prefix.
	RemoteBase string

	// LogLevel is the log level setting.
	LogLevel string

	// LogAppName is the application name for logging.
	LogAppName string
}

// ExitError carries a non-success status code out of the command.
// Err is set when the status comes from an error that has already been logged.
type ExitError struct {
	Code domain.StatusCode
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// options holds the parsed command-line flags.
type options struct {
	version     bool
	name        string
	release     string
	iocDir      string
	org         string
	autoConfirm bool
	dryRun      bool
	verbose     bool
}

// request builds the DeploymentRequest, filling unset flags from cfg.
func (o *options) request(cfg *AppConfig) domain.DeploymentRequest {
	req := domain.DeploymentRequest{
		Name:        o.name,
		Release:     o.release,
		IOCDir:      o.iocDir,
		Org:         o.org,
		AutoConfirm: o.autoConfirm,
		DryRun:      o.dryRun,
		Verbose:     o.verbose,
	}
	if req.IOCDir == "" {
		req.IOCDir = cfg.IOCDir
	}
	if req.Org == "" {
		req.Org = cfg.GithubOrg
	}
	return req
}

// defaultDeps holds the production dependencies.
// This is set by the production wiring in main or via SetDefaultDependencies.
var defaultDeps *Dependencies

// SetDefaultDependencies sets the default dependencies for production use.
// This should be called from main() before Execute().
func SetDefaultDependencies(deps *Dependencies) {
	defaultDeps = deps
}

// NewRootCmd creates the root command for ioc-deploy.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(defaultDeps)
}

// NewRootCmdWithDeps creates the root command with explicit dependencies.
// This is the primary constructor that enables testing via dependency injection.
func NewRootCmdWithDeps(deps *Dependencies) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "ioc-deploy",
		Short: "Deploy a tagged IOC release from GitHub into the standard IOC area",
		Long: `ioc-deploy builds and deploys IOC tags from GitHub.

It creates a shallow clone of the IOC in the standard release area at the
correct path and runs make there. If the tag directory already exists,
nothing is changed and ioc-deploy exits with an error.

With default settings

  ioc-deploy -n ioc-foo-bar -r R1.0.0

clones git@github.com:pcdshub/ioc-foo-bar at R1.0.0 into
/cds/group/pcds/epics/ioc/foo/bar/R1.0.0, then runs make there.

Names that are not of the form ioc-<category>-<name> are retried as
ioc-common-<name>. Releases are tried as given, then with R, v or no prefix.

Exit codes:
  0  success
  1  error
  2  deployment not confirmed
  *  exit status of git clone or make`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDeploy(cmd, opts, deps)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVar(&opts.version, "version", false,
		"Show version number and exit.")
	flags.StringVarP(&opts.name, "name", "n", "",
		"The name of the repository to deploy. This is a required argument. "+
			"If it does not exist on github, we'll also try prepending with 'ioc-common-'.")
	flags.StringVarP(&opts.release, "release", "r", "",
		"The version of the IOC to deploy. This is a required argument.")
	flags.StringVarP(&opts.iocDir, "ioc-dir", "i", "", iocDirUsage)
	flags.StringVar(&opts.org, "github_org", "", githubOrgUsage)
	flags.BoolVarP(&opts.autoConfirm, "auto-confirm", "y", false,
		"Skip the confirmation prompt, automatically saying yes (aliases --confirm, --yes).")
	flags.BoolVar(&opts.dryRun, "dry-run", false,
		"Do not deploy anything, just print what would have been done.")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false,
		"Display additional debug information (alias --debug).")

	rootCmd.SetGlobalNormalizationFunc(normalizeFlagAliases)

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		describeCurrentDefaults(c.Flags(), deps)
		defaultHelp(c, args)
	})

	return rootCmd
}

const (
	iocDirUsage = "The directory to deploy IOCs in. Defaults to $EPICS_SITE_TOP/ioc, " +
		"or /cds/group/pcds/epics/ioc if the environment variable is not set."
	githubOrgUsage = "The github org to deploy IOCs from (alias --org). Defaults to $GITHUB_ORG, " +
		"or pcdshub if the environment variable is not set."
	currentDefaultf = " With your current environment variables, this defaults to %s."
)

// describeCurrentDefaults appends the defaults resolved from the current
// environment to the ioc-dir and github_org usage text.
// The static text is left alone when the configuration cannot be loaded.
func describeCurrentDefaults(flags *pflag.FlagSet, deps *Dependencies) {
	if deps == nil || deps.ConfigLoader == nil {
		return
	}
	cfg, err := deps.ConfigLoader()
	if err != nil {
		return
	}

	if f := flags.Lookup("ioc-dir"); f != nil {
		f.Usage = iocDirUsage + fmt.Sprintf(currentDefaultf, cfg.IOCDir)
	}
	if f := flags.Lookup("github_org"); f != nil {
		f.Usage = githubOrgUsage + fmt.Sprintf(currentDefaultf, cfg.GithubOrg)
	}
}

// normalizeFlagAliases maps the alternate flag spellings onto their canonical names.
func normalizeFlagAliases(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "org":
		name = "github_org"
	case "confirm", "yes":
		name = "auto-confirm"
	case "debug":
		name = "verbose"
	}
	return pflag.NormalizedName(name)
}

// runDeploy executes the deployment with injected dependencies.
func runDeploy(cmd *cobra.Command, opts *options, deps *Dependencies) error {
	if deps == nil {
		return errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Get stderr for warnings
	stderr := deps.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	log, err := deps.LoggerFactory(opts.verbose)
	if err != nil {
		if log == nil {
			return fmt.Errorf("logger error: %w", err)
		}
		// Best-effort warning: ignore fprintf error as this is non-critical
		writeWarningf(stderr, "warning: could not set log level: %v\n", err)
	}

	if opts.version {
		writer := deps.OutputWriterFactory()
		if err := writer.WriteVersion(deps.VersionLookup(ctx)); err != nil {
			return fail(ctx, log, opts.verbose, fmt.Errorf("output error: %w", err))
		}
		return nil
	}

	cfg, err := deps.ConfigLoader()
	if err != nil {
		return fail(ctx, log, opts.verbose, fmt.Errorf("configuration error: %w", err))
	}

	req := opts.request(cfg)

	log.Debug(ctx, "parsed deployment request", map[string]interface{}{
		"name":         req.Name,
		"release":      req.Release,
		"ioc_dir":      req.IOCDir,
		"github_org":   req.Org,
		"auto_confirm": req.AutoConfirm,
		"dry_run":      req.DryRun,
		"verbose":      req.Verbose,
		"remote_base":  cfg.RemoteBase,
	})

	scm := deps.SourceControlFactory(cfg, log)
	deployer := deps.DeployerFactory(req, scm, deps.BuilderFactory(log), deps.ConfirmerFactory(), log)

	status, err := deployer.Deploy(ctx, req)
	if err != nil {
		return fail(ctx, log, opts.verbose, err)
	}
	if status != domain.StatusSuccess {
		return &ExitError{Code: status}
	}

	return nil
}

// fail logs err and converts it into an ExitError with StatusException.
// With verbose set, the chain of wrapped errors is logged at debug level.
func fail(ctx context.Context, log Logger, verbose bool, err error) error {
	log.Error(ctx, "ioc-deploy failed", err, nil)
	if verbose {
		log.Debug(ctx, "error chain", map[string]interface{}{
			"chain": logadapter.ErrorChain(err),
		})
	}
	return &ExitError{Code: domain.StatusException, Err: err}
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return int(domain.StatusSuccess)
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return int(exitErr.Code)
	}
	return int(domain.StatusException)
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)

	var exitErr *ExitError
	if err != nil && !errors.As(err, &exitErr) {
		stderr := io.Writer(os.Stderr)
		if defaultDeps != nil && defaultDeps.Stderr != nil {
			stderr = defaultDeps.Stderr
		}
		writeWarningf(stderr, "Error: %v\n", err)
	}

	return ExitCode(err)
}

// writeWarningf writes a warning message to the given writer.
// This is a best-effort operation; errors are intentionally ignored
// because there is no recovery action if stderr writes fail.
func writeWarningf(w io.Writer, format string, args ...any) {
	_, err := fmt.Fprintf(w, format, args...)
	if err != nil {
		// Intentionally ignored: no recovery action for failed stderr writes
		return
	}
}
