// Package config provides configuration loading for the ioc-deploy application.
// It resolves the deployment defaults and logging settings from environment
// variables, falling back to the standard site layout.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable names.
const (
	// EnvEpicsSiteTop is the root of the EPICS site area; IOCs deploy under its "ioc" directory.
	EnvEpicsSiteTop = "EPICS_SITE_TOP"

	// EnvGithubOrg is the organization IOC repositories are cloned from.
	EnvGithubOrg = "GITHUB_ORG"

	// EnvRemoteBase is prepended to "<org>/<name>" to form the clone URL.
	EnvRemoteBase = "IOC_DEPLOY_REMOTE_BASE"

	// EnvLogLevel is the log level (debug, info, warn, error).
	EnvLogLevel = "LOG_LEVEL"

	// EnvLogAppName is the application name for log context.
	EnvLogAppName = "LOG_APP_NAME"
)

// Default values.
const (
	DefaultEpicsSiteTop = "/cds/group/pcds/epics"
	DefaultGithubOrg    = "pcdshub"
	DefaultRemoteBase   = "git@github.com:"
	DefaultLogLevel     = "info"
	DefaultLogAppName   = "ioc-deploy"

	// IOCSubdir is the directory below EPICS_SITE_TOP that holds deployed IOCs.
	IOCSubdir = "ioc"
)

// Configuration errors.
var (
	// ErrInvalidLogLevel indicates LOG_LEVEL is not a recognised level.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrEmptySetting indicates a setting resolved to an empty value.
	ErrEmptySetting = errors.New("setting must not be empty")
)

// Config holds all application configuration.
type Config struct {
	// EpicsSiteTop is the EPICS site root.
	EpicsSiteTop string `mapstructure:"epics_site_top"`

	// GithubOrg is the default organization to deploy from.
	GithubOrg string `mapstructure:"github_org"`

	// RemoteBase is the clone URL prefix.
	RemoteBase string `mapstructure:"remote_base"`

	// LogLevel is the logging level (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// LogAppName is the application name for log context.
	LogAppName string `mapstructure:"log_app_name"`
}

// IOCDir returns the default IOC deployment directory, $EPICS_SITE_TOP/ioc.
func (c *Config) IOCDir() string {
	return filepath.Join(c.EpicsSiteTop, IOCSubdir)
}

// Load loads the application configuration from environment variables.
func Load() (*Config, error) {
	return LoadWithViper(viper.New())
}

// LoadWithViper loads configuration through the given viper instance.
// This function enables dependency injection for testing.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	bindings := map[string]string{
		"epics_site_top": EnvEpicsSiteTop,
		"github_org":     EnvGithubOrg,
		"remote_base":    EnvRemoteBase,
		"log_level":      EnvLogLevel,
		"log_app_name":   EnvLogAppName,
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("epics_site_top", DefaultEpicsSiteTop)
	v.SetDefault("github_org", DefaultGithubOrg)
	v.SetDefault("remote_base", DefaultRemoteBase)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_app_name", DefaultLogAppName)
}

// validate checks the configuration for errors
func validate(cfg *Config) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.LogLevel] {
		return fmt.Errorf("%w: %s (must be debug, info, warn, or error)", ErrInvalidLogLevel, cfg.LogLevel)
	}

	for env, value := range map[string]string{
		EnvEpicsSiteTop: cfg.EpicsSiteTop,
		EnvGithubOrg:    cfg.GithubOrg,
		EnvRemoteBase:   cfg.RemoteBase,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s", ErrEmptySetting, env)
		}
	}

	return nil
}
