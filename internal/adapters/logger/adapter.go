// Package logger provides adapters for the logging interface.
package logger

import (
	"context"
	"errors"
	"os"

	mclog "github.com/MyCarrier-DevOps/goLibMyCarrier/logger"
)

// EnvLogLevel is read by the zap logger to pick its level.
const EnvLogLevel = "LOG_LEVEL"

// Logger defines the logging interface used throughout the application.
// External loggers that implement these methods can be wrapped with ZapAdapter.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]any)
	Debug(ctx context.Context, msg string, fields map[string]any)
	Warn(ctx context.Context, msg string, fields map[string]any)
	Error(ctx context.Context, msg string, err error, fields map[string]any)
}

// ZapAdapter adapts a Logger to the application's logging interface.
type ZapAdapter struct {
	log Logger
}

// NewZapAdapter creates a new ZapAdapter wrapping the given logger.
func NewZapAdapter(log Logger) *ZapAdapter {
	return &ZapAdapter{log: log}
}

// NewFromEnvironment builds the production zap logger from LOG_LEVEL and
// LOG_APP_NAME. When verbose is set the level is forced to debug first.
// The returned error only reports a failure to override the level; the
// adapter is usable either way.
func NewFromEnvironment(verbose bool) (*ZapAdapter, error) {
	var err error
	if verbose {
		err = os.Setenv(EnvLogLevel, "debug")
	}
	return NewZapAdapter(mclog.NewZapLoggerFromConfig()), err
}

// Info logs an info message.
func (a *ZapAdapter) Info(ctx context.Context, msg string, fields map[string]any) {
	a.log.Info(ctx, msg, fields)
}

// Debug logs a debug message.
func (a *ZapAdapter) Debug(ctx context.Context, msg string, fields map[string]any) {
	a.log.Debug(ctx, msg, fields)
}

// Warn logs a warning message.
func (a *ZapAdapter) Warn(ctx context.Context, msg string, fields map[string]any) {
	a.log.Warn(ctx, msg, fields)
}

// Error logs an error message.
func (a *ZapAdapter) Error(ctx context.Context, msg string, err error, fields map[string]any) {
	a.log.Error(ctx, msg, err, fields)
}

// ErrorChain lists err and every error it wraps, outermost first.
// Joined errors are walked depth-first.
func ErrorChain(err error) []string {
	var chain []string
	var walk func(e error)
	walk = func(e error) {
		if e == nil {
			return
		}
		chain = append(chain, e.Error())
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		default:
			walk(errors.Unwrap(e))
		}
	}
	walk(err)
	return chain
}
