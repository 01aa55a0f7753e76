// Package app provides the application context and dependency management
// for the nfsqa CLI. It centralizes configuration, logging, and the
// reconciler shared by every command.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nationalarchives/ctd-nfs/internal/cmd/output"
	"github.com/nationalarchives/ctd-nfs/pkg/errors"
	"github.com/nationalarchives/ctd-nfs/pkg/metrics"
	"github.com/nationalarchives/ctd-nfs/pkg/reconcile"
)

// App represents the nfsqa application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Metrics collected by the reconciler
	metrics *metrics.Metrics

	// Reconciler instance (lazy-initialized, singleton)
	mu         sync.Mutex
	reconciler reconcile.Reconciler
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment that can
// be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger
	app.metrics = metrics.New()

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format, detecting one from the
// terminal when none was set.
func (a *App) OutputFormat() output.Format {
	return output.DetectFormat(a.config.Format)
}

// Metrics returns the collectors updated by the reconciler.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}

// Placeholders returns the values that mark a source as having no data.
func (a *App) Placeholders() []string {
	return a.config.Placeholders
}

// Reconciler returns the reconciler, creating it from the configuration on
// first use.
func (a *App) Reconciler() (reconcile.Reconciler, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.reconciler != nil {
		return a.reconciler, nil
	}

	r, err := reconcile.New(
		reconcile.WithLogger(a.logger),
		reconcile.WithWorkers(a.config.Workers),
		reconcile.WithPlaceholders(a.config.Placeholders...),
		reconcile.WithNormalization(a.config.Normalize),
		reconcile.WithMetrics(a.metrics),
	)
	if err != nil {
		return nil, errors.NewConfigError("reconciler", "invalid reconciler settings", err)
	}

	a.reconciler = r
	return r, nil
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if err := config.Validate(); err != nil {
			return err
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithReconciler sets a custom reconciler (useful for testing).
func WithReconciler(r reconcile.Reconciler) Option {
	return func(a *App) error {
		a.reconciler = r
		return nil
	}
}
