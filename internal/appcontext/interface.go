// Package appcontext provides the shared application context interface
// used by all commands. Each command declares the subset it needs; this
// interface is the union the App satisfies.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/nationalarchives/ctd-nfs/internal/cmd/output"
	"github.com/nationalarchives/ctd-nfs/pkg/metrics"
	"github.com/nationalarchives/ctd-nfs/pkg/reconcile"
)

// Interface defines the application context interface that commands need.
//
// Commands should accept this interface (or a narrower one) rather than the
// concrete App type, allowing for easier testing with Mock.
type Interface interface {
	// Reconciler returns the shared reconciler, creating it lazily if needed.
	Reconciler() (reconcile.Reconciler, error)

	// Metrics returns the collectors updated by the reconciler.
	Metrics() *metrics.Metrics

	// Placeholders returns the values that mark a source as having no data.
	Placeholders() []string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format.
	OutputFormat() output.Format

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
