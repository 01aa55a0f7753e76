package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/nationalarchives/ctd-nfs/internal/cmd/output"
	"github.com/nationalarchives/ctd-nfs/pkg/constants"
	"github.com/nationalarchives/ctd-nfs/pkg/metrics"
	"github.com/nationalarchives/ctd-nfs/pkg/reconcile"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	ReconcilerFunc   func() (reconcile.Reconciler, error)
	PlaceholdersFunc func() []string
	Collector        *metrics.Metrics
	LoggerFunc       func() *zerolog.Logger
	Format           output.Format
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Reconciler returns a reconciler using the mock function or a default one.
func (m *Mock) Reconciler() (reconcile.Reconciler, error) {
	if m.ReconcilerFunc != nil {
		return m.ReconcilerFunc()
	}
	opts := []reconcile.Option{
		reconcile.WithLogger(m.Logger()),
		reconcile.WithPlaceholders(m.Placeholders()...),
	}
	if m.Collector != nil {
		opts = append(opts, reconcile.WithMetrics(m.Collector))
	}
	return reconcile.New(opts...)
}

// Metrics returns Collector, which may be nil.
func (m *Mock) Metrics() *metrics.Metrics {
	return m.Collector
}

// Placeholders returns placeholders using the mock function or the default.
func (m *Mock) Placeholders() []string {
	if m.PlaceholdersFunc != nil {
		return m.PlaceholdersFunc()
	}
	return []string{constants.Placeholder}
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns Format, or table when unset.
func (m *Mock) OutputFormat() output.Format {
	if m.Format == "" {
		return output.FormatTable
	}
	return m.Format
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
