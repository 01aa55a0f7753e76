// Package reconcile merges the transcribed variants of record fields into
// one annotated value per field.
//
// Each field is dispatched on its variant set: a single value passes through,
// variants that differ only in case or spacing are normalised, two variants
// are aligned phrase against phrase, and three or more are clustered and
// merged pairwise. Fields are independent of one another and are reconciled
// concurrently.
package reconcile

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nationalarchives/ctd-nfs/pkg/constants"
	"github.com/nationalarchives/ctd-nfs/pkg/errors"
	"github.com/nationalarchives/ctd-nfs/pkg/logging"
	"github.com/nationalarchives/ctd-nfs/pkg/metrics"
)

// Field is one logical field and its raw variants, one per source document.
type Field struct {
	Key      string   `json:"key" yaml:"key"`
	Variants []string `json:"variants" yaml:"variants"`
}

// Reconciler is the main interface for reconciling field variants
type Reconciler interface {
	// Reconcile merges every field. Results keep the order of fields.
	Reconcile(ctx context.Context, fields []Field) (*Result, error)

	// CompareField merges the variants of a single field.
	CompareField(ctx context.Context, field Field) FieldResult
}

// reconciler is the default implementation of Reconciler
type reconciler struct {
	logger       *zerolog.Logger
	workers      int
	placeholders []string
	normalize    bool
	metrics      *metrics.Metrics
}

// Option configures a Reconciler
type Option func(*reconciler) error

// New creates a new Reconciler with options
func New(opts ...Option) (Reconciler, error) {
	r := &reconciler{
		workers:      constants.DefaultWorkers,
		placeholders: []string{constants.Placeholder},
		normalize:    true,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Reconcile merges every field, bounded by the configured worker count.
// Ambiguity never fails the call; only a cancelled context or an invalid
// batch does.
func (r *reconciler) Reconcile(ctx context.Context, fields []Field) (*Result, error) {
	builder := NewResultBuilder().WithWorkers(r.workers)

	if err := validateFields(fields); err != nil {
		r.observeBatch(metrics.StatusInvalid, builder)
		return nil, err
	}

	ctx = logging.WithOperation(r.withLogger(ctx), "reconcile")
	logging.FromContext(ctx).Debug().
		Int("fields", len(fields)).
		Int("workers", r.workers).
		Msg("Reconciling fields")

	results := make([]FieldResult, len(fields))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, field := range fields {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.WrapCanceled(field.Key, err)
			}
			results[i] = r.CompareField(gctx, field)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.observeBatch(metrics.StatusCanceled, builder)
		return nil, err
	}

	result := builder.WithFields(results...).Build()
	if r.metrics != nil {
		r.metrics.ObserveBatch(metrics.StatusOK, result.Metadata.Duration)
	}

	logging.FromContext(ctx).Info().
		Str("run_id", result.Metadata.RunID).
		Int("fields", result.Metadata.Stats.Fields).
		Int("warned", result.Metadata.Stats.Warned).
		Int("unresolved", result.Metadata.Stats.Unresolved).
		Dur("duration", result.Metadata.Duration).
		Msg("Reconciliation complete")

	return result, nil
}

// CompareField merges the variants of one field.
func (r *reconciler) CompareField(ctx context.Context, field Field) FieldResult {
	ctx = logging.WithKey(r.withLogger(ctx), field.Key)

	variants := field.Variants
	if r.normalize {
		variants = unifyEquivalent(variants)
	}

	set := VariantSet(variants, r.placeholders)
	res, strategy := compare(variants, r.placeholders)

	fr := FieldResult{
		Key:        field.Key,
		Value:      res.Value,
		Warnings:   res.Warnings.Sorted(),
		Unresolved: res.Unresolved,
		Strategy:   strategy,
		Variants:   len(set),
	}

	if r.metrics != nil {
		r.metrics.ObserveField(strategy.String(), len(fr.Warnings), fr.Unresolved)
	}

	logger := logging.FromContext(logging.WithFields(ctx, map[string]any{
		"strategy": strategy.String(),
		"variants": fr.Variants,
	}))
	logger.Debug().
		Int("warnings", len(fr.Warnings)).
		Bool("unresolved", fr.Unresolved).
		Msg("Field reconciled")
	if fr.Unresolved {
		logger.Warn().
			Str("value", fr.Value).
			Strs("warnings", fr.Warnings).
			Msg("Field needs manual review")
	}

	return fr
}

func (r *reconciler) withLogger(ctx context.Context) context.Context {
	if r.logger == nil {
		return ctx
	}
	return logging.WithLogger(ctx, r.logger)
}

func (r *reconciler) observeBatch(status string, builder *ResultBuilder) {
	if r.metrics == nil {
		return
	}
	r.metrics.ObserveBatch(status, time.Since(builder.result.Metadata.StartTime))
}

func validateFields(fields []Field) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f.Key]; ok {
			return errors.NewValidationError("key", f.Key, "duplicate field key")
		}
		seen[f.Key] = struct{}{}
	}
	return nil
}

// Option Functions
// ================

// WithLogger sets the logger used for per-field diagnostics
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *reconciler) error {
		if logger == nil {
			return errors.NewValidationError("logger", nil, "logger cannot be nil")
		}
		r.logger = logger
		return nil
	}
}

// WithWorkers sets how many fields are reconciled concurrently
func WithWorkers(workers int) Option {
	return func(r *reconciler) error {
		if workers < 1 || workers > constants.MaxWorkers {
			return errors.NewValidationError("workers", workers,
				fmt.Sprintf("must be between 1 and %d", constants.MaxWorkers))
		}
		r.workers = workers
		return nil
	}
}

// WithPlaceholders replaces the tokens that mark a source as having no data.
// Blank variants are always ignored.
func WithPlaceholders(placeholders ...string) Option {
	return func(r *reconciler) error {
		for _, p := range placeholders {
			if p == "" {
				return errors.NewValidationError("placeholders", p, "placeholder cannot be empty")
			}
		}
		r.placeholders = slices.Clone(placeholders)
		return nil
	}
}

// WithNormalization enables or disables treating variants with the same NFC
// form as one reading. Output always keeps the first form seen.
func WithNormalization(enabled bool) Option {
	return func(r *reconciler) error {
		r.normalize = enabled
		return nil
	}
}

// WithMetrics records field and batch metrics on m
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *reconciler) error {
		if m == nil {
			return errors.NewValidationError("metrics", nil, "metrics cannot be nil")
		}
		r.metrics = m
		return nil
	}
}
