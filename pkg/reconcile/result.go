package reconcile

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// FieldResult is the reconciled value of one field.
type FieldResult struct {
	// Key identifies the field.
	Key string `json:"key" yaml:"key"`

	// Value is the merged string. Disagreement is carried inline as
	// "(text?)" and "a/b(?)" markers; it is never a failure value.
	Value string `json:"value" yaml:"value"`

	// Warnings is the sorted, deduplicated set of diagnostics.
	Warnings []string `json:"warnings" yaml:"warnings"`

	// Unresolved is set when a branch with no defined resolution was hit
	// and a person should review Value.
	Unresolved bool `json:"unresolved" yaml:"unresolved"`

	// Strategy is the route taken by the dispatcher.
	Strategy Strategy `json:"strategy" yaml:"strategy"`

	// Variants is the size of the variant set before dispatch.
	Variants int `json:"variants" yaml:"variants"`
}

// HasWarnings returns true if the field raised any warning.
func (f FieldResult) HasWarnings() bool {
	return len(f.Warnings) > 0
}

// Result represents the outcome of reconciling a batch of fields.
type Result struct {
	// Fields holds one entry per input field, in input order.
	Fields []FieldResult `json:"fields" yaml:"fields"`

	// Metadata about the run.
	Metadata ResultMetadata `json:"metadata" yaml:"metadata"`
}

// ResultMetadata contains metadata about the reconciliation run.
type ResultMetadata struct {
	// RunID is a ULID identifying the run.
	RunID     string        `json:"run_id" yaml:"run_id"`
	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	EndTime   time.Time     `json:"end_time" yaml:"end_time"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Workers   int           `json:"workers" yaml:"workers"`
	Stats     Statistics    `json:"stats" yaml:"stats"`
}

// Statistics counts fields by outcome.
type Statistics struct {
	Fields     int              `json:"fields" yaml:"fields"`
	Warned     int              `json:"warned" yaml:"warned"`
	Unresolved int              `json:"unresolved" yaml:"unresolved"`
	ByStrategy map[Strategy]int `json:"by_strategy" yaml:"by_strategy"`
}

// Get returns the result for key.
func (r *Result) Get(key string) (FieldResult, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldResult{}, false
}

// UnresolvedKeys returns the keys that need manual review, in input order.
func (r *Result) UnresolvedKeys() []string {
	var keys []string
	for _, f := range r.Fields {
		if f.Unresolved {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// Values returns the merged value of every field by key.
func (r *Result) Values() map[string]string {
	values := make(map[string]string, len(r.Fields))
	for _, f := range r.Fields {
		values[f.Key] = f.Value
	}
	return values
}

// WarningSets returns the warnings of every field by key. Every key is
// present, with an empty slice when the field raised nothing.
func (r *Result) WarningSets() map[string][]string {
	warnings := make(map[string][]string, len(r.Fields))
	for _, f := range r.Fields {
		warnings[f.Key] = append([]string{}, f.Warnings...)
	}
	return warnings
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	if s.Fields == 0 {
		return "No fields reconciled."
	}
	return fmt.Sprintf("Reconciled %d field(s): %d with warnings, %d need manual review.",
		s.Fields, s.Warned, s.Unresolved)
}

// ResultBuilder helps construct Result objects.
type ResultBuilder struct {
	result *Result
}

// NewResultBuilder creates a new ResultBuilder.
func NewResultBuilder() *ResultBuilder {
	return &ResultBuilder{
		result: &Result{
			Fields: []FieldResult{},
			Metadata: ResultMetadata{
				RunID:     ulid.Make().String(),
				StartTime: time.Now(),
				Stats: Statistics{
					ByStrategy: make(map[Strategy]int),
				},
			},
		},
	}
}

// WithFields appends field results and updates the statistics.
func (b *ResultBuilder) WithFields(fields ...FieldResult) *ResultBuilder {
	for _, f := range fields {
		b.result.Fields = append(b.result.Fields, f)

		stats := &b.result.Metadata.Stats
		stats.Fields++
		stats.ByStrategy[f.Strategy]++
		if f.HasWarnings() {
			stats.Warned++
		}
		if f.Unresolved {
			stats.Unresolved++
		}
	}
	return b
}

// WithWorkers records the worker count used.
func (b *ResultBuilder) WithWorkers(workers int) *ResultBuilder {
	b.result.Metadata.Workers = workers
	return b
}

// Build finalizes and returns the Result.
func (b *ResultBuilder) Build() *Result {
	b.result.Metadata.EndTime = time.Now()
	b.result.Metadata.Duration = b.result.Metadata.EndTime.Sub(b.result.Metadata.StartTime)
	return b.result
}
