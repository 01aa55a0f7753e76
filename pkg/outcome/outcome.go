// Package outcome carries the value produced by a merge step together with
// the warnings it raised and whether it needs manual review.
package outcome

import "sort"

// Warnings is an unordered, deduplicated set of diagnostic messages.
// Messages are only ever added.
type Warnings map[string]struct{}

// NewWarnings returns a set holding msgs.
func NewWarnings(msgs ...string) Warnings {
	w := make(Warnings, len(msgs))
	for _, m := range msgs {
		w[m] = struct{}{}
	}
	return w
}

// Add inserts msg into the set.
func (w Warnings) Add(msg string) {
	w[msg] = struct{}{}
}

// Union adds every message of other to w.
func (w Warnings) Union(other Warnings) {
	for m := range other {
		w[m] = struct{}{}
	}
}

// Has reports whether msg is in the set.
func (w Warnings) Has(msg string) bool {
	_, ok := w[msg]
	return ok
}

// Sorted returns the messages in lexical order.
func (w Warnings) Sorted() []string {
	out := make([]string, 0, len(w))
	for m := range w {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Outcome is the result of one merge step. Unresolved marks a value that was
// produced by a branch with no defined resolution; the value is still the
// best available rendering but a person should review it.
type Outcome struct {
	Value      string
	Warnings   Warnings
	Unresolved bool
}

// New returns an outcome for value with no warnings.
func New(value string) Outcome {
	return Outcome{Value: value, Warnings: Warnings{}}
}

// Absorb merges the warnings and unresolved flag of other into o.
// The value of o is left unchanged.
func (o *Outcome) Absorb(other Outcome) {
	if o.Warnings == nil {
		o.Warnings = Warnings{}
	}
	o.Warnings.Union(other.Warnings)
	o.Unresolved = o.Unresolved || other.Unresolved
}

// Warn records msg on o.
func (o *Outcome) Warn(msg string) {
	if o.Warnings == nil {
		o.Warnings = Warnings{}
	}
	o.Warnings.Add(msg)
}

// MarkUnresolved records msg and flags o for manual review.
func (o *Outcome) MarkUnresolved(msg string) {
	o.Warn(msg)
	o.Unresolved = true
}
