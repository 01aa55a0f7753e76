// Package ctdnfs reconciles independently transcribed renderings of the same
// record field into one canonical value.
//
// Disagreement between transcriptions is kept inside the merged value as
// uncertainty markers: "(text?)" for a doubtful or minority reading and
// "a/b(?)" for unrelated alternatives. Each field also gets a set of
// advisory warnings describing how it was merged.
//
//	merged, warnings, err := ctdnfs.Reconcile(ctx, map[string][]string{
//		"surname": {"R Burroughs", "R Burroghs", "*"},
//	})
//	// merged["surname"] == "R Burro(u?)ghs"
package ctdnfs

import (
	"context"
	"maps"
	"slices"

	"github.com/nationalarchives/ctd-nfs/pkg/reconcile"
)

// Reconcile merges the variants of every field. merged holds a value for
// every input key, possibly empty. warnings holds the sorted warning set of
// every key, empty when the field merged cleanly. An error is returned only
// for invalid options or a cancelled context.
func Reconcile(ctx context.Context, fields map[string][]string, opts ...reconcile.Option) (map[string]string, map[string][]string, error) {
	result, err := ReconcileFields(ctx, Fields(fields), opts...)
	if err != nil {
		return nil, nil, err
	}
	return result.Values(), result.WarningSets(), nil
}

// ReconcileFields merges fields in order and returns the full result,
// including the route taken and the manual-review flag of each field.
func ReconcileFields(ctx context.Context, fields []reconcile.Field, opts ...reconcile.Option) (*reconcile.Result, error) {
	r, err := reconcile.New(opts...)
	if err != nil {
		return nil, err
	}
	return r.Reconcile(ctx, fields)
}

// Fields converts a key to variants mapping into fields sorted by key.
func Fields(fields map[string][]string) []reconcile.Field {
	out := make([]reconcile.Field, 0, len(fields))
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		out = append(out, reconcile.Field{Key: key, Variants: fields[key]})
	}
	return out
}
