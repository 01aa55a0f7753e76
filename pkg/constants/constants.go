// Package constants provides shared constants used throughout the ctd-nfs codebase.
// This includes similarity thresholds, uncertainty marker notation, warning texts,
// and the defaults applied by the reconciler and the CLI.
package constants

import "time"

// Similarity thresholds define the admissibility gate and clustering limits.
// Scores are on a 0-100 scale.
const (
	// ShortLength is the exclusive upper bound on the length of a "short" string.
	ShortLength = 4

	// MediumLength is the exclusive upper bound on the length of a "medium" string.
	MediumLength = 8

	// ShortThreshold is the minimum score for strings shorter than ShortLength.
	ShortThreshold = 60

	// MediumThreshold is the minimum score for strings shorter than MediumLength.
	MediumThreshold = 70

	// LongThreshold is the minimum score for all longer strings.
	LongThreshold = 80

	// DistinctThreshold is the score below which a variant is considered
	// unrelated to every other member of its variant set.
	DistinctThreshold = 50

	// MaxScore is the score of two identical strings.
	MaxScore = 100
)

// Marker notation used inside merged values.
const (
	// Placeholder marks a variant that was illegible or not recorded.
	Placeholder = "*"

	// UncertainOpen opens an uncertainty marker.
	UncertainOpen = "("

	// UncertainClose closes an uncertainty marker.
	UncertainClose = "?)"

	// UnknownMarker is appended to unrelated alternatives.
	UnknownMarker = "(?)"

	// AlternativeSeparator separates alternatives in an unmerged value.
	AlternativeSeparator = "/"
)

// Warning texts raised during reconciliation.
const (
	// WarnMultipleVariations is raised whenever the multi-variant reducer runs.
	WarnMultipleVariations = "Warning: Attempting to combine multiple (>2) variations."

	// NoteOffsetVariations is raised whenever the phrase aligner fills a gap.
	NoteOffsetVariations = "Note: Combining multi-length or offset variations."

	// WarnNoAnchorFormat is raised when two phrases share no admissible anchor.
	// Arguments are the longer and the shorter phrase.
	WarnNoAnchorFormat = "Could not find any strong anchor points. '%s' and '%s' appear to be distinct values."

	// WarnCaseVariants flags a field with more than two case-insensitively
	// distinct values that also differ only by case or spacing.
	WarnCaseVariants = "Warning: Not implemented - more than two case variants. Manual review required."

	// WarnRepeatedSection flags a token merge where a disambiguated section
	// occurs more than once in the merged token.
	WarnRepeatedSection = "Warning: Not implemented - uncertain section occurs more than once in combined token. Manual review required."
)

// Reconciler and CLI defaults.
const (
	// DefaultWorkers is the default number of field keys reconciled concurrently.
	DefaultWorkers = 4

	// MaxWorkers caps the configured worker count.
	MaxWorkers = 64

	// DefaultRatioSteps is the default number of rows printed by the ratio table.
	DefaultRatioSteps = 9

	// ShutdownTimeout bounds cleanup after a failed command.
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
