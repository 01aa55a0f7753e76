package reconcile

// Strategy names the route the dispatcher took for a field.
type Strategy string

// String returns the string representation of a strategy.
func (s Strategy) String() string {
	return string(s)
}

// Routes a field can take.
const (
	// StrategyPassthrough returns the sole variant, or "" when there is none.
	StrategyPassthrough Strategy = "passthrough"

	// StrategyCaseNormalised title cases variants that differ only in case.
	StrategyCaseNormalised Strategy = "case-normalised"

	// StrategyCaseAligned aligns the two case-folded readings of a field
	// whose variants also differ in spacing.
	StrategyCaseAligned Strategy = "case-aligned"

	// StrategyTwoPhrase aligns exactly two variants.
	StrategyTwoPhrase Strategy = "two-phrase"

	// StrategyMultiVariant clusters three or more variants.
	StrategyMultiVariant Strategy = "multi-variant"
)

// Strategies lists every route in dispatch order.
func Strategies() []Strategy {
	return []Strategy{
		StrategyPassthrough,
		StrategyCaseNormalised,
		StrategyCaseAligned,
		StrategyTwoPhrase,
		StrategyMultiVariant,
	}
}
