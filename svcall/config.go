package svcall

// Config bundles every numeric threshold the caller's resolvers consult,
// replacing the untyped threshold bag scattered across Evidence in the
// original (spec.md §9's "Untyped threshold bag on Evidence" redesign note).
// Zero-value fields are not treated as "derive a default" here, unlike
// assemble.Opts: every field must be set explicitly by the caller, since
// there is no sensible zero for a read-count or fragment-size threshold.
// ContigAlnMinQueryConsumption is carried in the bag, but no resolver in this
// package reads it.
type Config struct {
	MinFlankingPairsResolution              int
	MinSplitsReadsResolution                int
	MinSpanningReadsResolution               int
	MinNonTargetAlignedSplitReads            int
	MinLinkingSplitReads                     int
	MinDoubleAlignedToEstimateInsertionSize  int
	ContigAlnMinQueryConsumption             float64
}

// DefaultConfig mirrors the thresholds MAVIS ships as defaults.
var DefaultConfig = Config{
	MinFlankingPairsResolution:              1,
	MinSplitsReadsResolution:                1,
	MinSpanningReadsResolution:               1,
	MinNonTargetAlignedSplitReads:            1,
	MinLinkingSplitReads:                     1,
	MinDoubleAlignedToEstimateInsertionSize:  2,
	ContigAlnMinQueryConsumption:             0.9,
}
