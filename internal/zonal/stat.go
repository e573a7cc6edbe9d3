package zonal

import "fmt"

// Stat identifies one supported statistic. The set is closed: requests
// are validated against it once, up front, and every kind maps to a
// pure read of final accumulator state.
type Stat int

const (
	StatCount Stat = iota
	StatSum
	StatMean
	StatMin
	StatMax
	StatMedian
	StatQuantile
	StatMode
	StatMinority
	StatVariety
	StatWeightedMean
	StatWeightedSum
	StatVariance
	StatStdev
	StatCoefOfVar
)

var statNames = map[Stat]string{
	StatCount:        "count",
	StatSum:          "sum",
	StatMean:         "mean",
	StatMin:          "min",
	StatMax:          "max",
	StatMedian:       "median",
	StatQuantile:     "quantile",
	StatMode:         "mode",
	StatMinority:     "minority",
	StatVariety:      "variety",
	StatWeightedMean: "weighted_mean",
	StatWeightedSum:  "weighted_sum",
	StatVariance:     "variance",
	StatStdev:        "stdev",
	StatCoefOfVar:    "coefficient_of_variation",
}

// String returns the canonical request name of the statistic.
func (s Stat) String() string {
	if n, ok := statNames[s]; ok {
		return n
	}
	return fmt.Sprintf("stat(%d)", int(s))
}

// ParseStat resolves a requested statistic name. "majority" is accepted
// as a synonym for "mode". Unknown names are a configuration error.
func ParseStat(name string) (Stat, error) {
	if name == "majority" {
		return StatMode, nil
	}
	for s, n := range statNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown statistic %q", ErrConfig, name)
}

// NeedsDistribution reports whether the statistic requires the
// accumulator to retain per-value coverage weights. Summary statistics
// must not pay that memory cost.
func (s Stat) NeedsDistribution() bool {
	switch s {
	case StatMedian, StatQuantile, StatMode, StatMinority, StatVariety:
		return true
	}
	return false
}

// NeedsWeights reports whether the statistic is defined only when a
// weight raster is supplied.
func (s Stat) NeedsWeights() bool {
	return s == StatWeightedMean || s == StatWeightedSum
}

// countBased reports whether the statistic is sensitive to raw cell
// counts and therefore invalid under implicit disaggregation.
func (s Stat) countBased() bool {
	return s == StatCount || s == StatSum
}
