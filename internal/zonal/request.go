package zonal

import (
	"fmt"
	"strconv"
)

// DefaultMaxCells bounds the number of cells held in memory for any one
// window, and with it the size of the coverage/value/weight arrays.
const DefaultMaxCells = 5_000_000

// Request describes one statistics computation: which statistics, in
// which order, plus the memory bound and advisory flag. A Request is
// validated fully before any window is processed.
type Request struct {
	Stats     []Stat
	Quantiles []float64 // required iff StatQuantile or present in Stats

	// MaxCells bounds the cell count of any single processing window.
	MaxCells int

	// WarnOnDisaggregate opts in to a non-fatal advisory when the value
	// raster is implicitly disaggregated to the weight resolution.
	WarnOnDisaggregate bool
}

// ParseRequest builds a Request from statistic names, resolving each
// name against the closed statistic set.
func ParseRequest(names []string, quantiles []float64, maxCells int) (Request, error) {
	req := Request{Quantiles: quantiles, MaxCells: maxCells}
	for _, n := range names {
		s, err := ParseStat(n)
		if err != nil {
			return Request{}, err
		}
		req.Stats = append(req.Stats, s)
	}
	return req, nil
}

// validate rejects malformed requests up front: invalid memory bound,
// empty statistic list, quantiles without fractions or out of range,
// weighted statistics without weights, and count/sum under implicit
// disaggregation. No partial computation is attempted after a failure.
func (r Request) validate(weighted, disaggregated bool) error {
	if r.MaxCells < 1 {
		return fmt.Errorf("%w: invalid value for max cells in memory: %d", ErrConfig, r.MaxCells)
	}
	if len(r.Stats) == 0 {
		return fmt.Errorf("%w: no statistics requested", ErrConfig)
	}
	for _, s := range r.Stats {
		if s == StatQuantile {
			if len(r.Quantiles) == 0 {
				return fmt.Errorf("%w: quantiles not specified", ErrConfig)
			}
			for _, q := range r.Quantiles {
				if q < 0 || q > 1 {
					return fmt.Errorf("%w: quantile fraction %g outside [0,1]", ErrConfig, q)
				}
			}
		}
		if s.NeedsWeights() && !weighted {
			return fmt.Errorf("%w: %s requires a weight raster", ErrConfig, s)
		}
		if s.countBased() && disaggregated {
			return fmt.Errorf("%w: cannot compute %s when value raster is disaggregated to resolution of weights",
				ErrUnsupported, s)
		}
	}
	return nil
}

// needsDistribution reports whether any requested statistic requires
// per-value state.
func (r Request) needsDistribution() bool {
	for _, s := range r.Stats {
		if s.NeedsDistribution() {
			return true
		}
	}
	return false
}

// Columns returns the output column names in request order, with the
// quantile statistic expanded into one column per fraction.
func (r Request) Columns() []string {
	cols := make([]string, 0, len(r.Stats)+len(r.Quantiles))
	for _, s := range r.Stats {
		if s == StatQuantile {
			for _, q := range r.Quantiles {
				cols = append(cols, "quantile_"+strconv.FormatFloat(q, 'g', -1, 64))
			}
			continue
		}
		cols = append(cols, s.String())
	}
	return cols
}
