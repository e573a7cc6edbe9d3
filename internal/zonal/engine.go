package zonal

import (
	"fmt"

	"github.com/overlap-data/zonal.report/internal/rastergrid"
)

// StatsResult is the statistics matrix: one row per output row (see
// PairLayers), one column per requested statistic with quantiles
// expanded in request order.
type StatsResult struct {
	Columns    []string
	Rows       [][]float64
	Advisories []string
}

// Stats computes the requested statistics of values (optionally
// weighted by weights) over the cells covered by geom. weights may be
// nil for an unweighted computation.
//
// The computation is synchronous and owns its accumulators exclusively;
// windows are processed in sequence but contribute through an
// associative merge, so the result is independent of the window
// partition. Peak memory is O(MaxCells · layers) regardless of raster
// or geometry size.
func Stats(values, weights RasterSource, geom Geometry, cov CoverageProvider, req Request) (*StatsResult, error) {
	vGrid := values.Grid()
	grid := vGrid
	weighted := weights != nil
	nWeights := 0
	if weighted {
		nWeights = weights.Layers()
		var err error
		grid, err = vGrid.CommonGrid(weights.Grid())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
	}

	nResults, err := PairLayers(values.Layers(), nWeights)
	if err != nil {
		return nil, err
	}

	disaggregated := weighted && (finerRes(grid.DX, vGrid.DX) || finerRes(grid.DY, vGrid.DY))
	if err := req.validate(weighted, disaggregated); err != nil {
		return nil, err
	}

	accs := make([]Accumulator, nResults)
	for i := range accs {
		accs[i] = NewAccumulator(req.needsDistribution())
	}

	if geom.Bounds().Intersects(grid.Extent()) {
		cropped := grid.Crop(geom.Bounds())
		windows, err := rastergrid.Subdivide(cropped, req.MaxCells)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
		for _, win := range windows {
			if err := processWindow(win, values, weights, geom, cov, accs); err != nil {
				return nil, err
			}
		}
	}

	res := &StatsResult{Columns: req.Columns(), Rows: make([][]float64, nResults)}
	for i, acc := range accs {
		row := make([]float64, 0, len(res.Columns))
		for _, s := range req.Stats {
			if s == StatQuantile {
				for _, q := range req.Quantiles {
					row = append(row, acc.Distribution().Quantile(q))
				}
				continue
			}
			row = append(row, evalStat(acc, s))
		}
		res.Rows[i] = row
	}

	if disaggregated && req.WarnOnDisaggregate {
		res.Advisories = append(res.Advisories, disaggregationAdvisory)
	}
	return res, nil
}

// disaggregationAdvisory is emitted by both output paths when the value
// raster is implicitly replicated to the finer resolution of the
// weights.
const disaggregationAdvisory = "value raster implicitly disaggregated to match higher resolution of weights"

// processWindow streams one window's (coverage, value, weight) triples
// into the accumulators, recycling the single layer when the value and
// weight layer counts differ.
func processWindow(win rastergrid.Grid, values, weights RasterSource, geom Geometry, cov CoverageProvider, accs []Accumulator) error {
	cg, err := cov.Coverage(win, geom)
	if err != nil {
		return err
	}
	if cg == nil || cg.Grid.Empty() {
		return nil
	}

	nValues := values.Layers()
	nWeights := 0
	if weights != nil {
		nWeights = weights.Layers()
	}

	var recycledValues, recycledWeights []float64
	if nWeights > nValues {
		if recycledValues, err = values.Read(cg.Grid, 0); err != nil {
			return err
		}
	}
	if weights != nil && nValues >= nWeights && nWeights == 1 && len(accs) > 1 {
		if recycledWeights, err = weights.Read(cg.Grid, 0); err != nil {
			return err
		}
	}

	for i, acc := range accs {
		vi, wi := pairIndexes(i, nValues, nWeights)

		vals := recycledValues
		if vals == nil || vi != 0 {
			if vals, err = values.Read(cg.Grid, vi); err != nil {
				return err
			}
		}

		var wts []float64
		if weights != nil {
			wts = recycledWeights
			if wts == nil || wi != 0 {
				if wts, err = weights.Read(cg.Grid, wi); err != nil {
					return err
				}
			}
		}

		for idx, c := range cg.Fractions {
			if c <= 0 {
				continue
			}
			w := 1.0
			if wts != nil {
				w = wts[idx]
			}
			acc.Update(vals[idx], c, w)
		}
	}
	return nil
}

// evalStat maps one statistic kind to a read of final accumulator
// state. StatQuantile is expanded by the caller.
func evalStat(acc Accumulator, s Stat) float64 {
	sum := acc.Summary()
	switch s {
	case StatCount:
		return sum.Count()
	case StatSum:
		return sum.Sum()
	case StatMean:
		return sum.Mean()
	case StatMin:
		return sum.Min()
	case StatMax:
		return sum.Max()
	case StatWeightedMean:
		return sum.WeightedMean()
	case StatWeightedSum:
		return sum.WeightedSum()
	case StatVariance:
		return sum.Variance()
	case StatStdev:
		return sum.Stdev()
	case StatCoefOfVar:
		return sum.CoefOfVariation()
	case StatMedian:
		return acc.Distribution().Quantile(0.5)
	case StatMode:
		return acc.Distribution().Mode()
	case StatMinority:
		return acc.Distribution().Minority()
	case StatVariety:
		return float64(acc.Distribution().Variety())
	}
	return NaN()
}

func finerRes(a, b float64) bool {
	return a < b && (b-a) > rastergrid.RelTol*b
}
