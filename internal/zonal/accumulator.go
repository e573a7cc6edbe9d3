package zonal

import (
	"math"
	"sort"
)

// NaN is the missing-value sentinel returned by statistics that are
// undefined over zero covered cells.
func NaN() float64 { return math.NaN() }

// Accumulator is the per-output-row aggregation state. One accumulator
// is created per output row before any window is processed, updated
// once per window, and read only after the last window. It is never
// reset and never shared between computations.
//
// Two variants exist behind this interface: a summary-only variant with
// O(1) state, and a distribution variant that additionally tracks
// cumulative coverage weight per distinct value. NewAccumulator selects
// the variant; Distribution returns nil on the summary-only one.
type Accumulator interface {
	// Update folds one covered cell into the state. Cells with zero
	// coverage and NaN values are ignored.
	Update(value, coverage, weight float64)

	// Merge folds another accumulator of the same variant into this
	// one. Merge is associative and commutative, so windows may be
	// processed in any order, or in parallel partitions merged at the
	// end, with identical results.
	Merge(other Accumulator)

	Summary() *Summary
	Distribution() *Distribution
}

// NewAccumulator returns a summary-only accumulator, or a
// distribution-tracking one when trackValues is set.
func NewAccumulator(trackValues bool) Accumulator {
	if trackValues {
		return &Distribution{weights: make(map[float64]float64)}
	}
	return &Summary{}
}

// Summary holds the scalar accumulation state: coverage-weighted count,
// sums, extrema, and a Welford-style running variance that merges
// exactly across partitions.
type Summary struct {
	count       float64 // Σc
	sum         float64 // Σ(v·c)
	weightSum   float64 // Σ(c·w)
	weightedSum float64 // Σ(v·c·w)
	mean        float64 // running coverage-weighted mean (variance only)
	m2          float64 // Σ(c·(v-mean)²)
	min         float64
	max         float64
	seen        bool
}

func (s *Summary) Update(value, coverage, weight float64) {
	if coverage <= 0 || math.IsNaN(value) {
		return
	}
	s.count += coverage
	s.sum += value * coverage
	s.weightSum += coverage * weight
	s.weightedSum += value * coverage * weight

	d := value - s.mean
	s.mean += coverage / s.count * d
	s.m2 += coverage * d * (value - s.mean)

	if !s.seen || value < s.min {
		s.min = value
	}
	if !s.seen || value > s.max {
		s.max = value
	}
	s.seen = true
}

func (s *Summary) Merge(other Accumulator) {
	o := other.Summary()
	if o.count > 0 {
		// Chan et al. parallel combination of Welford state.
		n := s.count + o.count
		d := o.mean - s.mean
		s.mean += d * o.count / n
		s.m2 += o.m2 + d*d*s.count*o.count/n
		s.count = n
	}
	s.sum += o.sum
	s.weightSum += o.weightSum
	s.weightedSum += o.weightedSum
	if o.seen {
		if !s.seen || o.min < s.min {
			s.min = o.min
		}
		if !s.seen || o.max > s.max {
			s.max = o.max
		}
		s.seen = true
	}
}

func (s *Summary) Summary() *Summary           { return s }
func (s *Summary) Distribution() *Distribution { return nil }

// Count returns the coverage-weighted cell count Σc. Well-defined (0)
// over zero covered cells.
func (s *Summary) Count() float64 { return s.count }

// Sum returns Σ(v·c), NaN over zero covered cells.
func (s *Summary) Sum() float64 {
	if s.count == 0 {
		return NaN()
	}
	return s.sum
}

// Mean returns Sum/Count, NaN over zero covered cells.
func (s *Summary) Mean() float64 {
	if s.count == 0 {
		return NaN()
	}
	return s.sum / s.count
}

// Min returns the smallest value over cells with positive coverage.
func (s *Summary) Min() float64 {
	if !s.seen {
		return NaN()
	}
	return s.min
}

// Max returns the largest value over cells with positive coverage.
func (s *Summary) Max() float64 {
	if !s.seen {
		return NaN()
	}
	return s.max
}

// WeightedSum returns Σ(v·c·w).
func (s *Summary) WeightedSum() float64 {
	if s.count == 0 {
		return NaN()
	}
	return s.weightedSum
}

// WeightedMean returns Σ(v·c·w) / Σ(c·w).
func (s *Summary) WeightedMean() float64 {
	if s.weightSum == 0 {
		return NaN()
	}
	return s.weightedSum / s.weightSum
}

// Variance returns the coverage-weighted population variance
// Σ(c·(v-mean)²) / Σc.
func (s *Summary) Variance() float64 {
	if s.count == 0 {
		return NaN()
	}
	return s.m2 / s.count
}

// Stdev returns the square root of Variance.
func (s *Summary) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

// CoefOfVariation returns Stdev/Mean.
func (s *Summary) CoefOfVariation() float64 {
	return s.Stdev() / s.Mean()
}

// Distribution extends Summary with cumulative coverage weight per
// distinct value, enabling variety, mode, minority and quantiles.
// Memory is O(distinct values) and is only paid when a requested
// statistic needs it.
type Distribution struct {
	// summary is an alias for Summary: embedding it under an unexported
	// name keeps the promoted Summary() method from being shadowed by a
	// field named Summary.
	summary
	weights map[float64]float64
}

// summary aliases Summary so Distribution can embed it without the
// field name colliding with the Summary() accessor.
type summary = Summary

func (d *Distribution) Update(value, coverage, weight float64) {
	if coverage <= 0 || math.IsNaN(value) {
		return
	}
	d.summary.Update(value, coverage, weight)
	d.weights[value] += coverage
}

func (d *Distribution) Merge(other Accumulator) {
	d.summary.Merge(other)
	if o := other.Distribution(); o != nil {
		for v, w := range o.weights {
			d.weights[v] += w
		}
	}
}

func (d *Distribution) Distribution() *Distribution { return d }

// Variety returns the number of distinct values over cells with
// positive coverage. Well-defined (0) over zero covered cells.
func (d *Distribution) Variety() int { return len(d.weights) }

// Mode returns the value with the greatest cumulative coverage weight.
// Ties break to the smallest value so results are deterministic.
func (d *Distribution) Mode() float64 {
	return d.extremeWeight(func(w, best float64) bool { return w > best })
}

// Minority returns the value with the least (nonzero) cumulative
// coverage weight. Ties break to the smallest value.
func (d *Distribution) Minority() float64 {
	return d.extremeWeight(func(w, best float64) bool { return w < best })
}

func (d *Distribution) extremeWeight(better func(w, best float64) bool) float64 {
	if len(d.weights) == 0 {
		return NaN()
	}
	first := true
	var bestV, bestW float64
	for v, w := range d.weights {
		if first || better(w, bestW) || (w == bestW && v < bestV) {
			bestV, bestW = v, w
			first = false
		}
	}
	return bestV
}

// Quantile returns the coverage-weighted quantile for q in [0,1].
//
// Interpolation rule: distinct values are sorted ascending and each is
// placed at the midpoint of its cumulative-weight interval,
// x_i = (cum_i - w_i/2) / W. Quantile(q) interpolates linearly between
// the two bracketing values and clamps to min/max outside [x_0, x_n].
// Four unit-weight cells 1,2,3,4 therefore give Quantile(0.5) == 2.5.
func (d *Distribution) Quantile(q float64) float64 {
	if len(d.weights) == 0 || q < 0 || q > 1 {
		return NaN()
	}

	values := make([]float64, 0, len(d.weights))
	total := 0.0
	for v, w := range d.weights {
		values = append(values, v)
		total += w
	}
	if total <= 0 {
		return NaN()
	}
	sort.Float64s(values)

	cum := 0.0
	prevV, prevX := values[0], 0.0
	for i, v := range values {
		w := d.weights[v]
		x := (cum + w/2) / total
		cum += w
		if i == 0 {
			if q <= x {
				return v
			}
			prevV, prevX = v, x
			continue
		}
		if q <= x {
			t := (q - prevX) / (x - prevX)
			return prevV + t*(v-prevV)
		}
		prevV, prevX = v, x
	}
	return values[len(values)-1]
}
