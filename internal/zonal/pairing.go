package zonal

import "fmt"

// PairLayers resolves how many output rows a value raster with nValues
// layers and a weight raster with nWeights layers produce.
//
// With no weights (nWeights == 0) there is one row per value layer.
// Equal counts pair by index. When exactly one side has a single layer
// it is recycled against every layer of the other side. Two multi-layer
// rasters with differing counts are rejected before any processing.
func PairLayers(nValues, nWeights int) (int, error) {
	if nValues < 1 {
		return 0, fmt.Errorf("%w: value raster has no layers", ErrConfig)
	}
	if nWeights < 0 {
		return 0, fmt.Errorf("%w: negative weight layer count %d", ErrConfig, nWeights)
	}
	if nValues > 1 && nWeights > 1 && nValues != nWeights {
		return 0, fmt.Errorf("%w: incompatible number of layers in value (%d) and weighting (%d) rasters",
			ErrConfig, nValues, nWeights)
	}
	if nWeights > nValues {
		return nWeights, nil
	}
	return nValues, nil
}

// pairIndexes returns the (value layer, weight layer) pair feeding
// output row i, recycling whichever side has a single layer.
func pairIndexes(i, nValues, nWeights int) (vi, wi int) {
	vi, wi = i, i
	if nValues == 1 {
		vi = 0
	}
	if nWeights == 1 {
		wi = 0
	}
	return vi, wi
}
