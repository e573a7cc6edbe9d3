package rastergrid

// Resample maps row-major values on src onto the cells of target by
// nearest-cell duplication: each target cell takes the value of the src
// cell containing its centre. Target cells whose centre falls outside
// src's extent take fill.
//
// Used when a raster's native resolution differs from the common grid,
// or when its extent only partially covers a requested window.
func Resample(src Grid, values []float64, target Grid, fill float64) []float64 {
	cols, rows := target.Cols(), target.Rows()
	out := make([]float64, cols*rows)
	srcCols := src.Cols()
	for r := 0; r < rows; r++ {
		y := target.CellY(r)
		sr := src.RowAt(y)
		for c := 0; c < cols; c++ {
			sc := src.ColAt(target.CellX(c))
			if sr < 0 || sc < 0 {
				out[r*cols+c] = fill
				continue
			}
			out[r*cols+c] = values[sr*srcCols+sc]
		}
	}
	return out
}

// Aligned reports whether target's cells coincide exactly with a subset
// of src's cells, in which case a Resample would be a plain copy.
func Aligned(src, target Grid) bool {
	if !src.SameResolution(target) {
		return false
	}
	return src.ColAt(target.CellX(0)) >= 0 &&
		approxEqual(src.CellX(src.ColAt(target.CellX(0))), target.CellX(0)) &&
		src.RowAt(target.CellY(0)) >= 0 &&
		approxEqual(src.CellY(src.RowAt(target.CellY(0))), target.CellY(0))
}
