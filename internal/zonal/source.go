package zonal

import (
	"github.com/overlap-data/zonal.report/internal/rastergrid"
)

// Geometry is the engine's view of an input polygon. The engine itself
// needs only the bounding box; the CoverageProvider implementation in
// use may require a richer type.
type Geometry interface {
	Bounds() rastergrid.Box
}

// RasterSource supplies per-layer value arrays over a requested target
// grid, resampling by nearest-cell duplication when the native
// resolution differs and filling cells outside its extent with a
// declared default value.
type RasterSource interface {
	// Grid returns the raster's native grid.
	Grid() rastergrid.Grid

	// Layers returns the number of layers.
	Layers() int

	// Name returns the column name of a layer for extraction output.
	Name(layer int) string

	// Read returns row-major values for one layer over the target grid.
	Read(target rastergrid.Grid, layer int) ([]float64, error)
}

// CoverageGrid pairs a grid with per-cell polygon coverage fractions in
// [0,1], row-major. A cell with fraction 0 is not covered.
type CoverageGrid struct {
	Grid      rastergrid.Grid
	Fractions []float64
}

// CoverageProvider computes, for every cell of a grid, the fraction of
// the cell covered by a geometry. The rasterization algorithm behind it
// is opaque to the engine and may be swapped freely.
type CoverageProvider interface {
	Coverage(grid rastergrid.Grid, geom Geometry) (*CoverageGrid, error)
}
