// Package rasterio supplies raster sources for the zonal engine: an
// in-memory multi-layer raster and a reader for the ESRI ASCII grid
// interchange format.
package rasterio

import (
	"fmt"

	"github.com/overlap-data/zonal.report/internal/rastergrid"
)

// MemRaster is an in-memory multi-layer raster. Layer data is row-major
// with row 0 at the top of the extent. Reads outside the extent return
// the configured fill value.
type MemRaster struct {
	grid   rastergrid.Grid
	layers [][]float64
	names  []string
	fill   float64
}

// NewMemRaster builds a raster over grid from one or more equally-sized
// row-major layers. names supplies per-layer column names; missing
// entries default to "layer_<i>".
func NewMemRaster(grid rastergrid.Grid, layers [][]float64, names []string, fill float64) (*MemRaster, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("raster needs at least one layer")
	}
	want := grid.Cells()
	for i, l := range layers {
		if len(l) != want {
			return nil, fmt.Errorf("layer %d has %d cells, grid has %d", i, len(l), want)
		}
	}
	r := &MemRaster{grid: grid, layers: layers, fill: fill}
	for i := range layers {
		if i < len(names) && names[i] != "" {
			r.names = append(r.names, names[i])
		} else {
			r.names = append(r.names, fmt.Sprintf("layer_%d", i))
		}
	}
	return r, nil
}

// Grid returns the raster's native grid.
func (r *MemRaster) Grid() rastergrid.Grid { return r.grid }

// Layers returns the layer count.
func (r *MemRaster) Layers() int { return len(r.layers) }

// Name returns the column name of a layer.
func (r *MemRaster) Name(layer int) string { return r.names[layer] }

// Fill returns the declared default value for out-of-extent reads.
func (r *MemRaster) Fill() float64 { return r.fill }

// Read returns one layer's values over the target grid, duplicating
// nearest cells when the target is finer and filling outside the
// extent.
func (r *MemRaster) Read(target rastergrid.Grid, layer int) ([]float64, error) {
	if layer < 0 || layer >= len(r.layers) {
		return nil, fmt.Errorf("layer %d out of range [0,%d)", layer, len(r.layers))
	}
	// The engine reads whole windows of the raster's own grid in the
	// unweighted case; serve the native vector without a copy. Aligned
	// tolerates float noise that a struct comparison would not.
	if rastergrid.Aligned(r.grid, target) &&
		target.Cols() == r.grid.Cols() && target.Rows() == r.grid.Rows() &&
		r.grid.ColAt(target.CellX(0)) == 0 && r.grid.RowAt(target.CellY(0)) == 0 {
		return r.layers[layer], nil
	}
	return rastergrid.Resample(r.grid, r.layers[layer], target, r.fill), nil
}
