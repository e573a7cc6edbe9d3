// Package testutil provides shared raster and geometry fixtures for the
// zonal engine tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/paulmach/orb"

	"github.com/overlap-data/zonal.report/internal/geomio"
	"github.com/overlap-data/zonal.report/internal/rastergrid"
	"github.com/overlap-data/zonal.report/internal/rasterio"
	"github.com/overlap-data/zonal.report/internal/zonal"
)

// MustGrid builds a grid or fails the test.
func MustGrid(t *testing.T, xmin, ymin, xmax, ymax, dx, dy float64) rastergrid.Grid {
	t.Helper()
	g, err := rastergrid.NewGrid(xmin, ymin, xmax, ymax, dx, dy)
	if err != nil {
		t.Fatalf("building grid: %v", err)
	}
	return g
}

// MustRaster builds a single-layer in-memory raster or fails the test.
func MustRaster(t *testing.T, g rastergrid.Grid, values []float64) *rasterio.MemRaster {
	t.Helper()
	r, err := rasterio.NewMemRaster(g, [][]float64{values}, []string{"values"}, 0)
	if err != nil {
		t.Fatalf("building raster: %v", err)
	}
	return r
}

// MustLayers builds a multi-layer raster with names layer_0..layer_n.
func MustLayers(t *testing.T, g rastergrid.Grid, layers ...[]float64) *rasterio.MemRaster {
	t.Helper()
	names := make([]string, len(layers))
	for i := range names {
		names[i] = fmt.Sprintf("layer_%d", i)
	}
	r, err := rasterio.NewMemRaster(g, layers, names, 0)
	if err != nil {
		t.Fatalf("building raster: %v", err)
	}
	return r
}

// ConstRaster builds a raster whose every cell holds v.
func ConstRaster(t *testing.T, g rastergrid.Grid, v float64) *rasterio.MemRaster {
	t.Helper()
	vals := make([]float64, g.Cells())
	for i := range vals {
		vals[i] = v
	}
	return MustRaster(t, g, vals)
}

// SquarePolygon builds an axis-aligned rectangular polygon.
func SquarePolygon(t *testing.T, xmin, ymin, xmax, ymax float64) *geomio.Polygon {
	t.Helper()
	ring := orb.Ring{
		{xmin, ymin}, {xmax, ymin}, {xmax, ymax}, {xmin, ymax}, {xmin, ymin},
	}
	p, err := geomio.FromOrb(orb.Polygon{ring})
	if err != nil {
		t.Fatalf("building polygon: %v", err)
	}
	return p
}

// ExactCoverage is a CoverageProvider that computes the exact covered
// area of each cell against an axis-aligned rectangle. It keeps engine
// tests independent of any sampling approximation.
type ExactCoverage struct {
	Box rastergrid.Box
}

// Coverage returns the exact fraction of each grid cell inside the box.
func (e ExactCoverage) Coverage(g rastergrid.Grid, _ zonal.Geometry) (*zonal.CoverageGrid, error) {
	cols, rows := g.Cols(), g.Rows()
	fractions := make([]float64, cols*rows)
	for r := 0; r < rows; r++ {
		yTop := g.YMax - float64(r)*g.DY
		oy := overlap(yTop-g.DY, yTop, e.Box.YMin, e.Box.YMax)
		for c := 0; c < cols; c++ {
			xLeft := g.XMin + float64(c)*g.DX
			ox := overlap(xLeft, xLeft+g.DX, e.Box.XMin, e.Box.XMax)
			fractions[r*cols+c] = ox * oy / (g.DX * g.DY)
		}
	}
	return &zonal.CoverageGrid{Grid: g, Fractions: fractions}, nil
}

func overlap(a0, a1, b0, b1 float64) float64 {
	lo, hi := a0, a1
	if b0 > lo {
		lo = b0
	}
	if b1 < hi {
		hi = b1
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}
