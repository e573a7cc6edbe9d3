// Command coverage-plot renders the per-cell coverage fractions of a
// polygon over a raster grid as a PNG heatmap. Useful for eyeballing
// what the zonal engine will aggregate before running statistics.
package main

import (
	"flag"
	"log"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/overlap-data/zonal.report/internal/coverage"
	"github.com/overlap-data/zonal.report/internal/geomio"
	"github.com/overlap-data/zonal.report/internal/rasterio"
	"github.com/overlap-data/zonal.report/internal/zonal"
)

var (
	valuesPath  = flag.String("values", "", "Raster defining the grid (.asc, required)")
	geojsonPath = flag.String("geojson", "", "Polygon geometry as GeoJSON file (required)")
	samples     = flag.Int("samples", coverage.DefaultSamples, "Coverage sampling density per cell axis")
	outPath     = flag.String("out", "coverage.png", "Output PNG path")
)

// coverageXYZ adapts a CoverageGrid to the heatmap's grid interface.
type coverageXYZ struct {
	cg *zonal.CoverageGrid
}

func (c coverageXYZ) Dims() (int, int) { return c.cg.Grid.Cols(), c.cg.Grid.Rows() }
func (c coverageXYZ) X(col int) float64 {
	return c.cg.Grid.CellX(col)
}
func (c coverageXYZ) Y(row int) float64 {
	// The heatmap expects Y increasing with the index; flip rows so the
	// northernmost raster row plots at the top.
	return c.cg.Grid.CellY(c.cg.Grid.Rows() - 1 - row)
}
func (c coverageXYZ) Z(col, row int) float64 {
	flipped := c.cg.Grid.Rows() - 1 - row
	return c.cg.Fractions[flipped*c.cg.Grid.Cols()+col]
}

func main() {
	flag.Parse()
	if *valuesPath == "" || *geojsonPath == "" {
		log.Fatal("both -values and -geojson are required")
	}

	raster, err := rasterio.ReadASCFile(*valuesPath, "values")
	if err != nil {
		log.Fatalf("reading raster: %v", err)
	}
	data, err := os.ReadFile(*geojsonPath)
	if err != nil {
		log.Fatalf("reading geometry: %v", err)
	}
	geom, err := geomio.DecodeGeoJSON(data)
	if err != nil {
		log.Fatalf("parsing geometry: %v", err)
	}

	grid := raster.Grid().Crop(geom.Bounds())
	if grid.Empty() {
		log.Fatal("geometry does not intersect the raster extent")
	}

	cg, err := coverage.NewSampler(*samples).Coverage(grid, geom)
	if err != nil {
		log.Fatalf("computing coverage: %v", err)
	}

	p := plot.New()
	p.Title.Text = "Polygon coverage fraction"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	hm := plotter.NewHeatMap(coverageXYZ{cg}, palette.Heat(16, 1))
	hm.Min, hm.Max = 0, 1
	p.Add(hm)

	if err := p.Save(8*vg.Inch, 8*vg.Inch, *outPath); err != nil {
		log.Fatalf("saving plot: %v", err)
	}
	log.Printf("wrote %s (%dx%d cells)", *outPath, grid.Cols(), grid.Rows())
}
