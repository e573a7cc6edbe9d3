package zonal

import (
	"fmt"

	"github.com/overlap-data/zonal.report/internal/rastergrid"
)

// IncludeColumn is a caller-supplied pass-through column replicated
// onto every extraction row.
type IncludeColumn struct {
	Name  string
	Value string
}

// ExtractOptions configures an extraction-table computation.
type ExtractOptions struct {
	// Include columns are emitted first, before any layer column.
	Include []IncludeColumn

	// IncludeXY adds cell-centre x and y columns.
	IncludeXY bool

	// IncludeCell adds the 1-based row-major cell number of the value
	// raster cell containing each output cell.
	IncludeCell bool

	// MaxCells bounds the cell count of any single processing window.
	MaxCells int

	// WarnOnDisaggregate opts in to a non-fatal advisory when the value
	// raster is implicitly disaggregated to the weight resolution.
	WarnOnDisaggregate bool
}

// ExtractTable lists every covered cell of the common, bbox-cropped
// grid: pass-through columns, then one numeric column per value layer,
// per weight layer, optional x/y and cell number, and the coverage
// fraction last.
type ExtractTable struct {
	Include    []IncludeColumn
	Columns    []string
	Rows       [][]float64
	Advisories []string
}

// Extract builds the per-cell extraction table for geom over values and
// the optional weights raster. Rows are produced in row-major grid
// order; cells with zero coverage are omitted.
func Extract(values, weights RasterSource, geom Geometry, cov CoverageProvider, opts ExtractOptions) (*ExtractTable, error) {
	if opts.MaxCells < 1 {
		return nil, fmt.Errorf("%w: invalid value for max cells in memory: %d", ErrConfig, opts.MaxCells)
	}

	vGrid := values.Grid()
	grid := vGrid
	if weights != nil {
		var err error
		grid, err = vGrid.CommonGrid(weights.Grid())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
	}

	table := &ExtractTable{Include: opts.Include}
	if opts.WarnOnDisaggregate && weights != nil &&
		(finerRes(grid.DX, vGrid.DX) || finerRes(grid.DY, vGrid.DY)) {
		table.Advisories = append(table.Advisories, disaggregationAdvisory)
	}

	names := make(map[string]bool)
	for _, inc := range opts.Include {
		names[inc.Name] = true
	}
	for i := 0; i < values.Layers(); i++ {
		table.Columns = append(table.Columns, values.Name(i))
		names[values.Name(i)] = true
	}
	if weights != nil {
		for i := 0; i < weights.Layers(); i++ {
			// Match data.frame naming: a duplicate weight column gets a
			// single ".1" suffix; upstream layer naming is assumed to
			// have made names within each raster unique already.
			name := weights.Name(i)
			if names[name] {
				name += ".1"
			}
			table.Columns = append(table.Columns, name)
			names[name] = true
		}
	}
	if opts.IncludeXY {
		table.Columns = append(table.Columns, "x", "y")
	}
	if opts.IncludeCell {
		table.Columns = append(table.Columns, "cell")
	}
	table.Columns = append(table.Columns, "coverage_fraction")

	if !geom.Bounds().Intersects(grid.Extent()) {
		return table, nil
	}
	cropped := grid.Crop(geom.Bounds())
	windows, err := rastergrid.Subdivide(cropped, opts.MaxCells)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	nLayers := values.Layers()
	nWeights := 0
	if weights != nil {
		nWeights = weights.Layers()
	}

	for _, win := range windows {
		cg, err := cov.Coverage(win, geom)
		if err != nil {
			return nil, err
		}
		if cg == nil || cg.Grid.Empty() {
			continue
		}

		layerData := make([][]float64, 0, nLayers+nWeights)
		for i := 0; i < nLayers; i++ {
			d, err := values.Read(cg.Grid, i)
			if err != nil {
				return nil, err
			}
			layerData = append(layerData, d)
		}
		for i := 0; i < nWeights; i++ {
			d, err := weights.Read(cg.Grid, i)
			if err != nil {
				return nil, err
			}
			layerData = append(layerData, d)
		}

		cols := cg.Grid.Cols()
		for idx, c := range cg.Fractions {
			if c <= 0 {
				continue
			}
			row := make([]float64, 0, len(table.Columns))
			for _, d := range layerData {
				row = append(row, d[idx])
			}
			x := cg.Grid.CellX(idx % cols)
			y := cg.Grid.CellY(idx / cols)
			if opts.IncludeXY {
				row = append(row, x, y)
			}
			if opts.IncludeCell {
				row = append(row, cellNumber(vGrid, x, y))
			}
			row = append(row, c)
			table.Rows = append(table.Rows, row)
		}
	}
	return table, nil
}

// cellNumber returns the 1-based row-major cell number of the grid cell
// containing (x, y), or NaN when the point is outside the grid.
func cellNumber(g rastergrid.Grid, x, y float64) float64 {
	row, col := g.RowAt(y), g.ColAt(x)
	if row < 0 || col < 0 {
		return NaN()
	}
	return float64(row*g.Cols() + col + 1)
}
