package zonal_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overlap-data/zonal.report/internal/rastergrid"
	"github.com/overlap-data/zonal.report/internal/rasterio"
	"github.com/overlap-data/zonal.report/internal/testutil"
	"github.com/overlap-data/zonal.report/internal/zonal"
)

func TestExtractFullCoverage(t *testing.T) {
	grid := testutil.MustGrid(t, 0, 0, 2, 2, 1, 1)
	values := testutil.MustRaster(t, grid, []float64{1, 2, 3, 4})
	poly := testutil.SquarePolygon(t, 0, 0, 2, 2)
	cov := testutil.ExactCoverage{Box: rastergrid.Box{XMin: 0, YMin: 0, XMax: 2, YMax: 2}}

	table, err := zonal.Extract(values, nil, poly, cov, zonal.ExtractOptions{
		IncludeXY: true, IncludeCell: true, MaxCells: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"values", "x", "y", "cell", "coverage_fraction"}, table.Columns)

	// Row-major from the north-west corner: values 1..4, cells 1..4.
	want := [][]float64{
		{1, 0.5, 1.5, 1, 1},
		{2, 1.5, 1.5, 2, 1},
		{3, 0.5, 0.5, 3, 1},
		{4, 1.5, 0.5, 4, 1},
	}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractOmitsUncoveredCells(t *testing.T) {
	grid := testutil.MustGrid(t, 0, 0, 4, 4, 1, 1)
	vals := make([]float64, 16)
	for i := range vals {
		vals[i] = float64(i + 1)
	}
	values := testutil.MustRaster(t, grid, vals)
	// Exactly the south-west 2x2 quadrant.
	poly := testutil.SquarePolygon(t, 0, 0, 2, 2)
	cov := testutil.ExactCoverage{Box: rastergrid.Box{XMin: 0, YMin: 0, XMax: 2, YMax: 2}}

	table, err := zonal.Extract(values, nil, poly, cov, zonal.ExtractOptions{MaxCells: 100})
	require.NoError(t, err)

	require.Len(t, table.Rows, 4)
	got := make([]float64, 0, 4)
	for _, row := range table.Rows {
		got = append(got, row[0])
		assert.Equal(t, 1.0, row[1], "coverage for value %v", row[0])
	}
	// Rows 2 and 3, columns 0 and 1 of the value grid.
	assert.Equal(t, []float64{9, 10, 13, 14}, got)
}

func TestExtractWeightNameCollision(t *testing.T) {
	grid := testutil.MustGrid(t, 0, 0, 2, 2, 1, 1)
	values, err := rasterio.NewMemRaster(grid,
		[][]float64{{1, 2, 3, 4}}, []string{"band"}, 0)
	require.NoError(t, err)
	weights, err := rasterio.NewMemRaster(grid,
		[][]float64{{5, 6, 7, 8}}, []string{"band"}, 0)
	require.NoError(t, err)

	poly := testutil.SquarePolygon(t, 0, 0, 2, 2)
	cov := testutil.ExactCoverage{Box: rastergrid.Box{XMin: 0, YMin: 0, XMax: 2, YMax: 2}}

	table, err := zonal.Extract(values, weights, poly, cov, zonal.ExtractOptions{MaxCells: 100})
	require.NoError(t, err)

	assert.Equal(t, []string{"band", "band.1", "coverage_fraction"}, table.Columns)
	require.Len(t, table.Rows, 4)
	assert.Equal(t, []float64{1, 5, 1}, table.Rows[0])
}

func TestExtractIncludeColumns(t *testing.T) {
	grid := testutil.MustGrid(t, 0, 0, 2, 2, 1, 1)
	values := testutil.MustRaster(t, grid, []float64{1, 2, 3, 4})
	poly := testutil.SquarePolygon(t, 0, 0, 2, 2)
	cov := testutil.ExactCoverage{Box: rastergrid.Box{XMin: 0, YMin: 0, XMax: 2, YMax: 2}}

	table, err := zonal.Extract(values, nil, poly, cov, zonal.ExtractOptions{
		Include:  []zonal.IncludeColumn{{Name: "zone", Value: "A"}},
		MaxCells: 100,
	})
	require.NoError(t, err)

	require.Len(t, table.Include, 1)
	assert.Equal(t, "zone", table.Include[0].Name)
	assert.Equal(t, "A", table.Include[0].Value)
	assert.Equal(t, []string{"values", "coverage_fraction"}, table.Columns)
}

func TestExtractWindowInvariance(t *testing.T) {
	grid := testutil.MustGrid(t, 0, 0, 6, 6, 1, 1)
	vals := make([]float64, 36)
	for i := range vals {
		vals[i] = float64(i)
	}
	values := testutil.MustRaster(t, grid, vals)
	poly := testutil.SquarePolygon(t, 0.5, 0.5, 5.5, 5.5)
	cov := testutil.ExactCoverage{Box: rastergrid.Box{XMin: 0.5, YMin: 0.5, XMax: 5.5, YMax: 5.5}}

	baseline, err := zonal.Extract(values, nil, poly, cov, zonal.ExtractOptions{
		IncludeCell: true, MaxCells: 1000,
	})
	require.NoError(t, err)
	require.NotEmpty(t, baseline.Rows)

	for _, maxCells := range []int{1, 4, 9, 36} {
		table, err := zonal.Extract(values, nil, poly, cov, zonal.ExtractOptions{
			IncludeCell: true, MaxCells: maxCells,
		})
		require.NoError(t, err, "maxCells=%d", maxCells)

		// Windowing reorders rows; compare them keyed by cell number.
		byCell := func(rows [][]float64) map[float64][]float64 {
			m := make(map[float64][]float64, len(rows))
			for _, r := range rows {
				m[r[1]] = r
			}
			return m
		}
		if diff := cmp.Diff(byCell(baseline.Rows), byCell(table.Rows)); diff != "" {
			t.Errorf("maxCells=%d rows mismatch (-want +got):\n%s", maxCells, diff)
		}
	}
}

func TestExtractDisjointGeometry(t *testing.T) {
	grid := testutil.MustGrid(t, 0, 0, 2, 2, 1, 1)
	values := testutil.MustRaster(t, grid, []float64{1, 2, 3, 4})
	poly := testutil.SquarePolygon(t, 50, 50, 60, 60)
	cov := testutil.ExactCoverage{Box: rastergrid.Box{XMin: 50, YMin: 50, XMax: 60, YMax: 60}}

	table, err := zonal.Extract(values, nil, poly, cov, zonal.ExtractOptions{MaxCells: 100})
	require.NoError(t, err)
	assert.Equal(t, []string{"values", "coverage_fraction"}, table.Columns)
	assert.Empty(t, table.Rows)
}

func TestExtractDisaggregationAdvisory(t *testing.T) {
	coarse := testutil.MustGrid(t, 0, 0, 4, 4, 2, 2)
	fine := testutil.MustGrid(t, 0, 0, 4, 4, 1, 1)
	values := testutil.MustRaster(t, coarse, []float64{1, 2, 3, 4})
	weights := testutil.ConstRaster(t, fine, 1)
	poly := testutil.SquarePolygon(t, 0, 0, 4, 4)
	cov := testutil.ExactCoverage{Box: rastergrid.Box{XMin: 0, YMin: 0, XMax: 4, YMax: 4}}

	table, err := zonal.Extract(values, weights, poly, cov, zonal.ExtractOptions{
		MaxCells: 100, WarnOnDisaggregate: true,
	})
	require.NoError(t, err)
	require.Len(t, table.Advisories, 1)
	assert.Contains(t, table.Advisories[0], "disaggregated")
	// The disaggregated rows still carry the replicated coarse values.
	require.Len(t, table.Rows, 16)
	assert.Equal(t, []float64{1, 1, 1}, table.Rows[0])

	table, err = zonal.Extract(values, weights, poly, cov, zonal.ExtractOptions{MaxCells: 100})
	require.NoError(t, err)
	assert.Empty(t, table.Advisories, "advisory requires opt-in")

	table, err = zonal.Extract(values, nil, poly, cov, zonal.ExtractOptions{
		MaxCells: 100, WarnOnDisaggregate: true,
	})
	require.NoError(t, err)
	assert.Empty(t, table.Advisories, "no weights means no disaggregation")
}

func TestExtractMisalignedWeightGrid(t *testing.T) {
	values := testutil.MustRaster(t, testutil.MustGrid(t, 0, 0, 2, 2, 1, 1), []float64{1, 2, 3, 4})
	weights := testutil.ConstRaster(t, testutil.MustGrid(t, 0.5, 0.5, 2.5, 2.5, 1, 1), 1)
	poly := testutil.SquarePolygon(t, 0, 0, 2, 2)
	cov := testutil.ExactCoverage{Box: rastergrid.Box{XMin: 0, YMin: 0, XMax: 2, YMax: 2}}

	_, err := zonal.Extract(values, weights, poly, cov, zonal.ExtractOptions{MaxCells: 100})
	assert.True(t, errors.Is(err, zonal.ErrConfig), "half-cell offset: %v", err)
}

func TestExtractBadMaxCells(t *testing.T) {
	grid := testutil.MustGrid(t, 0, 0, 2, 2, 1, 1)
	values := testutil.MustRaster(t, grid, []float64{1, 2, 3, 4})
	poly := testutil.SquarePolygon(t, 0, 0, 2, 2)
	cov := testutil.ExactCoverage{Box: rastergrid.Box{XMin: 0, YMin: 0, XMax: 2, YMax: 2}}

	_, err := zonal.Extract(values, nil, poly, cov, zonal.ExtractOptions{MaxCells: 0})
	assert.True(t, errors.Is(err, zonal.ErrConfig), "maxCells=0: %v", err)
}
