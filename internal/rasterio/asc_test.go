package rasterio

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleASC = `ncols 3
nrows 2
xllcorner 10
yllcorner 20
cellsize 0.5
NODATA_value -9999
1 2 3
4 -9999 6
`

func TestReadASC(t *testing.T) {
	r, err := ReadASC(strings.NewReader(sampleASC), "elev")
	require.NoError(t, err)

	g := r.Grid()
	assert.Equal(t, 10.0, g.XMin)
	assert.Equal(t, 20.0, g.YMin)
	assert.Equal(t, 11.5, g.XMax)
	assert.Equal(t, 21.0, g.YMax)
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, "elev", r.Name(0))

	got, err := r.Read(g, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, got[:3])
	assert.Equal(t, 4.0, got[3])
	assert.True(t, math.IsNaN(got[4]), "NODATA cell should parse as NaN")
	assert.Equal(t, 6.0, got[5])
}

func TestReadASCDefaultName(t *testing.T) {
	r, err := ReadASC(strings.NewReader(sampleASC), "")
	require.NoError(t, err)
	assert.Equal(t, "layer_0", r.Name(0))
}

func TestReadASCCenterOrigin(t *testing.T) {
	in := `ncols 2
nrows 2
xllcenter 0.5
yllcenter 0.5
cellsize 1
1 2
3 4
`
	r, err := ReadASC(strings.NewReader(in), "")
	require.NoError(t, err)

	g := r.Grid()
	assert.Equal(t, 0.0, g.XMin)
	assert.Equal(t, 0.0, g.YMin)
	assert.Equal(t, 2.0, g.XMax)
	assert.Equal(t, 2.0, g.YMax)
}

func TestReadASCErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"missing_dims", "cellsize 1\n1 2 3\n"},
		{"bad_ncols", "ncols x\nnrows 2\ncellsize 1\n1 2\n"},
		{"bad_cellsize", "ncols 2\nnrows 2\ncellsize -1\n1 2 3 4\n"},
		{"truncated_data", "ncols 2\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n"},
		{"bad_cell_value", "ncols 2\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 abc\n"},
		{"bad_nodata", "ncols 2\nnrows 1\ncellsize 1\nNODATA_value x\n1 2\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadASC(strings.NewReader(tc.in), "")
			assert.Error(t, err)
		})
	}
}

func TestReadASCFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.asc")
	require.NoError(t, os.WriteFile(path, []byte(sampleASC), 0o644))

	r, err := ReadASCFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, 6, r.Grid().Cells())

	_, err = ReadASCFile(filepath.Join(t.TempDir(), "missing.asc"), "")
	assert.Error(t, err)
}
