package rastergrid

import "fmt"

// Subdivide partitions the grid into row-major tiles of at most
// maxCells cells each. The tiles cover the extent exactly once with no
// overlaps and no gaps, so per-window arrays sized by maxCells bound
// peak memory regardless of the full grid size.
//
// A maxCells below 1 is a configuration error; no tiles are produced.
func Subdivide(g Grid, maxCells int) ([]Grid, error) {
	if maxCells < 1 {
		return nil, fmt.Errorf("invalid max cells per window: %d", maxCells)
	}
	cols, rows := g.Cols(), g.Rows()
	if cols == 0 || rows == 0 {
		return nil, nil
	}

	tileCols := cols
	if tileCols > maxCells {
		tileCols = maxCells
	}
	tileRows := maxCells / tileCols
	if tileRows < 1 {
		tileRows = 1
	}
	if tileRows > rows {
		tileRows = rows
	}

	tiles := make([]Grid, 0, ((rows+tileRows-1)/tileRows)*((cols+tileCols-1)/tileCols))
	for r0 := 0; r0 < rows; r0 += tileRows {
		r1 := r0 + tileRows
		if r1 > rows {
			r1 = rows
		}
		for c0 := 0; c0 < cols; c0 += tileCols {
			c1 := c0 + tileCols
			if c1 > cols {
				c1 = cols
			}
			tiles = append(tiles, Grid{
				XMin: g.XMin + float64(c0)*g.DX,
				XMax: g.XMin + float64(c1)*g.DX,
				YMin: g.YMax - float64(r1)*g.DY,
				YMax: g.YMax - float64(r0)*g.DY,
				DX:   g.DX,
				DY:   g.DY,
			})
		}
	}
	return tiles, nil
}
