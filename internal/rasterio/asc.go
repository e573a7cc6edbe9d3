package rasterio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/overlap-data/zonal.report/internal/rastergrid"
)

// ReadASCFile reads an ESRI ASCII grid (.asc) file as a single-layer
// raster named after the header-less convention "layer_0" unless name
// is non-empty. NODATA cells become NaN and are skipped by the
// statistics accumulators.
func ReadASCFile(path, name string) (*MemRaster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := ReadASC(f, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// ReadASC parses an ESRI ASCII grid from r. The header accepts the
// usual keys (ncols, nrows, xllcorner/xllcenter, yllcorner/yllcenter,
// cellsize, nodata_value) in any case, followed by nrows*ncols
// whitespace-separated values, north row first.
func ReadASC(r io.Reader, name string) (*MemRaster, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return sc.Text(), nil
	}

	var (
		ncols, nrows   int
		xll, yll, cell float64
		nodata         = math.NaN()
		center         bool
	)

	// Header: key/value pairs until the first bare number.
	var pending string
	for {
		tok, err := next()
		if err != nil {
			return nil, fmt.Errorf("reading asc header: %w", err)
		}
		key := strings.ToLower(tok)
		switch key {
		case "ncols", "nrows", "xllcorner", "yllcorner", "xllcenter", "yllcenter", "cellsize", "nodata_value":
			val, err := next()
			if err != nil {
				return nil, fmt.Errorf("reading asc header value for %s: %w", key, err)
			}
			switch key {
			case "ncols":
				if ncols, err = strconv.Atoi(val); err != nil {
					return nil, fmt.Errorf("bad ncols %q", val)
				}
			case "nrows":
				if nrows, err = strconv.Atoi(val); err != nil {
					return nil, fmt.Errorf("bad nrows %q", val)
				}
			case "xllcorner", "xllcenter":
				if xll, err = strconv.ParseFloat(val, 64); err != nil {
					return nil, fmt.Errorf("bad %s %q", key, val)
				}
				center = key == "xllcenter"
			case "yllcorner", "yllcenter":
				if yll, err = strconv.ParseFloat(val, 64); err != nil {
					return nil, fmt.Errorf("bad %s %q", key, val)
				}
			case "cellsize":
				if cell, err = strconv.ParseFloat(val, 64); err != nil || cell <= 0 {
					return nil, fmt.Errorf("bad cellsize %q", val)
				}
			case "nodata_value":
				if nodata, err = strconv.ParseFloat(val, 64); err != nil {
					return nil, fmt.Errorf("bad nodata_value %q", val)
				}
			}
		default:
			pending = tok
		}
		if pending != "" {
			break
		}
	}

	if ncols <= 0 || nrows <= 0 || cell <= 0 {
		return nil, fmt.Errorf("incomplete asc header (ncols=%d nrows=%d cellsize=%g)", ncols, nrows, cell)
	}
	if center {
		xll -= cell / 2
		yll -= cell / 2
	}

	grid, err := rastergrid.NewGrid(xll, yll, xll+float64(ncols)*cell, yll+float64(nrows)*cell, cell, cell)
	if err != nil {
		return nil, err
	}

	data := make([]float64, ncols*nrows)
	for i := range data {
		tok := pending
		pending = ""
		if tok == "" {
			if tok, err = next(); err != nil {
				return nil, fmt.Errorf("reading cell %d of %d: %w", i, len(data), err)
			}
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("bad cell value %q at index %d", tok, i)
		}
		if !math.IsNaN(nodata) && v == nodata {
			v = math.NaN()
		}
		data[i] = v
	}

	if name == "" {
		name = "layer_0"
	}
	return NewMemRaster(grid, [][]float64{data}, []string{name}, math.NaN())
}
