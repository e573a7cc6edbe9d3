package rastergrid

import (
	"fmt"
	"math"
)

// RelTol is the relative tolerance used when comparing cell sizes and
// snapping extents to cell boundaries. Two resolutions within this
// tolerance of each other are treated as equal.
const RelTol = 1e-6

// Box is an axis-aligned bounding rectangle.
type Box struct {
	XMin float64
	YMin float64
	XMax float64
	YMax float64
}

// Intersects reports whether the two boxes share any area (touching
// edges count as intersecting).
func (b Box) Intersects(o Box) bool {
	return b.XMin <= o.XMax && o.XMin <= b.XMax &&
		b.YMin <= o.YMax && o.YMin <= b.YMax
}

// Grid is an axis-aligned raster grid: an extent divided into uniform
// cells of size DX x DY. The zero Grid is empty.
type Grid struct {
	XMin float64
	YMin float64
	XMax float64
	YMax float64
	DX   float64
	DY   float64
}

// NewGrid builds a grid from an extent and cell size. DX and DY must be
// positive; the extent is taken as given (callers are expected to supply
// extents that are whole multiples of the cell size).
func NewGrid(xmin, ymin, xmax, ymax, dx, dy float64) (Grid, error) {
	if dx <= 0 || dy <= 0 {
		return Grid{}, fmt.Errorf("grid resolution must be positive, got dx=%g dy=%g", dx, dy)
	}
	if xmax < xmin || ymax < ymin {
		return Grid{}, fmt.Errorf("inverted grid extent (%g,%g)-(%g,%g)", xmin, ymin, xmax, ymax)
	}
	return Grid{XMin: xmin, YMin: ymin, XMax: xmax, YMax: ymax, DX: dx, DY: dy}, nil
}

// Extent returns the grid's bounding box.
func (g Grid) Extent() Box {
	return Box{XMin: g.XMin, YMin: g.YMin, XMax: g.XMax, YMax: g.YMax}
}

// Cols returns the number of cell columns.
func (g Grid) Cols() int {
	if g.DX <= 0 {
		return 0
	}
	return int(math.Round((g.XMax - g.XMin) / g.DX))
}

// Rows returns the number of cell rows.
func (g Grid) Rows() int {
	if g.DY <= 0 {
		return 0
	}
	return int(math.Round((g.YMax - g.YMin) / g.DY))
}

// Cells returns the total cell count.
func (g Grid) Cells() int {
	return g.Cols() * g.Rows()
}

// Empty reports whether the grid contains no cells.
func (g Grid) Empty() bool {
	return g.Cells() == 0
}

// CellX returns the x coordinate of the centre of column col.
func (g Grid) CellX(col int) float64 {
	return g.XMin + (float64(col)+0.5)*g.DX
}

// CellY returns the y coordinate of the centre of row row. Row 0 is the
// northernmost row.
func (g Grid) CellY(row int) float64 {
	return g.YMax - (float64(row)+0.5)*g.DY
}

// ColAt returns the column index of the cell containing x, or -1 when x
// is outside the extent.
func (g Grid) ColAt(x float64) int {
	if x < g.XMin || x >= g.XMax || g.DX <= 0 {
		return -1
	}
	c := int(math.Floor((x - g.XMin) / g.DX))
	if c >= g.Cols() {
		c = g.Cols() - 1
	}
	return c
}

// RowAt returns the row index of the cell containing y, or -1 when y is
// outside the extent.
func (g Grid) RowAt(y float64) int {
	if y <= g.YMin || y > g.YMax || g.DY <= 0 {
		return -1
	}
	r := int(math.Floor((g.YMax - y) / g.DY))
	if r >= g.Rows() {
		r = g.Rows() - 1
	}
	return r
}

// SameResolution reports whether both grids have the same cell size
// within RelTol.
func (g Grid) SameResolution(o Grid) bool {
	return approxEqual(g.DX, o.DX) && approxEqual(g.DY, o.DY)
}

// Crop intersects the grid's extent with bbox, snapping the result
// outward to this grid's cell boundaries so that whole cells are
// retained. The result is empty when the box and extent are disjoint.
func (g Grid) Crop(bbox Box) Grid {
	xmin := math.Max(g.XMin, bbox.XMin)
	ymin := math.Max(g.YMin, bbox.YMin)
	xmax := math.Min(g.XMax, bbox.XMax)
	ymax := math.Min(g.YMax, bbox.YMax)
	if xmin >= xmax || ymin >= ymax {
		return Grid{DX: g.DX, DY: g.DY}
	}

	// Snap outward to cell boundaries of g.
	c0 := math.Floor((xmin - g.XMin) / g.DX * (1 + RelTol))
	c1 := math.Ceil((xmax - g.XMin) / g.DX * (1 - RelTol))
	r0 := math.Floor((g.YMax - ymax) / g.DY * (1 + RelTol))
	r1 := math.Ceil((g.YMax - ymin) / g.DY * (1 - RelTol))

	return Grid{
		XMin: g.XMin + c0*g.DX,
		XMax: g.XMin + c1*g.DX,
		YMin: g.YMax - r1*g.DY,
		YMax: g.YMax - r0*g.DY,
		DX:   g.DX,
		DY:   g.DY,
	}
}

// CommonGrid reconciles g with o: the result has the finer of the two
// cell sizes in each axis and covers the intersection of the two
// extents, with its origin aligned to the finer grid's cell lattice so
// that cell boundaries of the coarser grid falling inside the overlap
// coincide with boundaries of the result.
//
// That alignment is only possible when the two lattices are
// compatible: each grid's cell size must be a whole multiple of the
// finer step, and the origins must not be offset by a fraction of it.
// Incompatible grids are an error rather than a silently shifted
// answer.
//
// The result is empty when the extents are disjoint. Reconciling g with
// itself (or any same-resolution, aligned grid) returns the shared
// cells unchanged.
func (g Grid) CommonGrid(o Grid) (Grid, error) {
	dx := math.Min(g.DX, o.DX)
	dy := math.Min(g.DY, o.DY)

	// Align to the lattice of whichever grid owns the finer step.
	ax := g
	if o.DX < g.DX && !approxEqual(g.DX, o.DX) {
		ax = o
	}
	ay := g
	if o.DY < g.DY && !approxEqual(g.DY, o.DY) {
		ay = o
	}

	for _, in := range [2]Grid{g, o} {
		if !wholeSteps(in.DX/dx) || !wholeSteps((in.XMin-ax.XMin)/dx) {
			return Grid{}, fmt.Errorf("grids are not aligned in x: cell size %g and origin offset %g are not whole multiples of %g",
				in.DX, in.XMin-ax.XMin, dx)
		}
		if !wholeSteps(in.DY/dy) || !wholeSteps((in.YMax-ay.YMax)/dy) {
			return Grid{}, fmt.Errorf("grids are not aligned in y: cell size %g and origin offset %g are not whole multiples of %g",
				in.DY, in.YMax-ay.YMax, dy)
		}
	}

	xmin := math.Max(g.XMin, o.XMin)
	ymin := math.Max(g.YMin, o.YMin)
	xmax := math.Min(g.XMax, o.XMax)
	ymax := math.Min(g.YMax, o.YMax)
	if xmin >= xmax || ymin >= ymax {
		return Grid{DX: dx, DY: dy}, nil
	}

	// Snap the intersection to the fine lattice, rounding to the
	// nearest boundary: compatible inputs overlap on shared cell edges,
	// so the nearest boundary is the exact one up to float error.
	snappedXMin := ax.XMin + math.Round((xmin-ax.XMin)/dx)*dx
	snappedXMax := ax.XMin + math.Round((xmax-ax.XMin)/dx)*dx
	snappedYMin := ay.YMax - math.Round((ay.YMax-ymin)/dy)*dy
	snappedYMax := ay.YMax - math.Round((ay.YMax-ymax)/dy)*dy

	return Grid{
		XMin: snappedXMin,
		XMax: snappedXMax,
		YMin: snappedYMin,
		YMax: snappedYMax,
		DX:   dx,
		DY:   dy,
	}, nil
}

// Disaggregates reports whether the reconciled grid of g and o is
// strictly finer than g in either axis, i.e. whether g's values would
// be implicitly replicated across multiple cells of the common grid.
// Lattice-incompatible grids do not disaggregate; they fail
// reconciliation instead.
func (g Grid) Disaggregates(o Grid) bool {
	cg, err := g.CommonGrid(o)
	if err != nil {
		return false
	}
	return finerThan(cg.DX, g.DX) || finerThan(cg.DY, g.DY)
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= RelTol*math.Max(math.Abs(a), math.Abs(b))
}

// wholeSteps reports whether x is an integer within RelTol.
func wholeSteps(x float64) bool {
	return math.Abs(x-math.Round(x)) <= RelTol*math.Max(1, math.Abs(x))
}

func finerThan(a, b float64) bool {
	return a < b && !approxEqual(a, b)
}
