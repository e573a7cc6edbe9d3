package rastergrid

import (
	"math"
	"testing"
)

func TestResampleIdentity(t *testing.T) {
	g := mustGrid(t, 0, 0, 2, 2, 1, 1)
	values := []float64{1, 2, 3, 4}
	got := Resample(g, values, g, math.NaN())
	for i, v := range values {
		if got[i] != v {
			t.Errorf("cell %d = %g, want %g", i, got[i], v)
		}
	}
}

func TestResampleNearestDuplication(t *testing.T) {
	// One coarse 2x2 source duplicated onto a 4x4 target at half the
	// cell size: each source cell maps to a 2x2 block.
	src := mustGrid(t, 0, 0, 4, 4, 2, 2)
	target := mustGrid(t, 0, 0, 4, 4, 1, 1)
	values := []float64{1, 2, 3, 4}

	got := Resample(src, values, target, math.NaN())
	want := []float64{
		1, 1, 2, 2,
		1, 1, 2, 2,
		3, 3, 4, 4,
		3, 3, 4, 4,
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestResampleFillsOutsideExtent(t *testing.T) {
	src := mustGrid(t, 0, 0, 2, 2, 1, 1)
	target := mustGrid(t, 0, 0, 4, 4, 1, 1)
	values := []float64{1, 2, 3, 4}

	got := Resample(src, values, target, -99)
	// Target rows 0-1 are above the source extent (source occupies the
	// bottom-left quadrant of the target).
	if got[0] != -99 || got[3] != -99 {
		t.Errorf("out-of-extent cells = %g, %g, want -99", got[0], got[3])
	}
	if got[2*4+0] != 1 || got[2*4+1] != 2 || got[3*4+0] != 3 || got[3*4+1] != 4 {
		t.Errorf("in-extent cells wrong: %v", got)
	}
}

func TestAligned(t *testing.T) {
	g := mustGrid(t, 0, 0, 10, 10, 1, 1)
	sub := mustGrid(t, 2, 2, 5, 5, 1, 1)
	shifted := mustGrid(t, 2.5, 2, 5.5, 5, 1, 1)
	finer := mustGrid(t, 2, 2, 5, 5, 0.5, 0.5)

	if !Aligned(g, sub) {
		t.Error("sub-grid on the same lattice should be aligned")
	}
	if Aligned(g, shifted) {
		t.Error("half-cell shifted grid should not be aligned")
	}
	if Aligned(g, finer) {
		t.Error("finer grid should not be aligned")
	}
}
