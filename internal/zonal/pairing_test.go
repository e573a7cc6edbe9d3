package zonal

import (
	"errors"
	"testing"
)

func TestPairLayers(t *testing.T) {
	testCases := []struct {
		name             string
		nValues, nWeight int
		want             int
		expectErr        bool
	}{
		{"unweighted_single", 1, 0, 1, false},
		{"unweighted_multi", 4, 0, 4, false},
		{"matched_counts", 3, 3, 3, false},
		{"broadcast_weight", 3, 1, 3, false},
		{"broadcast_value", 1, 5, 5, false},
		{"one_to_one", 1, 1, 1, false},
		{"mismatched_multi", 3, 2, 0, true},
		{"no_value_layers", 0, 1, 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := PairLayers(tc.nValues, tc.nWeight)
			if tc.expectErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrConfig) {
					t.Errorf("error should wrap ErrConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("PairLayers(%d, %d) = %d, want %d", tc.nValues, tc.nWeight, got, tc.want)
			}
		})
	}
}

func TestPairIndexes(t *testing.T) {
	// Weight recycled against three value layers.
	for i := 0; i < 3; i++ {
		vi, wi := pairIndexes(i, 3, 1)
		if vi != i || wi != 0 {
			t.Errorf("pairIndexes(%d, 3, 1) = (%d, %d), want (%d, 0)", i, vi, wi, i)
		}
	}
	// Value recycled against three weight layers.
	for i := 0; i < 3; i++ {
		vi, wi := pairIndexes(i, 1, 3)
		if vi != 0 || wi != i {
			t.Errorf("pairIndexes(%d, 1, 3) = (%d, %d), want (0, %d)", i, vi, wi, i)
		}
	}
	// Matched counts pair by index.
	vi, wi := pairIndexes(2, 3, 3)
	if vi != 2 || wi != 2 {
		t.Errorf("pairIndexes(2, 3, 3) = (%d, %d), want (2, 2)", vi, wi)
	}
}
