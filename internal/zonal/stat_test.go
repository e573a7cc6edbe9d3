package zonal

import (
	"errors"
	"testing"
)

func TestParseStat(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		want      Stat
		expectErr bool
	}{
		{"count", "count", StatCount, false},
		{"sum", "sum", StatSum, false},
		{"mean", "mean", StatMean, false},
		{"weighted_mean", "weighted_mean", StatWeightedMean, false},
		{"coefficient_of_variation", "coefficient_of_variation", StatCoefOfVar, false},
		{"mode", "mode", StatMode, false},
		{"majority_synonym", "majority", StatMode, false},
		{"quantile", "quantile", StatQuantile, false},
		{"unknown", "average", 0, true},
		{"empty", "", 0, true},
		{"case_sensitive", "Mean", 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseStat(tc.input)
			if tc.expectErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
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
				t.Errorf("ParseStat(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestStatRoundTrip(t *testing.T) {
	for s := StatCount; s <= StatCoefOfVar; s++ {
		back, err := ParseStat(s.String())
		if err != nil {
			t.Errorf("ParseStat(%q): %v", s.String(), err)
			continue
		}
		if back != s {
			t.Errorf("round trip %v -> %q -> %v", s, s.String(), back)
		}
	}
}

func TestNeedsDistribution(t *testing.T) {
	needs := map[Stat]bool{
		StatMedian: true, StatQuantile: true, StatMode: true,
		StatMinority: true, StatVariety: true,
		StatCount: false, StatSum: false, StatMean: false,
		StatMin: false, StatMax: false, StatVariance: false,
		StatStdev: false, StatCoefOfVar: false,
		StatWeightedMean: false, StatWeightedSum: false,
	}
	for s, want := range needs {
		if got := s.NeedsDistribution(); got != want {
			t.Errorf("%v.NeedsDistribution() = %v, want %v", s, got, want)
		}
	}
}
