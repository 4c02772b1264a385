package analytics

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		wantCount  int
		wantAvg    float64
		wantMedian float64
	}{
		{"Empty", nil, 0, 0, 0},
		{"SingleItem", []float64{5.5}, 1, 5.5, 5.5},
		{"OddCount", []float64{1, 3, 2}, 3, 2, 2},
		{"EvenCount", []float64{1, 2, 3, 4}, 4, 2.5, 2.5},
		{"Skewed", []float64{10, 10, 100}, 3, 40, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values)
			if got.Count != tt.wantCount || got.Average != tt.wantAvg || got.Median != tt.wantMedian {
				t.Errorf("Summarize(%v) = %+v", tt.values, got)
			}
			if math.IsNaN(got.Average) || math.IsInf(got.Average, 0) {
				t.Errorf("average is not finite: %v", got.Average)
			}
		})
	}
}
