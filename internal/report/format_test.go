package report

import "testing"

func TestRatings(t *testing.T) {
	tests := []struct {
		minutes    float64
		response   string
		resolution string
	}{
		{0, "excellent", "excellent"},
		{59.9, "excellent", "excellent"},
		{60, "good", "excellent"},
		{239, "good", "excellent"},
		{240, "needs improvement", "excellent"},
		{1440, "needs improvement", "good"},
		{4319, "needs improvement", "good"},
		{4320, "needs improvement", "needs improvement"},
	}
	for _, tt := range tests {
		if got := ResponseRating(tt.minutes); got != tt.response {
			t.Errorf("ResponseRating(%v) = %q, want %q", tt.minutes, got, tt.response)
		}
		if got := ResolutionRating(tt.minutes); got != tt.resolution {
			t.Errorf("ResolutionRating(%v) = %q, want %q", tt.minutes, got, tt.resolution)
		}
	}
}

func TestPercent_GuardsEmptyWhole(t *testing.T) {
	if got := percent(3, 0); got != "0.00" {
		t.Errorf("percent(3, 0) = %q, want 0.00", got)
	}
	if got := percent(1, 3); got != "33.33" {
		t.Errorf("percent(1, 3) = %q, want 33.33", got)
	}
}
