package analytics

import (
	"zendesk-analytics/internal/zendesk"
)

// Period is the ticket count for one bucket.
type Period struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FrequencyResult is ticket creation volume grouped by day, week or month.
type FrequencyResult struct {
	Bucket  Bucket   `json:"bucket"`
	Periods []Period `json:"periods"`
	Total   int      `json:"total"`
	Average float64  `json:"average"`
	Max     int      `json:"max"`
	Min     int      `json:"min"`
	// TrendPercent compares the last period to the first. Nil with fewer than two periods.
	TrendPercent *float64 `json:"trendPercent,omitempty"`
}

// Frequency buckets tickets by creation time. Periods are sorted by key.
func Frequency(tickets []zendesk.Ticket, bucket Bucket, cal Calendar) FrequencyResult {
	counts := make(map[string]int)
	for _, t := range tickets {
		counts[cal.GroupKey(t.CreatedAt, bucket)]++
	}

	res := FrequencyResult{Bucket: bucket, Periods: make([]Period, 0, len(counts))}
	for i, key := range SortedKeys(counts) {
		c := counts[key]
		res.Periods = append(res.Periods, Period{Key: key, Label: GroupLabel(key, bucket), Count: c})
		res.Total += c
		if i == 0 || c > res.Max {
			res.Max = c
		}
		if i == 0 || c < res.Min {
			res.Min = c
		}
	}

	if n := len(res.Periods); n > 0 {
		res.Average = float64(res.Total) / float64(n)
	}
	if n := len(res.Periods); n > 1 {
		first, last := res.Periods[0].Count, res.Periods[n-1].Count
		if first > 0 {
			trend := float64(last-first) / float64(first) * 100
			res.TrendPercent = &trend
		}
	}
	return res
}
