package analytics

import "slices"

// Summary aggregates a sample of minute values.
type Summary struct {
	Values  []float64 `json:"values,omitempty"`
	Count   int       `json:"count"`
	Sum     float64   `json:"sum"`
	Average float64   `json:"average"`
	Median  float64   `json:"median"`
}

// Summarize computes count, sum, average and median. An empty sample yields zeros.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	s := Summary{Values: values, Count: len(values)}
	for _, v := range values {
		s.Sum += v
	}
	s.Average = s.Sum / float64(len(values))
	s.Median = median(values)
	return s
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	temp := make([]float64, len(values))
	copy(temp, values)
	slices.Sort(temp)

	n := len(temp)
	if n%2 == 1 {
		return temp[n/2]
	}
	return (temp[n/2-1] + temp[n/2]) / 2.0
}
