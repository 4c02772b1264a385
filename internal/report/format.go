package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinSampleSize is the smallest group considered for fastest/slowest insights.
const MinSampleSize = 5

// Rating thresholds in minutes.
const (
	responseExcellent   = 60
	responseGood        = 240
	resolutionExcellent = 1440
	resolutionGood      = 4320
)

func fixed(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ratio returns part/whole, or 0 when whole is 0.
func ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}

// percent formats part of whole with two decimals, guarding an empty whole.
func percent(part, whole int) string {
	return fixed(ratio(part, whole) * 100)
}

// round2 rounds to two decimals for spreadsheet cells.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ResponseRating grades an average first-response time.
func ResponseRating(avgMinutes float64) string {
	switch {
	case avgMinutes < responseExcellent:
		return "excellent"
	case avgMinutes < responseGood:
		return "good"
	default:
		return "needs improvement"
	}
}

// ResolutionRating grades an average resolution time.
func ResolutionRating(avgMinutes float64) string {
	switch {
	case avgMinutes < resolutionExcellent:
		return "excellent"
	case avgMinutes < resolutionGood:
		return "good"
	default:
		return "needs improvement"
	}
}

func periodPhrase(days int) string {
	if days <= 0 {
		return "across all available history"
	}
	return fmt.Sprintf("over the past %d days", days)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
