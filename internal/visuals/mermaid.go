package visuals

import (
	"fmt"
	"math"
	"strings"

	"zendesk-analytics/internal/analytics"
)

// FrequencyChart creates a Mermaid bar chart of ticket creation per period.
func FrequencyChart(res analytics.FrequencyResult) string {
	if len(res.Periods) == 0 {
		return ""
	}

	labels := make([]string, 0, len(res.Periods))
	values := make([]string, 0, len(res.Periods))
	for _, p := range res.Periods {
		labels = append(labels, fmt.Sprintf("%q", p.Label))
		values = append(values, fmt.Sprintf("%d", p.Count))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Tickets Created per %s\"\n", titleCase(string(res.Bucket))))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Tickets\" 0 --> %d\n", yMax(res.Max)))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// CountChart creates a bar chart for a ranked tally such as tickets per brand.
func CountChart(title string, counts []analytics.Count) string {
	if len(counts) == 0 {
		return ""
	}

	labels := make([]string, 0, len(counts))
	values := make([]string, 0, len(counts))
	maxVal := 0
	for _, c := range counts {
		labels = append(labels, fmt.Sprintf("%q", c.Name))
		values = append(values, fmt.Sprintf("%d", c.Count))
		if c.Count > maxVal {
			maxVal = c.Count
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %q\n", title))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Tickets\" 0 --> %d\n", yMax(maxVal)))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// yMax leaves 20% headroom above the tallest bar.
func yMax(maxVal int) int {
	return maxVal + int(math.Max(1, float64(maxVal)*0.2))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
