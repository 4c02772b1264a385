package report

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"zendesk-analytics/internal/analytics"
	"zendesk-analytics/internal/visuals"
)

const (
	topGroups      = 5
	tableRows      = 10
	fastestListed  = 3
	nestedCountry  = 3
	nestedBrands   = 5
	minutesPerDay  = 24 * 60
	minutesPerHour = 60
)

func writeCounts(b *strings.Builder, counts []analytics.Count, total, limit int) {
	for i, c := range counts {
		if limit > 0 && i == limit {
			break
		}
		fmt.Fprintf(b, "- %s: %d tickets (%s%%)\n", c.Name, c.Count, percent(c.Count, total))
	}
}

// RenderSummary renders the narrative overview of a ticket analysis.
func RenderSummary(a analytics.Analysis) string {
	var b strings.Builder
	b.WriteString("# Zendesk Ticket Analysis Summary\n\n")

	b.WriteString("## Overview\n")
	fmt.Fprintf(&b, "- Total Tickets: %d\n", a.TotalTickets)
	fmt.Fprintf(&b, "- Average First Response Time: %s minutes (%s hours)\n",
		fixed(a.FirstResponse.Average), fixed(a.FirstResponse.Average/minutesPerHour))
	fmt.Fprintf(&b, "- Average Resolution Time: %s minutes (%s hours)\n\n",
		fixed(a.Resolution.Average), fixed(a.Resolution.Average/minutesPerHour))

	b.WriteString("## Ticket Status Breakdown\n")
	writeCounts(&b, analytics.RankCounts(a.TicketsByStatus), a.TotalTickets, 0)
	b.WriteString("\n")

	days := max(len(a.TicketsByDate), 1)
	perDay := float64(a.TotalTickets) / float64(days)
	b.WriteString("## Ticket Creation Frequency\n")
	fmt.Fprintf(&b, "- Average tickets per day: %s\n", fixed(perDay))
	fmt.Fprintf(&b, "- Average tickets per week: %s\n", fixed(perDay*7))
	fmt.Fprintf(&b, "- Average tickets per month: %s\n\n", fixed(perDay*30))

	b.WriteString("## Top Countries\n")
	writeCounts(&b, analytics.RankCounts(a.TicketsByCountry), a.TotalTickets, topGroups)
	b.WriteString("\n")

	b.WriteString("## Top Brands\n")
	writeCounts(&b, analytics.RankCounts(a.TicketsByBrand), a.TotalTickets, topGroups)
	b.WriteString("\n")

	b.WriteString("## Response Time Insights\n")
	for _, dim := range []struct {
		label string
		m     map[string]analytics.Summary
	}{
		{"country", a.FirstResponseByCountry},
		{"brand", a.FirstResponseByBrand},
	} {
		ranked := analytics.RankFastest(dim.m, MinSampleSize)
		if len(ranked) == 0 {
			continue
		}
		fastest, slowest := ranked[0], ranked[len(ranked)-1]
		fmt.Fprintf(&b, "- Fastest first response by %s: %s (%s minutes)\n", dim.label, fastest.Name, fixed(fastest.Average))
		fmt.Fprintf(&b, "- Slowest first response by %s: %s (%s minutes)\n", dim.label, slowest.Name, fixed(slowest.Average))
	}
	fmt.Fprintf(&b, "- Response time efficiency is %s\n", ResponseRating(a.FirstResponse.Average))
	fmt.Fprintf(&b, "- Resolution time efficiency is %s\n", ResolutionRating(a.Resolution.Average))

	return b.String()
}

// RenderFrequency renders creation volume per bucket with statistics and trend.
func RenderFrequency(res analytics.FrequencyResult, days int, chart bool) string {
	unit := string(res.Bucket)

	var b strings.Builder
	b.WriteString("# Ticket Creation Frequency Analysis\n\n")
	fmt.Fprintf(&b, "Analysis of %d tickets %s, grouped by %s.\n\n", res.Total, periodPhrase(days), unit)

	fmt.Fprintf(&b, "## Ticket Counts by %s\n\n", titleCase(unit))
	for _, p := range res.Periods {
		fmt.Fprintf(&b, "- %s: %d tickets\n", p.Label, p.Count)
	}

	if chart && len(res.Periods) > 0 {
		b.WriteString("\n")
		b.WriteString(visuals.FrequencyChart(res))
	}

	b.WriteString("\n## Statistics\n")
	fmt.Fprintf(&b, "- Total tickets: %d\n", res.Total)
	fmt.Fprintf(&b, "- Average per %s: %s tickets\n", unit, fixed(res.Average))
	if len(res.Periods) > 0 {
		fmt.Fprintf(&b, "- Maximum in a single %s: %d tickets\n", unit, res.Max)
		fmt.Fprintf(&b, "- Minimum in a single %s: %d tickets\n", unit, res.Min)
	}

	if res.TrendPercent != nil {
		trend := *res.TrendPercent
		b.WriteString("\n## Trend Analysis\n")
		switch {
		case trend > 0:
			fmt.Fprintf(&b, "- Ticket volume has increased by %s%% from first to last %s\n", fixed(trend), unit)
		case trend < 0:
			fmt.Fprintf(&b, "- Ticket volume has decreased by %s%% from first to last %s\n", fixed(math.Abs(trend)), unit)
		default:
			fmt.Fprintf(&b, "- Ticket volume has remained stable from first to last %s\n", unit)
		}
	}

	return b.String()
}

// RenderResponseTimes renders overall and per-group response metrics.
func RenderResponseTimes(rep analytics.ResponseReport, days int) string {
	var b strings.Builder
	b.WriteString("# Ticket Response Time Analysis\n\n")
	fmt.Fprintf(&b, "Analysis of %d tickets %s.\n\n", rep.TotalTickets, periodPhrase(days))

	b.WriteString("## Overall Response Metrics\n")
	fmt.Fprintf(&b, "- Average First Response Time: %s minutes (%s hours)\n",
		fixed(rep.FirstResponse.Average), fixed(rep.FirstResponse.Average/minutesPerHour))
	fmt.Fprintf(&b, "- Average Resolution Time: %s minutes (%s days)\n",
		fixed(rep.Resolution.Average), fixed(rep.Resolution.Average/minutesPerDay))
	fmt.Fprintf(&b, "- Tickets with measured first response: %d of %d (%s%%)\n",
		rep.FirstResponse.Count, rep.TotalTickets, percent(rep.FirstResponse.Count, rep.TotalTickets))
	fmt.Fprintf(&b, "- Tickets resolved: %d of %d (%s%%)\n\n",
		rep.Resolution.Count, rep.TotalTickets, percent(rep.Resolution.Count, rep.TotalTickets))

	if rep.Dimension != analytics.DimensionNone {
		fmt.Fprintf(&b, "## Response Metrics by %s\n\n", titleCase(string(rep.Dimension)))

		groups := eligibleGroups(rep.Groups)
		for _, g := range groups {
			fmt.Fprintf(&b, "### %s\n", g.Name)
			fmt.Fprintf(&b, "- Total Tickets: %d\n", g.TotalTickets)
			fmt.Fprintf(&b, "- Average First Response Time: %s minutes (%s hours)\n",
				fixed(g.FirstResponse.Average), fixed(g.FirstResponse.Average/minutesPerHour))
			fmt.Fprintf(&b, "- Measured First Responses: %d tickets (%s%%)\n",
				g.FirstResponse.Count, percent(g.FirstResponse.Count, g.TotalTickets))
			fmt.Fprintf(&b, "- Average Resolution Time: %s minutes (%s days)\n",
				fixed(g.Resolution.Average), fixed(g.Resolution.Average/minutesPerDay))
			fmt.Fprintf(&b, "- Resolved Tickets: %d tickets (%s%%)\n\n",
				g.Resolution.Count, percent(g.Resolution.Count, g.TotalTickets))
		}

		if len(groups) > 0 {
			fastest, slowest := groups[0], groups[len(groups)-1]
			b.WriteString("## Response Time Insights\n")
			fmt.Fprintf(&b, "- Fastest response time: %s with %s minutes\n", fastest.Name, fixed(fastest.FirstResponse.Average))
			fmt.Fprintf(&b, "- Slowest response time: %s with %s minutes\n", slowest.Name, fixed(slowest.FirstResponse.Average))
			fmt.Fprintf(&b, "- Difference between fastest and slowest: %s minutes\n\n",
				fixed(slowest.FirstResponse.Average-fastest.FirstResponse.Average))
		}
	}

	if rep.Resolution.Count > 0 {
		b.WriteString("## Resolution Time Distribution\n")
		for _, br := range rep.Distribution {
			fmt.Fprintf(&b, "- %s: %d tickets (%s%%)\n", br.Label, br.Count, percent(br.Count, rep.Resolution.Count))
		}
	}

	return b.String()
}

// eligibleGroups keeps groups with at least MinSampleSize tickets, fastest first.
func eligibleGroups(groups []analytics.GroupResponse) []analytics.GroupResponse {
	out := make([]analytics.GroupResponse, 0, len(groups))
	for _, g := range groups {
		if g.TotalTickets >= MinSampleSize {
			out = append(out, g)
		}
	}
	slices.SortStableFunc(out, func(a, b analytics.GroupResponse) int {
		return cmp.Compare(a.FirstResponse.Average, b.FirstResponse.Average)
	})
	return out
}

func writeMetricsTable(b *strings.Builder, label string, groups []analytics.GroupStats) {
	fmt.Fprintf(b, "| %s | Tickets | Per Day | Avg Response (min) | Avg Resolution (min) |\n", label)
	fmt.Fprintf(b, "|%s|---------|---------|-------------------|---------------------|\n", strings.Repeat("-", len(label)+2))
	for i, g := range groups {
		if i == tableRows {
			break
		}
		fmt.Fprintf(b, "| %s | %d | %s | %s | %s |\n",
			g.Name, g.Count, fixed(g.TicketsPerDay), fixed(g.FirstResponse.Average), fixed(g.Resolution.Average))
	}
}

func distributionHeader(b *strings.Builder, dim string, groups []analytics.GroupStats, total, days int) {
	fmt.Fprintf(b, "# Zendesk Ticket Analysis by %s\n\n", dim)
	fmt.Fprintf(b, "Analysis of %d tickets %s.\n\n", total, periodPhrase(days))

	fmt.Fprintf(b, "## %s Distribution\n", dim)
	for _, g := range groups {
		fmt.Fprintf(b, "- %s: %d tickets (%s%%)\n", g.Name, g.Count, percent(g.Count, total))
	}

	fmt.Fprintf(b, "\n## Key Performance Metrics by %s\n\n", dim)
	writeMetricsTable(b, dim, groups)
}

func deliveryNote(b *strings.Builder, emailTo string) {
	if emailTo != "" {
		fmt.Fprintf(b, "\n\nA detailed Excel report has been sent to %s.", emailTo)
	}
}

// RenderBrandAnalysis renders brand groups as produced by analytics.Breakdown.
// A non-empty emailTo appends a delivery note.
func RenderBrandAnalysis(groups []analytics.GroupStats, total, days int, emailTo string) string {
	var b strings.Builder
	distributionHeader(&b, "Brand", groups, total, days)

	b.WriteString("\n## Top Performing Brands (by Response Time)\n")
	fast := make([]analytics.GroupStats, 0, len(groups))
	for _, g := range groups {
		if g.FirstResponse.Count >= MinSampleSize {
			fast = append(fast, g)
		}
	}
	slices.SortStableFunc(fast, func(a, b analytics.GroupStats) int {
		return cmp.Compare(a.FirstResponse.Average, b.FirstResponse.Average)
	})
	for i, g := range fast {
		if i == fastestListed {
			break
		}
		fmt.Fprintf(&b, "%d. %s: %s minutes\n", i+1, g.Name, fixed(g.FirstResponse.Average))
	}

	b.WriteString("\n## Brand Status Distribution\n")
	for i, g := range groups {
		if i == topGroups {
			break
		}
		fmt.Fprintf(&b, "\n### %s\n", g.Name)
		writeCounts(&b, analytics.RankCounts(g.Statuses), g.Count, 0)
	}

	deliveryNote(&b, emailTo)
	return b.String()
}

// RenderCountryAnalysis renders country groups with their leading brands.
func RenderCountryAnalysis(groups []analytics.GroupStats, total, days int, emailTo string) string {
	var b strings.Builder
	distributionHeader(&b, "Country", groups, total, days)

	b.WriteString("\n## Country-Specific Brand Distribution\n")
	for i, g := range groups {
		if i == nestedCountry {
			break
		}
		fmt.Fprintf(&b, "\n### %s\n", g.Name)
		writeCounts(&b, analytics.RankCounts(g.Brands), g.Count, nestedBrands)
	}

	deliveryNote(&b, emailTo)
	return b.String()
}
