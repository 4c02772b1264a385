package analytics

import (
	"zendesk-analytics/internal/zendesk"
)

// GroupStats is the per-group view used by brand and country analysis.
type GroupStats struct {
	Name          string         `json:"name"`
	Count         int            `json:"count"`
	Statuses      map[string]int `json:"statuses"`
	Brands        map[string]int `json:"brands,omitempty"`
	CreationDates map[string]int `json:"creationDates"`
	FirstResponse Summary        `json:"firstResponse"`
	Resolution    Summary        `json:"resolution"`
	TicketsPerDay float64        `json:"ticketsPerDay"`
}

type groupAcc struct {
	count      int
	statuses   map[string]int
	brands     map[string]int
	dates      map[string]int
	response   []float64
	resolution []float64
}

// Breakdown groups tickets by brand or country. Country groups also carry a
// nested brand distribution. Groups are ordered by count descending, then name.
func Breakdown(tickets []zendesk.Ticket, dim Dimension, cal Calendar) []GroupStats {
	accs := make(map[string]*groupAcc)
	counts := make(map[string]int)

	for _, t := range tickets {
		md := ExtractMetadata(t.Tags)
		key := dim.Key(md)

		acc, ok := accs[key]
		if !ok {
			acc = &groupAcc{
				statuses: make(map[string]int),
				brands:   make(map[string]int),
				dates:    make(map[string]int),
			}
			accs[key] = acc
		}

		acc.count++
		counts[key]++
		acc.statuses[t.Status]++
		acc.dates[cal.DayKey(t.CreatedAt)]++
		if dim == DimensionCountry {
			acc.brands[md.Brand]++
		}
		if v, ok := FirstResponseMinutes(t); ok {
			acc.response = append(acc.response, v)
		}
		if m, ok := ResolutionMinutes(t); ok {
			acc.resolution = append(acc.resolution, float64(m))
		}
	}

	out := make([]GroupStats, 0, len(accs))
	for _, c := range RankCounts(counts) {
		acc := accs[c.Name]
		gs := GroupStats{
			Name:          c.Name,
			Count:         acc.count,
			Statuses:      acc.statuses,
			CreationDates: acc.dates,
			FirstResponse: Summarize(acc.response),
			Resolution:    Summarize(acc.resolution),
		}
		if dim == DimensionCountry {
			gs.Brands = acc.brands
		}
		if len(acc.dates) > 0 {
			gs.TicketsPerDay = float64(acc.count) / float64(len(acc.dates))
		}
		out = append(out, gs)
	}
	return out
}
