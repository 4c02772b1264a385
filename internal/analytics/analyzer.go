package analytics

import (
	"cmp"
	"slices"
	"time"

	"zendesk-analytics/internal/zendesk"
)

// StatusSolved is the only status whose tickets contribute resolution samples.
const StatusSolved = "solved"

// Analysis is the aggregate view of a filtered ticket list.
type Analysis struct {
	TotalTickets     int            `json:"totalTickets"`
	TicketsByDate    map[string]int `json:"ticketsByDate"`
	TicketsByCountry map[string]int `json:"ticketsByCountry"`
	TicketsByBrand   map[string]int `json:"ticketsByBrand"`
	TicketsByStatus  map[string]int `json:"ticketsByStatus"`

	FirstResponse Summary `json:"firstResponse"`
	Resolution    Summary `json:"resolution"`

	FirstResponseByCountry map[string]Summary `json:"firstResponseByCountry"`
	FirstResponseByBrand   map[string]Summary `json:"firstResponseByBrand"`
	ResolutionByCountry    map[string]Summary `json:"resolutionByCountry"`
	ResolutionByBrand      map[string]Summary `json:"resolutionByBrand"`
}

// FirstResponseMinutes returns the first-reply sample, if the ticket has a positive one.
func FirstResponseMinutes(t zendesk.Ticket) (float64, bool) {
	if t.FirstReplyMinutes == nil || *t.FirstReplyMinutes <= 0 {
		return 0, false
	}
	return *t.FirstReplyMinutes, true
}

// ResolutionMinutes returns whole minutes from creation to solve for solved tickets.
// A solve time earlier than creation is clamped to 0.
func ResolutionMinutes(t zendesk.Ticket) (int, bool) {
	if t.Status != StatusSolved || t.SolvedAt == nil {
		return 0, false
	}
	d := t.SolvedAt.Sub(t.CreatedAt)
	if d < 0 {
		return 0, true
	}
	return int(d / time.Minute), true
}

// sampler collects values per group key before reduction.
type sampler map[string][]float64

func (s sampler) add(key string, v float64) {
	s[key] = append(s[key], v)
}

func (s sampler) reduce() map[string]Summary {
	out := make(map[string]Summary, len(s))
	for k, vals := range s {
		out[k] = Summarize(vals)
	}
	return out
}

// Analyze folds tickets into an Analysis in a single pass.
func Analyze(tickets []zendesk.Ticket, cal Calendar) Analysis {
	byDate := make(map[string]int)
	byCountry := make(map[string]int)
	byBrand := make(map[string]int)
	byStatus := make(map[string]int)

	var response, resolution []float64
	responseByCountry, responseByBrand := sampler{}, sampler{}
	resolutionByCountry, resolutionByBrand := sampler{}, sampler{}

	for _, t := range tickets {
		md := ExtractMetadata(t.Tags)

		byDate[cal.DayKey(t.CreatedAt)]++
		byCountry[md.Country]++
		byBrand[md.Brand]++
		byStatus[t.Status]++

		if v, ok := FirstResponseMinutes(t); ok {
			response = append(response, v)
			responseByCountry.add(md.Country, v)
			responseByBrand.add(md.Brand, v)
		}

		if m, ok := ResolutionMinutes(t); ok {
			v := float64(m)
			resolution = append(resolution, v)
			resolutionByCountry.add(md.Country, v)
			resolutionByBrand.add(md.Brand, v)
		}
	}

	return Analysis{
		TotalTickets:           len(tickets),
		TicketsByDate:          byDate,
		TicketsByCountry:       byCountry,
		TicketsByBrand:         byBrand,
		TicketsByStatus:        byStatus,
		FirstResponse:          Summarize(response),
		Resolution:             Summarize(resolution),
		FirstResponseByCountry: responseByCountry.reduce(),
		FirstResponseByBrand:   responseByBrand.reduce(),
		ResolutionByCountry:    resolutionByCountry.reduce(),
		ResolutionByBrand:      resolutionByBrand.reduce(),
	}
}

// Count is a labelled tally.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RankCounts orders a tally by count descending, then name ascending.
func RankCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Name: k, Count: v})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// NamedSummary is a Summary tagged with its group name.
type NamedSummary struct {
	Name string
	Summary
}

// RankFastest orders summaries by average ascending, skipping groups below minCount samples.
func RankFastest(m map[string]Summary, minCount int) []NamedSummary {
	out := make([]NamedSummary, 0, len(m))
	for k, s := range m {
		if s.Count < minCount || s.Count == 0 {
			continue
		}
		out = append(out, NamedSummary{Name: k, Summary: s})
	}
	slices.SortFunc(out, func(a, b NamedSummary) int {
		if c := cmp.Compare(a.Average, b.Average); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// SortedKeys returns map keys in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
