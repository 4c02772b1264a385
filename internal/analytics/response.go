package analytics

import (
	"fmt"
	"strings"

	"zendesk-analytics/internal/zendesk"
)

// Dimension selects how tickets are partitioned for per-group reporting.
type Dimension string

const (
	DimensionNone    Dimension = "none"
	DimensionBrand   Dimension = "brand"
	DimensionCountry Dimension = "country"
)

// OverallGroup names the single group used when no dimension is selected.
const OverallGroup = "Overall"

// ParseDimension accepts brand, country or none, case-insensitively.
func ParseDimension(s string) (Dimension, error) {
	switch Dimension(strings.ToLower(strings.TrimSpace(s))) {
	case DimensionNone, "":
		return DimensionNone, nil
	case DimensionBrand:
		return DimensionBrand, nil
	case DimensionCountry:
		return DimensionCountry, nil
	default:
		return "", fmt.Errorf("unknown grouping %q (expected brand, country or none)", s)
	}
}

// Key returns the group label for a ticket's metadata.
func (d Dimension) Key(md Metadata) string {
	switch d {
	case DimensionBrand:
		return md.Brand
	case DimensionCountry:
		return md.Country
	default:
		return OverallGroup
	}
}

// GroupResponse holds response and resolution samples for one group.
type GroupResponse struct {
	Name          string  `json:"name"`
	TotalTickets  int     `json:"totalTickets"`
	FirstResponse Summary `json:"firstResponse"`
	Resolution    Summary `json:"resolution"`
}

// ResolutionBracket counts resolved tickets within a duration range.
type ResolutionBracket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ResponseReport is the response-time analysis for a ticket list.
type ResponseReport struct {
	Dimension     Dimension           `json:"dimension"`
	TotalTickets  int                 `json:"totalTickets"`
	FirstResponse Summary             `json:"firstResponse"`
	Resolution    Summary             `json:"resolution"`
	Groups        []GroupResponse     `json:"groups"`
	Distribution  []ResolutionBracket `json:"distribution"`
}

var bracketBounds = []struct {
	label string
	below float64 // upper bound in minutes, exclusive; 0 means unbounded
}{
	{"< 1 hour", 60},
	{"1-4 hours", 240},
	{"4-24 hours", 1440},
	{"1-3 days", 4320},
	{"> 3 days", 0},
}

// ResponseTimes partitions tickets by dim and summarises each group.
// Groups are ordered by ticket count descending, then name.
func ResponseTimes(tickets []zendesk.Ticket, dim Dimension) ResponseReport {
	counts := make(map[string]int)
	response, resolution := sampler{}, sampler{}
	var allResponse, allResolution []float64

	for _, t := range tickets {
		key := dim.Key(ExtractMetadata(t.Tags))
		counts[key]++

		if v, ok := FirstResponseMinutes(t); ok {
			allResponse = append(allResponse, v)
			response.add(key, v)
		}
		if m, ok := ResolutionMinutes(t); ok {
			allResolution = append(allResolution, float64(m))
			resolution.add(key, float64(m))
		}
	}

	rep := ResponseReport{
		Dimension:     dim,
		TotalTickets:  len(tickets),
		FirstResponse: Summarize(allResponse),
		Resolution:    Summarize(allResolution),
		Distribution:  distribute(allResolution),
	}
	for _, c := range RankCounts(counts) {
		rep.Groups = append(rep.Groups, GroupResponse{
			Name:          c.Name,
			TotalTickets:  c.Count,
			FirstResponse: Summarize(response[c.Name]),
			Resolution:    Summarize(resolution[c.Name]),
		})
	}
	return rep
}

func distribute(minutes []float64) []ResolutionBracket {
	out := make([]ResolutionBracket, len(bracketBounds))
	for i, b := range bracketBounds {
		out[i].Label = b.label
	}
	for _, m := range minutes {
		for i, b := range bracketBounds {
			if b.below == 0 || m < b.below {
				out[i].Count++
				break
			}
		}
	}
	return out
}
