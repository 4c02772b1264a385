package analytics

import (
	"testing"
	"time"

	"zendesk-analytics/cmd/mockgen/engine"
	"zendesk-analytics/internal/zendesk"
)

func ptr[T any](v T) *T { return &v }

func sumCounts(m map[string]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

func TestAnalyze_SingleSolvedTicket(t *testing.T) {
	created := time.Date(2024, 5, 2, 14, 0, 0, 0, time.UTC)
	tickets := []zendesk.Ticket{{
		ID:                1,
		Status:            "solved",
		Tags:              []string{"portal_ccs", "portal_co"},
		CreatedAt:         created,
		SolvedAt:          ptr(created.Add(120 * time.Minute)),
		FirstReplyMinutes: ptr(30.0),
	}}

	a := Analyze(tickets, DefaultCalendar())

	if a.TotalTickets != 1 {
		t.Errorf("TotalTickets = %d, want 1", a.TotalTickets)
	}
	if a.TicketsByBrand["Crocs"] != 1 || len(a.TicketsByBrand) != 1 {
		t.Errorf("TicketsByBrand = %v", a.TicketsByBrand)
	}
	if a.TicketsByCountry["Colombia"] != 1 || len(a.TicketsByCountry) != 1 {
		t.Errorf("TicketsByCountry = %v", a.TicketsByCountry)
	}
	if a.TicketsByStatus["solved"] != 1 || len(a.TicketsByStatus) != 1 {
		t.Errorf("TicketsByStatus = %v", a.TicketsByStatus)
	}
	if a.TicketsByDate["2024-05-02"] != 1 {
		t.Errorf("TicketsByDate = %v", a.TicketsByDate)
	}
	if a.FirstResponse.Average != 30 || a.FirstResponse.Count != 1 {
		t.Errorf("FirstResponse = %+v", a.FirstResponse)
	}
	if a.Resolution.Average != 120 || a.Resolution.Count != 1 {
		t.Errorf("Resolution = %+v", a.Resolution)
	}
	if a.FirstResponseByBrand["Crocs"].Average != 30 || a.ResolutionByCountry["Colombia"].Average != 120 {
		t.Errorf("partitioned summaries not populated: %+v %+v", a.FirstResponseByBrand, a.ResolutionByCountry)
	}
}

func TestAnalyze_EmptyList(t *testing.T) {
	a := Analyze(nil, DefaultCalendar())
	if a.TotalTickets != 0 {
		t.Errorf("TotalTickets = %d", a.TotalTickets)
	}
	if a.FirstResponse.Average != 0 || a.FirstResponse.Count != 0 {
		t.Errorf("FirstResponse = %+v, want zeros", a.FirstResponse)
	}
	if a.Resolution.Average != 0 || a.Resolution.Count != 0 {
		t.Errorf("Resolution = %+v, want zeros", a.Resolution)
	}
}

func TestAnalyze_UnattributedTicketsAreCounted(t *testing.T) {
	now := time.Now()
	tickets := []zendesk.Ticket{
		{ID: 1, Status: "open", CreatedAt: now},
		{ID: 2, Status: "new", Tags: []string{"portal_hp"}, CreatedAt: now},
	}
	a := Analyze(tickets, DefaultCalendar())
	if a.TicketsByCountry[Unknown] != 2 {
		t.Errorf("Unknown country count = %d, want 2", a.TicketsByCountry[Unknown])
	}
	if a.TicketsByBrand[Unknown] != 1 || a.TicketsByBrand["HP"] != 1 {
		t.Errorf("TicketsByBrand = %v", a.TicketsByBrand)
	}
}

func TestAnalyze_SkipsMissingAndZeroReplySamples(t *testing.T) {
	now := time.Now()
	tickets := []zendesk.Ticket{
		{ID: 1, Status: "open", CreatedAt: now},
		{ID: 2, Status: "open", CreatedAt: now, FirstReplyMinutes: ptr(0.0)},
		{ID: 3, Status: "open", CreatedAt: now, FirstReplyMinutes: ptr(10.0)},
	}
	a := Analyze(tickets, DefaultCalendar())
	if a.FirstResponse.Count != 1 || a.FirstResponse.Average != 10 {
		t.Errorf("FirstResponse = %+v, want one sample of 10", a.FirstResponse)
	}
}

func TestResolutionMinutes(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		ticket zendesk.Ticket
		want   int
		wantOK bool
	}{
		{"Solved", zendesk.Ticket{Status: "solved", CreatedAt: created, SolvedAt: ptr(created.Add(90 * time.Minute))}, 90, true},
		{"FloorsPartialMinutes", zendesk.Ticket{Status: "solved", CreatedAt: created, SolvedAt: ptr(created.Add(90*time.Minute + 59*time.Second))}, 90, true},
		{"ClosedNotCounted", zendesk.Ticket{Status: "closed", CreatedAt: created, SolvedAt: ptr(created.Add(time.Hour))}, 0, false},
		{"SolvedWithoutTimestamp", zendesk.Ticket{Status: "solved", CreatedAt: created}, 0, false},
		{"ClampedWhenInverted", zendesk.Ticket{Status: "solved", CreatedAt: created, SolvedAt: ptr(created.Add(-time.Hour))}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolutionMinutes(tt.ticket)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ResolutionMinutes() = %d, %v; want %d, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestAnalyze_CountInvariantsOnGeneratedData(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, scenario := range []string{"mild", "sparse", "chaos"} {
		t.Run(scenario, func(t *testing.T) {
			dtos := engine.Generate(engine.GeneratorConfig{Scenario: scenario, Count: 250, Seed: 3, Now: now})
			tickets := zendesk.MapTickets(dtos)
			a := Analyze(tickets, DefaultCalendar())

			if got := sumCounts(a.TicketsByStatus); got != a.TotalTickets {
				t.Errorf("sum(status) = %d, want %d", got, a.TotalTickets)
			}
			if got := sumCounts(a.TicketsByCountry); got != a.TotalTickets {
				t.Errorf("sum(country) = %d, want %d", got, a.TotalTickets)
			}
			if got := sumCounts(a.TicketsByBrand); got != a.TotalTickets {
				t.Errorf("sum(brand) = %d, want %d", got, a.TotalTickets)
			}
			if got := sumCounts(a.TicketsByDate); got != a.TotalTickets {
				t.Errorf("sum(date) = %d, want %d", got, a.TotalTickets)
			}
			for _, v := range a.Resolution.Values {
				if v < 0 {
					t.Fatalf("negative resolution sample %v", v)
				}
			}
		})
	}
}

func TestRankCounts_TieBreaksByName(t *testing.T) {
	got := RankCounts(map[string]int{"b": 2, "a": 2, "c": 5})
	want := []string{"c", "a", "b"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("RankCounts order = %v, want %v", got, want)
		}
	}
}

func TestRankFastest_RespectsMinimumSample(t *testing.T) {
	m := map[string]Summary{
		"Sparse": {Count: 2, Average: 1},
		"Slow":   {Count: 6, Average: 300},
		"Fast":   {Count: 5, Average: 20},
	}
	got := RankFastest(m, 5)
	if len(got) != 2 || got[0].Name != "Fast" || got[1].Name != "Slow" {
		t.Errorf("RankFastest = %+v", got)
	}
}
