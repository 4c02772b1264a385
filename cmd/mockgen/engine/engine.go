package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"zendesk-analytics/internal/zendesk"
)

type GeneratorConfig struct {
	Scenario     string // "mild", "sparse" or "chaos"
	Distribution string // "uniform" or "weibull"
	Count        int
	Days         int // arrivals are spread over this many days before Now
	Seed         int64
	Now          time.Time
}

var (
	brandTags   = []string{"portal_ccs", "portal_xia", "portal_hof", "portal_onr", "portal_jbl", "portal_hp", "portal_mot"}
	countryTags = []string{"portal_co", "portal_cl", "portal_pe", "portal_mx", "portal_ec", "portal_gt"}
	openStates  = []string{"new", "open", "pending", "hold"}
)

// Generate produces tickets shaped like Zendesk search results.
func Generate(cfg GeneratorConfig) []zendesk.TicketDTO {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.Days <= 0 {
		cfg.Days = 30
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = cfg.Now.UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	tickets := make([]zendesk.TicketDTO, 0, cfg.Count)
	window := time.Duration(cfg.Days) * 24 * time.Hour

	for i := 0; i < cfg.Count; i++ {
		// 1. Arrival, uniformly spread over the window
		created := cfg.Now.Add(-time.Duration(rng.Int63n(int64(window))))

		// 2. Tags: sparse scenario leaves a third of tickets unattributed
		var tags []string
		if cfg.Scenario != "sparse" || rng.Float64() > 0.33 {
			tags = append(tags, brandTags[rng.Intn(len(brandTags))])
		}
		if cfg.Scenario != "sparse" || rng.Float64() > 0.33 {
			tags = append(tags, countryTags[rng.Intn(len(countryTags))])
		}
		tags = append(tags, "tipo_promocion")

		// 3. Resolution time in hours
		var hours float64
		if cfg.Distribution == "weibull" {
			k, lambda := 1.5, 30.0
			if cfg.Scenario == "chaos" {
				k = 0.7
			}
			hours = weibullSample(rng, k, lambda)
		} else {
			hours = 1 + rng.Float64()*72
			if cfg.Scenario == "chaos" && rng.Float64() < 0.2 {
				hours += 100 + rng.Float64()*200
			}
		}

		dto := zendesk.TicketDTO{
			ID:          int64(1000 + i),
			Subject:     fmt.Sprintf("Mock ticket %d", i+1),
			RequesterID: 42,
			Tags:        tags,
			CreatedAt:   created.UTC().Format(time.RFC3339),
			Status:      openStates[rng.Intn(len(openStates))],
		}

		solved := created.Add(time.Duration(hours * float64(time.Hour)))
		if solved.Before(cfg.Now) {
			dto.Status = "solved"
			s := solved.UTC().Format(time.RFC3339)
			dto.SolvedAt = &s
		}

		// 4. First reply, missing for some untouched tickets
		if dto.Status != "new" && (cfg.Scenario != "sparse" || rng.Float64() > 0.5) {
			reply := math.Round(5 + rng.Float64()*300)
			dto.MetricEvents = &zendesk.MetricEventsDTO{
				ReplyTimeInMinutes: &zendesk.MinutesDTO{Calendar: &reply},
			}
		}

		tickets = append(tickets, dto)
	}

	return tickets
}

func weibullSample(rng *rand.Rand, k, lambda float64) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.0001
	}
	// X = lambda * (-ln(1-u))^(1/k)
	return lambda * math.Pow(-math.Log(1.0-u), 1.0/k)
}

// Save writes tickets as a single search.json page.
func Save(outDir string, name string, tickets []zendesk.TicketDTO) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(outDir, fmt.Sprintf("%s.json", name))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return path, enc.Encode(zendesk.SearchResponse{Results: tickets, Count: len(tickets)})
}
