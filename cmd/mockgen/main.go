package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"zendesk-analytics/cmd/mockgen/engine"
)

func main() {
	scenario := flag.String("scenario", "mild", "Scenario to generate: mild, sparse, chaos")
	distribution := flag.String("distribution", "uniform", "Resolution time distribution: uniform, weibull")
	outDir := flag.String("out", "./.cache", "Output directory for mock files")
	count := flag.Int("count", 200, "Number of tickets to generate")
	days := flag.Int("days", 30, "Spread arrivals over this many days")
	seed := flag.Int64("seed", 0, "Random seed (0 uses the clock)")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario:     *scenario,
		Distribution: *distribution,
		Count:        *count,
		Days:         *days,
		Seed:         *seed,
		Now:          time.Now(),
	}

	fmt.Printf("Generating scenario '%s' (Distribution: %s, Count: %d) to %s...\n", cfg.Scenario, cfg.Distribution, cfg.Count, *outDir)

	tickets := engine.Generate(cfg)

	path, err := engine.Save(*outDir, "search_"+cfg.Scenario, tickets)
	if err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done: %s\n", path)
}
