package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ticketlens/cmd/mockgen/engine"
)

func main() {
	source := flag.String("source", "jira", "Export flavour to generate: jira, servicenow")
	scenario := flag.String("scenario", "mild", "Scenario to generate: mild, chaos, drift")
	distribution := flag.String("distribution", "uniform", "Distribution to use: uniform, weibull")
	outDir := flag.String("out", "./.cache", "Output directory for mock files")
	count := flag.Int("count", 200, "Number of tickets to generate")
	seed := flag.Uint64("seed", 1, "Random seed")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Source:       *source,
		Scenario:     *scenario,
		Distribution: *distribution,
		Count:        *count,
		Now:          time.Now(),
		Seed:         *seed,
	}

	path := filepath.Join(*outDir, fmt.Sprintf("%s_%s.csv", cfg.Source, cfg.Scenario))
	fmt.Printf("Generating %s scenario '%s' (Distribution: %s, Count: %d) to %s...\n", cfg.Source, cfg.Scenario, cfg.Distribution, cfg.Count, path)

	if err := engine.Save(path, engine.Generate(cfg)); err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
