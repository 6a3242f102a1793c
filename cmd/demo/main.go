package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"fantasy-draft/internal/config"
	"fantasy-draft/internal/model"
	"fantasy-draft/internal/optimizer"
	"fantasy-draft/internal/report"
	"fantasy-draft/internal/scoring"
)

// Demo:
// - Generate a synthetic player pool (no stat files needed)
// - Score it with the league weights
// - Solve the roster with every solver and show they agree
func main() {
	cfgPath := flag.String("config", "", "Path to league YAML (optional, defaults to the standard league)")
	perPos := flag.Int("n", 40, "Synthetic players per position")
	seed := flag.Int64("seed", 1, "Random seed")
	outCSV := flag.String("out", "", "Optional path to write the roster CSV (e.g. results/roster.csv)")
	flag.Parse()
	if *perPos < 1 {
		fmt.Println("-n must be >= 1")
		os.Exit(2)
	}

	w := model.DefaultWeights()
	rc := model.DefaultRosterConstraints()
	if *cfgPath != "" {
		cfg, err := config.LoadUnchecked(*cfgPath)
		if err != nil {
			panic(err)
		}
		cfg.ApplyDefaults()
		w, rc = cfg.Weights(), cfg.Constraints()
	}

	rng := rand.New(rand.NewSource(*seed))
	var records []model.PlayerRecord
	for _, pos := range model.Positions {
		for i := 0; i < *perPos; i++ {
			records = append(records, syntheticPlayer(rng, pos, i))
		}
	}
	candidates := model.GroupByPosition(records)

	fmt.Printf("Generated %d players (%d per position)\n", len(records), *perPos)
	for _, pos := range model.Positions {
		scored := scoring.ScoreAll(candidates[pos], w)
		best := scored[0]
		for _, s := range scored[1:] {
			if s.Value > best.Value {
				best = s
			}
		}
		fmt.Printf("  best %-2s %-8s %7.2f\n", pos, best.Name, best.Value)
	}

	var results []*model.SelectionResult
	for _, name := range optimizer.SolverNames() {
		solver, err := optimizer.NewSolver(name)
		if err != nil {
			panic(err)
		}
		start := time.Now()
		res, err := optimizer.New(solver).SelectRoster(context.Background(), candidates, w, rc)
		if err != nil {
			panic(err)
		}
		fmt.Printf("\n%-9s total=%.2f in %s\n", name, res.TotalValue, time.Since(start).Round(time.Microsecond))
		results = append(results, res)
	}

	if err := report.WriteTable(os.Stdout, results[0], rc.OrderedPositions()); err != nil {
		panic(err)
	}
	for _, r := range results[1:] {
		if math.Abs(r.TotalValue-results[0].TotalValue) > 1e-9 {
			fmt.Printf("\nsolvers disagree: %s=%.4f %s=%.4f\n", results[0].Solver, results[0].TotalValue, r.Solver, r.TotalValue)
			os.Exit(1)
		}
	}

	if *outCSV != "" {
		if err := report.WriteSelectionCSV(*outCSV, results[0], rc.OrderedPositions()); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}
}

// syntheticPlayer draws stats shaped like a typical season for the position.
func syntheticPlayer(rng *rand.Rand, pos model.Position, i int) model.PlayerRecord {
	f := 0.3 + rng.Float64()
	var s model.SeasonStats
	switch pos {
	case model.PositionQB:
		s = model.SeasonStats{PassYds: 3500 * f, PassTDs: 25 * f, PassInts: 6 + 8*rng.Float64(), RushYds: 250 * f, RushTDs: 2 * f}
	case model.PositionRB:
		s = model.SeasonStats{RushYds: 900 * f, RushTDs: 7 * f, Receptions: 35 * f, RecYds: 250 * f, RecTDs: f}
	case model.PositionWR:
		s = model.SeasonStats{Receptions: 70 * f, RecYds: 900 * f, RecTDs: 6 * f, RushYds: 20 * f}
	case model.PositionTE:
		s = model.SeasonStats{Receptions: 50 * f, RecYds: 550 * f, RecTDs: 4 * f}
	}
	s.FumblesLost = math.Round(2 * rng.Float64())
	return model.PlayerRecord{
		Name:     fmt.Sprintf("%s%02d", pos, i+1),
		Position: pos,
		Stats:    s,
		Seasons:  1 + rng.Intn(4),
	}
}
