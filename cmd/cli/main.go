package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fantasy-draft/internal/analysis"
	"fantasy-draft/internal/config"
	"fantasy-draft/internal/data"
	"fantasy-draft/internal/logger"
	"fantasy-draft/internal/model"
	"fantasy-draft/internal/optimizer"
	"fantasy-draft/internal/report"

	"github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "draft":
		cmdDraft(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	case "aggregate":
		cmdAggregate(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli draft --config configs/league.yaml [--drafted drafted.txt] [--solver dp|enumerate] [--out results/roster.csv]")
	fmt.Println("  cli rank --config configs/league.yaml [--top 10]")
	fmt.Println("  cli aggregate --config configs/league.yaml --out results/players.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - draft picks the highest-value roster that meets every position bound")
	fmt.Println("  - rank orders positions by the p95-p05 spread of player value")
	fmt.Println("  - aggregate writes per-season averages that --players can reuse")
}

// commonFlags are shared by every subcommand that loads candidates.
type commonFlags struct {
	cfgPath     *string
	playersPath *string
	draftedPath *string
	verbose     *bool
}

func addCommon(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		cfgPath:     fs.String("config", "configs/league.yaml", "Path to league YAML config"),
		playersPath: fs.String("players", "", "Optional: aggregated players CSV (overrides data.players_file and season files)"),
		draftedPath: fs.String("drafted", "", "Optional: already drafted players file (overrides data.drafted_file)"),
		verbose:     fs.Bool("v", false, "Log progress"),
	}
}

func (f commonFlags) setup() *config.Config {
	level := "warn"
	if *f.verbose {
		level = "info"
	}
	logger.Init(level, "", true)

	cfg, err := loadConfig(*f.cfgPath, *f.playersPath, *f.draftedPath)
	if err != nil {
		fail(err)
	}
	return cfg
}

// loadConfig applies command-line paths before validation, so --players can
// stand in for season files the config does not name.
func loadConfig(path, playersPath, draftedPath string) (*config.Config, error) {
	cfg, err := config.LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if playersPath != "" {
		cfg.Data.PlayersFile = playersPath
	}
	if draftedPath != "" {
		cfg.Data.DraftedFile = draftedPath
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func cmdDraft(args []string) {
	fs := flag.NewFlagSet("draft", flag.ExitOnError)
	common := addCommon(fs)
	solverName := fs.String("solver", "", "Roster solver: dp or enumerate (default from config)")
	outPath := fs.String("out", "", "Optional: write the roster as CSV")
	timeout := fs.Duration("timeout", time.Minute, "Give up on the solve after this long")
	_ = fs.Parse(args)

	cfg := common.setup()
	if *solverName != "" {
		cfg.Solver = *solverName
	}
	solver, err := optimizer.NewSolver(cfg.Solver)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	candidates := loadCandidates(ctx, cfg)
	rc := cfg.Constraints()
	res, err := optimizer.New(solver).SelectRoster(ctx, candidates, cfg.Weights(), rc)
	if err != nil {
		fail(err)
	}

	positions := rc.OrderedPositions()
	if err := report.WriteTable(os.Stdout, res, positions); err != nil {
		fail(err)
	}

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			fail(err)
		}
		if err := report.WriteSelectionCSV(*outPath, res, positions); err != nil {
			fail(err)
		}
		fmt.Printf("Wrote %d players to %s\n", res.Size(), *outPath)
	}
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	common := addCommon(fs)
	top := fs.Int("top", 5, "Players to list per position")
	_ = fs.Parse(args)

	cfg := common.setup()
	candidates := loadCandidates(context.Background(), cfg)

	ranked := analysis.RankPositions(candidates, cfg.Weights(), *top)
	if err := report.WriteRankTable(os.Stdout, ranked); err != nil {
		fail(err)
	}
}

func cmdAggregate(args []string) {
	fs := flag.NewFlagSet("aggregate", flag.ExitOnError)
	common := addCommon(fs)
	outPath := fs.String("out", "results/players.csv", "Output CSV path")
	_ = fs.Parse(args)

	cfg := common.setup()
	records := loadRecords(context.Background(), cfg)

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fail(err)
	}
	if err := data.WritePlayersCSV(*outPath, records); err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %d players to %s\n", len(records), *outPath)
}

// loadRecords reads the aggregated players file when configured, otherwise
// every season file.
func loadRecords(ctx context.Context, cfg *config.Config) []model.PlayerRecord {
	var (
		records []model.PlayerRecord
		err     error
	)
	if cfg.Data.PlayersFile != "" {
		records, err = data.LoadPlayersCSV(cfg.ResolvePath(cfg.Data.PlayersFile))
	} else {
		records, err = data.LoadCandidates(ctx, cfg.SeasonFiles())
	}
	if err != nil {
		fail(err)
	}
	return records
}

// loadCandidates is loadRecords minus drafted players, grouped by position.
func loadCandidates(ctx context.Context, cfg *config.Config) map[model.Position][]model.PlayerRecord {
	records := loadRecords(ctx, cfg)

	if cfg.Data.DraftedFile != "" {
		drafted, err := data.LoadDrafted(cfg.ResolvePath(cfg.Data.DraftedFile))
		if err != nil {
			fail(err)
		}
		before := len(records)
		records = data.ExcludeDrafted(records, drafted)
		logrus.WithFields(logrus.Fields{
			"component": "cli",
			"drafted":   len(drafted),
			"excluded":  before - len(records),
		}).Info("Excluded drafted players")
	}
	return model.GroupByPosition(records)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
