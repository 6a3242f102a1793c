package data

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"fantasy-draft/internal/model"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// SeasonFile names the export for one season.
type SeasonFile struct {
	Year int
	Path string
}

// LoadSeasons parses every file independently and returns the seasons
// ordered oldest to newest.
func LoadSeasons(ctx context.Context, files []SeasonFile) ([]*Season, error) {
	if len(files) == 0 {
		return nil, errors.New("no season files configured")
	}

	seasons := make([]*Season, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := LoadSeasonCSV(f.Path, f.Year)
			if err != nil {
				return fmt.Errorf("season %d: %w", f.Year, err)
			}
			seasons[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(seasons, func(a, b int) bool { return seasons[a].Year < seasons[b].Year })
	return seasons, nil
}

type accumulator struct {
	record model.PlayerRecord
	totals model.SeasonStats
}

// Aggregate averages each player's statistics over the seasons they appear
// in. The candidate pool is the newest season's players; rows from earlier
// seasons for anyone outside that pool are skipped. A name appearing more
// than once within a season counts only its first row.
func Aggregate(seasons []*Season) ([]model.PlayerRecord, error) {
	if len(seasons) == 0 {
		return nil, errors.New("no seasons to aggregate")
	}
	ordered := append([]*Season(nil), seasons...)
	sort.SliceStable(ordered, func(a, b int) bool { return ordered[a].Year < ordered[b].Year })

	log := logrus.WithField("component", "stats_aggregator")
	latest := ordered[len(ordered)-1]

	pool := make(map[string]*accumulator, len(latest.Rows))
	order := make([]string, 0, len(latest.Rows))
	for _, row := range latest.Rows {
		if _, dup := pool[row.Name]; dup {
			log.WithFields(logrus.Fields{"name": row.Name, "season": latest.Year}).Debug("Duplicate name in season, keeping first row")
			continue
		}
		pool[row.Name] = &accumulator{
			record: model.PlayerRecord{Name: row.Name, Position: row.Position, Seasons: 1},
			totals: row.Stats,
		}
		order = append(order, row.Name)
	}

	for _, season := range ordered[:len(ordered)-1] {
		seen := map[string]bool{}
		skipped := 0
		for _, row := range season.Rows {
			acc, ok := pool[row.Name]
			if !ok {
				// Not in the newest season: not draftable.
				skipped++
				continue
			}
			if seen[row.Name] {
				continue
			}
			seen[row.Name] = true
			acc.totals = acc.totals.Add(row.Stats)
			acc.record.Seasons++
		}
		log.WithFields(logrus.Fields{"season": season.Year, "matched": len(seen), "skipped": skipped}).Debug("Season merged")
	}

	out := make([]model.PlayerRecord, 0, len(order))
	for _, name := range order {
		acc := pool[name]
		n := acc.record.Seasons
		if n < 1 {
			n = 1
		}
		rec := acc.record
		rec.Stats = acc.totals.Scale(1 / float64(n))
		out = append(out, rec)
	}

	log.WithFields(logrus.Fields{
		"seasons":    len(ordered),
		"candidates": len(out),
		"pool_year":  latest.Year,
	}).Info("Player statistics aggregated")
	return out, nil
}

// LoadCandidates loads and aggregates the season files.
func LoadCandidates(ctx context.Context, files []SeasonFile) ([]model.PlayerRecord, error) {
	seasons, err := LoadSeasons(ctx, files)
	if err != nil {
		return nil, err
	}
	return Aggregate(seasons)
}
