package report

import (
	"fmt"
	"io"
	"sort"

	"fantasy-draft/internal/analysis"
	"fantasy-draft/internal/model"
)

// WriteTable prints the selection the way the draft sheet is read: a count
// line per position followed by the chosen names.
func WriteTable(w io.Writer, res *model.SelectionResult, positions []model.Position) error {
	if res == nil {
		return fmt.Errorf("nil selection")
	}
	for _, pos := range orderPositions(res, positions) {
		if _, err := fmt.Fprintf(w, "\nNumber of %ss: %d\n", pos, res.Counts[pos]); err != nil {
			return err
		}
		for _, p := range res.ByPosition[pos] {
			if _, err := fmt.Fprintf(w, "  %-28s %9.2f  (%d seasons)\n", p.Name, p.Value, p.Seasons); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "\nRoster size: %d  Total value: %.2f  Solver: %s\n", res.Size(), res.TotalValue, res.Solver)
	return err
}

// WriteRankTable prints per-position value summaries, top players first.
func WriteRankTable(w io.Writer, summaries []analysis.PositionSummary) error {
	if _, err := fmt.Fprintf(w, "%-4s %6s %9s %9s %9s %9s  %s\n", "pos", "count", "mean", "p05", "p95", "max", "top"); err != nil {
		return err
	}
	for _, s := range summaries {
		top := ""
		if len(s.Top) > 0 {
			top = fmt.Sprintf("%s (%.2f)", s.Top[0].Name, s.Top[0].Value)
		}
		if _, err := fmt.Fprintf(w, "%-4s %6d %9.2f %9.2f %9.2f %9.2f  %s\n", s.Position, s.Count, s.Mean, s.P05, s.P95, s.Max, top); err != nil {
			return err
		}
	}
	for _, s := range summaries {
		if len(s.Top) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n%s\n", s.Position); err != nil {
			return err
		}
		for i, p := range s.Top {
			if _, err := fmt.Fprintf(w, "%3d. %-28s %9.2f\n", i+1, p.Name, p.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// orderPositions returns the given order, followed by any other positions in
// the result alphabetically.
func orderPositions(res *model.SelectionResult, positions []model.Position) []model.Position {
	out := make([]model.Position, 0, len(res.ByPosition))
	seen := map[model.Position]bool{}
	for _, p := range positions {
		if _, ok := res.ByPosition[p]; ok && !seen[p] {
			out = append(out, p)
			seen[p] = true
		}
	}
	var rest []model.Position
	for p := range res.ByPosition {
		if !seen[p] {
			rest = append(rest, p)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(out, rest...)
}
