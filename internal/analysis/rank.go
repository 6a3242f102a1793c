package analysis

import (
	"sort"

	"fantasy-draft/internal/model"
	"fantasy-draft/internal/scoring"
)

// RankPositions summarizes every position pool and sorts the summaries by
// P95-P05 spread, widest first: where the pool is most uneven, draft order
// matters most. Ties keep the model.Positions display order.
func RankPositions(byPosition map[model.Position][]model.PlayerRecord, w model.ScoringWeights, topN int) []PositionSummary {
	out := make([]PositionSummary, 0, len(byPosition))
	for _, pos := range orderedKeys(byPosition) {
		out = append(out, Summarize(pos, scoring.ScoreAll(byPosition[pos], w), topN))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SpreadP95P05 > out[j].SpreadP95P05
	})
	return out
}

func orderedKeys(byPosition map[model.Position][]model.PlayerRecord) []model.Position {
	out := make([]model.Position, 0, len(byPosition))
	seen := map[model.Position]bool{}
	for _, p := range model.Positions {
		if _, ok := byPosition[p]; ok {
			out = append(out, p)
			seen[p] = true
		}
	}
	var rest []model.Position
	for p := range byPosition {
		if !seen[p] {
			rest = append(rest, p)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(out, rest...)
}
