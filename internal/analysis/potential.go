package analysis

import (
	"math"
	"sort"

	"fantasy-draft/internal/model"

	"gonum.org/v1/gonum/floats"
)

// PositionSummary describes the value distribution of one position's pool.
type PositionSummary struct {
	Position model.Position `json:"position"`
	Count    int            `json:"count"`

	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	P05  float64 `json:"p05"`
	P95  float64 `json:"p95"`

	SpreadP95P05 float64 `json:"spread_p95_p05"`

	// Top holds the best players, highest value first.
	Top []model.ScoredPlayer `json:"top"`
}

// Summarize scores a pool and computes its summary, keeping the topN best
// players (all of them when topN <= 0).
func Summarize(pos model.Position, scored []model.ScoredPlayer, topN int) PositionSummary {
	s := PositionSummary{Position: pos, Count: len(scored)}
	if len(scored) == 0 {
		s.Top = []model.ScoredPlayer{}
		return s
	}

	ranked := append([]model.ScoredPlayer(nil), scored...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].Name < ranked[j].Name
	})

	vals := make([]float64, len(ranked))
	for i, p := range ranked {
		vals[i] = p.Value
	}
	sort.Float64s(vals)

	s.Min = floats.Min(vals)
	s.Max = floats.Max(vals)
	s.Mean = floats.Sum(vals) / float64(len(vals))
	s.P05 = percentileSorted(vals, 0.05)
	s.P95 = percentileSorted(vals, 0.95)
	s.SpreadP95P05 = s.P95 - s.P05

	if topN <= 0 || topN > len(ranked) {
		topN = len(ranked)
	}
	s.Top = ranked[:topN]
	return s
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
