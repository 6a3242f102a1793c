package scoring

import (
	"fmt"
	"math"

	"fantasy-draft/internal/model"

	"gonum.org/v1/gonum/floats"
)

// Value is the fantasy value of a record under w: the weighted sum of its
// averaged statistics. Inputs are assumed finite.
func Value(r model.PlayerRecord, w model.ScoringWeights) float64 {
	return floats.Dot(w.Vector(), r.Stats.Vector())
}

// ScoreAll evaluates every record once.
func ScoreAll(records []model.PlayerRecord, w model.ScoringWeights) []model.ScoredPlayer {
	out := make([]model.ScoredPlayer, len(records))
	wv := w.Vector()
	for i, r := range records {
		out[i] = model.ScoredPlayer{
			PlayerRecord: r,
			Value:        floats.Dot(wv, r.Stats.Vector()),
		}
	}
	return out
}

// ValidateWeights rejects NaN and infinite coefficients.
func ValidateWeights(w model.ScoringWeights) error {
	for i, v := range w.Vector() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weight %s must be finite, got %v", model.StatKeys[i], v)
		}
	}
	return nil
}
