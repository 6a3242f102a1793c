package optimizer

import (
	"fmt"
	"sort"

	"fantasy-draft/internal/model"
	"fantasy-draft/internal/scoring"
)

// Problem is a validated, scored roster selection instance.
//
// Pools are sorted by value descending (name ascending on ties), so the best
// c players of a position are always Pools[p][:c] and Prefix[p][c] is their
// total value. Because the objective has no cross terms, choosing a count per
// position fully determines an optimal selection for that count vector.
type Problem struct {
	Positions []model.Position
	Bounds    []model.PositionBounds
	Pools     [][]model.ScoredPlayer
	Prefix    [][]float64
	Total     int
}

// NewProblem scores the candidates and checks the model before any solver
// runs. Candidates at positions without a constraint are ignored; a
// constrained position missing from candidates is an empty pool.
func NewProblem(candidates map[model.Position][]model.PlayerRecord, w model.ScoringWeights, c model.RosterConstraints) (*Problem, error) {
	if err := scoring.ValidateWeights(w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWeights, err)
	}
	if err := ValidateConstraints(c); err != nil {
		return nil, err
	}

	positions := c.OrderedPositions()
	pb := &Problem{
		Positions: positions,
		Bounds:    make([]model.PositionBounds, len(positions)),
		Pools:     make([][]model.ScoredPlayer, len(positions)),
		Prefix:    make([][]float64, len(positions)),
		Total:     c.TotalRosterSize,
	}

	reachable := 0
	for i, pos := range positions {
		b := c.Positions[pos]
		pool := scoring.ScoreAll(candidates[pos], w)
		sort.SliceStable(pool, func(a, z int) bool {
			if pool[a].Value != pool[z].Value {
				return pool[a].Value > pool[z].Value
			}
			return pool[a].Name < pool[z].Name
		})

		if len(pool) < b.Min {
			if len(pool) == 0 {
				return nil, constraintErr(pos, ErrEmptyCandidatePool, "minimum %d but no candidates", b.Min)
			}
			return nil, constraintErr(pos, ErrInfeasibleConstraints, "minimum %d but only %d candidates", b.Min, len(pool))
		}

		prefix := make([]float64, len(pool)+1)
		for k, p := range pool {
			prefix[k+1] = prefix[k] + p.Value
		}

		pb.Bounds[i] = b
		pb.Pools[i] = pool
		pb.Prefix[i] = prefix
		reachable += pb.maxCount(i)
	}

	if reachable < c.TotalRosterSize {
		return nil, constraintErr("", ErrInfeasibleConstraints,
			"roster size %d but at most %d players can be selected from the candidate pools", c.TotalRosterSize, reachable)
	}
	return pb, nil
}

// ValidateConstraints checks the bounds on their own, without candidates.
func ValidateConstraints(c model.RosterConstraints) error {
	if len(c.Positions) == 0 {
		return constraintErr("", ErrInvalidConstraint, "no positions configured")
	}
	if c.TotalRosterSize < 0 {
		return constraintErr("", ErrInvalidConstraint, "roster size must be >= 0, got %d", c.TotalRosterSize)
	}
	for _, pos := range c.OrderedPositions() {
		b := c.Positions[pos]
		if b.Min < 0 || b.Max < 0 {
			return constraintErr(pos, ErrInvalidConstraint, "bounds must be >= 0, got min=%d max=%d", b.Min, b.Max)
		}
		if b.Min > b.Max {
			return constraintErr(pos, ErrInvalidConstraint, "min %d exceeds max %d", b.Min, b.Max)
		}
	}
	if minSum := c.MinSum(); minSum > c.TotalRosterSize {
		return constraintErr("", ErrInfeasibleConstraints,
			"position minimums sum to %d, more than roster size %d", minSum, c.TotalRosterSize)
	}
	if maxSum := c.MaxSum(); maxSum < c.TotalRosterSize {
		return constraintErr("", ErrInfeasibleConstraints,
			"position maximums sum to %d, less than roster size %d", maxSum, c.TotalRosterSize)
	}
	return nil
}

// minCount and maxCount are the usable count range for position i.
func (pb *Problem) minCount(i int) int { return pb.Bounds[i].Min }

func (pb *Problem) maxCount(i int) int {
	if n := len(pb.Pools[i]); n < pb.Bounds[i].Max {
		return n
	}
	return pb.Bounds[i].Max
}

// Value is the objective for a count vector.
func (pb *Problem) Value(counts []int) float64 {
	v := 0.0
	for i, c := range counts {
		v += pb.Prefix[i][c]
	}
	return v
}

// Feasible reports whether counts satisfies every bound and the exact total.
func (pb *Problem) Feasible(counts []int) bool {
	if len(counts) != len(pb.Positions) {
		return false
	}
	sum := 0
	for i, c := range counts {
		if c < pb.minCount(i) || c > pb.maxCount(i) {
			return false
		}
		sum += c
	}
	return sum == pb.Total
}

// Result materializes the selection for a count vector.
func (pb *Problem) Result(counts []int, solver string) *model.SelectionResult {
	res := &model.SelectionResult{
		ByPosition: make(map[model.Position][]model.ScoredPlayer, len(pb.Positions)),
		Counts:     make(map[model.Position]int, len(pb.Positions)),
		Solver:     solver,
	}
	for i, pos := range pb.Positions {
		picked := make([]model.ScoredPlayer, counts[i])
		copy(picked, pb.Pools[i][:counts[i]])
		res.ByPosition[pos] = picked
		res.Counts[pos] = counts[i]
		res.TotalValue += pb.Prefix[i][counts[i]]
	}
	return res
}
