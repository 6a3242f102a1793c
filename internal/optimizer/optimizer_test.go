package optimizer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"fantasy-draft/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// valueWeights scores a player purely by PassYds so tests can set values directly.
var valueWeights = model.ScoringWeights{PassYd: 1}

func player(name string, pos model.Position, value float64) model.PlayerRecord {
	return model.PlayerRecord{Name: name, Position: pos, Stats: model.SeasonStats{PassYds: value}, Seasons: 1}
}

func pool(pos model.Position, values ...float64) []model.PlayerRecord {
	out := make([]model.PlayerRecord, len(values))
	for i, v := range values {
		out[i] = player(fmt.Sprintf("%s%02d", pos, i), pos, v)
	}
	return out
}

func allSolvers() []Solver {
	return []Solver{&DPSolver{}, &EnumerateSolver{}, &EnumerateSolver{Workers: 1}}
}

func assertFeasible(t *testing.T, res *model.SelectionResult, c model.RosterConstraints) {
	t.Helper()
	total := 0
	for pos, b := range c.Positions {
		n := res.Counts[pos]
		assert.GreaterOrEqual(t, n, b.Min, "position %s below minimum", pos)
		assert.LessOrEqual(t, n, b.Max, "position %s above maximum", pos)
		assert.Len(t, res.ByPosition[pos], n)
		total += n
	}
	assert.Equal(t, c.TotalRosterSize, total)
}

func TestSelectRoster_QuarterbackScenario(t *testing.T) {
	candidates := map[model.Position][]model.PlayerRecord{
		model.PositionQB: {
			{Name: "A", Position: model.PositionQB, Stats: model.SeasonStats{PassYds: 4000, PassTDs: 30, PassInts: 10}},
			{Name: "B", Position: model.PositionQB, Stats: model.SeasonStats{PassYds: 3000, PassTDs: 20, PassInts: 5}},
		},
	}
	c := model.RosterConstraints{
		Positions:       map[model.Position]model.PositionBounds{model.PositionQB: {Min: 1, Max: 1}},
		TotalRosterSize: 1,
	}

	for _, s := range allSolvers() {
		res, err := New(s).SelectRoster(context.Background(), candidates, model.DefaultWeights(), c)
		require.NoError(t, err, s.Name())
		require.Len(t, res.ByPosition[model.PositionQB], 1)
		assert.Equal(t, "A", res.ByPosition[model.PositionQB][0].Name)
		assert.InDelta(t, 300.0, res.TotalValue, 1e-9)
		assert.Equal(t, s.Name(), res.Solver)
	}
}

func TestSelectRoster_PoolSmallerThanMinimum(t *testing.T) {
	candidates := map[model.Position][]model.PlayerRecord{
		model.PositionRB: pool(model.PositionRB, 10, 20, 30),
	}
	c := model.RosterConstraints{
		Positions:       map[model.Position]model.PositionBounds{model.PositionRB: {Min: 4, Max: 6}},
		TotalRosterSize: 4,
	}

	res, err := SelectRoster(candidates, valueWeights, c)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrInfeasibleConstraints))
	assert.False(t, errors.Is(err, ErrEmptyCandidatePool))

	var ce *ConstraintError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, model.PositionRB, ce.Position)
	assert.Contains(t, err.Error(), "only 3 candidates")
}

func TestSelectRoster_EmptyCandidatePool(t *testing.T) {
	candidates := map[model.Position][]model.PlayerRecord{
		model.PositionQB: pool(model.PositionQB, 10, 20),
	}
	c := model.RosterConstraints{
		Positions: map[model.Position]model.PositionBounds{
			model.PositionQB: {Min: 1, Max: 2},
			model.PositionTE: {Min: 1, Max: 1},
		},
		TotalRosterSize: 2,
	}

	_, err := SelectRoster(candidates, valueWeights, c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyCandidatePool))
	assert.True(t, errors.Is(err, ErrInfeasibleConstraints))
	assert.Contains(t, err.Error(), "TE")
}

func TestSelectRoster_EmptyPoolWithZeroMinimumIsFine(t *testing.T) {
	candidates := map[model.Position][]model.PlayerRecord{
		model.PositionQB: pool(model.PositionQB, 10, 20),
	}
	c := model.RosterConstraints{
		Positions: map[model.Position]model.PositionBounds{
			model.PositionQB: {Min: 1, Max: 2},
			model.PositionTE: {Min: 0, Max: 1},
		},
		TotalRosterSize: 2,
	}

	res, err := SelectRoster(candidates, valueWeights, c)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Counts[model.PositionQB])
	assert.Equal(t, 0, res.Counts[model.PositionTE])
	assert.NotNil(t, res.ByPosition[model.PositionTE])
}

func TestSelectRoster_MinimumsExceedRosterSize(t *testing.T) {
	candidates := map[model.Position][]model.PlayerRecord{
		model.PositionQB: pool(model.PositionQB, 1, 2, 3),
		model.PositionRB: pool(model.PositionRB, 1, 2, 3, 4, 5),
	}
	c := model.RosterConstraints{
		Positions: map[model.Position]model.PositionBounds{
			model.PositionQB: {Min: 2, Max: 3},
			model.PositionRB: {Min: 4, Max: 5},
		},
		TotalRosterSize: 5,
	}

	for _, s := range allSolvers() {
		res, err := New(s).SelectRoster(context.Background(), candidates, valueWeights, c)
		assert.Nil(t, res)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInfeasibleConstraints), s.Name())
		assert.Contains(t, err.Error(), "sum to 6")
	}
}

func TestSelectRoster_NotEnoughCandidatesForRosterSize(t *testing.T) {
	candidates := map[model.Position][]model.PlayerRecord{
		model.PositionQB: pool(model.PositionQB, 1, 2),
		model.PositionWR: pool(model.PositionWR, 1, 2),
	}
	c := model.RosterConstraints{
		Positions: map[model.Position]model.PositionBounds{
			model.PositionQB: {Min: 1, Max: 3},
			model.PositionWR: {Min: 1, Max: 3},
		},
		TotalRosterSize: 5,
	}

	_, err := SelectRoster(candidates, valueWeights, c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInfeasibleConstraints))
	assert.Contains(t, err.Error(), "at most 4")
}

func TestSelectRoster_InvalidConstraints(t *testing.T) {
	candidates := map[model.Position][]model.PlayerRecord{
		model.PositionQB: pool(model.PositionQB, 1, 2, 3),
	}
	tests := []struct {
		name string
		c    model.RosterConstraints
	}{
		{"no positions", model.RosterConstraints{TotalRosterSize: 1}},
		{"negative min", model.RosterConstraints{
			Positions:       map[model.Position]model.PositionBounds{model.PositionQB: {Min: -1, Max: 2}},
			TotalRosterSize: 1,
		}},
		{"min above max", model.RosterConstraints{
			Positions:       map[model.Position]model.PositionBounds{model.PositionQB: {Min: 3, Max: 2}},
			TotalRosterSize: 2,
		}},
		{"negative total", model.RosterConstraints{
			Positions:       map[model.Position]model.PositionBounds{model.PositionQB: {Min: 0, Max: 2}},
			TotalRosterSize: -1,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SelectRoster(candidates, valueWeights, tt.c)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConstraint))
			assert.False(t, errors.Is(err, ErrInfeasibleConstraints))
		})
	}
}

func TestSelectRoster_InvalidWeights(t *testing.T) {
	candidates := map[model.Position][]model.PlayerRecord{
		model.PositionQB: pool(model.PositionQB, 1),
	}
	c := model.RosterConstraints{
		Positions:       map[model.Position]model.PositionBounds{model.PositionQB: {Min: 1, Max: 1}},
		TotalRosterSize: 1,
	}
	w := valueWeights
	w.RushTD = math.NaN()

	_, err := SelectRoster(candidates, w, c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidWeights))
}

func TestSelectRoster_DefaultSixteenManRoster(t *testing.T) {
	// Running backs and receivers are deep, so the optimizer should push the
	// flexible slots toward them rather than spending them on QBs and TEs.
	candidates := map[model.Position][]model.PlayerRecord{
		model.PositionQB: pool(model.PositionQB, 300, 120, 110, 100),
		model.PositionRB: pool(model.PositionRB, 250, 240, 230, 220, 210, 205, 90),
		model.PositionWR: pool(model.PositionWR, 260, 250, 240, 230, 200, 190, 180, 170, 20),
		model.PositionTE: pool(model.PositionTE, 150, 60, 50, 40),
	}
	c := model.DefaultRosterConstraints()

	for _, s := range allSolvers() {
		res, err := New(s).SelectRoster(context.Background(), candidates, valueWeights, c)
		require.NoError(t, err, s.Name())
		assertFeasible(t, res, c)

		assert.Equal(t, 2, res.Counts[model.PositionQB], s.Name())
		assert.Equal(t, 6, res.Counts[model.PositionRB], s.Name())
		assert.Equal(t, 7, res.Counts[model.PositionWR], s.Name())
		assert.Equal(t, 1, res.Counts[model.PositionTE], s.Name())

		// 420 + 1355 + 1550 + 150
		assert.InDelta(t, 3475.0, res.TotalValue, 1e-9, s.Name())
		assert.InDelta(t, bruteForceCounts(candidates, c), res.TotalValue, 1e-9, s.Name())
	}
}

func TestSelectRoster_NegativeValuesStillFillRoster(t *testing.T) {
	// The total is an equality, so negative-value players must be taken when
	// the bounds demand them.
	candidates := map[model.Position][]model.PlayerRecord{
		model.PositionQB: pool(model.PositionQB, -5, -1),
		model.PositionTE: pool(model.PositionTE, -3, -10),
	}
	c := model.RosterConstraints{
		Positions: map[model.Position]model.PositionBounds{
			model.PositionQB: {Min: 0, Max: 2},
			model.PositionTE: {Min: 0, Max: 2},
		},
		TotalRosterSize: 2,
	}
	for _, s := range allSolvers() {
		res, err := New(s).SelectRoster(context.Background(), candidates, valueWeights, c)
		require.NoError(t, err)
		assertFeasible(t, res, c)
		assert.InDelta(t, -4.0, res.TotalValue, 1e-9, s.Name())
	}
}

func TestSelectRoster_ZeroRosterSize(t *testing.T) {
	candidates := map[model.Position][]model.PlayerRecord{
		model.PositionQB: pool(model.PositionQB, 5),
	}
	c := model.RosterConstraints{
		Positions:       map[model.Position]model.PositionBounds{model.PositionQB: {Min: 0, Max: 1}},
		TotalRosterSize: 0,
	}
	for _, s := range allSolvers() {
		res, err := New(s).SelectRoster(context.Background(), candidates, valueWeights, c)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Size())
		assert.Equal(t, 0.0, res.TotalValue)
	}
}

func TestSelectRoster_IgnoresUnconstrainedPositions(t *testing.T) {
	candidates := map[model.Position][]model.PlayerRecord{
		model.PositionQB: pool(model.PositionQB, 10),
		"K":              {player("kicker", "K", 1000)},
	}
	c := model.RosterConstraints{
		Positions:       map[model.Position]model.PositionBounds{model.PositionQB: {Min: 1, Max: 1}},
		TotalRosterSize: 1,
	}
	res, err := SelectRoster(candidates, valueWeights, c)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Size())
	_, ok := res.ByPosition["K"]
	assert.False(t, ok)
}

func TestSelectRoster_TiesBreakByName(t *testing.T) {
	candidates := map[model.Position][]model.PlayerRecord{
		model.PositionWR: {
			player("Zed", model.PositionWR, 50),
			player("Amy", model.PositionWR, 50),
			player("Bob", model.PositionWR, 50),
		},
	}
	c := model.RosterConstraints{
		Positions:       map[model.Position]model.PositionBounds{model.PositionWR: {Min: 2, Max: 2}},
		TotalRosterSize: 2,
	}
	for _, s := range allSolvers() {
		res, err := New(s).SelectRoster(context.Background(), candidates, valueWeights, c)
		require.NoError(t, err)
		assert.Equal(t, []string{"Amy", "Bob"}, res.Names()[model.PositionWR], s.Name())
	}
}

func TestSelectRoster_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	candidates, c := randomInstance(rng, 8)

	first, err := SelectRoster(candidates, valueWeights, c)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := New(&EnumerateSolver{}).SelectRoster(context.Background(), candidates, valueWeights, c)
		require.NoError(t, err)
		assert.Equal(t, first.Names(), again.Names())
		assert.Equal(t, first.Counts, again.Counts)
	}
}

func TestSolversMatchBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 60; trial++ {
		candidates, c := randomInstance(rng, 4)
		want, feasible := bruteForceSubsets(candidates, c)

		for _, s := range allSolvers() {
			res, err := New(s).SelectRoster(context.Background(), candidates, valueWeights, c)
			if !feasible {
				require.Error(t, err, "trial %d solver %s", trial, s.Name())
				assert.True(t, errors.Is(err, ErrInfeasibleConstraints), "trial %d", trial)
				continue
			}
			require.NoError(t, err, "trial %d solver %s", trial, s.Name())
			assertFeasible(t, res, c)
			assert.InDelta(t, want, res.TotalValue, 1e-6, "trial %d solver %s", trial, s.Name())
		}
	}
}

func TestMonotonicity(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 30; trial++ {
		candidates, c := randomInstance(rng, 6)
		before, err := SelectRoster(candidates, valueWeights, c)
		if err != nil {
			continue
		}

		// Boost one random candidate.
		pos := model.Positions[rng.Intn(len(model.Positions))]
		if len(candidates[pos]) == 0 {
			continue
		}
		idx := rng.Intn(len(candidates[pos]))
		boosted := map[model.Position][]model.PlayerRecord{}
		for p, recs := range candidates {
			boosted[p] = append([]model.PlayerRecord(nil), recs...)
		}
		target := boosted[pos][idx]
		boosted[pos][idx].Stats.PassYds += 25 + rng.Float64()*50

		after, err := SelectRoster(boosted, valueWeights, c)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, after.TotalValue, before.TotalValue-1e-9, "trial %d", trial)

		if contains(before.Names()[pos], target.Name) {
			assert.True(t, contains(after.Names()[pos], target.Name), "trial %d: boosted player dropped", trial)
		}
	}
}

func TestEnumerateSolver_Cancelled(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	candidates, c := randomInstance(rng, 6)
	pb, err := NewProblem(candidates, valueWeights, c)
	if err != nil {
		t.Skipf("random instance infeasible: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = (&EnumerateSolver{}).Solve(ctx, pb)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = (&DPSolver{}).Solve(ctx, pb)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSolver(t *testing.T) {
	for _, name := range append(SolverNames(), "") {
		s, err := NewSolver(name)
		require.NoError(t, err)
		if name == "" {
			assert.Equal(t, DefaultSolver, s.Name())
		} else {
			assert.Equal(t, name, s.Name())
		}
	}
	_, err := NewSolver("cvx")
	assert.Error(t, err)
}

func TestProblemFeasible(t *testing.T) {
	candidates := map[model.Position][]model.PlayerRecord{
		model.PositionQB: pool(model.PositionQB, 3, 2, 1),
		model.PositionRB: pool(model.PositionRB, 3, 2),
	}
	c := model.RosterConstraints{
		Positions: map[model.Position]model.PositionBounds{
			model.PositionQB: {Min: 1, Max: 2},
			model.PositionRB: {Min: 1, Max: 3},
		},
		TotalRosterSize: 3,
	}
	pb, err := NewProblem(candidates, valueWeights, c)
	require.NoError(t, err)

	assert.True(t, pb.Feasible([]int{1, 2}))
	assert.True(t, pb.Feasible([]int{2, 1}))
	assert.False(t, pb.Feasible([]int{3, 0}))
	assert.False(t, pb.Feasible([]int{0, 3}))
	assert.False(t, pb.Feasible([]int{1, 1}))
	assert.False(t, pb.Feasible([]int{1}))
	assert.InDelta(t, 8.0, pb.Value([]int{2, 1}), 1e-9)
}

// randomInstance builds a small feasible problem over all four positions with
// up to maxPerPos candidates each.
func randomInstance(rng *rand.Rand, maxPerPos int) (map[model.Position][]model.PlayerRecord, model.RosterConstraints) {
	candidates := map[model.Position][]model.PlayerRecord{}
	c := model.RosterConstraints{Positions: map[model.Position]model.PositionBounds{}}
	minSum, reachable := 0, 0
	for _, pos := range model.Positions {
		n := 1 + rng.Intn(maxPerPos)
		values := make([]float64, n)
		for i := range values {
			values[i] = math.Round((rng.Float64()*400-50)*1000) / 1000
		}
		candidates[pos] = pool(pos, values...)

		lo := rng.Intn(2)
		hi := lo + rng.Intn(3)
		c.Positions[pos] = model.PositionBounds{Min: lo, Max: hi}
		minSum += lo
		if hi < n {
			reachable += hi
		} else {
			reachable += n
		}
	}
	c.TotalRosterSize = minSum + rng.Intn(reachable-minSum+1)
	return candidates, c
}

// bruteForceSubsets tries every subset of the flattened candidate list.
func bruteForceSubsets(candidates map[model.Position][]model.PlayerRecord, c model.RosterConstraints) (float64, bool) {
	type flat struct {
		pos   model.Position
		value float64
	}
	var all []flat
	for _, pos := range model.Positions {
		for _, r := range candidates[pos] {
			all = append(all, flat{pos: pos, value: r.Stats.PassYds})
		}
	}

	best := math.Inf(-1)
	found := false
	for mask := 0; mask < 1<<len(all); mask++ {
		counts := map[model.Position]int{}
		total := 0
		value := 0.0
		for i, f := range all {
			if mask&(1<<i) != 0 {
				counts[f.pos]++
				total++
				value += f.value
			}
		}
		if total != c.TotalRosterSize {
			continue
		}
		ok := true
		for pos, b := range c.Positions {
			if counts[pos] < b.Min || counts[pos] > b.Max {
				ok = false
				break
			}
		}
		if ok && value > best {
			best = value
			found = true
		}
	}
	return best, found
}

// bruteForceCounts tries every count vector, taking the top-k per position.
func bruteForceCounts(candidates map[model.Position][]model.PlayerRecord, c model.RosterConstraints) float64 {
	pb, err := NewProblem(candidates, valueWeights, c)
	if err != nil {
		return math.NaN()
	}
	best := math.Inf(-1)
	var walk func(i int, counts []int)
	walk = func(i int, counts []int) {
		if i == len(pb.Positions) {
			if pb.Feasible(counts) && pb.Value(counts) > best {
				best = pb.Value(counts)
			}
			return
		}
		for k := 0; k <= len(pb.Pools[i]); k++ {
			walk(i+1, append(counts, k))
		}
	}
	walk(0, nil)
	return best
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
