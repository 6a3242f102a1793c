package scoring

import (
	"math"
	"testing"

	"fantasy-draft/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueQuarterbacks(t *testing.T) {
	w := model.DefaultWeights()

	a := model.PlayerRecord{Name: "A", Position: model.PositionQB, Stats: model.SeasonStats{PassYds: 4000, PassTDs: 30, PassInts: 10}}
	b := model.PlayerRecord{Name: "B", Position: model.PositionQB, Stats: model.SeasonStats{PassYds: 3000, PassTDs: 20, PassInts: 5}}

	assert.InDelta(t, 300.0, Value(a, w), 1e-9)
	assert.InDelta(t, 220.0, Value(b, w), 1e-9)
}

func TestValueEveryStatistic(t *testing.T) {
	w := model.DefaultWeights()
	r := model.PlayerRecord{Stats: model.SeasonStats{
		PassYds: 100, PassTDs: 1, PassInts: 1,
		RushYds: 50, RushTDs: 1,
		RecYds: 80, Receptions: 6, RecTDs: 1,
		FumblesLost: 1,
	}}
	// 5 + 4 - 2 + 5 + 6 + 8 + 6 + 6 - 2
	assert.InDelta(t, 36.0, Value(r, w), 1e-9)
}

func TestValueZeroStats(t *testing.T) {
	assert.Equal(t, 0.0, Value(model.PlayerRecord{}, model.DefaultWeights()))
}

func TestScoreAllMatchesValue(t *testing.T) {
	w := model.DefaultWeights()
	records := []model.PlayerRecord{
		{Name: "x", Stats: model.SeasonStats{RushYds: 1200, RushTDs: 10, Receptions: 40, RecYds: 300}},
		{Name: "y", Stats: model.SeasonStats{RecYds: 1100, Receptions: 90, RecTDs: 8, FumblesLost: 1}},
	}
	scored := ScoreAll(records, w)
	require.Len(t, scored, 2)
	for i, s := range scored {
		assert.Equal(t, records[i].Name, s.Name)
		assert.InDelta(t, Value(records[i], w), s.Value, 1e-9)
	}
}

func TestValidateWeights(t *testing.T) {
	assert.NoError(t, ValidateWeights(model.DefaultWeights()))

	w := model.DefaultWeights()
	w.RecTD = math.NaN()
	err := ValidateWeights(w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rec_td")

	w = model.DefaultWeights()
	w.Fumble = math.Inf(-1)
	assert.Error(t, ValidateWeights(w))
}
