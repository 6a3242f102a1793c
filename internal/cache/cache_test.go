package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"fantasy-draft/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() *Record {
	return &Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Date(2024, 8, 20, 12, 0, 0, 0, time.UTC),
		Result: &model.SelectionResult{
			ByPosition: map[model.Position][]model.ScoredPlayer{
				model.PositionQB: {{PlayerRecord: model.PlayerRecord{Name: "A", Position: model.PositionQB, Seasons: 1}, Value: 300}},
			},
			Counts:     map[model.Position]int{model.PositionQB: 1},
			TotalValue: 300,
			Solver:     "dp",
		},
	}
}

func TestMemoryStore_SetGetExpire(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newMemoryStore(time.Minute, func() time.Time { return now })
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	rec := sampleRecord()
	require.NoError(t, s.Set(ctx, IDKey(rec.ID), rec))
	got, err := s.Get(ctx, IDKey(rec.ID))
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	now = now.Add(2 * time.Minute)
	_, err = s.Get(ctx, IDKey(rec.ID))
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.Equal(t, 1, s.Len())
	s.prune()
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_CloseIsIdempotent(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestRequestKey(t *testing.T) {
	candidates := map[model.Position][]model.PlayerRecord{
		model.PositionQB: {{Name: "A", Position: model.PositionQB, Seasons: 1}},
		model.PositionTE: {{Name: "B", Position: model.PositionTE, Seasons: 1}},
	}
	c := model.DefaultRosterConstraints()
	w := model.DefaultWeights()

	k1, err := RequestKey(candidates, w, c, "dp")
	require.NoError(t, err)
	k2, err := RequestKey(candidates, w, c, "dp")
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.Contains(t, k1, "roster:req:")

	k3, _ := RequestKey(candidates, w, c, "enumerate")
	assert.NotEqual(t, k1, k3)

	w.Reception = 0.5
	k4, _ := RequestKey(candidates, w, c, "dp")
	assert.NotEqual(t, k1, k4)
}

func TestNew_DefaultsToMemory(t *testing.T) {
	s, err := New(context.Background(), "", time.Minute)
	require.NoError(t, err)
	defer s.Close()
	_, ok := s.(*MemoryStore)
	assert.True(t, ok)

	_, err = New(context.Background(), "://not-a-url", time.Minute)
	assert.Error(t, err)
}

// Runs only against a live server: REDIS_TEST_URL=redis://localhost:6379/15
func TestRedisStore_RoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	ctx := context.Background()
	s, err := New(ctx, url, time.Minute)
	require.NoError(t, err)
	defer s.Close()

	rec := sampleRecord()
	require.NoError(t, s.Set(ctx, IDKey(rec.ID), rec))
	got, err := s.Get(ctx, IDKey(rec.ID))
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Result.TotalValue, got.Result.TotalValue)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))

	_, err = s.Get(ctx, IDKey(uuid.NewString()))
	assert.True(t, errors.Is(err, ErrNotFound))
}
