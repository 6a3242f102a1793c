package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fantasy-draft/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned for missing or expired keys.
var ErrNotFound = errors.New("cache: not found")

// Record is a stored roster optimization.
type Record struct {
	ID        string                 `json:"id"`
	CreatedAt time.Time              `json:"created_at"`
	Result    *model.SelectionResult `json:"result"`
}

// Store keeps optimization records for a bounded time.
type Store interface {
	Get(ctx context.Context, key string) (*Record, error)
	Set(ctx context.Context, key string, rec *Record) error
	Close() error
}

// New returns a redis-backed store when redisURL is set and an in-memory one
// otherwise.
func New(ctx context.Context, redisURL string, ttl time.Duration) (Store, error) {
	if redisURL == "" {
		return NewMemoryStore(ttl), nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStore(client, ttl), nil
}

// IDKey is the key a record is stored under by its ID.
func IDKey(id string) string {
	return "roster:id:" + id
}

// RequestKey derives a deterministic key from the solve inputs, so an
// identical request is answered from the cache.
func RequestKey(candidates map[model.Position][]model.PlayerRecord, w model.ScoringWeights, c model.RosterConstraints, solver string) (string, error) {
	// encoding/json sorts map keys, so the encoding is stable.
	raw, err := json.Marshal(struct {
		Candidates  map[model.Position][]model.PlayerRecord `json:"candidates"`
		Weights     model.ScoringWeights                    `json:"weights"`
		Constraints model.RosterConstraints                 `json:"constraints"`
		Solver      string                                  `json:"solver"`
	}{candidates, w, c, solver})
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(raw)
	return "roster:req:" + hex.EncodeToString(hash[:]), nil
}

// RedisStore keeps records as JSON under their key with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Entry
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logrus.WithField("component", "roster_cache"),
	}
}

func (s *RedisStore) Set(ctx context.Context, key string, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal roster record: %w", err)
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set roster record in cache: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"cache_key":  key,
		"expiration": s.ttl,
	}).Debug("Cached roster record")
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Record, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get roster record from cache: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roster record: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
