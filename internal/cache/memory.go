package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	rec       *Record
	expiresAt time.Time
}

// MemoryStore is a process-local Store with TTL expiry. A background
// goroutine prunes expired entries until Close.
type MemoryStore struct {
	mu    sync.RWMutex
	store map[string]*entry
	ttl   time.Duration
	now   func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := newMemoryStore(ttl, time.Now)
	go s.cleanup(5 * time.Minute)
	return s
}

func newMemoryStore(ttl time.Duration, now func() time.Time) *MemoryStore {
	return &MemoryStore{
		store: make(map[string]*entry),
		ttl:   ttl,
		now:   now,
		stop:  make(chan struct{}),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.store[key]
	if !ok || s.now().After(e.expiresAt) {
		return nil, ErrNotFound
	}
	return e.rec, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store[key] = &entry{rec: rec, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.store)
}

func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.prune()
		}
	}
}

func (s *MemoryStore) prune() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, e := range s.store {
		if now.After(e.expiresAt) {
			delete(s.store, key)
		}
	}
}
