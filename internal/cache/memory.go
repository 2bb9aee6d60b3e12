package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	gen     uint64
	value   []byte
	expires time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*memoryEntry
}

func newMemoryStore(ttl time.Duration) *memoryStore {
	return &memoryStore{
		ttl:     ttl,
		entries: make(map[string]*memoryEntry),
	}
}

func (s *memoryStore) entry(key string) *memoryEntry {
	e, ok := s.entries[key]
	if !ok {
		e = &memoryEntry{}
		s.entries[key] = e
	}
	return e
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entry(key)
	if e.value == nil {
		return nil, e.gen, false
	}
	if s.ttl > 0 && time.Now().After(e.expires) {
		e.value = nil
		return nil, e.gen, false
	}
	return e.value, e.gen, true
}

func (s *memoryStore) Put(_ context.Context, key string, gen uint64, value []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entry(key)
	if e.gen != gen {
		// A newer refresh superseded this fetch
		return false
	}
	e.value = value
	e.expires = time.Now().Add(s.ttl)
	return true
}

func (s *memoryStore) Invalidate(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entry(key)
	e.gen++
	e.value = nil
}
