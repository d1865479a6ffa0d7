package schedule

import (
	"context"
	"sync"
	"time"
)

// MemoryMarkers is a process-local MarkerStore used when Redis is not
// configured. Marker loss on restart only risks a duplicate reminder.
type MemoryMarkers struct {
	mu sync.Mutex
	m  map[string]time.Time
}

func NewMemoryMarkers() *MemoryMarkers {
	return &MemoryMarkers{m: make(map[string]time.Time)}
}

func (s *MemoryMarkers) Seen(_ context.Context, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.m[key]
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		delete(s.m, key)
		return false
	}
	return true
}

func (s *MemoryMarkers) Mark(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = time.Now().Add(ttl)
	return nil
}
