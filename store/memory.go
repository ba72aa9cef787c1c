package store

import (
	"context"
	"sync"
	"time"

	"storefront-service/models"
)

type memoryEntry struct {
	state     *models.VisitorState
	expiresAt time.Time
}

// MemoryStore keeps visitor state in process. Used when Redis is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, visitorID string) (*models.VisitorState, error) {
	if visitorID == "" {
		return nil, ErrInvalidVisitorID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[visitorID]
	if !ok {
		return &models.VisitorState{}, nil
	}
	if s.ttl > 0 && s.now().After(e.expiresAt) {
		delete(s.entries, visitorID)
		return &models.VisitorState{}, nil
	}
	return e.state.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, visitorID string, state *models.VisitorState) error {
	if visitorID == "" {
		return ErrInvalidVisitorID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[visitorID] = memoryEntry{state: state.Clone(), expiresAt: s.now().Add(s.ttl)}
	return nil
}

// Sweep drops expired entries. A ttl of zero or less never expires anything.
func (s *MemoryStore) Sweep() {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
