package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lovelab-app/lovelab/internal/common"
	"github.com/lovelab-app/lovelab/internal/models"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time // zero = never
}

// MemoryStore is an in-process Store for tests and local development.
type MemoryStore struct {
	mu          sync.Mutex
	links       map[string]memoryEntry
	total       int64
	suggestions []models.Suggestion
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{links: make(map[string]memoryEntry)}
}

func (s *MemoryStore) CreateLink(_ context.Context, id string, payload []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{payload: append([]byte(nil), payload...)}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.links[id] = entry
	s.total++
	return nil
}

func (s *MemoryStore) GetLink(_ context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.links[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(s.links, id)
		return nil, common.ErrNotFound
	}
	return append([]byte(nil), entry.payload...), nil
}

func (s *MemoryStore) TotalGenerated(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total, nil
}

func (s *MemoryStore) AddSuggestion(_ context.Context, sug models.Suggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Newest first, matching the list semantics of the other backends.
	s.suggestions = append([]models.Suggestion{sug}, s.suggestions...)
	return nil
}

func (s *MemoryStore) ListSuggestions(_ context.Context) ([]models.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Suggestion, len(s.suggestions))
	copy(out, s.suggestions)
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

// FailingStore is a Store stub whose every operation fails with a
// store-unavailable error. Tests use it to simulate a backend outage.
type FailingStore struct{}

func (FailingStore) CreateLink(context.Context, string, []byte, time.Duration) error {
	return fmt.Errorf("%w: simulated outage", common.ErrStoreUnavailable)
}

func (FailingStore) GetLink(context.Context, string) ([]byte, error) {
	return nil, fmt.Errorf("%w: simulated outage", common.ErrStoreUnavailable)
}

func (FailingStore) TotalGenerated(context.Context) (int64, error) {
	return 0, fmt.Errorf("%w: simulated outage", common.ErrStoreUnavailable)
}

func (FailingStore) AddSuggestion(context.Context, models.Suggestion) error {
	return fmt.Errorf("%w: simulated outage", common.ErrStoreUnavailable)
}

func (FailingStore) ListSuggestions(context.Context) ([]models.Suggestion, error) {
	return nil, fmt.Errorf("%w: simulated outage", common.ErrStoreUnavailable)
}

func (FailingStore) Close() error { return nil }
