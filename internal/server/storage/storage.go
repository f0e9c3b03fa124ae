// Package storage defines the key-value persistence contract behind the
// link resolution service and its backends: redis, badger (embedded),
// postgres (durable) and an in-memory implementation for tests and local
// development.
package storage

import (
	"context"
	"time"

	"github.com/lovelab-app/lovelab/internal/models"
)

// Store is the persistence backend for short links, the global save counter
// and the suggestion inbox. Link records are immutable after creation.
//
// CreateLink persists the payload under id and bumps the counter in the
// same store exchange (pipelined or transactional, depending on backend).
// A ttl of zero means the link never expires. GetLink returns
// common.ErrNotFound for unknown or expired identifiers; any other failure
// wraps common.ErrStoreUnavailable.
type Store interface {
	CreateLink(ctx context.Context, id string, payload []byte, ttl time.Duration) error
	GetLink(ctx context.Context, id string) ([]byte, error)
	TotalGenerated(ctx context.Context) (int64, error)

	AddSuggestion(ctx context.Context, s models.Suggestion) error
	ListSuggestions(ctx context.Context) ([]models.Suggestion, error)

	Close() error
}

func linkKey(namespace, id string) string {
	return namespace + ":" + id
}

func counterKey(namespace string) string {
	return namespace + ":stats:total_generated"
}

func suggestionsKey(namespace string) string {
	return namespace + ":suggestions"
}
