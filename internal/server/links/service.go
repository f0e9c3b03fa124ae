// Package links implements the link resolution service: exchanging a codec
// token or plain document for a short opaque identifier and back, plus the
// global usage counter.
package links

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lovelab-app/lovelab/internal/codec"
	"github.com/lovelab-app/lovelab/internal/common"
	"github.com/lovelab-app/lovelab/internal/logging"
	"github.com/lovelab-app/lovelab/internal/server/storage"
)

// Service resolves short identifiers against a storage.Store. A nil store
// means no backend is configured; every save/get then reports
// common.ErrStoreUnavailable and the caller applies its degraded-mode
// policy (embedding the full token in the URL).
type Service struct {
	store         storage.Store
	ttl           time.Duration
	fallbackCount int64
	logger        logging.Logger
}

func NewService(store storage.Store, ttl time.Duration, fallbackCount int64, logger logging.Logger) *Service {
	return &Service{
		store:         store,
		ttl:           ttl,
		fallbackCount: fallbackCount,
		logger:        logger.With("component", "links"),
	}
}

// Save validates and persists a payload under a fresh 8-character
// identifier. The payload must be a JSON object (a plain document) or a
// JSON string carrying a recognized token tag; the service never encrypts
// anything itself, so an untagged string is rejected rather than stored:
// the backend must never see plaintext that was meant to be PIN-protected.
//
// Identifiers are not checked for existence before the write: at the
// expected scale the 62^8 space makes collisions negligible, and skipping
// the read keeps save to a single store exchange.
func (s *Service) Save(ctx context.Context, payload json.RawMessage) (string, error) {
	if err := validatePayload(payload); err != nil {
		return "", err
	}
	if s.store == nil {
		return "", common.ErrStoreUnavailable
	}

	id := common.NewShortID(common.ShortIDLength)
	if err := s.store.CreateLink(ctx, id, payload, s.ttl); err != nil {
		return "", fmt.Errorf("create link: %w", err)
	}
	s.logger.Info(ctx, "link saved", "id", id, "bytes", len(payload))
	return id, nil
}

// Get returns the payload stored under id: a document to render directly,
// or a token string the caller routes through the codec (prompting for a
// PIN when it is tagged enc).
func (s *Service) Get(ctx context.Context, id string) (json.RawMessage, error) {
	if s.store == nil {
		return nil, common.ErrStoreUnavailable
	}
	payload, err := s.store.GetLink(ctx, id)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Stats returns the total number of links ever generated. The value is
// cosmetic; when the backend is missing or failing the configured fallback
// constant is returned instead of an error.
func (s *Service) Stats(ctx context.Context) int64 {
	if s.store == nil {
		return s.fallbackCount
	}
	total, err := s.store.TotalGenerated(ctx)
	if err != nil {
		s.logger.Warn(ctx, "stats read failed, serving fallback count", "error", err.Error())
		return s.fallbackCount
	}
	return total
}

func validatePayload(payload json.RawMessage) error {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return fmt.Errorf("%w: not valid JSON", common.ErrInvalidPayload)
	}

	switch trimmed[0] {
	case '{':
		return nil
	case '"':
		var token string
		if err := json.Unmarshal(trimmed, &token); err != nil {
			return fmt.Errorf("%w: %v", common.ErrInvalidPayload, err)
		}
		if _, _, ok := codec.ParseTag(token); !ok {
			return fmt.Errorf("%w: string payload is not a tagged token", common.ErrInvalidPayload)
		}
		return nil
	default:
		return fmt.Errorf("%w: expected document object or token string", common.ErrInvalidPayload)
	}
}
