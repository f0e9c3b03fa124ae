// Package suggestions implements the visitor feedback inbox.
package suggestions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lovelab-app/lovelab/internal/common"
	"github.com/lovelab-app/lovelab/internal/logging"
	"github.com/lovelab-app/lovelab/internal/models"
	"github.com/lovelab-app/lovelab/internal/server/storage"
)

const defaultName = "Anonymous"

type Service struct {
	store  storage.Store
	logger logging.Logger
}

func NewService(store storage.Store, logger logging.Logger) *Service {
	return &Service{store: store, logger: logger.With("component", "suggestions")}
}

// Add records a suggestion. The text is required; the name defaults to
// "Anonymous".
func (s *Service) Add(ctx context.Context, name, text string) (models.Suggestion, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Suggestion{}, fmt.Errorf("%w: suggestion text is required", common.ErrInvalidPayload)
	}
	if name = strings.TrimSpace(name); name == "" {
		name = defaultName
	}
	if s.store == nil {
		return models.Suggestion{}, common.ErrStoreUnavailable
	}

	sug := models.Suggestion{
		ID:         uuid.NewString(),
		Name:       name,
		Suggestion: text,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.AddSuggestion(ctx, sug); err != nil {
		return models.Suggestion{}, fmt.Errorf("add suggestion: %w", err)
	}
	s.logger.Info(ctx, "suggestion recorded", "id", sug.ID)
	return sug, nil
}

// List returns all recorded suggestions, newest first.
func (s *Service) List(ctx context.Context) ([]models.Suggestion, error) {
	if s.store == nil {
		return nil, common.ErrStoreUnavailable
	}
	return s.store.ListSuggestions(ctx)
}
