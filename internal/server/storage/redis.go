package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lovelab-app/lovelab/internal/common"
	"github.com/lovelab-app/lovelab/internal/logging"
	"github.com/lovelab-app/lovelab/internal/models"
)

// RedisStore keeps links under "<namespace>:<id>" with a native TTL, the
// counter under "<namespace>:stats:total_generated" and suggestions in a
// list.
type RedisStore struct {
	client    *redis.Client
	namespace string
	logger    logging.Logger
}

// NewRedisStore connects using a redis URL (redis://[user:pass@]host:port/db).
// The connection is lazy; per-operation failures surface as
// common.ErrStoreUnavailable.
func NewRedisStore(rawURL, namespace string, logger logging.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisStore{
		client:    redis.NewClient(opts),
		namespace: namespace,
		logger:    logger.With("component", "redis_store"),
	}, nil
}

// CreateLink pipelines SET and INCR into a single exchange. The two
// commands are not transactional: a counter that lags behind the links is
// an accepted inconsistency, logged but not surfaced.
func (s *RedisStore) CreateLink(ctx context.Context, id string, payload []byte, ttl time.Duration) error {
	pipe := s.client.Pipeline()
	set := pipe.Set(ctx, linkKey(s.namespace, id), payload, ttl)
	incr := pipe.Incr(ctx, counterKey(s.namespace))
	_, _ = pipe.Exec(ctx)

	if err := set.Err(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	if err := incr.Err(); err != nil {
		s.logger.Warn(ctx, "counter increment failed after link write", "id", id, "error", err.Error())
	}
	return nil
}

func (s *RedisStore) GetLink(ctx context.Context, id string) ([]byte, error) {
	val, err := s.client.Get(ctx, linkKey(s.namespace, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return val, nil
}

func (s *RedisStore) TotalGenerated(ctx context.Context) (int64, error) {
	n, err := s.client.Get(ctx, counterKey(s.namespace)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return n, nil
}

func (s *RedisStore) AddSuggestion(ctx context.Context, sug models.Suggestion) error {
	raw, err := json.Marshal(sug)
	if err != nil {
		return err
	}
	if err := s.client.LPush(ctx, suggestionsKey(s.namespace), raw).Err(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) ListSuggestions(ctx context.Context) ([]models.Suggestion, error) {
	items, err := s.client.LRange(ctx, suggestionsKey(s.namespace), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	out := make([]models.Suggestion, 0, len(items))
	for _, item := range items {
		var sug models.Suggestion
		if err := json.Unmarshal([]byte(item), &sug); err != nil {
			s.logger.Warn(ctx, "skipping unreadable suggestion record", "error", err.Error())
			continue
		}
		out = append(out, sug)
	}
	return out, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
