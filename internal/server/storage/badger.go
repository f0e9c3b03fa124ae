package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/lovelab-app/lovelab/internal/common"
	"github.com/lovelab-app/lovelab/internal/logging"
	"github.com/lovelab-app/lovelab/internal/models"
)

// counterRetries bounds optimistic-concurrency retries on the counter key.
const counterRetries = 5

// BadgerStore is an embedded Store for single-node deployments with no
// external redis or postgres. Link entries carry badger's native TTL;
// suggestions live under a shared key prefix.
type BadgerStore struct {
	db        *badger.DB
	namespace string
	logger    logging.Logger
}

func NewBadgerStore(path, namespace string, logger logging.Logger) (*BadgerStore, error) {
	logger = logger.With("component", "badger_store")
	opts := badger.DefaultOptions(path)
	opts.Logger = &badgerLogAdapter{logger}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db at %s: %w", path, err)
	}
	return &BadgerStore{db: db, namespace: namespace, logger: logger}, nil
}

// CreateLink writes the payload and bumps the counter in one update
// transaction, retrying on write conflicts with concurrent saves.
func (s *BadgerStore) CreateLink(ctx context.Context, id string, payload []byte, ttl time.Duration) error {
	var err error
	for attempt := 0; attempt < counterRetries; attempt++ {
		err = s.db.Update(func(txn *badger.Txn) error {
			entry := badger.NewEntry([]byte(linkKey(s.namespace, id)), payload)
			if ttl > 0 {
				entry = entry.WithTTL(ttl)
			}
			if err := txn.SetEntry(entry); err != nil {
				return err
			}

			total, err := readCounter(txn, counterKey(s.namespace))
			if err != nil {
				return err
			}
			return txn.Set([]byte(counterKey(s.namespace)), []byte(strconv.FormatInt(total+1, 10)))
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *BadgerStore) GetLink(_ context.Context, id string) ([]byte, error) {
	var payload []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(linkKey(s.namespace, id)))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return payload, nil
}

func (s *BadgerStore) TotalGenerated(_ context.Context) (int64, error) {
	var total int64
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		total, err = readCounter(txn, counterKey(s.namespace))
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return total, nil
}

func (s *BadgerStore) AddSuggestion(_ context.Context, sug models.Suggestion) error {
	raw, err := json.Marshal(sug)
	if err != nil {
		return err
	}
	key := []byte(suggestionsKey(s.namespace) + ":" + sug.ID)
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, raw)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *BadgerStore) ListSuggestions(ctx context.Context) ([]models.Suggestion, error) {
	var out []models.Suggestion
	prefix := []byte(suggestionsKey(s.namespace) + ":")

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var sug models.Suggestion
				if err := json.Unmarshal(val, &sug); err != nil {
					s.logger.Warn(ctx, "skipping unreadable suggestion record",
						"key", string(it.Item().Key()), "error", err.Error())
					return nil
				}
				out = append(out, sug)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	// Newest first, like the redis list.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func readCounter(txn *badger.Txn, key string) (int64, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var total int64
	err = item.Value(func(val []byte) error {
		total, err = strconv.ParseInt(string(val), 10, 64)
		return err
	})
	return total, err
}

// badgerLogAdapter routes badger's internal logging through the project
// logger.
type badgerLogAdapter struct {
	logger logging.Logger
}

func (a *badgerLogAdapter) Errorf(f string, v ...any) {
	a.logger.Error(context.Background(), fmt.Sprintf(f, v...))
}

func (a *badgerLogAdapter) Warningf(f string, v ...any) {
	a.logger.Warn(context.Background(), fmt.Sprintf(f, v...))
}

func (a *badgerLogAdapter) Infof(f string, v ...any) {
	a.logger.Debug(context.Background(), fmt.Sprintf(f, v...))
}

func (a *badgerLogAdapter) Debugf(f string, v ...any) {
	a.logger.Debug(context.Background(), fmt.Sprintf(f, v...))
}
