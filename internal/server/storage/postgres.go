package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/lovelab-app/lovelab/internal/common"
	"github.com/lovelab-app/lovelab/internal/dbx"
	"github.com/lovelab-app/lovelab/internal/models"
	"github.com/lovelab-app/lovelab/internal/server/storage/migrations"
)

const totalGeneratedCounter = "total_generated"

// PostgresStore is a durable Store over PostgreSQL. Expiry is enforced at
// read time via the expires_at column instead of a background reaper.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens the database, verifies connectivity and applies
// the embedded schema migrations.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// CreateLink inserts the row and bumps the counter in one transaction, the
// transactional equivalent of the pipelined SET+INCR on redis.
func (s *PostgresStore) CreateLink(ctx context.Context, id string, payload []byte, ttl time.Duration) error {
	var expiresAt sql.NullTime
	if ttl > 0 {
		expiresAt = sql.NullTime{Time: time.Now().Add(ttl), Valid: true}
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO links (id, payload, expires_at) VALUES ($1, $2, $3)`,
			id, payload, expiresAt); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO counters (name, value) VALUES ($1, 1)
			 ON CONFLICT (name) DO UPDATE SET value = counters.value + 1`,
			totalGeneratedCounter)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) GetLink(ctx context.Context, id string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM links
		 WHERE id = $1 AND (expires_at IS NULL OR expires_at > now())`,
		id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return payload, nil
}

func (s *PostgresStore) TotalGenerated(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM counters WHERE name = $1`, totalGeneratedCounter).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return total, nil
}

func (s *PostgresStore) AddSuggestion(ctx context.Context, sug models.Suggestion) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO suggestions (id, name, suggestion, created_at) VALUES ($1, $2, $3, $4)`,
		sug.ID, sug.Name, sug.Suggestion, sug.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) ListSuggestions(ctx context.Context) ([]models.Suggestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, suggestion, created_at FROM suggestions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []models.Suggestion
	for rows.Next() {
		var sug models.Suggestion
		if err := rows.Scan(&sug.ID, &sug.Name, &sug.Suggestion, &sug.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sug)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
