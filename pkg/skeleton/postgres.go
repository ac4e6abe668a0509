package skeleton

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGSource reads a structure description document from a PostgreSQL row
type PGSource struct {
	pool *pgxpool.Pool
	name string
}

// NewPGSource creates a PostgreSQL-backed source for the named document
func NewPGSource(ctx context.Context, databaseURL, name string) (*PGSource, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pooling configuration
	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &PGSource{pool: pool, name: name}

	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return s, nil
}

func (s *PGSource) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS res_skeletons (
			name       TEXT PRIMARY KEY,
			document   JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

// Fetch reads the document column, mapping a missing row to ErrNotFound
func (s *PGSource) Fetch(ctx context.Context) ([]byte, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT document FROM res_skeletons WHERE name = $1`, s.name,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, s.Location())
	}
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.Location(), err)
	}
	return raw, nil
}

// Store upserts the document under the source's name
func (s *PGSource) Store(ctx context.Context, document []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO res_skeletons (name, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET document = EXCLUDED.document, updated_at = now()
	`, s.name, document)
	return err
}

// Location identifies the row; documents stored here are JSON
func (s *PGSource) Location() string {
	return "pg://res_skeletons/" + s.name
}

// Ping checks database connectivity
func (s *PGSource) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool
func (s *PGSource) Close() error {
	s.pool.Close()
	return nil
}
