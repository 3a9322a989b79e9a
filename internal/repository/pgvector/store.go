// Package pgvector stores profile field embeddings in PostgreSQL and runs
// the weighted similarity match via the pgvector extension.
package pgvector

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// PostgreSQL driver.
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Store wraps the PostgreSQL connection pool.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// New opens a connection pool to PostgreSQL. The connection is not
// verified here; call WaitForReady before serving traffic.
func New(dsn string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// WaitForReady polls the database until it answers or the context expires.
func (s *Store) WaitForReady(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := s.Ping(ctx); err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("postgres not ready: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}
