package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/gafferdeck/gaffer-server-go/internal/game"
	"github.com/gafferdeck/gaffer-server-go/internal/progress"
)

// PostgresStore persists snapshots and progress in Postgres via pgx.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS run_snapshots (
	manager_id TEXT PRIMARY KEY,
	data       BYTEA NOT NULL,
	checksum   TEXT NOT NULL,
	saved_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS manager_progress (
	manager_id TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// NewPostgresStore connects to the database and ensures the schema exists.
func NewPostgresStore(ctx context.Context, databaseURL string, logger *zap.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logger.Info("connected to database")
	return &PostgresStore{pool: pool, logger: logger}, nil
}

func (s *PostgresStore) SaveSnapshot(ctx context.Context, managerID string, snap *game.RunSnapshot) error {
	data, err := snap.Encode()
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO run_snapshots (manager_id, data, checksum, saved_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (manager_id)
		DO UPDATE SET data = EXCLUDED.data, checksum = EXCLUDED.checksum, saved_at = EXCLUDED.saved_at`,
		managerID, data, snap.Checksum(), snap.SavedAt)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) LoadSnapshot(ctx context.Context, managerID string) (*game.RunSnapshot, error) {
	var data []byte
	var checksum string
	err := s.pool.QueryRow(ctx,
		`SELECT data, checksum FROM run_snapshots WHERE manager_id = $1`,
		managerID).Scan(&data, &checksum)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	snap, err := game.DecodeSnapshot(data)
	if err != nil {
		return nil, err
	}
	if got := snap.Checksum(); got != checksum {
		return nil, fmt.Errorf("snapshot checksum mismatch for manager %s", managerID)
	}
	return snap, nil
}

func (s *PostgresStore) ClearSnapshot(ctx context.Context, managerID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM run_snapshots WHERE manager_id = $1`, managerID)
	if err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveProgress(ctx context.Context, p *progress.ManagerProgress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO manager_progress (manager_id, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (manager_id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		p.ManagerID, data)
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

func (s *PostgresStore) LoadProgress(ctx context.Context, managerID string) (*progress.ManagerProgress, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM manager_progress WHERE manager_id = $1`,
		managerID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	var p progress.ManagerProgress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal progress: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
