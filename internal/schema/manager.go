// Package schema creates and drops the Juicebox tables by driving the goose
// migrations embedded in the migrations package.
package schema

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/juicebox/backend/migrations"
)

// Tables lists every table in creation order. DropAll removes them in reverse.
var Tables = []string{"users", "posts", "tags", "post_tags"}

// MigrationStatus describes one migration and whether it has been applied.
type MigrationStatus struct {
	Version   int64
	Path      string
	Applied   bool
	AppliedAt time.Time
}

// Manager owns the schema lifecycle. It is safe to reuse for several calls.
type Manager struct {
	provider *goose.Provider
}

// NewManager builds a Manager on top of an open *sql.DB.
func NewManager(db *sql.DB) (*Manager, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("schema.NewManager: %w", err)
	}
	return &Manager{provider: provider}, nil
}

// OpenDB opens a database/sql handle on the pgx driver. A non-empty
// searchPath pins every connection to that Postgres schema.
func OpenDB(dsn, searchPath string) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("schema.OpenDB: parse dsn: %w", err)
	}
	if searchPath != "" {
		cfg.RuntimeParams["search_path"] = searchPath
	}
	return stdlib.OpenDB(*cfg), nil
}

// CreateAll applies every pending migration: users, posts, tags, then
// post_tags. Returns the number of migrations applied.
func (m *Manager) CreateAll(ctx context.Context) (int, error) {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("schema.Manager.CreateAll: %w", err)
	}
	logResults(ctx, results)
	return len(results), nil
}

// DropAll rolls back every applied migration, dropping post_tags, tags,
// posts and users in that order. Returns the number of migrations rolled back.
func (m *Manager) DropAll(ctx context.Context) (int, error) {
	results, err := m.provider.DownTo(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("schema.Manager.DropAll: %w", err)
	}
	logResults(ctx, results)
	return len(results), nil
}

// Reset drops and recreates every table. All data is lost.
func (m *Manager) Reset(ctx context.Context) error {
	if _, err := m.DropAll(ctx); err != nil {
		return fmt.Errorf("schema.Manager.Reset: %w", err)
	}
	if _, err := m.CreateAll(ctx); err != nil {
		return fmt.Errorf("schema.Manager.Reset: %w", err)
	}
	return nil
}

// Status reports every known migration in version order.
func (m *Manager) Status(ctx context.Context) ([]MigrationStatus, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("schema.Manager.Status: %w", err)
	}
	out := make([]MigrationStatus, len(statuses))
	for i, s := range statuses {
		out[i] = MigrationStatus{
			Version:   s.Source.Version,
			Path:      s.Source.Path,
			Applied:   s.State == goose.StateApplied,
			AppliedAt: s.AppliedAt,
		}
	}
	return out, nil
}

func logResults(ctx context.Context, results []*goose.MigrationResult) {
	for _, r := range results {
		slog.InfoContext(ctx, "migration",
			"version", r.Source.Version,
			"direction", r.Direction,
			"duration", r.Duration,
		)
	}
}
