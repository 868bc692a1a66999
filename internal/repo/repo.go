// Package repo contains all database access logic for the Juicebox API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/juicebox/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
//
// Begin on a pgx.Tx opens a savepoint, so multi-statement writes can always
// wrap themselves in pgx.BeginFunc regardless of what they were handed.
type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repos groups every repository bound to the same connection or transaction.
type Repos struct {
	Users    UserRepo
	Posts    PostRepo
	Tags     TagRepo
	PostTags PostTagRepo
}

// NewRepos binds all repositories to db.
func NewRepos(db db) Repos {
	return Repos{
		Users:    NewUserRepo(db),
		Posts:    NewPostRepo(db),
		Tags:     NewTagRepo(db),
		PostTags: NewPostTagRepo(db),
	}
}

// Store owns the process-wide connection handle and hands out repositories,
// either bound directly to it or to a transaction scoped to one call.
type Store struct {
	Repos
	db db
}

// NewStore constructs a Store. In production pass *pgxpool.Pool; in tests pass
// a pgx.Tx so that InTx becomes a savepoint inside the test transaction.
func NewStore(db db) *Store {
	return &Store{Repos: NewRepos(db), db: db}
}

// InTx runs fn with repositories bound to a new transaction. The transaction
// commits only if fn returns nil; any error or panic rolls it back.
func (s *Store) InTx(ctx context.Context, fn func(Repos) error) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		return fn(NewRepos(tx))
	})
}

// Postgres SQLSTATE codes the repositories translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps constraint violations to domain sentinels, keeping the
// original *pgconn.PgError in the chain so callers can still inspect it.
// pgx.ErrNoRows becomes domain.ErrNotFound. Any other error is returned as is.
func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %w", domain.ErrUniqueViolation, pgErr)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %w", domain.ErrForeignKeyViolation, pgErr)
	}
	return err
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// newID returns a time-ordered UUIDv7 so that ORDER BY id follows creation order.
func newID() (uuid.UUID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate id: %w", err)
	}
	return id, nil
}

func fromPgUUID(id pgtype.UUID) uuid.UUID {
	return uuid.UUID(id.Bytes)
}
