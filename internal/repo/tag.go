package repo

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/juicebox/backend/internal/domain"
)

// TagRepo defines the persistence operations for the global tag dictionary.
type TagRepo interface {
	// CreateTags makes sure a tag row exists for every name and returns the
	// tags in input order. Safe to repeat and to call concurrently with
	// overlapping names: every caller observes the same row per name.
	// Returns domain.ErrDataIntegrity if a name is still missing afterwards.
	CreateTags(ctx context.Context, names []string) ([]domain.Tag, error)

	// GetByName retrieves a tag by its exact name.
	// Returns domain.ErrNotFound if no tag has that name.
	GetByName(ctx context.Context, name string) (domain.Tag, error)

	// List returns every tag ordered by name.
	List(ctx context.Context) ([]domain.Tag, error)

	// PostsByName returns the active posts linked to the named tag, each with
	// its full tag list. Unknown tags yield an empty slice, not an error.
	PostsByName(ctx context.Context, name string) ([]domain.Post, error)
}

// pgTagRepo is the Postgres implementation of TagRepo.
type pgTagRepo struct {
	db db
}

// NewTagRepo constructs a TagRepo backed by the provided db connection.
func NewTagRepo(db db) TagRepo {
	return &pgTagRepo{db: db}
}

// CreateTags inserts all names in one statement, skipping names that already
// exist, then reads every requested name back. The read runs whether or not
// this caller's insert won, so a concurrent creator's row is picked up too.
func (r *pgTagRepo) CreateTags(ctx context.Context, names []string) ([]domain.Tag, error) {
	if len(names) == 0 {
		return []domain.Tag{}, nil
	}

	// Sorted so that concurrent batches take the unique index locks in the same order.
	unique := slices.Clone(names)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	ids := make([]uuid.UUID, len(unique))
	for i := range unique {
		id, err := newID()
		if err != nil {
			return nil, fmt.Errorf("repo.TagRepo.CreateTags: %w", err)
		}
		ids[i] = id
	}

	const insertQ = `
		INSERT INTO tags (id, name)
		SELECT * FROM unnest(@ids::uuid[], @names::text[])
		ON CONFLICT (name) DO NOTHING`

	if _, err := r.db.Exec(ctx, insertQ, pgx.NamedArgs{"ids": ids, "names": unique}); err != nil {
		return nil, fmt.Errorf("repo.TagRepo.CreateTags: insert: %w", translate(err))
	}

	const selectQ = `
		SELECT id, name
		FROM tags
		WHERE name = ANY(@names::text[])`

	rows, err := r.db.Query(ctx, selectQ, pgx.NamedArgs{"names": unique})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.CreateTags: select: %w", err)
	}
	defer rows.Close()

	byName := make(map[string]domain.Tag, len(unique))
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TagRepo.CreateTags: scan: %w", err)
		}
		byName[tag.Name] = tag
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TagRepo.CreateTags: rows: %w", err)
	}

	tags := make([]domain.Tag, len(names))
	for i, name := range names {
		tag, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("repo.TagRepo.CreateTags: tag %q missing after insert: %w", name, domain.ErrDataIntegrity)
		}
		tags[i] = tag
	}
	return tags, nil
}

func (r *pgTagRepo) GetByName(ctx context.Context, name string) (domain.Tag, error) {
	const q = `SELECT id, name FROM tags WHERE name = @name`

	tag, err := scanTag(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}))
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.GetByName: %w", translate(err))
	}
	return tag, nil
}

// List returns all tags ordered by name.
func (r *pgTagRepo) List(ctx context.Context) ([]domain.Tag, error) {
	const q = `SELECT id, name FROM tags ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: %w", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TagRepo.List: scan: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: rows: %w", err)
	}
	return tags, nil
}

// PostsByName filters on the tag through EXISTS so that the aggregated tag
// list of each post still contains all of its tags, not just the matched one.
func (r *pgTagRepo) PostsByName(ctx context.Context, name string) ([]domain.Post, error) {
	const q = postSelect + `
		WHERE p.active
		  AND EXISTS (
		      SELECT 1
		      FROM post_tags pt
		      JOIN tags t ON t.id = pt.tag_id
		      WHERE pt.post_id = p.id
		        AND t.name = @name)
		ORDER BY p.id`

	posts, err := queryPosts(ctx, r.db, q, pgx.NamedArgs{"name": name})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.PostsByName: %w", err)
	}
	return posts, nil
}

// scanTag maps a single database row into a domain.Tag.
func scanTag(s scanner) (domain.Tag, error) {
	var (
		t  domain.Tag
		id pgtype.UUID
	)
	if err := s.Scan(&id, &t.Name); err != nil {
		return domain.Tag{}, err
	}
	t.ID = fromPgUUID(id)
	return t, nil
}
