package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/juicebox/backend/internal/domain"
)

// PostTagRepo manages the post_tags join table.
type PostTagRepo interface {
	// AddToPost links every tag to the post. Already-linked pairs are left
	// as they are. Returns domain.ErrForeignKeyViolation if the post or a tag
	// does not exist.
	AddToPost(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error

	// Replace makes the post's linked tag set equal to desired: missing links
	// are added, extra links removed, common links untouched. Both halves run
	// in one transaction. An empty desired set detaches every tag.
	// Returns domain.ErrNotFound if the post does not exist.
	Replace(ctx context.Context, postID uuid.UUID, desired []uuid.UUID) error

	// TagIDsByPost returns the ids of every tag linked to the post.
	TagIDsByPost(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error)

	// ListByPost returns every tag linked to the post, ordered by name.
	ListByPost(ctx context.Context, postID uuid.UUID) ([]domain.Tag, error)
}

// pgPostTagRepo is the Postgres implementation of PostTagRepo.
type pgPostTagRepo struct {
	db db
}

// NewPostTagRepo constructs a PostTagRepo backed by the provided db connection.
func NewPostTagRepo(db db) PostTagRepo {
	return &pgPostTagRepo{db: db}
}

// AddToPost inserts all pairs in one statement; ON CONFLICT DO NOTHING makes
// re-linking a no-op.
func (r *pgPostTagRepo) AddToPost(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}

	const q = `
		INSERT INTO post_tags (post_id, tag_id)
		SELECT @post_id, unnest(@tag_ids::uuid[])
		ON CONFLICT (post_id, tag_id) DO NOTHING`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"post_id": postID, "tag_ids": tagIDs})
	if err != nil {
		return fmt.Errorf("repo.PostTagRepo.AddToPost: %w", translate(err))
	}
	return nil
}

// Replace locks the post row so concurrent replacements of the same post
// serialise; the last one to commit leaves the set it computed.
func (r *pgPostTagRepo) Replace(ctx context.Context, postID uuid.UUID, desired []uuid.UUID) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		const lockQ = `SELECT id FROM posts WHERE id = @post_id FOR UPDATE`

		var locked pgtype.UUID
		if err := tx.QueryRow(ctx, lockQ, pgx.NamedArgs{"post_id": postID}).Scan(&locked); err != nil {
			return translate(err)
		}

		txRepo := &pgPostTagRepo{db: tx}
		current, err := txRepo.TagIDsByPost(ctx, postID)
		if err != nil {
			return err
		}

		toAdd, toRemove := diffIDs(current, desired)
		if err := txRepo.AddToPost(ctx, postID, toAdd); err != nil {
			return err
		}
		return txRepo.removeFromPost(ctx, postID, toRemove)
	})
	if err != nil {
		return fmt.Errorf("repo.PostTagRepo.Replace: %w", err)
	}
	return nil
}

func (r *pgPostTagRepo) removeFromPost(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}

	const q = `
		DELETE FROM post_tags
		WHERE post_id = @post_id
		  AND tag_id = ANY(@tag_ids::uuid[])`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"post_id": postID, "tag_ids": tagIDs}); err != nil {
		return fmt.Errorf("repo.PostTagRepo.removeFromPost: %w", err)
	}
	return nil
}

func (r *pgPostTagRepo) TagIDsByPost(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	const q = `SELECT tag_id FROM post_tags WHERE post_id = @post_id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"post_id": postID})
	if err != nil {
		return nil, fmt.Errorf("repo.PostTagRepo.TagIDsByPost: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("repo.PostTagRepo.TagIDsByPost: scan: %w", err)
		}
		ids = append(ids, fromPgUUID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PostTagRepo.TagIDsByPost: rows: %w", err)
	}
	return ids, nil
}

func (r *pgPostTagRepo) ListByPost(ctx context.Context, postID uuid.UUID) ([]domain.Tag, error) {
	const q = `
		SELECT t.id, t.name
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = @post_id
		ORDER BY t.name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"post_id": postID})
	if err != nil {
		return nil, fmt.Errorf("repo.PostTagRepo.ListByPost: %w", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PostTagRepo.ListByPost: scan: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PostTagRepo.ListByPost: rows: %w", err)
	}
	return tags, nil
}

// diffIDs returns desired − current and current − desired. Duplicates in
// either input are collapsed; output order follows the input order.
func diffIDs(current, desired []uuid.UUID) (toAdd, toRemove []uuid.UUID) {
	have := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		have[id] = struct{}{}
	}
	want := make(map[uuid.UUID]struct{}, len(desired))
	for _, id := range desired {
		if _, dup := want[id]; dup {
			continue
		}
		want[id] = struct{}{}
		if _, ok := have[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if _, ok := want[id]; ok {
			continue
		}
		want[id] = struct{}{}
		toRemove = append(toRemove, id)
	}
	return toAdd, toRemove
}
