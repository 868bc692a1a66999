package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/juicebox/backend/internal/domain"
)

// PostRepo defines the persistence operations for Posts.
// Every post returned carries its author and its tag names ordered by name.
type PostRepo interface {
	// Create inserts a new post row without tags and returns the persisted record.
	// Returns domain.ErrForeignKeyViolation if AuthorID references no user.
	Create(ctx context.Context, post domain.NewPost) (domain.Post, error)

	// GetByID retrieves a single post by primary key, active or not.
	// Returns domain.ErrNotFound if no post with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error)

	// List returns all posts ordered by id.
	List(ctx context.Context) ([]domain.Post, error)

	// ListByAuthor returns all posts written by authorID ordered by id.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Post, error)

	// Update applies the column fields of patch that are non-nil. Tags in the
	// patch are ignored here; see PostTagRepo.Replace.
	// Returns domain.ErrNotFound if no post with that ID exists.
	Update(ctx context.Context, id uuid.UUID, patch domain.PostPatch) (domain.Post, error)
}

// postSelect reads posts joined with their author and aggregated tag names.
// Must match the scan order in scanPost.
const postSelect = `
	SELECT p.id, p.author_id, p.title, p.content, p.active,
	       u.username, u.name, u.location,
	       COALESCE(
	           (SELECT array_agg(t.name ORDER BY t.name)
	            FROM post_tags pt
	            JOIN tags t ON t.id = pt.tag_id
	            WHERE pt.post_id = p.id),
	           '{}') AS tags
	FROM posts p
	JOIN users u ON u.id = p.author_id`

// pgPostRepo is the Postgres implementation of PostRepo.
type pgPostRepo struct {
	db db
}

// NewPostRepo constructs a PostRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostRepo(db db) PostRepo {
	return &pgPostRepo{db: db}
}

func (r *pgPostRepo) Create(ctx context.Context, post domain.NewPost) (domain.Post, error) {
	id, err := newID()
	if err != nil {
		return domain.Post{}, fmt.Errorf("repo.PostRepo.Create: %w", err)
	}

	const q = `
		INSERT INTO posts (id, author_id, title, content)
		VALUES (@id, @author_id, @title, @content)`

	args := pgx.NamedArgs{
		"id":        id,
		"author_id": post.AuthorID,
		"title":     post.Title,
		"content":   post.Content,
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return domain.Post{}, fmt.Errorf("repo.PostRepo.Create: %w", translate(err))
	}

	result, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.Post{}, fmt.Errorf("repo.PostRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgPostRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	const q = postSelect + ` WHERE p.id = @id`

	result, err := scanPost(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Post{}, fmt.Errorf("repo.PostRepo.GetByID: %w", translate(err))
	}
	return result, nil
}

func (r *pgPostRepo) List(ctx context.Context) ([]domain.Post, error) {
	const q = postSelect + ` ORDER BY p.id`

	posts, err := queryPosts(ctx, r.db, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.PostRepo.List: %w", err)
	}
	return posts, nil
}

func (r *pgPostRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Post, error) {
	const q = postSelect + ` WHERE p.author_id = @author_id ORDER BY p.id`

	posts, err := queryPosts(ctx, r.db, q, pgx.NamedArgs{"author_id": authorID})
	if err != nil {
		return nil, fmt.Errorf("repo.PostRepo.ListByAuthor: %w", err)
	}
	return posts, nil
}

// Update writes only the columns present in patch, then re-reads the post so
// the result carries its author and tags. A patch without columns is a read.
func (r *pgPostRepo) Update(ctx context.Context, id uuid.UUID, patch domain.PostPatch) (domain.Post, error) {
	b := newUpdateBuilder("posts")
	setIfPresent(b, "title", patch.Title)
	setIfPresent(b, "content", patch.Content)
	setIfPresent(b, "active", patch.Active)
	if b.empty() {
		return r.GetByID(ctx, id)
	}
	q, args := b.build(id, "id")

	var updated pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&updated); err != nil {
		return domain.Post{}, fmt.Errorf("repo.PostRepo.Update: %w", translate(err))
	}

	result, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.Post{}, fmt.Errorf("repo.PostRepo.Update: %w", err)
	}
	return result, nil
}

// queryPosts runs a postSelect-based query and scans every row.
// Always returns a non-nil slice on success.
func queryPosts(ctx context.Context, db db, q string, args pgx.NamedArgs) ([]domain.Post, error) {
	rows, err := db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return posts, nil
}

// scanPost maps a single postSelect row into a domain.Post.
func scanPost(s scanner) (domain.Post, error) {
	var (
		p        domain.Post
		id       pgtype.UUID
		authorID pgtype.UUID
	)
	err := s.Scan(
		&id, &authorID, &p.Title, &p.Content, &p.Active,
		&p.Author.Username, &p.Author.Name, &p.Author.Location,
		&p.Tags,
	)
	if err != nil {
		return domain.Post{}, err
	}
	p.ID = fromPgUUID(id)
	p.AuthorID = fromPgUUID(authorID)
	p.Author.ID = p.AuthorID
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}
