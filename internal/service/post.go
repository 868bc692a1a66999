package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/juicebox/backend/internal/domain"
	"github.com/pkordes/juicebox/backend/internal/repo"
)

// PostService implements business logic for Post operations, including the
// tag set carried by each post. Writes that touch more than one table run in
// a single transaction obtained from tx.
type PostService struct {
	tx    Transactor
	posts repo.PostRepo
}

// NewPostService constructs a PostService. posts serves reads outside a
// transaction; tx serves every write.
func NewPostService(tx Transactor, posts repo.PostRepo) *PostService {
	return &PostService{tx: tx, posts: posts}
}

// Create validates and persists a new post together with its tags.
// Either the post and all of its tag links are committed, or nothing is.
// Returns domain.ErrValidation for invalid input and
// domain.ErrForeignKeyViolation if the author does not exist.
func (s *PostService) Create(ctx context.Context, in domain.NewPost) (domain.Post, error) {
	if err := validateNewPost(in); err != nil {
		return domain.Post{}, err
	}
	names, err := normalizeTagNames(in.Tags)
	if err != nil {
		return domain.Post{}, err
	}
	in.Tags = names

	var result domain.Post
	err = s.tx.InTx(ctx, func(rs repo.Repos) error {
		post, err := rs.Posts.Create(ctx, in)
		if err != nil {
			return err
		}
		if len(names) > 0 {
			tags, err := rs.Tags.CreateTags(ctx, names)
			if err != nil {
				return err
			}
			if err := rs.PostTags.AddToPost(ctx, post.ID, domain.TagIDs(tags)); err != nil {
				return err
			}
			if post, err = rs.Posts.GetByID(ctx, post.ID); err != nil {
				return err
			}
		}
		result = post
		return nil
	})
	if err != nil {
		return domain.Post{}, fmt.Errorf("service.PostService.Create: %w", err)
	}

	slog.DebugContext(ctx, "post created", "post_id", result.ID, "tags", len(result.Tags))
	return result, nil
}

// Update applies patch to an existing post. Column fields that are nil are
// left untouched. A non-nil patch.Tags replaces the post's tag set with
// exactly those names; an empty non-nil slice removes every tag.
// Returns domain.ErrNotFound if the post does not exist.
func (s *PostService) Update(ctx context.Context, id uuid.UUID, patch domain.PostPatch) (domain.Post, error) {
	if err := validatePostPatch(patch); err != nil {
		return domain.Post{}, err
	}
	var names []string
	if patch.Tags != nil {
		var err error
		if names, err = normalizeTagNames(patch.Tags); err != nil {
			return domain.Post{}, err
		}
	}

	var result domain.Post
	err := s.tx.InTx(ctx, func(rs repo.Repos) error {
		post, err := rs.Posts.Update(ctx, id, patch)
		if err != nil {
			return err
		}
		if patch.Tags != nil {
			tags, err := rs.Tags.CreateTags(ctx, names)
			if err != nil {
				return err
			}
			if err := rs.PostTags.Replace(ctx, id, domain.TagIDs(tags)); err != nil {
				return err
			}
			if post, err = rs.Posts.GetByID(ctx, id); err != nil {
				return err
			}
		}
		result = post
		return nil
	})
	if err != nil {
		return domain.Post{}, fmt.Errorf("service.PostService.Update: %w", err)
	}

	slog.DebugContext(ctx, "post updated", "post_id", id, "tags_replaced", patch.Tags != nil)
	return result, nil
}

// Deactivate soft-deletes a post. Its tag links are kept; inactive posts are
// simply excluded from tag-scoped listings.
func (s *PostService) Deactivate(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	inactive := false
	result, err := s.Update(ctx, id, domain.PostPatch{Active: &inactive})
	if err != nil {
		return domain.Post{}, fmt.Errorf("service.PostService.Deactivate: %w", err)
	}
	return result, nil
}

// Tags returns the post together with its linked tags ordered by name.
// Both reads share one transaction. Always returns a non-nil slice.
// Returns domain.ErrNotFound if the post does not exist.
func (s *PostService) Tags(ctx context.Context, id uuid.UUID) (domain.Post, []domain.Tag, error) {
	var (
		post domain.Post
		tags []domain.Tag
	)
	err := s.tx.InTx(ctx, func(rs repo.Repos) error {
		var err error
		if post, err = rs.Posts.GetByID(ctx, id); err != nil {
			return err
		}
		tags, err = rs.PostTags.ListByPost(ctx, id)
		return err
	})
	if err != nil {
		return domain.Post{}, nil, fmt.Errorf("service.PostService.Tags: %w", err)
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return post, tags, nil
}

// GetByID returns a single post by ID.
func (s *PostService) GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	result, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return domain.Post{}, fmt.Errorf("service.PostService.GetByID: %w", err)
	}
	return result, nil
}

// List returns every post, active or not. Always returns a non-nil slice.
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PostService.List: %w", err)
	}
	if posts == nil {
		return []domain.Post{}, nil
	}
	return posts, nil
}

// ListByAuthor returns every post written by authorID.
func (s *PostService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Post, error) {
	posts, err := s.posts.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("service.PostService.ListByAuthor: %w", err)
	}
	if posts == nil {
		return []domain.Post{}, nil
	}
	return posts, nil
}

// validateNewPost enforces the rules for a post being created.
//   - AuthorID must be set.
//   - Title and Content must be non-blank.
func validateNewPost(in domain.NewPost) error {
	if in.AuthorID == uuid.Nil {
		return fmt.Errorf("%w: author_id is required", domain.ErrValidation)
	}
	if err := requireText("title", in.Title); err != nil {
		return err
	}
	return requireText("content", in.Content)
}

// validatePostPatch rejects fields that are present but blank.
func validatePostPatch(p domain.PostPatch) error {
	if p.Title != nil {
		if err := requireText("title", *p.Title); err != nil {
			return err
		}
	}
	if p.Content != nil {
		return requireText("content", *p.Content)
	}
	return nil
}
