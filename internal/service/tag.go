package service

import (
	"context"
	"fmt"

	"github.com/pkordes/juicebox/backend/internal/domain"
	"github.com/pkordes/juicebox/backend/internal/repo"
)

// TagService implements read access to the tag dictionary.
// Tags are only ever created through PostService.
type TagService struct {
	tags repo.TagRepo
}

// NewTagService constructs a TagService backed by the provided TagRepo.
func NewTagService(tags repo.TagRepo) *TagService {
	return &TagService{tags: tags}
}

// List returns every tag. Always returns a non-nil slice.
func (s *TagService) List(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TagService.List: %w", err)
	}
	if tags == nil {
		return []domain.Tag{}, nil
	}
	return tags, nil
}

// Get returns the tag with exactly this name.
// Returns domain.ErrNotFound if no tag has that name.
func (s *TagService) Get(ctx context.Context, name string) (domain.Tag, error) {
	tag, err := s.tags.GetByName(ctx, name)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.Get: %w", err)
	}
	return tag, nil
}

// PostsByName returns the active posts carrying the named tag.
// An unknown tag yields an empty slice, not domain.ErrNotFound.
func (s *TagService) PostsByName(ctx context.Context, name string) ([]domain.Post, error) {
	posts, err := s.tags.PostsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("service.TagService.PostsByName: %w", err)
	}
	if posts == nil {
		return []domain.Post{}, nil
	}
	return posts, nil
}
