package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/juicebox/backend/internal/domain"
	"github.com/pkordes/juicebox/backend/internal/repo"
	"github.com/pkordes/juicebox/backend/internal/service"
)

// ---- mock repos ------------------------------------------------------------

// mockTagRepo is a hand-written test double for repo.TagRepo.
type mockTagRepo struct {
	createTags  func(ctx context.Context, names []string) ([]domain.Tag, error)
	getByName   func(ctx context.Context, name string) (domain.Tag, error)
	list        func(ctx context.Context) ([]domain.Tag, error)
	postsByName func(ctx context.Context, name string) ([]domain.Post, error)
}

func (m *mockTagRepo) CreateTags(ctx context.Context, names []string) ([]domain.Tag, error) {
	return m.createTags(ctx, names)
}
func (m *mockTagRepo) GetByName(ctx context.Context, name string) (domain.Tag, error) {
	return m.getByName(ctx, name)
}
func (m *mockTagRepo) List(ctx context.Context) ([]domain.Tag, error) {
	return m.list(ctx)
}
func (m *mockTagRepo) PostsByName(ctx context.Context, name string) ([]domain.Post, error) {
	return m.postsByName(ctx, name)
}

// mockPostRepo is a hand-written test double for repo.PostRepo.
type mockPostRepo struct {
	create       func(ctx context.Context, post domain.NewPost) (domain.Post, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Post, error)
	list         func(ctx context.Context) ([]domain.Post, error)
	listByAuthor func(ctx context.Context, authorID uuid.UUID) ([]domain.Post, error)
	update       func(ctx context.Context, id uuid.UUID, patch domain.PostPatch) (domain.Post, error)
}

func (m *mockPostRepo) Create(ctx context.Context, post domain.NewPost) (domain.Post, error) {
	return m.create(ctx, post)
}
func (m *mockPostRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	return m.getByID(ctx, id)
}
func (m *mockPostRepo) List(ctx context.Context) ([]domain.Post, error) {
	return m.list(ctx)
}
func (m *mockPostRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Post, error) {
	return m.listByAuthor(ctx, authorID)
}
func (m *mockPostRepo) Update(ctx context.Context, id uuid.UUID, patch domain.PostPatch) (domain.Post, error) {
	return m.update(ctx, id, patch)
}

// mockPostTagRepo is a hand-written test double for repo.PostTagRepo.
type mockPostTagRepo struct {
	addToPost    func(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error
	replace      func(ctx context.Context, postID uuid.UUID, desired []uuid.UUID) error
	tagIDsByPost func(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error)
	listByPost   func(ctx context.Context, postID uuid.UUID) ([]domain.Tag, error)
}

func (m *mockPostTagRepo) AddToPost(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	return m.addToPost(ctx, postID, tagIDs)
}
func (m *mockPostTagRepo) Replace(ctx context.Context, postID uuid.UUID, desired []uuid.UUID) error {
	return m.replace(ctx, postID, desired)
}
func (m *mockPostTagRepo) TagIDsByPost(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	return m.tagIDsByPost(ctx, postID)
}
func (m *mockPostTagRepo) ListByPost(ctx context.Context, postID uuid.UUID) ([]domain.Tag, error) {
	return m.listByPost(ctx, postID)
}

// mockUserRepo is a hand-written test double for repo.UserRepo.
type mockUserRepo struct {
	create        func(ctx context.Context, user domain.NewUser) (domain.User, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByUsername func(ctx context.Context, username string) (domain.User, error)
	list          func(ctx context.Context) ([]domain.User, error)
	update        func(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.NewUser) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return m.getByUsername(ctx, username)
}
func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	return m.list(ctx)
}
func (m *mockUserRepo) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error) {
	return m.update(ctx, id, patch)
}

// fakeTx hands the same repos to every InTx callback and counts calls.
// Rollback is exercised by the integration tests against Postgres.
type fakeTx struct {
	repos repo.Repos
	calls int
}

func (f *fakeTx) InTx(_ context.Context, fn func(repo.Repos) error) error {
	f.calls++
	return fn(f.repos)
}

// compile-time checks
var (
	_ repo.TagRepo       = (*mockTagRepo)(nil)
	_ repo.PostRepo      = (*mockPostRepo)(nil)
	_ repo.PostTagRepo   = (*mockPostTagRepo)(nil)
	_ repo.UserRepo      = (*mockUserRepo)(nil)
	_ service.Transactor = (*fakeTx)(nil)
)
