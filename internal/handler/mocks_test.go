package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/juicebox/backend/internal/domain"
	"github.com/pkordes/juicebox/backend/internal/handler"
	"github.com/pkordes/juicebox/backend/internal/middleware"
)

// ---- mock services ---------------------------------------------------------

type mockTagServicer struct {
	list        func(ctx context.Context) ([]domain.Tag, error)
	get         func(ctx context.Context, name string) (domain.Tag, error)
	postsByName func(ctx context.Context, name string) ([]domain.Post, error)
}

func (m *mockTagServicer) List(ctx context.Context) ([]domain.Tag, error) {
	return m.list(ctx)
}
func (m *mockTagServicer) Get(ctx context.Context, name string) (domain.Tag, error) {
	return m.get(ctx, name)
}
func (m *mockTagServicer) PostsByName(ctx context.Context, name string) ([]domain.Post, error) {
	return m.postsByName(ctx, name)
}

type mockPostServicer struct {
	create       func(ctx context.Context, in domain.NewPost) (domain.Post, error)
	update       func(ctx context.Context, id uuid.UUID, patch domain.PostPatch) (domain.Post, error)
	deactivate   func(ctx context.Context, id uuid.UUID) (domain.Post, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Post, error)
	tags         func(ctx context.Context, id uuid.UUID) (domain.Post, []domain.Tag, error)
	list         func(ctx context.Context) ([]domain.Post, error)
	listByAuthor func(ctx context.Context, authorID uuid.UUID) ([]domain.Post, error)
}

func (m *mockPostServicer) Create(ctx context.Context, in domain.NewPost) (domain.Post, error) {
	return m.create(ctx, in)
}
func (m *mockPostServicer) Update(ctx context.Context, id uuid.UUID, patch domain.PostPatch) (domain.Post, error) {
	return m.update(ctx, id, patch)
}
func (m *mockPostServicer) Deactivate(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	return m.deactivate(ctx, id)
}
func (m *mockPostServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	return m.getByID(ctx, id)
}
func (m *mockPostServicer) Tags(ctx context.Context, id uuid.UUID) (domain.Post, []domain.Tag, error) {
	return m.tags(ctx, id)
}
func (m *mockPostServicer) List(ctx context.Context) ([]domain.Post, error) {
	return m.list(ctx)
}
func (m *mockPostServicer) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Post, error) {
	return m.listByAuthor(ctx, authorID)
}

type mockUserServicer struct {
	create  func(ctx context.Context, in domain.NewUser) (domain.User, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.User, error)
	list    func(ctx context.Context) ([]domain.User, error)
	update  func(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error)
}

func (m *mockUserServicer) Create(ctx context.Context, in domain.NewUser) (domain.User, error) {
	return m.create(ctx, in)
}
func (m *mockUserServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserServicer) List(ctx context.Context) ([]domain.User, error) {
	return m.list(ctx)
}
func (m *mockUserServicer) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error) {
	return m.update(ctx, id, patch)
}

// compile-time checks
var (
	_ handler.TagServicer  = (*mockTagServicer)(nil)
	_ handler.PostServicer = (*mockPostServicer)(nil)
	_ handler.UserServicer = (*mockUserServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// actingUser is the user every authenticated test request runs as.
var actingUser = domain.User{
	ID:       uuid.MustParse("0192a0a0-0000-7000-8000-0000000000a1"),
	Username: "albert",
	Name:     "Al Bert",
	Location: "Sidney, Australia",
	Active:   true,
}

// withActingUser makes users resolve actingUser, leaving its other funcs alone.
func withActingUser(users *mockUserServicer) *mockUserServicer {
	if users == nil {
		users = &mockUserServicer{}
	}
	users.getByID = func(_ context.Context, id uuid.UUID) (domain.User, error) {
		if id == actingUser.ID {
			return actingUser, nil
		}
		return domain.User{}, domain.ErrNotFound
	}
	return users
}

// newTestHandler wires a Server with mocks. Nil mocks are replaced with empty
// ones whose nil funcs panic if a handler reaches them.
func newTestHandler(tags *mockTagServicer, posts *mockPostServicer, users *mockUserServicer) http.Handler {
	if tags == nil {
		tags = &mockTagServicer{}
	}
	if posts == nil {
		posts = &mockPostServicer{}
	}
	return handler.NewServer(tags, posts, withActingUser(users)).Routes()
}

// do sends a request, authenticated as actingUser when asUser is set.
func do(t *testing.T, h http.Handler, method, target string, body any, asUser bool) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = jsonBody(t, body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	if asUser {
		req.Header.Set(middleware.UserIDHeader, actingUser.ID.String())
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewBufferString(s)
	}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

func postFixture(tags ...string) domain.Post {
	if tags == nil {
		tags = []string{}
	}
	return domain.Post{
		ID:       uuid.New(),
		AuthorID: actingUser.ID,
		Title:    "First Post",
		Content:  "This is my first post.",
		Active:   true,
		Author:   domain.Author{ID: actingUser.ID, Username: actingUser.Username, Name: actingUser.Name, Location: actingUser.Location},
		Tags:     tags,
	}
}
