// Package handler implements the HTTP handlers for the Juicebox API.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, tag.go, post.go, user.go) but share the same Server struct so
// they can reach its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/juicebox/backend/internal/domain"
	"github.com/pkordes/juicebox/backend/internal/middleware"
)

// TagServicer defines the tag operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the database or the service layer.
type TagServicer interface {
	List(ctx context.Context) ([]domain.Tag, error)
	Get(ctx context.Context, name string) (domain.Tag, error)
	PostsByName(ctx context.Context, name string) ([]domain.Post, error)
}

// PostServicer defines the post operations the handlers depend on.
type PostServicer interface {
	Create(ctx context.Context, in domain.NewPost) (domain.Post, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.PostPatch) (domain.Post, error)
	Deactivate(ctx context.Context, id uuid.UUID) (domain.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error)
	Tags(ctx context.Context, id uuid.UUID) (domain.Post, []domain.Tag, error)
	List(ctx context.Context) ([]domain.Post, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Post, error)
}

// UserServicer defines the user operations the handlers depend on.
// GetByID also backs the acting-user loader.
type UserServicer interface {
	Create(ctx context.Context, in domain.NewUser) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error)
}

// Server holds every dependency the handlers need.
type Server struct {
	tags     TagServicer
	posts    PostServicer
	users    UserServicer
	validate *Validator
}

// NewServer constructs the Server with all its dependencies.
func NewServer(tags TagServicer, posts PostServicer, users UserServicer) *Server {
	return &Server{tags: tags, posts: posts, users: users, validate: NewValidator()}
}

// Routes returns the API router. Cross-cutting middleware (request ids,
// logging, CORS, body limits) is applied by the caller around it.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NewUserLoader(s.users))

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/tags", s.ListTags)
	r.Get("/tags/{tagName}", s.GetTag)
	r.Get("/tags/{tagName}/posts", s.ListPostsByTag)

	r.Get("/posts", s.ListPosts)
	r.Get("/posts/{postId}/tags", s.ListTagsByPost)
	r.Get("/users", s.ListUsers)
	r.Post("/users", s.CreateUser)
	r.Get("/users/{userId}/posts", s.ListPostsByUser)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Post("/posts", s.CreatePost)
		r.Patch("/posts/{postId}", s.UpdatePost)
		r.Delete("/posts/{postId}", s.DeletePost)
		r.Get("/users/me", s.GetMe)
		r.Patch("/users/me", s.UpdateMe)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errNameNotFound, "no route for "+r.Method+" "+r.URL.Path)
	})
	return r
}
