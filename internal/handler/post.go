package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/juicebox/backend/internal/domain"
	"github.com/pkordes/juicebox/backend/internal/middleware"
)

// PostResponse is the body of every endpoint that returns a single post.
type PostResponse struct {
	Post Post `json:"post"`
}

// CreatePostRequest is the body of POST /posts. The author is the acting user.
type CreatePostRequest struct {
	Title   string  `json:"title" validate:"required,max=255"`
	Content string  `json:"content" validate:"required"`
	Tags    tagList `json:"tags" validate:"omitempty,dive,max=255"`
}

// UpdatePostRequest is the body of PATCH /posts/{postId}. Absent fields are
// left untouched; a present "tags" replaces the post's whole tag set.
type UpdatePostRequest struct {
	Title   *string  `json:"title" validate:"omitempty,min=1,max=255"`
	Content *string  `json:"content" validate:"omitempty,min=1"`
	Active  *bool    `json:"active"`
	Tags    *tagList `json:"tags" validate:"omitempty,dive,max=255"`
}

// ListPosts handles GET /posts. Inactive posts are only shown to their author.
func (s *Server) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.List(r.Context())
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, PostsResponse{Posts: postsToResponse(visibleTo(r, posts))})
}

// ListPostsByUser handles GET /users/{userId}/posts. Inactive posts are only
// shown to their author.
func (s *Server) ListPostsByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	posts, err := s.posts.ListByAuthor(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, PostsResponse{Posts: postsToResponse(visibleTo(r, posts))})
}

// CreatePost handles POST /posts.
func (s *Server) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var body CreatePostRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	created, err := s.posts.Create(r.Context(), domain.NewPost{
		AuthorID: user.ID,
		Title:    body.Title,
		Content:  body.Content,
		Tags:     body.Tags,
	})
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, PostResponse{Post: postToResponse(created)})
}

// UpdatePost handles PATCH /posts/{postId}.
func (s *Server) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathUUID(w, r, "postId")
	if !ok {
		return
	}

	var body UpdatePostRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	patch := domain.PostPatch{
		Title:   body.Title,
		Content: body.Content,
		Active:  body.Active,
	}
	if body.Tags != nil {
		patch.Tags = []string(*body.Tags)
		if patch.Tags == nil {
			patch.Tags = []string{}
		}
	}

	updated, err := s.posts.Update(r.Context(), postID, patch)
	if err != nil {
		respondError(w, r, err, "post not found")
		return
	}
	writeJSON(w, http.StatusOK, PostResponse{Post: postToResponse(updated)})
}

// DeletePost handles DELETE /posts/{postId}. The post is deactivated, not
// removed, and the deactivated post is returned.
func (s *Server) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathUUID(w, r, "postId")
	if !ok {
		return
	}

	post, err := s.posts.Deactivate(r.Context(), postID)
	if err != nil {
		respondError(w, r, err, "post not found")
		return
	}
	writeJSON(w, http.StatusOK, PostResponse{Post: postToResponse(post)})
}

// visibleTo drops inactive posts unless the acting user wrote them.
func visibleTo(r *http.Request, posts []domain.Post) []domain.Post {
	viewer := uuid.Nil
	if u, ok := middleware.UserFromContext(r.Context()); ok {
		viewer = u.ID
	}
	out := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if p.Active || (viewer != uuid.Nil && p.AuthorID == viewer) {
			out = append(out, p)
		}
	}
	return out
}
