package handler

import (
	"net/http"

	"github.com/pkordes/juicebox/backend/internal/domain"
)

// ListTagsResponse is the body of GET /tags.
type ListTagsResponse struct {
	Tags []Tag `json:"tags"`
}

// TagResponse is the body of GET /tags/{tagName}.
type TagResponse struct {
	Tag Tag `json:"tag"`
}

// PostsResponse is the body of every endpoint that lists posts.
type PostsResponse struct {
	Posts []Post `json:"posts"`
}

// ListTags handles GET /tags.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.tags.List(r.Context())
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	data := make([]Tag, len(tags))
	for i, t := range tags {
		data[i] = tagToResponse(t)
	}
	writeJSON(w, http.StatusOK, ListTagsResponse{Tags: data})
}

// GetTag handles GET /tags/{tagName}.
func (s *Server) GetTag(w http.ResponseWriter, r *http.Request) {
	name, ok := pathName(w, r, "tagName")
	if !ok {
		return
	}

	tag, err := s.tags.Get(r.Context(), name)
	if err != nil {
		respondError(w, r, err, "tag not found")
		return
	}
	writeJSON(w, http.StatusOK, TagResponse{Tag: tagToResponse(tag)})
}

// ListPostsByTag handles GET /tags/{tagName}/posts.
// An unknown tag is not an error; it simply has no posts.
func (s *Server) ListPostsByTag(w http.ResponseWriter, r *http.Request) {
	name, ok := pathName(w, r, "tagName")
	if !ok {
		return
	}

	posts, err := s.tags.PostsByName(r.Context(), name)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, PostsResponse{Posts: postsToResponse(posts)})
}

// ListTagsByPost handles GET /posts/{postId}/tags. An inactive post is only
// visible to its author; anyone else gets 404.
func (s *Server) ListTagsByPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathUUID(w, r, "postId")
	if !ok {
		return
	}

	post, tags, err := s.posts.Tags(r.Context(), postID)
	if err == nil && len(visibleTo(r, []domain.Post{post})) == 0 {
		err = domain.ErrNotFound
	}
	if err != nil {
		respondError(w, r, err, "post not found")
		return
	}

	data := make([]Tag, len(tags))
	for i, t := range tags {
		data[i] = tagToResponse(t)
	}
	writeJSON(w, http.StatusOK, ListTagsResponse{Tags: data})
}
