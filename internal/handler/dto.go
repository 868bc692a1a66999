package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/juicebox/backend/internal/domain"
)

// ---- responses -------------------------------------------------------------

// Tag is the API representation of a tag.
type Tag struct {
	ID   openapi_types.UUID `json:"id"`
	Name string             `json:"name"`
}

// Author is the public projection of a user embedded in a Post.
type Author struct {
	ID       openapi_types.UUID `json:"id"`
	Username string             `json:"username"`
	Name     string             `json:"name"`
	Location string             `json:"location"`
}

// Post is the API representation of a post. Tags are names ordered by name.
type Post struct {
	ID       openapi_types.UUID `json:"id"`
	AuthorID openapi_types.UUID `json:"authorId"`
	Title    string             `json:"title"`
	Content  string             `json:"content"`
	Active   bool               `json:"active"`
	Author   Author             `json:"author"`
	Tags     []string           `json:"tags"`
}

// User is the API representation of a user. The password hash is never sent.
type User struct {
	ID       openapi_types.UUID `json:"id"`
	Username string             `json:"username"`
	Name     string             `json:"name"`
	Location string             `json:"location"`
	Active   bool               `json:"active"`
}

func tagToResponse(t domain.Tag) Tag {
	return Tag{ID: openapi_types.UUID(t.ID), Name: t.Name}
}

func postToResponse(p domain.Post) Post {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return Post{
		ID:       openapi_types.UUID(p.ID),
		AuthorID: openapi_types.UUID(p.AuthorID),
		Title:    p.Title,
		Content:  p.Content,
		Active:   p.Active,
		Author: Author{
			ID:       openapi_types.UUID(p.Author.ID),
			Username: p.Author.Username,
			Name:     p.Author.Name,
			Location: p.Author.Location,
		},
		Tags: tags,
	}
}

func postsToResponse(posts []domain.Post) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		out[i] = postToResponse(p)
	}
	return out
}

func userToResponse(u domain.User) User {
	return User{
		ID:       openapi_types.UUID(u.ID),
		Username: u.Username,
		Name:     u.Name,
		Location: u.Location,
		Active:   u.Active,
	}
}

// ---- requests --------------------------------------------------------------

// tagList accepts either a JSON array of names or a single string of
// whitespace-separated names, e.g. "#happy #youcandoanything".
type tagList []string

func (l *tagList) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = strings.Fields(s)
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	if names == nil {
		names = []string{}
	}
	*l = names
	return nil
}

// ---- path parameters -------------------------------------------------------

// pathParam binds the named chi URL parameter into dst the way generated
// oapi-codegen servers do: simple style, required, path location.
func pathParam(w http.ResponseWriter, r *http.Request, name string, dst any) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dst,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		writeError(w, http.StatusBadRequest, errNameValidation, "invalid "+name+": "+err.Error())
		return false
	}
	return true
}

// pathName returns a free-form path parameter such as a tag name, decoded
// exactly once. chi matches on the decoded path unless the request escaped a
// reserved character like "/", in which case it matches on the raw path and
// the value is still escaped.
func pathName(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v, true
	}
	decoded, err := url.PathUnescape(v)
	if err != nil {
		writeError(w, http.StatusBadRequest, errNameValidation, "invalid "+name+": "+err.Error())
		return "", false
	}
	return decoded, true
}

// pathUUID binds a UUID path parameter.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	var id openapi_types.UUID
	if !pathParam(w, r, name, &id) {
		return uuid.Nil, false
	}
	return uuid.UUID(id), true
}
