package domain

import "github.com/google/uuid"

// Author is the public projection of a User embedded in a Post.
type Author struct {
	ID       uuid.UUID
	Username string
	Name     string
	Location string
}

// Post is a blog entry. Tags holds the resolved tag names, ordered by name,
// so the value can be rendered directly by the HTTP layer.
type Post struct {
	ID       uuid.UUID
	AuthorID uuid.UUID
	Title    string
	Content  string
	Active   bool
	Author   Author
	Tags     []string
}

// NewPost carries the fields required to create a post.
// Tags may be nil or empty, in which case no tags are linked.
type NewPost struct {
	AuthorID uuid.UUID
	Title    string
	Content  string
	Tags     []string
}

// PostPatch is a column-level partial update of a post.
// Nil column fields are left untouched. A nil Tags leaves the tag set alone;
// a non-nil Tags (even empty) replaces the post's tag set with exactly Tags.
type PostPatch struct {
	Title   *string
	Content *string
	Active  *bool
	Tags    []string
}

