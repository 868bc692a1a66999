// Package domain contains the core data types for the Juicebox blog backend.
// It depends only on google/uuid and is imported by every other internal
// package (repo, service, handler).
package domain

import "github.com/google/uuid"

// User is a blog author. Password holds the bcrypt hash, never plaintext,
// once the record has passed through the service layer.
type User struct {
	ID       uuid.UUID
	Username string
	Password string
	Name     string
	Location string
	Active   bool
}

// NewUser carries the fields required to register a user.
type NewUser struct {
	Username string
	Password string
	Name     string
	Location string
}

// UserPatch is a column-level partial update. Nil fields are left untouched.
type UserPatch struct {
	Password *string
	Name     *string
	Location *string
	Active   *bool
}

