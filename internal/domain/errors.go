package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers map this to HTTP 404 with name "NotFoundError".
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing title, blank tag name).
// Handlers map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUniqueViolation wraps a Postgres unique_violation (23505), e.g. a
// duplicate username. Tag name races never surface as this error because
// CreateTags resolves them by re-reading.
var ErrUniqueViolation = errors.New("uniqueness violation")

// ErrForeignKeyViolation wraps a Postgres foreign_key_violation (23503),
// e.g. a post whose author does not exist.
var ErrForeignKeyViolation = errors.New("foreign key violation")

// ErrDataIntegrity is returned when a tag requested from CreateTags is still
// missing after the read-back step. This is a storage fault, not a race.
var ErrDataIntegrity = errors.New("data integrity error")

// ErrMissingUser is returned when an operation that needs an acting user is
// reached without one.
var ErrMissingUser = errors.New("you must be logged in to perform this action")

