// Package service contains the business logic for the Juicebox API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/juicebox/backend/internal/domain"
	"github.com/pkordes/juicebox/backend/internal/repo"
)

// Transactor runs fn with repositories bound to a single transaction that
// commits only when fn returns nil. *repo.Store satisfies it.
type Transactor interface {
	InTx(ctx context.Context, fn func(repo.Repos) error) error
}

// normalizeTagNames trims surrounding whitespace from every name and rejects
// blanks. Names are otherwise opaque: no case folding, no marker character.
func normalizeTagNames(names []string) ([]string, error) {
	out := make([]string, len(names))
	for i, n := range names {
		t := strings.TrimSpace(n)
		if t == "" {
			return nil, fmt.Errorf("%w: tag names must not be blank", domain.ErrValidation)
		}
		out[i] = t
	}
	return out, nil
}

// requireText rejects a blank value for the named field.
func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}
	return nil
}
