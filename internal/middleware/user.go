package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/juicebox/backend/internal/domain"
)

// UserIDHeader carries the id of the acting user. It is set by the gateway
// in front of the API once the caller has authenticated.
const UserIDHeader = "X-User-ID"

type userKey struct{}

// WithUser returns a copy of ctx carrying user as the acting user.
func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the acting user, if one was loaded.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userKey{}).(domain.User)
	return u, ok
}

// UserGetter is the lookup NewUserLoader needs. *service.UserService satisfies it.
type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// NewUserLoader resolves the UserIDHeader to a user and stores it in the
// request context. Requests without the header pass through anonymously.
// A malformed id, an unknown user or a deactivated user is rejected with 401.
func NewUserLoader(users UserGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(UserIDHeader)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := uuid.Parse(raw)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "MissingUserError", "malformed "+UserIDHeader+" header")
				return
			}

			user, err := users.GetByID(r.Context(), id)
			switch {
			case errors.Is(err, domain.ErrNotFound):
				writeError(w, http.StatusUnauthorized, "MissingUserError", "unknown user")
				return
			case err != nil:
				slog.ErrorContext(r.Context(), "load user", "user_id", id, "error", err)
				writeError(w, http.StatusInternalServerError, "InternalError", "an unexpected error occurred")
				return
			case !user.Active:
				writeError(w, http.StatusUnauthorized, "MissingUserError", "user is deactivated")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireUser rejects requests that reach it without an acting user.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "MissingUserError", domain.ErrMissingUser.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeError writes the same {name, message} body the handlers use.
func writeError(w http.ResponseWriter, status int, name, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"name": name, "message": message})
}
