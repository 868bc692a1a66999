package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/juicebox/backend/internal/domain"
)

// Error names carried in the "name" field of every error body.
const (
	errNameNotFound        = "NotFoundError"
	errNameValidation      = "ValidationError"
	errNameUnique          = "UniquenessViolation"
	errNameForeignKey      = "ForeignKeyViolation"
	errNameDataIntegrity   = "DataIntegrityError"
	errNameMissingUser     = "MissingUserError"
	errNamePayloadTooLarge = "PayloadTooLargeError"
	errNameDatabase        = "DatabaseError"
	errNameInternal        = "InternalError"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, name, message string) {
	writeJSON(w, status, ErrorResponse{Name: name, Message: message})
}

// respondError maps err onto an HTTP status and error name. notFound is the
// message used when err is domain.ErrNotFound, since only the handler knows
// what was being looked up.
func respondError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, errNameNotFound, notFound)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, errNameValidation, unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrMissingUser):
		writeError(w, http.StatusUnauthorized, errNameMissingUser, domain.ErrMissingUser.Error())
	case errors.Is(err, domain.ErrUniqueViolation):
		writeError(w, http.StatusConflict, errNameUnique, constraintMessage(err, domain.ErrUniqueViolation))
	case errors.Is(err, domain.ErrForeignKeyViolation):
		writeError(w, http.StatusConflict, errNameForeignKey, constraintMessage(err, domain.ErrForeignKeyViolation))
	case errors.Is(err, domain.ErrDataIntegrity):
		slog.ErrorContext(r.Context(), "data integrity", "error", err)
		writeError(w, http.StatusInternalServerError, errNameDataIntegrity, unwrapMessage(err, domain.ErrDataIntegrity))
	case errors.As(err, &pgErr):
		slog.ErrorContext(r.Context(), "database error", "error", err, "code", pgErr.Code)
		writeError(w, http.StatusInternalServerError, errNameDatabase, pgErr.Message)
	default:
		slog.ErrorContext(r.Context(), "unhandled error", "error", err)
		writeError(w, http.StatusInternalServerError, errNameInternal, "an unexpected error occurred")
	}
}

// unwrapMessage extracts the human-readable part that follows sentinel in a
// wrapped error chain.
// e.g. "service.PostService.Create: validation error: title is required" → "title is required"
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}

// constraintMessage prefers the Postgres detail, which names the offending
// key, over the bare sentinel text.
func constraintMessage(err, sentinel error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Detail != "" {
		return pgErr.Detail
	}
	return sentinel.Error()
}

// decodeBody decodes the JSON request body into dst and validates it.
// It writes the error response itself and reports whether the caller should
// continue.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, errNamePayloadTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusUnprocessableEntity, errNameValidation, "request body must be valid JSON: "+err.Error())
		return false
	}
	if err := s.validate.Validate(dst); err != nil {
		respondError(w, r, err, "")
		return false
	}
	return true
}
