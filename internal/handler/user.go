package handler

import (
	"net/http"

	"github.com/pkordes/juicebox/backend/internal/domain"
	"github.com/pkordes/juicebox/backend/internal/middleware"
)

// UserResponse is the body of every endpoint that returns a single user.
type UserResponse struct {
	User User `json:"user"`
}

// ListUsersResponse is the body of GET /users.
type ListUsersResponse struct {
	Users []User `json:"users"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=255"`
	Location string `json:"location" validate:"required,max=255"`
}

// UpdateUserRequest is the body of PATCH /users/me.
type UpdateUserRequest struct {
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Location *string `json:"location" validate:"omitempty,min=1,max=255"`
}

// ListUsers handles GET /users.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	data := make([]User, len(users))
	for i, u := range users {
		data[i] = userToResponse(u)
	}
	writeJSON(w, http.StatusOK, ListUsersResponse{Users: data})
}

// CreateUser handles POST /users.
func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body CreateUserRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	created, err := s.users.Create(r.Context(), domain.NewUser{
		Username: body.Username,
		Password: body.Password,
		Name:     body.Name,
		Location: body.Location,
	})
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, UserResponse{User: userToResponse(created)})
}

// GetMe handles GET /users/me.
func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, UserResponse{User: userToResponse(user)})
}

// UpdateMe handles PATCH /users/me.
func (s *Server) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var body UpdateUserRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	updated, err := s.users.Update(r.Context(), user.ID, domain.UserPatch{
		Password: body.Password,
		Name:     body.Name,
		Location: body.Location,
	})
	if err != nil {
		respondError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{User: userToResponse(updated)})
}
