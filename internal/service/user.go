package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/juicebox/backend/internal/domain"
	"github.com/pkordes/juicebox/backend/internal/repo"
)

const (
	// minPasswordLength is the shortest plaintext password accepted.
	minPasswordLength = 8
	// maxPasswordBytes is bcrypt's input limit. It counts bytes, not runes.
	maxPasswordBytes = 72
)

// UserService implements business logic for User operations.
// Its main job beyond validation is hashing passwords before they reach the repo.
type UserService struct {
	users repo.UserRepo
	cost  int
}

// NewUserService constructs a UserService backed by the provided UserRepo.
func NewUserService(users repo.UserRepo) *UserService {
	return &UserService{users: users, cost: bcrypt.DefaultCost}
}

// WithHashCost returns a copy of s that hashes with the given bcrypt cost.
// Tests use bcrypt.MinCost to stay fast.
func (s *UserService) WithHashCost(cost int) *UserService {
	tmp := *s
	tmp.cost = cost
	return &tmp
}

// Create validates the user, hashes the password and persists the record.
// Returns domain.ErrValidation for invalid input and
// domain.ErrUniqueViolation if the username is already taken.
func (s *UserService) Create(ctx context.Context, in domain.NewUser) (domain.User, error) {
	if err := requireText("username", in.Username); err != nil {
		return domain.User{}, err
	}
	if err := requireText("name", in.Name); err != nil {
		return domain.User{}, err
	}
	if err := requireText("location", in.Location); err != nil {
		return domain.User{}, err
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return domain.User{}, err
	}
	in.Password = hash

	result, err := s.users.Create(ctx, in)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Create: %w", err)
	}
	return result, nil
}

// GetByUsername returns a single user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	result, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByUsername: %w", err)
	}
	return result, nil
}

// GetByID returns a single user by ID.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	result, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all users. Always returns a non-nil slice.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.UserService.List: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// Update applies the non-nil fields of patch. A new password is hashed first.
// Returns domain.ErrNotFound if the user does not exist.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error) {
	if patch.Name != nil {
		if err := requireText("name", *patch.Name); err != nil {
			return domain.User{}, err
		}
	}
	if patch.Location != nil {
		if err := requireText("location", *patch.Location); err != nil {
			return domain.User{}, err
		}
	}
	if patch.Password != nil {
		hash, err := s.hash(*patch.Password)
		if err != nil {
			return domain.User{}, err
		}
		patch.Password = &hash
	}

	result, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}
	return result, nil
}

func (s *UserService) hash(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, maxPasswordBytes)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}
