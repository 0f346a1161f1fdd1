package repositories

import (
	"context"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user. Duplicate email yields ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates a user's name and email.
	UpdateUser(ctx context.Context, user domain.User) error

	// DeleteUser removes a user; FK cascades remove their accounts,
	// transactions, budgets, goals, alerts and recommendations.
	DeleteUser(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
