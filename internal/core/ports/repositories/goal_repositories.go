package repositories

import (
	"context"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
)

// GoalReader defines read operations for goal data.
type GoalReader interface {
	// FindGoalByID retrieves a goal by its unique identifier.
	FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error)

	// ListGoalsByUser retrieves a user's goals with their contributed sums
	// (credits referencing the goal), ordered by target date ascending.
	ListGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error)
}

// GoalWriter defines write operations for goal data.
type GoalWriter interface {
	// SaveGoal persists a new goal.
	SaveGoal(ctx context.Context, goal domain.Goal) error

	// UpdateGoal updates name, target amount and target date.
	UpdateGoal(ctx context.Context, goal domain.Goal) error

	// DeleteGoal removes a goal; contributing transactions keep their rows
	// with the goal reference cleared.
	DeleteGoal(ctx context.Context, goalID string) error
}

// GoalRepositoryFacade combines all goal-related repository interfaces.
type GoalRepositoryFacade interface {
	GoalReader
	GoalWriter
}
