package services

import (
	"context"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
)

// GoalSvcFacade provides goal CRUD and contributions. A contribution is an
// ordinary credit transaction created through the mutation pipeline.
type GoalSvcFacade interface {
	CreateGoal(ctx context.Context, req dto.CreateGoalRequest) (*domain.Goal, error)
	GetGoalByID(ctx context.Context, goalID string) (*domain.Goal, error)
	ListGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error)
	UpdateGoal(ctx context.Context, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, goalID string) error

	// ContributeToGoal credits the given account with a transaction tied to
	// the goal, returning the created transaction and any signals it raised.
	ContributeToGoal(ctx context.Context, goalID string, req dto.ContributeToGoalRequest) (*domain.Transaction, []domain.Recommendation, error)
}
