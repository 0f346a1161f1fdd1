package services

import (
	"context"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// BudgetSvcFacade provides budget CRUD and progress reads.
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest) (*domain.Budget, error)
	GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// ListBudgetsWithProgress returns a user's budgets with their computed
	// window end and current spend inside the half-open window.
	ListBudgetsWithProgress(ctx context.Context, userID string) ([]dto.BudgetProgressResponse, error)

	UpdateBudgetLimit(ctx context.Context, budgetID string, limit decimal.Decimal) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, budgetID string) error
}
