package repositories

import (
	"context"
	"time"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetReader defines read operations for budget data.
type BudgetReader interface {
	// FindBudgetByID retrieves a budget by its unique identifier.
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// ListBudgetsByUser retrieves all budgets for a user, newest anchor first.
	ListBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error)

	// SumCategoryDebits sums debit amounts for (user, category) with event
	// time in [from, to). Used for budget progress reads outside the pipeline.
	SumCategoryDebits(ctx context.Context, userID, category string, from, to time.Time) (decimal.Decimal, error)
}

// BudgetWriter defines write operations for budget data.
type BudgetWriter interface {
	// SaveBudget persists a new budget. A duplicate
	// (user, category, period, start_date) tuple yields ErrDuplicate.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudgetLimit changes the limit of an existing budget.
	UpdateBudgetLimit(ctx context.Context, budgetID string, limit decimal.Decimal, now time.Time) error

	// DeleteBudget removes a budget and, via FK cascades, its alerts.
	DeleteBudget(ctx context.Context, budgetID string) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
