package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
)

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

// SaveBudget inserts a new budget instance. The unique index on
// (user_id, category, period, start_date) turns a duplicate into ErrDuplicate.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		budget.BudgetID,
		budget.UserID,
		budget.Category,
		budget.Period,
		budget.LimitAmount,
		budget.StartDate,
		budget.CreatedAt,
		budget.LastUpdatedAt,
	)
	if err != nil {
		mapped := mapPgError(err)
		if errors.Is(mapped, apperrors.ErrDuplicate) {
			return fmt.Errorf("budget for %s/%s/%s already exists: %w",
				budget.Category, budget.Period, budget.StartDate.Format("2006-01-02"), apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save budget "+budget.BudgetID, mapped)
	}
	return nil
}

// FindBudgetByID retrieves a budget by its unique identifier.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`
	b, err := scanBudget(r.Pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("budget %s: %w", budgetID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find budget "+budgetID, mapPgError(err))
	}
	return &b, nil
}

// ListBudgetsByUser retrieves all budgets for a user, newest anchor first.
func (r *PgxBudgetRepository) ListBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 ORDER BY start_date DESC, category ASC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list budgets for user "+userID, mapPgError(err))
	}
	defer rows.Close()

	budgets := make([]domain.Budget, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan budget row", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating budget rows", mapPgError(err))
	}
	return budgets, nil
}

// SumCategoryDebits sums debit amounts for (user, category) in [from, to).
func (r *PgxBudgetRepository) SumCategoryDebits(ctx context.Context, userID, category string, from, to time.Time) (decimal.Decimal, error) {
	return sumCategoryDebits(ctx, r.Pool, userID, category, from, to)
}

// UpdateBudgetLimit changes the limit of an existing budget.
func (r *PgxBudgetRepository) UpdateBudgetLimit(ctx context.Context, budgetID string, limit decimal.Decimal, now time.Time) error {
	query := `UPDATE budgets SET limit_amount = $2, last_updated_at = $3 WHERE budget_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, budgetID, limit, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update budget "+budgetID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("budget %s: %w", budgetID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteBudget removes a budget; its alerts go with it via FK cascade.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete budget "+budgetID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("budget %s: %w", budgetID, apperrors.ErrNotFound)
	}
	return nil
}
