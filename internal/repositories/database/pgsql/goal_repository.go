package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
)

type PgxGoalRepository struct {
	BaseRepository
}

// newPgxGoalRepository creates a new repository for goal data.
func newPgxGoalRepository(pool *pgxpool.Pool) portsrepo.GoalRepositoryFacade {
	return &PgxGoalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.GoalRepositoryFacade = (*PgxGoalRepository)(nil)

// goalWithContributed joins each goal to the sum of credit transactions that
// reference it, so Contributed never drifts from the ledger.
const goalWithContributed = `
	SELECT g.goal_id, g.user_id, g.name, g.target_amount, g.target_date,
	       COALESCE(SUM(t.amount) FILTER (WHERE t.tx_type = 'credit'), 0) AS contributed,
	       g.created_at, g.last_updated_at
	FROM goals g
	LEFT JOIN transactions t ON t.goal_id = g.goal_id
`

func scanGoal(row pgx.Row) (domain.Goal, error) {
	var g domain.Goal
	err := row.Scan(
		&g.GoalID,
		&g.UserID,
		&g.Name,
		&g.TargetAmount,
		&g.TargetDate,
		&g.Contributed,
		&g.CreatedAt,
		&g.LastUpdatedAt,
	)
	return g, err
}

// SaveGoal persists a new goal.
func (r *PgxGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	query := `
		INSERT INTO goals (goal_id, user_id, name, target_amount, target_date, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		goal.GoalID,
		goal.UserID,
		goal.Name,
		goal.TargetAmount,
		goal.TargetDate,
		goal.CreatedAt,
		goal.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save goal "+goal.GoalID, mapPgError(err))
	}
	return nil
}

// FindGoalByID retrieves a goal with its contributed sum.
func (r *PgxGoalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	query := goalWithContributed + `
		WHERE g.goal_id = $1
		GROUP BY g.goal_id;
	`
	g, err := scanGoal(r.Pool.QueryRow(ctx, query, goalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("goal %s: %w", goalID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find goal "+goalID, mapPgError(err))
	}
	return &g, nil
}

// ListGoalsByUser retrieves a user's goals with contributed sums, ordered by
// target date ascending.
func (r *PgxGoalRepository) ListGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	query := goalWithContributed + `
		WHERE g.user_id = $1
		GROUP BY g.goal_id
		ORDER BY g.target_date ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list goals for user "+userID, mapPgError(err))
	}
	defer rows.Close()

	goals := make([]domain.Goal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan goal row", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating goal rows", mapPgError(err))
	}
	return goals, nil
}

// UpdateGoal updates name, target amount and target date.
func (r *PgxGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	query := `
		UPDATE goals
		SET name = $2, target_amount = $3, target_date = $4, last_updated_at = $5
		WHERE goal_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, goal.GoalID, goal.Name, goal.TargetAmount, goal.TargetDate, goal.LastUpdatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update goal "+goal.GoalID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("goal %s: %w", goal.GoalID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteGoal removes a goal. Contributing transactions keep their rows; the
// FK ON DELETE SET NULL clears their goal reference.
func (r *PgxGoalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM goals WHERE goal_id = $1;`, goalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete goal "+goalID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("goal %s: %w", goalID, apperrors.ErrNotFound)
	}
	return nil
}
