package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
)

// PgxSignalRepository serves reads of the append-only side channels: budget
// alerts, recommendations and the audit log. All three are written only
// inside ledger units of work, so this repository is read-only.
type PgxSignalRepository struct {
	BaseRepository
}

// newPgxSignalRepository creates a new read-side repository for alerts,
// recommendations and audit entries.
func newPgxSignalRepository(pool *pgxpool.Pool) *PgxSignalRepository {
	return &PgxSignalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interfaces
var (
	_ portsrepo.AlertReader          = (*PgxSignalRepository)(nil)
	_ portsrepo.RecommendationReader = (*PgxSignalRepository)(nil)
	_ portsrepo.AuditReader          = (*PgxSignalRepository)(nil)
)

// ListAlertsByUser retrieves a user's budget alerts, newest first.
func (r *PgxSignalRepository) ListAlertsByUser(ctx context.Context, userID string, limit int) ([]domain.BudgetAlert, error) {
	query := `
		SELECT alert_id, user_id, budget_id, level, message, created_at
		FROM budget_alerts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list alerts for user "+userID, mapPgError(err))
	}
	defer rows.Close()

	alerts := make([]domain.BudgetAlert, 0)
	for rows.Next() {
		var a domain.BudgetAlert
		if err := rows.Scan(&a.AlertID, &a.UserID, &a.BudgetID, &a.Level, &a.Message, &a.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan alert row", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating alert rows", mapPgError(err))
	}
	return alerts, nil
}

// ListRecommendationsByUser retrieves a user's recommendations, newest first.
func (r *PgxSignalRepository) ListRecommendationsByUser(ctx context.Context, userID string, limit int) ([]domain.Recommendation, error) {
	query := `
		SELECT recommendation_id, user_id, type, message, created_at
		FROM recommendations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list recommendations for user "+userID, mapPgError(err))
	}
	defer rows.Close()

	recs := make([]domain.Recommendation, 0)
	for rows.Next() {
		var rec domain.Recommendation
		if err := rows.Scan(&rec.RecommendationID, &rec.UserID, &rec.Type, &rec.Message, &rec.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan recommendation row", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating recommendation rows", mapPgError(err))
	}
	return recs, nil
}

// ListAuditLogsByUser retrieves a user's audit entries, newest first.
func (r *PgxSignalRepository) ListAuditLogsByUser(ctx context.Context, userID string, limit int) ([]domain.AuditLog, error) {
	query := `
		SELECT audit_id, user_id, action, entity_name, entity_id, details, created_at
		FROM audit_log
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list audit entries for user "+userID, mapPgError(err))
	}
	defer rows.Close()

	entries := make([]domain.AuditLog, 0)
	for rows.Next() {
		var e domain.AuditLog
		if err := rows.Scan(&e.AuditID, &e.UserID, &e.Action, &e.EntityName, &e.EntityID, &e.Details, &e.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit rows", mapPgError(err))
	}
	return entries, nil
}
