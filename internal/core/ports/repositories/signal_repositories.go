package repositories

import (
	"context"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
)

// AlertReader lists budget alerts. Alerts are append-only and written solely
// through LedgerTx, so there is no writer interface here.
type AlertReader interface {
	// ListAlertsByUser retrieves a user's alerts, newest first, capped at limit.
	ListAlertsByUser(ctx context.Context, userID string, limit int) ([]domain.BudgetAlert, error)
}

// RecommendationReader lists recommendations (append-only, written via LedgerTx).
type RecommendationReader interface {
	// ListRecommendationsByUser retrieves a user's recommendations, newest
	// first, capped at limit.
	ListRecommendationsByUser(ctx context.Context, userID string, limit int) ([]domain.Recommendation, error)
}

// AuditReader lists audit log entries (append-only, written via LedgerTx).
type AuditReader interface {
	// ListAuditLogsByUser retrieves a user's audit entries, newest first,
	// capped at limit.
	ListAuditLogsByUser(ctx context.Context, userID string, limit int) ([]domain.AuditLog, error)
}
