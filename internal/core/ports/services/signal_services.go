package services

import (
	"context"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
)

// InsightSvcFacade exposes read access to the derived signals the pipeline
// produces: budget alerts, recommendations and the audit trail.
type InsightSvcFacade interface {
	ListAlerts(ctx context.Context, userID string, limit int) ([]domain.BudgetAlert, error)
	ListRecommendations(ctx context.Context, userID string, limit int) ([]domain.Recommendation, error)
	ListAuditLogs(ctx context.Context, userID string, limit int) ([]domain.AuditLog, error)
}
