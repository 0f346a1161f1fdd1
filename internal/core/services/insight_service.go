package services

import (
	"context"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
)

// insightService exposes the derived signals the pipeline produces.
type insightService struct {
	alertRepo portsrepo.AlertReader
	recRepo   portsrepo.RecommendationReader
	auditRepo portsrepo.AuditReader
}

// NewInsightService creates a new insight service.
func NewInsightService(alertRepo portsrepo.AlertReader, recRepo portsrepo.RecommendationReader, auditRepo portsrepo.AuditReader) portssvc.InsightSvcFacade {
	return &insightService{alertRepo: alertRepo, recRepo: recRepo, auditRepo: auditRepo}
}

var _ portssvc.InsightSvcFacade = (*insightService)(nil)

func (s *insightService) ListAlerts(ctx context.Context, userID string, limit int) ([]domain.BudgetAlert, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.alertRepo.ListAlertsByUser(ctx, userID, limit)
}

func (s *insightService) ListRecommendations(ctx context.Context, userID string, limit int) ([]domain.Recommendation, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.recRepo.ListRecommendationsByUser(ctx, userID, limit)
}

func (s *insightService) ListAuditLogs(ctx context.Context, userID string, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.auditRepo.ListAuditLogsByUser(ctx, userID, limit)
}
