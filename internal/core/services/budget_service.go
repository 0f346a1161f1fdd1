package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/middleware"
	"github.com/fintrack-io/fintrack_backend/internal/utils/period"
)

// budgetService provides budget CRUD and progress reads.
type budgetService struct {
	budgetRepo portsrepo.BudgetRepositoryFacade
	userRepo   portsrepo.UserReader
}

// NewBudgetService creates a new budget service.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, userRepo portsrepo.UserReader) portssvc.BudgetSvcFacade {
	return &budgetService{budgetRepo: budgetRepo, userRepo: userRepo}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.LimitAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: budget limit must be positive", apperrors.ErrValidation)
	}
	if _, err := s.userRepo.FindUserByID(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("failed to resolve owner %s: %w", req.UserID, err)
	}

	// The anchor must be a real period boundary, otherwise evaluation could
	// never match this instance against a computed period start.
	anchor, err := period.Start(req.StartDate, req.Period)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if !anchor.Equal(req.StartDate.UTC().Truncate(24 * time.Hour)) {
		return nil, fmt.Errorf("%w: start date %s is not a %s period boundary (expected %s)",
			apperrors.ErrValidation, req.StartDate.Format("2006-01-02"), req.Period, anchor.Format("2006-01-02"))
	}

	now := time.Now().UTC()
	budget := domain.Budget{
		BudgetID:    uuid.NewString(),
		UserID:      req.UserID,
		Category:    req.Category,
		Period:      req.Period,
		LimitAmount: req.LimitAmount,
		StartDate:   anchor,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		logger.Error("Failed to save budget", slog.String("category", req.Category), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID), slog.String("category", budget.Category), slog.String("period", string(budget.Period)))
	return &budget, nil
}

func (s *budgetService) GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	return s.budgetRepo.FindBudgetByID(ctx, budgetID)
}

// ListBudgetsWithProgress returns each budget with its derived window end and
// the debit spend inside the half-open window [start, end).
func (s *budgetService) ListBudgetsWithProgress(ctx context.Context, userID string) ([]dto.BudgetProgressResponse, error) {
	budgets, err := s.budgetRepo.ListBudgetsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	result := make([]dto.BudgetProgressResponse, 0, len(budgets))
	for i := range budgets {
		b := &budgets[i]
		end, err := period.End(b.StartDate, b.Period)
		if err != nil {
			return nil, fmt.Errorf("budget %s has invalid period: %w", b.BudgetID, err)
		}
		spent, err := s.budgetRepo.SumCategoryDebits(ctx, b.UserID, b.Category, b.StartDate, end)
		if err != nil {
			return nil, fmt.Errorf("failed to sum spend for budget %s: %w", b.BudgetID, err)
		}
		result = append(result, dto.BudgetProgressResponse{
			BudgetResponse: dto.ToBudgetResponse(b),
			EndDate:        end,
			Spent:          spent,
		})
	}
	return result, nil
}

func (s *budgetService) UpdateBudgetLimit(ctx context.Context, budgetID string, limit decimal.Decimal) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if limit.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: budget limit must be positive", apperrors.ErrValidation)
	}

	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.budgetRepo.UpdateBudgetLimit(ctx, budgetID, limit, now); err != nil {
		logger.Error("Failed to update budget limit", slog.String("budget_id", budgetID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update budget limit: %w", err)
	}

	budget.LimitAmount = limit
	budget.LastUpdatedAt = now
	logger.Info("Budget limit updated", slog.String("budget_id", budgetID), slog.String("limit", limit.StringFixed(2)))
	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, budgetID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.budgetRepo.FindBudgetByID(ctx, budgetID); err != nil {
		return err
	}
	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		logger.Error("Failed to delete budget", slog.String("budget_id", budgetID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	logger.Info("Budget deleted", slog.String("budget_id", budgetID))
	return nil
}
