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
)

// goalService provides goal CRUD. Contributions delegate to the transaction
// pipeline so they reconcile, audit and evaluate like any other mutation.
type goalService struct {
	goalRepo portsrepo.GoalRepositoryFacade
	userRepo portsrepo.UserReader
	txnSvc   portssvc.TransactionSvcFacade
}

// NewGoalService creates a new goal service.
func NewGoalService(goalRepo portsrepo.GoalRepositoryFacade, userRepo portsrepo.UserReader, txnSvc portssvc.TransactionSvcFacade) portssvc.GoalSvcFacade {
	return &goalService{goalRepo: goalRepo, userRepo: userRepo, txnSvc: txnSvc}
}

var _ portssvc.GoalSvcFacade = (*goalService)(nil)

func (s *goalService) CreateGoal(ctx context.Context, req dto.CreateGoalRequest) (*domain.Goal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: goal target amount must be positive", apperrors.ErrValidation)
	}
	if _, err := s.userRepo.FindUserByID(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("failed to resolve owner %s: %w", req.UserID, err)
	}

	now := time.Now().UTC()
	goal := domain.Goal{
		GoalID:       uuid.NewString(),
		UserID:       req.UserID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		TargetDate:   req.TargetDate.UTC(),
		Contributed:  decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		logger.Error("Failed to save goal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save goal: %w", err)
	}

	logger.Info("Goal created", slog.String("goal_id", goal.GoalID), slog.String("user_id", goal.UserID))
	return &goal, nil
}

func (s *goalService) GetGoalByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	return s.goalRepo.FindGoalByID(ctx, goalID)
}

func (s *goalService) ListGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	return s.goalRepo.ListGoalsByUser(ctx, userID)
}

func (s *goalService) UpdateGoal(ctx context.Context, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: goal target amount must be positive", apperrors.ErrValidation)
	}

	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	goal.Name = req.Name
	goal.TargetAmount = req.TargetAmount
	goal.TargetDate = req.TargetDate.UTC()
	goal.LastUpdatedAt = time.Now().UTC()

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		logger.Error("Failed to update goal", slog.String("goal_id", goalID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	logger.Info("Goal updated", slog.String("goal_id", goalID))
	return goal, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, goalID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.goalRepo.FindGoalByID(ctx, goalID); err != nil {
		return err
	}
	if err := s.goalRepo.DeleteGoal(ctx, goalID); err != nil {
		logger.Error("Failed to delete goal", slog.String("goal_id", goalID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	logger.Info("Goal deleted", slog.String("goal_id", goalID))
	return nil
}

// ContributeToGoal credits the account with a "Goal Savings" transaction tied
// to the goal. The event time is the contribution time.
func (s *goalService) ContributeToGoal(ctx context.Context, goalID string, req dto.ContributeToGoalRequest) (*domain.Transaction, []domain.Recommendation, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		return nil, nil, err
	}

	txn, _, recs, err := s.txnSvc.CreateTransaction(ctx, dto.CreateTransactionRequest{
		UserID:    goal.UserID,
		AccountID: req.AccountID,
		Amount:    req.Amount,
		Type:      domain.Credit,
		Category:  domain.GoalSavingsCategory,
		Notes:     req.Notes,
		GoalID:    &goal.GoalID,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return nil, nil, err
	}
	return txn, recs, nil
}
