package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrack-io/fintrack_backend/internal/utils/period"
)

// warnRatio is the fraction of the budget limit at which a warning alert
// starts firing.
var warnRatio = decimal.New(8, -1) // 0.8

// periodPriority is the documented tie-break order: when both a monthly and a
// weekly budget match a (user, category, date), the monthly one wins and a
// single evaluation raises at most one alert.
var periodPriority = []domain.BudgetPeriod{domain.Monthly, domain.Weekly}

// BudgetEvaluator checks the spend of a (user, category) against the budget
// instance whose window contains a reference time, appending a fresh alert row
// for every qualifying call. There is deliberately no suppression of repeat
// alerts for the same budget and period.
type BudgetEvaluator struct{}

// NewBudgetEvaluator creates a BudgetEvaluator.
func NewBudgetEvaluator() *BudgetEvaluator {
	return &BudgetEvaluator{}
}

// Evaluate runs one budget evaluation inside the caller's unit of work. It
// returns the emitted alert, or nil when no budget matches or the spend is
// under the warning threshold (or exactly at the limit, which emits nothing).
func (e *BudgetEvaluator) Evaluate(ctx context.Context, tx portsrepo.LedgerTx, userID, category string, ref time.Time, now time.Time) (*domain.BudgetAlert, error) {
	for _, kind := range periodPriority {
		start, err := period.Start(ref, kind)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}

		budget, err := tx.FindBudgetInstance(ctx, userID, category, kind, start)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to look up %s budget for %s: %w", kind, category, err)
		}

		end, err := period.End(budget.StartDate, kind)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}

		spend, err := tx.SumCategoryDebits(ctx, userID, category, budget.StartDate, end)
		if err != nil {
			return nil, fmt.Errorf("failed to sum spend for category %s: %w", category, err)
		}

		level, message := classifySpend(budget, spend)
		if level == "" {
			return nil, nil
		}

		alert := domain.BudgetAlert{
			AlertID:   uuid.NewString(),
			UserID:    userID,
			BudgetID:  budget.BudgetID,
			Level:     level,
			Message:   message,
			CreatedAt: now,
		}
		if err := tx.InsertBudgetAlert(ctx, alert); err != nil {
			return nil, fmt.Errorf("failed to insert budget alert: %w", err)
		}
		return &alert, nil
	}

	// No matching budget instance: evaluation is a no-op, not an error.
	return nil, nil
}

// classifySpend applies the threshold rules. Warning covers
// [0.8*limit, limit); anything strictly over the limit is limit_exceeded;
// spend exactly equal to the limit emits neither.
func classifySpend(budget *domain.Budget, spend decimal.Decimal) (domain.AlertLevel, string) {
	limit := budget.LimitAmount
	switch {
	case spend.GreaterThan(limit):
		return domain.LevelLimitExceeded, fmt.Sprintf(
			"Spending for %s is %s, over the %s budget limit of %s (period starting %s)",
			budget.Category, spend.StringFixed(2), budget.Period,
			limit.StringFixed(2), budget.StartDate.Format("2006-01-02"))
	case spend.GreaterThanOrEqual(limit.Mul(warnRatio)) && spend.LessThan(limit):
		return domain.LevelWarning, fmt.Sprintf(
			"Spending for %s reached %s of the %s budget limit of %s (period starting %s)",
			budget.Category, spend.StringFixed(2), budget.Period,
			limit.StringFixed(2), budget.StartDate.Format("2006-01-02"))
	default:
		return "", ""
	}
}
