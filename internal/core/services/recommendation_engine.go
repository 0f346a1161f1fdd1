package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
)

// RecommendationEngine inspects post-mutation account state and appends
// advisory records. Like budget alerts, recommendations are append-only and
// never deduplicated: every qualifying evaluation inserts a fresh row.
type RecommendationEngine struct{}

// NewRecommendationEngine creates a RecommendationEngine.
func NewRecommendationEngine() *RecommendationEngine {
	return &RecommendationEngine{}
}

// EvaluateLowBalance emits a low_balance recommendation when the account's
// balance after the owning mutation is strictly below its threshold. Runs
// inside the caller's unit of work; balance is the just-applied new balance so
// the notice never reflects a stale window.
func (e *RecommendationEngine) EvaluateLowBalance(ctx context.Context, tx portsrepo.LedgerTx, account domain.Account, balance decimal.Decimal, now time.Time) (*domain.Recommendation, error) {
	if balance.GreaterThanOrEqual(account.LowBalanceThreshold) {
		return nil, nil
	}

	rec := domain.Recommendation{
		RecommendationID: uuid.NewString(),
		UserID:           account.UserID,
		Type:             domain.LowBalance,
		Message: fmt.Sprintf("Balance for account %s dropped to %s, below your low-balance threshold of %s",
			account.Name, balance.StringFixed(2), account.LowBalanceThreshold.StringFixed(2)),
		CreatedAt: now,
	}
	if err := tx.InsertRecommendation(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to insert recommendation: %w", err)
	}
	return &rec, nil
}
