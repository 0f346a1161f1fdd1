package repositories

import (
	"context"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
)

// TransactionReader defines read operations for transaction data outside the
// mutation pipeline. All writes go through LedgerTx.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction row.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListRecentTransactions retrieves a user's transactions ordered by event
	// time descending, capped at limit.
	ListRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)
}
