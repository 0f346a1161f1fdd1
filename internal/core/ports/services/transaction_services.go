package services

import (
	"context"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// TransactionSvcFacade is the transaction mutation pipeline. Each mutation is
// one atomic unit of work: balance reconciliation, audit append, budget
// evaluation and (create only) low-balance evaluation commit together or not
// at all. The returned alert/recommendation slices hold what the mutation's
// own evaluation emitted.
type TransactionSvcFacade interface {
	// CreateTransaction validates and persists a new transaction, applies its
	// signed delta to the account and runs the derived-signal evaluations.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, []domain.BudgetAlert, []domain.Recommendation, error)

	// UpdateTransaction reverses the old row's impact, applies the new shape
	// and evaluates the budget on the new (user, category, ts) only.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, []domain.BudgetAlert, error)

	// DeleteTransaction reverses the row's impact and removes it.
	DeleteTransaction(ctx context.Context, transactionID string) ([]domain.BudgetAlert, error)

	// GetTransactionByID retrieves a single transaction.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListRecentTransactions retrieves a user's latest transactions by event time.
	ListRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)

	// GetAccountBalance reads the current balance of an account.
	GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}
