package repositories

import (
	"context"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccountsByUser retrieves all accounts owned by a user, oldest first.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data. Balance is never
// written through this interface; only the ledger mutates it.
type AccountWriter interface {
	// SaveAccount persists a new account, including its opening balance.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountDetails updates name and low-balance threshold.
	UpdateAccountDetails(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account and, via FK cascades, its transactions.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
