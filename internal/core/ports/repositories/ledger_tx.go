package repositories

import (
	"context"
	"time"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerTx is the tx-bound repository facade handed to the transaction
// mutation pipeline. Every method runs on the same underlying database
// transaction, so the ledger delta, the row mutation, the audit append and the
// evaluation reads/writes of one mutation commit or roll back as one unit.
//
// Keeping the unit of work behind this interface (instead of passing pgx.Tx
// around) makes the atomic scope explicit and lets tests drive the pipeline
// against an in-memory implementation.
type LedgerTx interface {
	// FindAccountsForUpdate locks the given account rows for the remainder of
	// the unit of work and returns them keyed by ID. Locking all involved
	// accounts in one call keeps lock order deterministic. Returns ErrNotFound
	// if any account is missing.
	FindAccountsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceDelta adds the signed delta to a previously locked account's
	// balance and returns the new balance.
	ApplyBalanceDelta(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) (decimal.Decimal, error)

	// FindTransactionByID retrieves a transaction row.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// InsertTransaction persists a new transaction row.
	InsertTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction overwrites an existing transaction row.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction row.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// FindBudgetInstance looks up the budget row matching the exact
	// (user, category, period, start_date) tuple. ErrNotFound when absent.
	FindBudgetInstance(ctx context.Context, userID, category string, p domain.BudgetPeriod, startDate time.Time) (*domain.Budget, error)

	// SumCategoryDebits sums the amounts of all debit transactions for
	// (user, category) with event time in the half-open window [from, to).
	SumCategoryDebits(ctx context.Context, userID, category string, from, to time.Time) (decimal.Decimal, error)

	// InsertBudgetAlert appends a budget alert row.
	InsertBudgetAlert(ctx context.Context, alert domain.BudgetAlert) error

	// InsertRecommendation appends a recommendation row.
	InsertRecommendation(ctx context.Context, rec domain.Recommendation) error

	// InsertAuditLog appends an audit log row.
	InsertAuditLog(ctx context.Context, entry domain.AuditLog) error
}

// TransactionManager runs a function inside one database transaction. The
// LedgerTx passed to fn is only valid until fn returns; the transaction
// commits when fn returns nil and rolls back otherwise. Lock and serialization
// conflicts surface as apperrors.ErrContention.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(tx LedgerTx) error) error
}
