package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
)

// PgxTransactionManager runs ledger units of work on a pgx pool. Each unit is
// one database transaction with a bounded lock wait, so a mutation stuck
// behind another account holder surfaces ErrContention instead of blocking
// indefinitely.
type PgxTransactionManager struct {
	BaseRepository
	lockTimeout time.Duration
}

// NewTransactionManager creates a transaction manager with the given lock
// wait bound. A non-positive timeout falls back to three seconds.
func NewTransactionManager(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.TransactionManager {
	if lockTimeout <= 0 {
		lockTimeout = 3 * time.Second
	}
	return &PgxTransactionManager{
		BaseRepository: BaseRepository{Pool: pool},
		lockTimeout:    lockTimeout,
	}
}

var _ portsrepo.TransactionManager = (*PgxTransactionManager)(nil)

// WithTx begins a transaction, hands a tx-bound LedgerTx to fn, and commits
// when fn returns nil. Any error rolls the whole unit back; Postgres
// contention codes are mapped to apperrors.ErrContention.
func (m *PgxTransactionManager) WithTx(ctx context.Context, fn func(tx portsrepo.LedgerTx) error) error {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer m.Rollback(ctx, tx) // No-op once the transaction is committed.

	// Bound the wait on row locks so two mutations contending on one account
	// fail fast rather than queueing without limit.
	timeoutMs := m.lockTimeout.Milliseconds()
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", timeoutMs)); err != nil {
		return apperrors.NewAppError(500, "failed to set lock timeout", err)
	}

	if err := fn(&pgxLedgerTx{tx: tx}); err != nil {
		return mapPgError(err)
	}

	return m.Commit(ctx, tx)
}

// pgxLedgerTx implements the LedgerTx facade over one pgx transaction.
type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

// FindAccountsForUpdate locks the account rows with FOR UPDATE. Locking the
// whole set in one statement keeps lock acquisition order consistent across
// concurrent mutations touching the same accounts.
func (l *pgxLedgerTx) FindAccountsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	query := `
		SELECT account_id, user_id, name, account_type, balance, low_balance_threshold, created_at, last_updated_at
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := l.tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock accounts for update", mapPgError(err))
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked account row", err)
		}
		accounts[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked account rows", mapPgError(err))
	}

	for _, id := range accountIDs {
		if _, ok := accounts[id]; !ok {
			return nil, fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
		}
	}
	return accounts, nil
}

// ApplyBalanceDelta adds the signed delta to a locked account's balance.
func (l *pgxLedgerTx) ApplyBalanceDelta(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3
		WHERE account_id = $1
		RETURNING balance;
	`
	var newBalance decimal.Decimal
	err := l.tx.QueryRow(ctx, query, accountID, delta, now).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to apply balance delta to account "+accountID, mapPgError(err))
	}
	return newBalance, nil
}

func (l *pgxLedgerTx) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return findTransactionByID(ctx, l.tx, transactionID)
}

func (l *pgxLedgerTx) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, user_id, account_id, amount, tx_type, category, merchant, notes, goal_id, ts, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := l.tx.Exec(ctx, query,
		txn.TransactionID,
		txn.UserID,
		txn.AccountID,
		txn.Amount,
		txn.Type,
		txn.Category,
		nullableString(txn.Merchant),
		nullableString(txn.Notes),
		txn.GoalID,
		txn.Timestamp,
		txn.CreatedAt,
		txn.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+txn.TransactionID, mapPgError(err))
	}
	return nil
}

func (l *pgxLedgerTx) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		UPDATE transactions
		SET account_id = $2, amount = $3, tx_type = $4, category = $5, merchant = $6, notes = $7, goal_id = $8, ts = $9, last_updated_at = $10
		WHERE transaction_id = $1;
	`
	tag, err := l.tx.Exec(ctx, query,
		txn.TransactionID,
		txn.AccountID,
		txn.Amount,
		txn.Type,
		txn.Category,
		nullableString(txn.Merchant),
		nullableString(txn.Notes),
		txn.GoalID,
		txn.Timestamp,
		txn.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+txn.TransactionID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", txn.TransactionID, apperrors.ErrNotFound)
	}
	return nil
}

func (l *pgxLedgerTx) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := l.tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return nil
}

func (l *pgxLedgerTx) FindBudgetInstance(ctx context.Context, userID, category string, p domain.BudgetPeriod, startDate time.Time) (*domain.Budget, error) {
	return findBudgetInstance(ctx, l.tx, userID, category, p, startDate)
}

func (l *pgxLedgerTx) SumCategoryDebits(ctx context.Context, userID, category string, from, to time.Time) (decimal.Decimal, error) {
	return sumCategoryDebits(ctx, l.tx, userID, category, from, to)
}

func (l *pgxLedgerTx) InsertBudgetAlert(ctx context.Context, alert domain.BudgetAlert) error {
	query := `
		INSERT INTO budget_alerts (alert_id, user_id, budget_id, level, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := l.tx.Exec(ctx, query, alert.AlertID, alert.UserID, alert.BudgetID, alert.Level, alert.Message, alert.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert budget alert "+alert.AlertID, mapPgError(err))
	}
	return nil
}

func (l *pgxLedgerTx) InsertRecommendation(ctx context.Context, rec domain.Recommendation) error {
	query := `
		INSERT INTO recommendations (recommendation_id, user_id, type, message, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := l.tx.Exec(ctx, query, rec.RecommendationID, rec.UserID, rec.Type, rec.Message, rec.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert recommendation "+rec.RecommendationID, mapPgError(err))
	}
	return nil
}

func (l *pgxLedgerTx) InsertAuditLog(ctx context.Context, entry domain.AuditLog) error {
	query := `
		INSERT INTO audit_log (audit_id, user_id, action, entity_name, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := l.tx.Exec(ctx, query, entry.AuditID, entry.UserID, entry.Action, entry.EntityName, entry.EntityID, entry.Details, entry.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit entry "+entry.AuditID, mapPgError(err))
	}
	return nil
}

// nullableString maps an empty string to NULL for optional text columns.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
