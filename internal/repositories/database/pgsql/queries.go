package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
)

// Query helpers shared between the pool-bound repositories and the tx-bound
// ledger facade. Each takes a querier so the same SQL runs in both contexts.

func scanAccount(row pgx.Row) (domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.AccountID,
		&acc.UserID,
		&acc.Name,
		&acc.AccountType,
		&acc.Balance,
		&acc.LowBalanceThreshold,
		&acc.CreatedAt,
		&acc.LastUpdatedAt,
	)
	return acc, err
}

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var txn domain.Transaction
	var merchant, notes *string
	err := row.Scan(
		&txn.TransactionID,
		&txn.UserID,
		&txn.AccountID,
		&txn.Amount,
		&txn.Type,
		&txn.Category,
		&merchant,
		&notes,
		&txn.GoalID,
		&txn.Timestamp,
		&txn.CreatedAt,
		&txn.LastUpdatedAt,
	)
	if merchant != nil {
		txn.Merchant = *merchant
	}
	if notes != nil {
		txn.Notes = *notes
	}
	return txn, err
}

func scanBudget(row pgx.Row) (domain.Budget, error) {
	var b domain.Budget
	err := row.Scan(
		&b.BudgetID,
		&b.UserID,
		&b.Category,
		&b.Period,
		&b.LimitAmount,
		&b.StartDate,
		&b.CreatedAt,
		&b.LastUpdatedAt,
	)
	return b, err
}

const transactionColumns = `transaction_id, user_id, account_id, amount, tx_type, category, merchant, notes, goal_id, ts, created_at, last_updated_at`

func findTransactionByID(ctx context.Context, q querier, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(q.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, mapPgError(err))
	}
	return &txn, nil
}

const budgetColumns = `budget_id, user_id, category, period, limit_amount, start_date, created_at, last_updated_at`

func findBudgetInstance(ctx context.Context, q querier, userID, category string, p domain.BudgetPeriod, startDate time.Time) (*domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1 AND category = $2 AND period = $3 AND start_date = $4;
	`
	b, err := scanBudget(q.QueryRow(ctx, query, userID, category, p, startDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find budget instance", mapPgError(err))
	}
	return &b, nil
}

func sumCategoryDebits(ctx context.Context, q querier, userID, category string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND category = $2 AND tx_type = $3 AND ts >= $4 AND ts < $5;
	`
	var sum decimal.Decimal
	if err := q.QueryRow(ctx, query, userID, category, domain.Debit, from, to).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum category debits", mapPgError(err))
	}
	return sum, nil
}
