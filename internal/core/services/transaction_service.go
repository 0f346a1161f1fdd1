package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
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

// transactionService is the transaction mutation pipeline. Every lifecycle
// transition (create, update, delete) runs as one unit of work: the ledger
// delta, the row mutation, the audit append and the derived-signal evaluations
// commit together or roll back together.
type transactionService struct {
	txManager portsrepo.TransactionManager
	txnReader portsrepo.TransactionReader
	accounts  portsrepo.AccountReader
	evaluator *BudgetEvaluator
	recEngine *RecommendationEngine
	auditor   *AuditRecorder
}

// NewTransactionService creates the mutation pipeline service.
func NewTransactionService(txManager portsrepo.TransactionManager, txnReader portsrepo.TransactionReader, accounts portsrepo.AccountReader) portssvc.TransactionSvcFacade {
	return &transactionService{
		txManager: txManager,
		txnReader: txnReader,
		accounts:  accounts,
		evaluator: NewBudgetEvaluator(),
		recEngine: NewRecommendationEngine(),
		auditor:   NewAuditRecorder(),
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// validateAmount rejects non-positive amounts before any mutation begins.
func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: transaction amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}
	return nil
}

// validateType rejects transaction types outside {debit, credit}.
func validateType(t domain.TransactionType) error {
	if t != domain.Debit && t != domain.Credit {
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, t)
	}
	return nil
}

// CreateTransaction applies the new row's signed delta to its account, records
// a create audit entry, evaluates the budget for the row's (user, category, ts)
// and checks the account for a low balance — all inside one unit of work.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, []domain.BudgetAlert, []domain.Recommendation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, nil, nil, err
	}
	if err := validateType(req.Type); err != nil {
		return nil, nil, nil, err
	}
	if req.Timestamp.IsZero() {
		return nil, nil, nil, fmt.Errorf("%w: transaction timestamp is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        req.UserID,
		AccountID:     req.AccountID,
		Amount:        req.Amount,
		Type:          req.Type,
		Category:      req.Category,
		Merchant:      req.Merchant,
		Notes:         req.Notes,
		GoalID:        req.GoalID,
		Timestamp:     req.Timestamp.UTC(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	var alerts []domain.BudgetAlert
	var recs []domain.Recommendation

	err := s.txManager.WithTx(ctx, func(tx portsrepo.LedgerTx) error {
		accounts, err := tx.FindAccountsForUpdate(ctx, []string{txn.AccountID})
		if err != nil {
			return err
		}
		account := accounts[txn.AccountID]
		if account.UserID != txn.UserID {
			return fmt.Errorf("%w: account %s does not belong to user %s", apperrors.ErrValidation, txn.AccountID, txn.UserID)
		}

		newBalance, err := tx.ApplyBalanceDelta(ctx, txn.AccountID, txn.SignedDelta(), now)
		if err != nil {
			return err
		}

		if err := tx.InsertTransaction(ctx, txn); err != nil {
			return err
		}

		if err := s.auditor.Record(ctx, tx, &txn.UserID, domain.ActionCreate, "transaction", txn.TransactionID, transactionShape(txn), now); err != nil {
			return err
		}

		alert, err := s.evaluator.Evaluate(ctx, tx, txn.UserID, txn.Category, txn.Timestamp, now)
		if err != nil {
			return err
		}
		if alert != nil {
			alerts = append(alerts, *alert)
		}

		rec, err := s.recEngine.EvaluateLowBalance(ctx, tx, account, newBalance, now)
		if err != nil {
			return err
		}
		if rec != nil {
			recs = append(recs, *rec)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to create transaction", slog.String("account_id", req.AccountID), slog.String("error", err.Error()))
		return nil, nil, nil, err
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID),
		slog.Int("alerts", len(alerts)),
		slog.Int("recommendations", len(recs)))
	return &txn, alerts, recs, nil
}

// UpdateTransaction first reverses the OLD row's impact using its old account,
// type and amount, then applies the NEW shape. The budget is re-evaluated for
// the NEW (user, category, ts) only; the old category's window is not
// re-checked after the transaction moves out of it.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, []domain.BudgetAlert, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, nil, err
	}
	if err := validateType(req.Type); err != nil {
		return nil, nil, err
	}
	if req.Timestamp.IsZero() {
		return nil, nil, fmt.Errorf("%w: transaction timestamp is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	var updated domain.Transaction
	var alerts []domain.BudgetAlert

	err := s.txManager.WithTx(ctx, func(tx portsrepo.LedgerTx) error {
		oldTxn, err := tx.FindTransactionByID(ctx, transactionID)
		if err != nil {
			return err
		}

		updated = domain.Transaction{
			TransactionID: oldTxn.TransactionID,
			UserID:        oldTxn.UserID,
			AccountID:     req.AccountID,
			Amount:        req.Amount,
			Type:          req.Type,
			Category:      req.Category,
			Merchant:      req.Merchant,
			Notes:         req.Notes,
			GoalID:        req.GoalID,
			Timestamp:     req.Timestamp.UTC(),
			AuditFields: domain.AuditFields{
				CreatedAt:     oldTxn.CreatedAt,
				LastUpdatedAt: now,
			},
		}

		// One locking call with a deterministic ID order covers the
		// move-between-accounts case without deadlocking against a concurrent
		// update moving the other way.
		accountIDs := uniqueSorted([]string{oldTxn.AccountID, updated.AccountID})
		accounts, err := tx.FindAccountsForUpdate(ctx, accountIDs)
		if err != nil {
			return err
		}
		if accounts[updated.AccountID].UserID != updated.UserID {
			return fmt.Errorf("%w: account %s does not belong to user %s", apperrors.ErrValidation, updated.AccountID, updated.UserID)
		}

		if _, err := tx.ApplyBalanceDelta(ctx, oldTxn.AccountID, oldTxn.SignedDelta().Neg(), now); err != nil {
			return err
		}
		if _, err := tx.ApplyBalanceDelta(ctx, updated.AccountID, updated.SignedDelta(), now); err != nil {
			return err
		}

		if err := tx.UpdateTransaction(ctx, updated); err != nil {
			return err
		}

		details := fmt.Sprintf("old[%s] new[%s]", transactionShape(*oldTxn), transactionShape(updated))
		if err := s.auditor.Record(ctx, tx, &updated.UserID, domain.ActionUpdate, "transaction", updated.TransactionID, details, now); err != nil {
			return err
		}

		alert, err := s.evaluator.Evaluate(ctx, tx, updated.UserID, updated.Category, updated.Timestamp, now)
		if err != nil {
			return err
		}
		if alert != nil {
			alerts = append(alerts, *alert)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to update transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, nil, err
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID), slog.Int("alerts", len(alerts)))
	return &updated, alerts, nil
}

// DeleteTransaction reverses the row's impact using its own final account,
// type and amount, removes the row, and evaluates the budget for the deleted
// row's (user, category, ts) so the freed-up window is re-checked.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) ([]domain.BudgetAlert, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	var alerts []domain.BudgetAlert

	err := s.txManager.WithTx(ctx, func(tx portsrepo.LedgerTx) error {
		txn, err := tx.FindTransactionByID(ctx, transactionID)
		if err != nil {
			return err
		}

		if _, err := tx.FindAccountsForUpdate(ctx, []string{txn.AccountID}); err != nil {
			return err
		}
		if _, err := tx.ApplyBalanceDelta(ctx, txn.AccountID, txn.SignedDelta().Neg(), now); err != nil {
			return err
		}

		if err := tx.DeleteTransaction(ctx, txn.TransactionID); err != nil {
			return err
		}

		if err := s.auditor.Record(ctx, tx, &txn.UserID, domain.ActionDelete, "transaction", txn.TransactionID, transactionShape(*txn), now); err != nil {
			return err
		}

		alert, err := s.evaluator.Evaluate(ctx, tx, txn.UserID, txn.Category, txn.Timestamp, now)
		if err != nil {
			return err
		}
		if alert != nil {
			alerts = append(alerts, *alert)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID), slog.Int("alerts", len(alerts)))
	return alerts, nil
}

// GetTransactionByID retrieves a single transaction row.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnReader.FindTransactionByID(ctx, transactionID)
}

// ListRecentTransactions retrieves a user's latest transactions by event time.
func (s *transactionService) ListRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.txnReader.ListRecentTransactions(ctx, userID, limit)
}

// GetAccountBalance reads the current balance of an account.
func (s *transactionService) GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.accounts.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// uniqueSorted deduplicates and sorts a small slice of IDs.
func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			result = append(result, id)
		}
	}
	sort.Strings(result)
	return result
}
