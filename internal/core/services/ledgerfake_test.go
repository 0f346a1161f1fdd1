package services_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
)

// ledgerState is the in-memory database backing the fake unit of work.
type ledgerState struct {
	accounts     map[string]domain.Account
	transactions map[string]domain.Transaction
	budgets      []domain.Budget
	alerts       []domain.BudgetAlert
	recs         []domain.Recommendation
	audits       []domain.AuditLog
}

func newLedgerState() *ledgerState {
	return &ledgerState{
		accounts:     make(map[string]domain.Account),
		transactions: make(map[string]domain.Transaction),
	}
}

func (s *ledgerState) clone() *ledgerState {
	c := newLedgerState()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	c.budgets = append([]domain.Budget(nil), s.budgets...)
	c.alerts = append([]domain.BudgetAlert(nil), s.alerts...)
	c.recs = append([]domain.Recommendation(nil), s.recs...)
	c.audits = append([]domain.AuditLog(nil), s.audits...)
	return c
}

// fakeLedgerTx implements the tx-bound repository facade over ledgerState.
// failOn injects an error for a named method so rollback paths can be tested.
type fakeLedgerTx struct {
	state  *ledgerState
	failOn map[string]error
}

var _ portsrepo.LedgerTx = (*fakeLedgerTx)(nil)

func (f *fakeLedgerTx) injected(method string) error {
	if f.failOn == nil {
		return nil
	}
	return f.failOn[method]
}

func (f *fakeLedgerTx) FindAccountsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if err := f.injected("FindAccountsForUpdate"); err != nil {
		return nil, err
	}
	result := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		acc, ok := f.state.accounts[id]
		if !ok {
			return nil, fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
		}
		result[id] = acc
	}
	return result, nil
}

func (f *fakeLedgerTx) ApplyBalanceDelta(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	if err := f.injected("ApplyBalanceDelta"); err != nil {
		return decimal.Zero, err
	}
	acc, ok := f.state.accounts[accountID]
	if !ok {
		return decimal.Zero, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}
	acc.Balance = acc.Balance.Add(delta)
	acc.LastUpdatedAt = now
	f.state.accounts[accountID] = acc
	return acc.Balance, nil
}

func (f *fakeLedgerTx) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	if err := f.injected("FindTransactionByID"); err != nil {
		return nil, err
	}
	txn, ok := f.state.transactions[transactionID]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return &txn, nil
}

func (f *fakeLedgerTx) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	if err := f.injected("InsertTransaction"); err != nil {
		return err
	}
	f.state.transactions[txn.TransactionID] = txn
	return nil
}

func (f *fakeLedgerTx) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	if err := f.injected("UpdateTransaction"); err != nil {
		return err
	}
	if _, ok := f.state.transactions[txn.TransactionID]; !ok {
		return fmt.Errorf("transaction %s: %w", txn.TransactionID, apperrors.ErrNotFound)
	}
	f.state.transactions[txn.TransactionID] = txn
	return nil
}

func (f *fakeLedgerTx) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := f.injected("DeleteTransaction"); err != nil {
		return err
	}
	if _, ok := f.state.transactions[transactionID]; !ok {
		return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	delete(f.state.transactions, transactionID)
	return nil
}

func (f *fakeLedgerTx) FindBudgetInstance(ctx context.Context, userID, category string, p domain.BudgetPeriod, startDate time.Time) (*domain.Budget, error) {
	if err := f.injected("FindBudgetInstance"); err != nil {
		return nil, err
	}
	for i := range f.state.budgets {
		b := f.state.budgets[i]
		if b.UserID == userID && b.Category == category && b.Period == p && b.StartDate.Equal(startDate) {
			return &b, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeLedgerTx) SumCategoryDebits(ctx context.Context, userID, category string, from, to time.Time) (decimal.Decimal, error) {
	if err := f.injected("SumCategoryDebits"); err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, txn := range f.state.transactions {
		if txn.UserID != userID || txn.Category != category || txn.Type != domain.Debit {
			continue
		}
		if txn.Timestamp.Before(from) || !txn.Timestamp.Before(to) {
			continue
		}
		sum = sum.Add(txn.Amount)
	}
	return sum, nil
}

func (f *fakeLedgerTx) InsertBudgetAlert(ctx context.Context, alert domain.BudgetAlert) error {
	if err := f.injected("InsertBudgetAlert"); err != nil {
		return err
	}
	f.state.alerts = append(f.state.alerts, alert)
	return nil
}

func (f *fakeLedgerTx) InsertRecommendation(ctx context.Context, rec domain.Recommendation) error {
	if err := f.injected("InsertRecommendation"); err != nil {
		return err
	}
	f.state.recs = append(f.state.recs, rec)
	return nil
}

func (f *fakeLedgerTx) InsertAuditLog(ctx context.Context, entry domain.AuditLog) error {
	if err := f.injected("InsertAuditLog"); err != nil {
		return err
	}
	f.state.audits = append(f.state.audits, entry)
	return nil
}

// fakeTxManager runs units of work against ledgerState with real rollback
// semantics: fn mutates a clone, and only a nil return publishes the clone as
// the new committed state.
type fakeTxManager struct {
	state  *ledgerState
	failOn map[string]error
}

var _ portsrepo.TransactionManager = (*fakeTxManager)(nil)

func newFakeTxManager() *fakeTxManager {
	return &fakeTxManager{state: newLedgerState()}
}

func (m *fakeTxManager) WithTx(ctx context.Context, fn func(tx portsrepo.LedgerTx) error) error {
	working := m.state.clone()
	if err := fn(&fakeLedgerTx{state: working, failOn: m.failOn}); err != nil {
		return err
	}
	m.state = working
	return nil
}
