package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/core/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
)

// stubTransactionReader reads committed state from the fake manager.
type stubTransactionReader struct {
	txm *fakeTxManager
}

func (r *stubTransactionReader) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, ok := r.txm.state.transactions[transactionID]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return &txn, nil
}

func (r *stubTransactionReader) ListRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	for _, txn := range r.txm.state.transactions {
		if txn.UserID == userID {
			txns = append(txns, txn)
		}
	}
	if len(txns) > limit {
		txns = txns[:limit]
	}
	return txns, nil
}

// stubAccountReader reads committed state from the fake manager.
type stubAccountReader struct {
	txm *fakeTxManager
}

func (r *stubAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	acc, ok := r.txm.state.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}
	return &acc, nil
}

func (r *stubAccountReader) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	var accounts []domain.Account
	for _, acc := range r.txm.state.accounts {
		if acc.UserID == userID {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	txm     *fakeTxManager
	service portssvc.TransactionSvcFacade

	userID    string
	accountID string
	eventTime time.Time
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.txm = newFakeTxManager()
	suite.service = services.NewTransactionService(suite.txm, &stubTransactionReader{suite.txm}, &stubAccountReader{suite.txm})

	suite.userID = uuid.NewString()
	suite.accountID = uuid.NewString()
	// A Wednesday; its ISO week starts Monday 2025-03-10, its month on 2025-03-01.
	suite.eventTime = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

	suite.seedAccount(suite.accountID, "Checking", decimal.NewFromInt(5000), decimal.Zero)
}

func (suite *TransactionServiceTestSuite) seedAccount(accountID, name string, balance, threshold decimal.Decimal) {
	suite.txm.state.accounts[accountID] = domain.Account{
		AccountID:           accountID,
		UserID:              suite.userID,
		Name:                name,
		AccountType:         domain.Checking,
		Balance:             balance,
		LowBalanceThreshold: threshold,
	}
}

func (suite *TransactionServiceTestSuite) seedDebit(category string, amount decimal.Decimal, ts time.Time) domain.Transaction {
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.userID,
		AccountID:     suite.accountID,
		Amount:        amount,
		Type:          domain.Debit,
		Category:      category,
		Timestamp:     ts,
	}
	suite.txm.state.transactions[txn.TransactionID] = txn
	return txn
}

func (suite *TransactionServiceTestSuite) seedMonthlyBudget(category string, limit decimal.Decimal) domain.Budget {
	b := domain.Budget{
		BudgetID:    uuid.NewString(),
		UserID:      suite.userID,
		Category:    category,
		Period:      domain.Monthly,
		LimitAmount: limit,
		StartDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	suite.txm.state.budgets = append(suite.txm.state.budgets, b)
	return b
}

func (suite *TransactionServiceTestSuite) seedWeeklyBudget(category string, limit decimal.Decimal) domain.Budget {
	b := domain.Budget{
		BudgetID:    uuid.NewString(),
		UserID:      suite.userID,
		Category:    category,
		Period:      domain.Weekly,
		LimitAmount: limit,
		StartDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	suite.txm.state.budgets = append(suite.txm.state.budgets, b)
	return b
}

func (suite *TransactionServiceTestSuite) createReq(txType domain.TransactionType, category string, amount decimal.Decimal) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		UserID:    suite.userID,
		AccountID: suite.accountID,
		Amount:    amount,
		Type:      txType,
		Category:  category,
		Timestamp: suite.eventTime,
	}
}

// --- Create ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_DebitReducesBalance() {
	ctx := context.Background()

	txn, alerts, recs, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Debit, "Groceries", decimal.NewFromInt(120)))

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Empty(alerts)
	suite.Empty(recs)

	suite.True(suite.txm.state.accounts[suite.accountID].Balance.Equal(decimal.NewFromInt(4880)),
		"balance should drop by the debit amount")
	suite.Contains(suite.txm.state.transactions, txn.TransactionID)

	suite.Require().Len(suite.txm.state.audits, 1)
	entry := suite.txm.state.audits[0]
	suite.Equal(domain.ActionCreate, entry.Action)
	suite.Equal("transaction", entry.EntityName)
	suite.Equal(txn.TransactionID, entry.EntityID)
	suite.Require().NotNil(entry.UserID)
	suite.Equal(suite.userID, *entry.UserID)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CreditIncreasesBalance() {
	ctx := context.Background()

	_, _, _, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Credit, "Salary", decimal.NewFromInt(3000)))

	suite.Require().NoError(err)
	suite.True(suite.txm.state.accounts[suite.accountID].Balance.Equal(decimal.NewFromInt(8000)))
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsNonPositiveAmount() {
	ctx := context.Background()

	_, _, _, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Debit, "Groceries", decimal.NewFromInt(-5)))
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	_, _, _, err = suite.service.CreateTransaction(ctx, suite.createReq(domain.Debit, "Groceries", decimal.Zero))
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	suite.True(suite.txm.state.accounts[suite.accountID].Balance.Equal(decimal.NewFromInt(5000)), "balance must be untouched")
	suite.Empty(suite.txm.state.transactions)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsUnknownType() {
	ctx := context.Background()

	req := suite.createReq("transfer", "Groceries", decimal.NewFromInt(10))
	_, _, _, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsZeroTimestamp() {
	ctx := context.Background()

	req := suite.createReq(domain.Debit, "Groceries", decimal.NewFromInt(10))
	req.Timestamp = time.Time{}
	_, _, _, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownAccount() {
	ctx := context.Background()

	req := suite.createReq(domain.Debit, "Groceries", decimal.NewFromInt(10))
	req.AccountID = uuid.NewString()
	_, _, _, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AccountOwnedByAnotherUser() {
	ctx := context.Background()

	req := suite.createReq(domain.Debit, "Groceries", decimal.NewFromInt(10))
	req.UserID = uuid.NewString()
	_, _, _, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Empty(suite.txm.state.transactions)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RollsBackWhenAuditFails() {
	ctx := context.Background()
	suite.txm.failOn = map[string]error{"InsertAuditLog": fmt.Errorf("disk full")}

	_, _, _, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Debit, "Groceries", decimal.NewFromInt(120)))

	suite.Require().Error(err)
	suite.True(suite.txm.state.accounts[suite.accountID].Balance.Equal(decimal.NewFromInt(5000)),
		"failed unit of work must leave the balance untouched")
	suite.Empty(suite.txm.state.transactions)
	suite.Empty(suite.txm.state.audits)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_PropagatesContention() {
	ctx := context.Background()
	suite.txm.failOn = map[string]error{"FindAccountsForUpdate": apperrors.ErrContention}

	_, _, _, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Debit, "Groceries", decimal.NewFromInt(120)))

	suite.Require().ErrorIs(err, apperrors.ErrContention)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_LowBalanceRecommendation() {
	ctx := context.Background()
	suite.seedAccount(suite.accountID, "Checking", decimal.NewFromInt(25000), decimal.NewFromInt(2000))

	_, alerts, recs, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Debit, "Rent", decimal.NewFromInt(24000)))

	suite.Require().NoError(err)
	suite.Empty(alerts)
	suite.Require().Len(recs, 1)
	suite.Equal(domain.LowBalance, recs[0].Type)
	suite.Contains(recs[0].Message, "1000.00")
	suite.Contains(recs[0].Message, "2000.00")
	suite.Require().Len(suite.txm.state.recs, 1, "recommendation must be committed with the mutation")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NoRecommendationAtThreshold() {
	ctx := context.Background()
	suite.seedAccount(suite.accountID, "Checking", decimal.NewFromInt(25000), decimal.NewFromInt(1000))

	_, _, recs, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Debit, "Rent", decimal.NewFromInt(24000)))

	suite.Require().NoError(err)
	suite.Empty(recs, "balance exactly at threshold is not below it")
}

// --- Budget evaluation through create ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_BudgetWarningAtEightyPercent() {
	ctx := context.Background()
	budget := suite.seedMonthlyBudget("Groceries", decimal.NewFromInt(10000))
	suite.seedDebit("Groceries", decimal.NewFromInt(7000), suite.eventTime.AddDate(0, 0, -2))

	_, alerts, _, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Debit, "Groceries", decimal.NewFromInt(1000)))

	suite.Require().NoError(err)
	suite.Require().Len(alerts, 1)
	suite.Equal(domain.LevelWarning, alerts[0].Level)
	suite.Equal(budget.BudgetID, alerts[0].BudgetID)
	suite.Contains(alerts[0].Message, "8000.00")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NoAlertExactlyAtLimit() {
	ctx := context.Background()
	suite.seedMonthlyBudget("Groceries", decimal.NewFromInt(10000))
	suite.seedDebit("Groceries", decimal.NewFromInt(9000), suite.eventTime.AddDate(0, 0, -2))

	_, alerts, _, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Debit, "Groceries", decimal.NewFromInt(1000)))

	suite.Require().NoError(err)
	suite.Empty(alerts, "spend exactly at the limit emits nothing")
	suite.Empty(suite.txm.state.alerts)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_LimitExceededOneCentOver() {
	ctx := context.Background()
	suite.seedMonthlyBudget("Groceries", decimal.NewFromInt(10000))
	suite.seedDebit("Groceries", decimal.NewFromInt(10000), suite.eventTime.AddDate(0, 0, -2))

	_, alerts, _, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Debit, "Groceries", decimal.RequireFromString("0.01")))

	suite.Require().NoError(err)
	suite.Require().Len(alerts, 1)
	suite.Equal(domain.LevelLimitExceeded, alerts[0].Level)
	suite.Contains(alerts[0].Message, "10000.01")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_MonthlyBudgetWinsOverWeekly() {
	ctx := context.Background()
	monthly := suite.seedMonthlyBudget("Groceries", decimal.NewFromInt(100))
	suite.seedWeeklyBudget("Groceries", decimal.NewFromInt(50))

	_, alerts, _, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Debit, "Groceries", decimal.NewFromInt(200)))

	suite.Require().NoError(err)
	suite.Require().Len(alerts, 1, "one evaluation raises at most one alert")
	suite.Equal(monthly.BudgetID, alerts[0].BudgetID)
	suite.Equal(domain.LevelLimitExceeded, alerts[0].Level)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_WeeklyBudgetUsedWhenNoMonthly() {
	ctx := context.Background()
	weekly := suite.seedWeeklyBudget("Coffee", decimal.NewFromInt(50))

	_, alerts, _, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Debit, "Coffee", decimal.NewFromInt(60)))

	suite.Require().NoError(err)
	suite.Require().Len(alerts, 1)
	suite.Equal(weekly.BudgetID, alerts[0].BudgetID)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CreditDoesNotCountTowardsBudget() {
	ctx := context.Background()
	suite.seedMonthlyBudget("Groceries", decimal.NewFromInt(100))

	_, alerts, _, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Credit, "Groceries", decimal.NewFromInt(500)))

	suite.Require().NoError(err)
	suite.Empty(alerts, "credits never contribute to spend")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RepeatedOverspendAlertsEveryTime() {
	ctx := context.Background()
	suite.seedMonthlyBudget("Groceries", decimal.NewFromInt(100))

	for i := 0; i < 3; i++ {
		_, alerts, _, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Debit, "Groceries", decimal.NewFromInt(200)))
		suite.Require().NoError(err)
		suite.Require().Len(alerts, 1)
	}
	suite.Len(suite.txm.state.alerts, 3, "alerts are never deduplicated")
}

// --- Update ---

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_MoveBetweenAccounts() {
	ctx := context.Background()
	otherAccount := uuid.NewString()
	suite.seedAccount(otherAccount, "Savings", decimal.NewFromInt(1000), decimal.Zero)

	created, _, _, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Debit, "Groceries", decimal.NewFromInt(100)))
	suite.Require().NoError(err)
	suite.True(suite.txm.state.accounts[suite.accountID].Balance.Equal(decimal.NewFromInt(4900)))

	updated, _, err := suite.service.UpdateTransaction(ctx, created.TransactionID, dto.UpdateTransactionRequest{
		AccountID: otherAccount,
		Amount:    decimal.NewFromInt(250),
		Type:      domain.Debit,
		Category:  "Groceries",
		Timestamp: suite.eventTime,
	})

	suite.Require().NoError(err)
	suite.Equal(otherAccount, updated.AccountID)
	suite.True(suite.txm.state.accounts[suite.accountID].Balance.Equal(decimal.NewFromInt(5000)),
		"old account gets the old debit back")
	suite.True(suite.txm.state.accounts[otherAccount].Balance.Equal(decimal.NewFromInt(750)),
		"new account takes the new debit")
	suite.Equal(created.TransactionID, updated.TransactionID)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_FlipTypeReconcilesTwice() {
	ctx := context.Background()

	created, _, _, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Debit, "Groceries", decimal.NewFromInt(100)))
	suite.Require().NoError(err)

	_, _, err = suite.service.UpdateTransaction(ctx, created.TransactionID, dto.UpdateTransactionRequest{
		AccountID: suite.accountID,
		Amount:    decimal.NewFromInt(100),
		Type:      domain.Credit,
		Category:  "Groceries",
		Timestamp: suite.eventTime,
	})

	suite.Require().NoError(err)
	// 5000 - 100 (create), +100 (reverse), +100 (apply credit).
	suite.True(suite.txm.state.accounts[suite.accountID].Balance.Equal(decimal.NewFromInt(5100)))
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_EvaluatesNewCategoryOnly() {
	ctx := context.Background()
	dining := suite.seedMonthlyBudget("Dining", decimal.NewFromInt(100))
	suite.seedMonthlyBudget("Groceries", decimal.NewFromInt(100))
	suite.seedDebit("Groceries", decimal.NewFromInt(500), suite.eventTime.AddDate(0, 0, -1))

	created, _, _, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Debit, "Dining", decimal.NewFromInt(10)))
	suite.Require().NoError(err)

	_, alerts, err := suite.service.UpdateTransaction(ctx, created.TransactionID, dto.UpdateTransactionRequest{
		AccountID: suite.accountID,
		Amount:    decimal.NewFromInt(150),
		Type:      domain.Debit,
		Category:  "Dining",
		Timestamp: suite.eventTime,
	})

	suite.Require().NoError(err)
	suite.Require().Len(alerts, 1)
	suite.Equal(dining.BudgetID, alerts[0].BudgetID, "only the updated row's category is evaluated")
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NotFound() {
	ctx := context.Background()

	_, _, err := suite.service.UpdateTransaction(ctx, uuid.NewString(), dto.UpdateTransactionRequest{
		AccountID: suite.accountID,
		Amount:    decimal.NewFromInt(10),
		Type:      domain.Debit,
		Category:  "Groceries",
		Timestamp: suite.eventTime,
	})

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AuditCarriesOldAndNewShape() {
	ctx := context.Background()

	created, _, _, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Debit, "Groceries", decimal.NewFromInt(100)))
	suite.Require().NoError(err)

	_, _, err = suite.service.UpdateTransaction(ctx, created.TransactionID, dto.UpdateTransactionRequest{
		AccountID: suite.accountID,
		Amount:    decimal.NewFromInt(40),
		Type:      domain.Debit,
		Category:  "Groceries",
		Timestamp: suite.eventTime,
	})
	suite.Require().NoError(err)

	suite.Require().Len(suite.txm.state.audits, 2)
	updateEntry := suite.txm.state.audits[1]
	suite.Equal(domain.ActionUpdate, updateEntry.Action)
	suite.Contains(updateEntry.Details, "old[")
	suite.Contains(updateEntry.Details, "new[")
	suite.Contains(updateEntry.Details, "amount=100.00")
	suite.Contains(updateEntry.Details, "amount=40.00")
}

// --- Delete ---

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_RestoresBalance() {
	ctx := context.Background()

	created, _, _, err := suite.service.CreateTransaction(ctx, suite.createReq(domain.Debit, "Groceries", decimal.NewFromInt(300)))
	suite.Require().NoError(err)
	suite.True(suite.txm.state.accounts[suite.accountID].Balance.Equal(decimal.NewFromInt(4700)))

	alerts, err := suite.service.DeleteTransaction(ctx, created.TransactionID)

	suite.Require().NoError(err)
	suite.Empty(alerts)
	suite.True(suite.txm.state.accounts[suite.accountID].Balance.Equal(decimal.NewFromInt(5000)))
	suite.NotContains(suite.txm.state.transactions, created.TransactionID)

	last := suite.txm.state.audits[len(suite.txm.state.audits)-1]
	suite.Equal(domain.ActionDelete, last.Action)
	suite.Equal(created.TransactionID, last.EntityID)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ReEvaluatesFreedWindow() {
	ctx := context.Background()
	suite.seedMonthlyBudget("Groceries", decimal.NewFromInt(100))
	suite.seedDebit("Groceries", decimal.NewFromInt(150), suite.eventTime.AddDate(0, 0, -1))
	small := suite.seedDebit("Groceries", decimal.NewFromInt(60), suite.eventTime)

	alerts, err := suite.service.DeleteTransaction(ctx, small.TransactionID)

	suite.Require().NoError(err)
	suite.Require().Len(alerts, 1, "remaining spend still exceeds the limit")
	suite.Equal(domain.LevelLimitExceeded, alerts[0].Level)
	suite.Contains(alerts[0].Message, "150.00")
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFound() {
	ctx := context.Background()

	_, err := suite.service.DeleteTransaction(ctx, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

// --- Reads ---

func (suite *TransactionServiceTestSuite) TestGetAccountBalance() {
	ctx := context.Background()

	balance, err := suite.service.GetAccountBalance(ctx, suite.accountID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(5000)))
}

func (suite *TransactionServiceTestSuite) TestGetAccountBalance_UnknownAccount() {
	ctx := context.Background()

	_, err := suite.service.GetAccountBalance(ctx, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
