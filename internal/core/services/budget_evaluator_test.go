package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	"github.com/fintrack-io/fintrack_backend/internal/core/services"
)

// --- Test Suite ---
type BudgetEvaluatorTestSuite struct {
	suite.Suite
	state     *ledgerState
	evaluator *services.BudgetEvaluator

	userID string
	now    time.Time
	ref    time.Time
}

func (suite *BudgetEvaluatorTestSuite) SetupTest() {
	suite.state = newLedgerState()
	suite.evaluator = services.NewBudgetEvaluator()
	suite.userID = uuid.NewString()
	suite.now = time.Date(2025, 3, 12, 11, 0, 0, 0, time.UTC)
	suite.ref = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
}

func (suite *BudgetEvaluatorTestSuite) tx() *fakeLedgerTx {
	return &fakeLedgerTx{state: suite.state}
}

func (suite *BudgetEvaluatorTestSuite) addBudget(p domain.BudgetPeriod, start time.Time, limit int64) domain.Budget {
	b := domain.Budget{
		BudgetID:    uuid.NewString(),
		UserID:      suite.userID,
		Category:    "Groceries",
		Period:      p,
		LimitAmount: decimal.NewFromInt(limit),
		StartDate:   start,
	}
	suite.state.budgets = append(suite.state.budgets, b)
	return b
}

func (suite *BudgetEvaluatorTestSuite) addDebit(amount int64, ts time.Time) {
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.userID,
		AccountID:     "acc",
		Amount:        decimal.NewFromInt(amount),
		Type:          domain.Debit,
		Category:      "Groceries",
		Timestamp:     ts,
	}
	suite.state.transactions[txn.TransactionID] = txn
}

func (suite *BudgetEvaluatorTestSuite) monthStart() time.Time {
	return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *BudgetEvaluatorTestSuite) weekStart() time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

func (suite *BudgetEvaluatorTestSuite) TestNoBudget_NoOp() {
	alert, err := suite.evaluator.Evaluate(context.Background(), suite.tx(), suite.userID, "Groceries", suite.ref, suite.now)

	suite.Require().NoError(err)
	suite.Nil(alert)
	suite.Empty(suite.state.alerts)
}

func (suite *BudgetEvaluatorTestSuite) TestBelowWarningThreshold_NoAlert() {
	suite.addBudget(domain.Monthly, suite.monthStart(), 10000)
	suite.addDebit(7999, suite.ref)

	alert, err := suite.evaluator.Evaluate(context.Background(), suite.tx(), suite.userID, "Groceries", suite.ref, suite.now)

	suite.Require().NoError(err)
	suite.Nil(alert)
}

func (suite *BudgetEvaluatorTestSuite) TestWarningAtExactlyEightyPercent() {
	b := suite.addBudget(domain.Monthly, suite.monthStart(), 10000)
	suite.addDebit(8000, suite.ref)

	alert, err := suite.evaluator.Evaluate(context.Background(), suite.tx(), suite.userID, "Groceries", suite.ref, suite.now)

	suite.Require().NoError(err)
	suite.Require().NotNil(alert)
	suite.Equal(domain.LevelWarning, alert.Level)
	suite.Equal(b.BudgetID, alert.BudgetID)
	suite.Contains(alert.Message, "8000.00")
	suite.Contains(alert.Message, "10000.00")
	suite.Contains(alert.Message, "2025-03-01")
	suite.Equal(suite.now, alert.CreatedAt)
}

func (suite *BudgetEvaluatorTestSuite) TestExactlyAtLimit_NoAlert() {
	suite.addBudget(domain.Monthly, suite.monthStart(), 10000)
	suite.addDebit(10000, suite.ref)

	alert, err := suite.evaluator.Evaluate(context.Background(), suite.tx(), suite.userID, "Groceries", suite.ref, suite.now)

	suite.Require().NoError(err)
	suite.Nil(alert, "spend equal to the limit is neither warning nor exceeded")
}

func (suite *BudgetEvaluatorTestSuite) TestOverLimit_Exceeded() {
	suite.addBudget(domain.Monthly, suite.monthStart(), 10000)
	suite.addDebit(10001, suite.ref)

	alert, err := suite.evaluator.Evaluate(context.Background(), suite.tx(), suite.userID, "Groceries", suite.ref, suite.now)

	suite.Require().NoError(err)
	suite.Require().NotNil(alert)
	suite.Equal(domain.LevelLimitExceeded, alert.Level)
}

func (suite *BudgetEvaluatorTestSuite) TestMonthlyPreferredOverWeekly() {
	monthly := suite.addBudget(domain.Monthly, suite.monthStart(), 1000)
	suite.addBudget(domain.Weekly, suite.weekStart(), 100)
	suite.addDebit(5000, suite.ref)

	alert, err := suite.evaluator.Evaluate(context.Background(), suite.tx(), suite.userID, "Groceries", suite.ref, suite.now)

	suite.Require().NoError(err)
	suite.Require().NotNil(alert)
	suite.Equal(monthly.BudgetID, alert.BudgetID)
	suite.Len(suite.state.alerts, 1, "a monthly match stops the weekly budget from also firing")
}

func (suite *BudgetEvaluatorTestSuite) TestWeeklyWindowIsHalfOpen() {
	suite.addBudget(domain.Weekly, suite.weekStart(), 100)
	// Inside [Mon, next Mon): counted. At next Monday midnight: excluded.
	suite.addDebit(90, time.Date(2025, 3, 16, 23, 59, 59, 0, time.UTC))
	suite.addDebit(500, time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC))

	alert, err := suite.evaluator.Evaluate(context.Background(), suite.tx(), suite.userID, "Groceries", suite.ref, suite.now)

	suite.Require().NoError(err)
	suite.Require().NotNil(alert)
	suite.Equal(domain.LevelWarning, alert.Level, "only the in-window debit counts")
	suite.Contains(alert.Message, "90.00")
}

func (suite *BudgetEvaluatorTestSuite) TestOtherUsersSpendIgnored() {
	suite.addBudget(domain.Monthly, suite.monthStart(), 100)

	other := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        uuid.NewString(),
		AccountID:     "acc-2",
		Amount:        decimal.NewFromInt(900),
		Type:          domain.Debit,
		Category:      "Groceries",
		Timestamp:     suite.ref,
	}
	suite.state.transactions[other.TransactionID] = other

	alert, err := suite.evaluator.Evaluate(context.Background(), suite.tx(), suite.userID, "Groceries", suite.ref, suite.now)

	suite.Require().NoError(err)
	suite.Nil(alert)
}

func (suite *BudgetEvaluatorTestSuite) TestRepeatedEvaluationInsertsFreshAlerts() {
	suite.addBudget(domain.Monthly, suite.monthStart(), 100)
	suite.addDebit(500, suite.ref)

	for i := 0; i < 2; i++ {
		alert, err := suite.evaluator.Evaluate(context.Background(), suite.tx(), suite.userID, "Groceries", suite.ref, suite.now)
		suite.Require().NoError(err)
		suite.Require().NotNil(alert)
	}
	suite.Len(suite.state.alerts, 2)
}

func TestBudgetEvaluatorTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetEvaluatorTestSuite))
}
