package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is a debit or a credit.
type TransactionType string

const (
	Debit  TransactionType = "debit"
	Credit TransactionType = "credit"
)

// Transaction represents a single movement of money on one account.
// Amount is always positive; the sign applied to the account balance is
// derived from TransactionType via SignedDelta.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`        // FK -> users.user_id (Not Null)
	AccountID     string          `json:"accountID"`     // FK -> accounts.account_id (Not Null)
	Amount        decimal.Decimal `json:"amount"`        // Positive fixed-point, 2 decimals
	Type          TransactionType `json:"txType"`
	Category      string          `json:"category"` // Free text, budget matching key
	Merchant      string          `json:"merchant"` // Nullable
	Notes         string          `json:"notes"`    // Nullable
	GoalID        *string         `json:"goalID"`   // Nullable FK -> goals.goal_id
	Timestamp     time.Time       `json:"ts"`       // Event time, client-settable, UTC
	AuditFields
}

// SignedDelta returns the balance-affecting quantity of the transaction:
// positive for a credit, negative for a debit.
func (t Transaction) SignedDelta() decimal.Decimal {
	if t.Type == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}
