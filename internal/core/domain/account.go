package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies an account for display and reporting purposes.
type AccountType string

const (
	Checking      AccountType = "checking"
	Savings       AccountType = "savings"
	CreditAccount AccountType = "credit"
	Wallet        AccountType = "wallet"
)

// Account represents a financial account owned by a user.
// Balance is the algebraic sum of all applied transaction deltas, net of
// reversals. It is written exclusively by the ledger inside a unit of work;
// clients never set it directly after creation.
type Account struct {
	AccountID           string          `json:"accountID"` // Primary Key (UUID)
	UserID              string          `json:"userID"`    // FK -> users.user_id (Not Null)
	Name                string          `json:"name"`
	AccountType         AccountType     `json:"accountType"`
	Balance             decimal.Decimal `json:"balance"`
	LowBalanceThreshold decimal.Decimal `json:"lowBalanceThreshold"`
	AuditFields
}
