package dto

import (
	"time"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// Balance here is the opening balance; afterwards only the transaction
// pipeline changes it.
type CreateAccountRequest struct {
	UserID              string             `json:"userID" binding:"required"`
	Name                string             `json:"name" binding:"required"`
	AccountType         domain.AccountType `json:"accountType" binding:"required,oneof=checking savings credit wallet"`
	Balance             decimal.Decimal    `json:"balance"`
	LowBalanceThreshold decimal.Decimal    `json:"lowBalanceThreshold"`
}

// UpdateAccountRequest defines the fields a client may change on an account.
// Use pointers to distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name                *string          `json:"name"`
	LowBalanceThreshold *decimal.Decimal `json:"lowBalanceThreshold"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID           string             `json:"accountID"`
	UserID              string             `json:"userID"`
	Name                string             `json:"name"`
	AccountType         domain.AccountType `json:"accountType"`
	Balance             decimal.Decimal    `json:"balance"`
	LowBalanceThreshold decimal.Decimal    `json:"lowBalanceThreshold"`
	CreatedAt           time.Time          `json:"createdAt"`
	LastUpdatedAt       time.Time          `json:"lastUpdatedAt"`
}

// AccountBalanceResponse defines the data returned for a balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:           acc.AccountID,
		UserID:              acc.UserID,
		Name:                acc.Name,
		AccountType:         acc.AccountType,
		Balance:             acc.Balance,
		LowBalanceThreshold: acc.LowBalanceThreshold,
		CreatedAt:           acc.CreatedAt,
		LastUpdatedAt:       acc.LastUpdatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
