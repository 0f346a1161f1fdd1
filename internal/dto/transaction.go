package dto

import (
	"time"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to create a transaction.
// Timestamp is the client-supplied event time (UTC), distinct from the row
// creation time the server assigns.
type CreateTransactionRequest struct {
	UserID    string                 `json:"userID" binding:"required"`
	AccountID string                 `json:"accountID" binding:"required"`
	Amount    decimal.Decimal        `json:"amount" binding:"required"`
	Type      domain.TransactionType `json:"txType" binding:"required,oneof=debit credit"`
	Category  string                 `json:"category" binding:"required"`
	Merchant  string                 `json:"merchant"`
	Notes     string                 `json:"notes"`
	GoalID    *string                `json:"goalID"`
	Timestamp time.Time              `json:"ts" binding:"required"`
}

// UpdateTransactionRequest replaces every mutable field of a transaction,
// mirroring the full-row update the storage layer performs. Moving the
// transaction to another account or flipping its type is allowed.
type UpdateTransactionRequest struct {
	AccountID string                 `json:"accountID" binding:"required"`
	Amount    decimal.Decimal        `json:"amount" binding:"required"`
	Type      domain.TransactionType `json:"txType" binding:"required,oneof=debit credit"`
	Category  string                 `json:"category" binding:"required"`
	Merchant  string                 `json:"merchant"`
	Notes     string                 `json:"notes"`
	GoalID    *string                `json:"goalID"`
	Timestamp time.Time              `json:"ts" binding:"required"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	UserID        string                 `json:"userID"`
	AccountID     string                 `json:"accountID"`
	Amount        decimal.Decimal        `json:"amount"`
	Type          domain.TransactionType `json:"txType"`
	Category      string                 `json:"category"`
	Merchant      string                 `json:"merchant"`
	Notes         string                 `json:"notes"`
	GoalID        *string                `json:"goalID"`
	Timestamp     time.Time              `json:"ts"`
	CreatedAt     time.Time              `json:"createdAt"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
}

// CreateTransactionResponse bundles the created row with the signals its
// evaluation emitted inside the same unit of work.
type CreateTransactionResponse struct {
	Transaction     TransactionResponse      `json:"transaction"`
	Alerts          []AlertResponse          `json:"alerts"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

// UpdateTransactionResponse bundles the updated row with the alerts raised by
// re-evaluating the new (user, category, ts).
type UpdateTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Alerts      []AlertResponse     `json:"alerts"`
}

// DeleteTransactionResponse carries the alerts raised by re-evaluating the
// deleted row's own (user, category, ts).
type DeleteTransactionResponse struct {
	Alerts []AlertResponse `json:"alerts"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		UserID:        t.UserID,
		AccountID:     t.AccountID,
		Amount:        t.Amount,
		Type:          t.Type,
		Category:      t.Category,
		Merchant:      t.Merchant,
		Notes:         t.Notes,
		GoalID:        t.GoalID,
		Timestamp:     t.Timestamp,
		CreatedAt:     t.CreatedAt,
		LastUpdatedAt: t.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
