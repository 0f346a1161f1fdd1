package dto

import (
	"time"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a budget instance.
// StartDate must be the period's exact calendar anchor (a Monday for weekly,
// the first of a month for monthly); the service rejects other dates.
type CreateBudgetRequest struct {
	UserID      string              `json:"userID" binding:"required"`
	Category    string              `json:"category" binding:"required"`
	Period      domain.BudgetPeriod `json:"period" binding:"required,oneof=weekly monthly"`
	LimitAmount decimal.Decimal     `json:"limitAmount" binding:"required"`
	StartDate   time.Time           `json:"startDate" binding:"required"`
}

// UpdateBudgetLimitRequest changes only the limit of an existing budget.
type UpdateBudgetLimitRequest struct {
	LimitAmount decimal.Decimal `json:"limitAmount" binding:"required"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID    string              `json:"budgetID"`
	UserID      string              `json:"userID"`
	Category    string              `json:"category"`
	Period      domain.BudgetPeriod `json:"period"`
	LimitAmount decimal.Decimal     `json:"limitAmount"`
	StartDate   time.Time           `json:"startDate"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// BudgetProgressResponse extends BudgetResponse with the derived window end
// and the current spend inside [startDate, endDate).
type BudgetProgressResponse struct {
	BudgetResponse
	EndDate time.Time       `json:"endDate"`
	Spent   decimal.Decimal `json:"spent"`
}

// ToBudgetResponse converts a domain.Budget to BudgetResponse.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:    b.BudgetID,
		UserID:      b.UserID,
		Category:    b.Category,
		Period:      b.Period,
		LimitAmount: b.LimitAmount,
		StartDate:   b.StartDate,
		CreatedAt:   b.CreatedAt,
	}
}
