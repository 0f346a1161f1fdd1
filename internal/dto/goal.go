package dto

import (
	"time"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateGoalRequest defines the data needed to create a savings goal.
type CreateGoalRequest struct {
	UserID       string          `json:"userID" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required"`
	TargetDate   time.Time       `json:"targetDate" binding:"required"`
}

// UpdateGoalRequest replaces a goal's mutable fields.
type UpdateGoalRequest struct {
	Name         string          `json:"name" binding:"required"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required"`
	TargetDate   time.Time       `json:"targetDate" binding:"required"`
}

// ContributeToGoalRequest credits an account towards a goal. The contribution
// becomes a regular credit transaction with category "Goal Savings".
type ContributeToGoalRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Notes     string          `json:"notes"`
}

// GoalResponse defines the data returned for a goal, including the derived
// contributed sum.
type GoalResponse struct {
	GoalID       string          `json:"goalID"`
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	TargetDate   time.Time       `json:"targetDate"`
	Contributed  decimal.Decimal `json:"contributed"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToGoalResponse converts a domain.Goal to GoalResponse.
func ToGoalResponse(g *domain.Goal) GoalResponse {
	return GoalResponse{
		GoalID:       g.GoalID,
		UserID:       g.UserID,
		Name:         g.Name,
		TargetAmount: g.TargetAmount,
		TargetDate:   g.TargetDate,
		Contributed:  g.Contributed,
		CreatedAt:    g.CreatedAt,
	}
}

// ToGoalResponses converts a slice of domain goals.
func ToGoalResponses(goals []domain.Goal) []GoalResponse {
	res := make([]GoalResponse, len(goals))
	for i := range goals {
		res[i] = ToGoalResponse(&goals[i])
	}
	return res
}
