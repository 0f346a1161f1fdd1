package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalSavingsCategory is the category assigned to credit transactions created
// by goal contributions.
const GoalSavingsCategory = "Goal Savings"

// Goal is a savings target. Contributions are ordinary credit transactions
// referencing the goal; Contributed is the derived sum of those credits.
type Goal struct {
	GoalID       string          `json:"goalID"` // Primary Key (UUID)
	UserID       string          `json:"userID"` // FK -> users.user_id (Not Null)
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	TargetDate   time.Time       `json:"targetDate"`
	Contributed  decimal.Decimal `json:"contributed"` // Derived, not persisted
	AuditFields
}
