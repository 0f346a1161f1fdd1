package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the recurrence kind of a budget window.
type BudgetPeriod string

const (
	Weekly  BudgetPeriod = "weekly"
	Monthly BudgetPeriod = "monthly"
)

// Budget caps debit spending for one (user, category) pair over a single
// period instance. StartDate is the exact calendar anchor of that instance,
// not a recurrence rule: a monthly budget for March and one for April are two
// rows. The tuple (user, category, period, start_date) is unique.
type Budget struct {
	BudgetID    string          `json:"budgetID"` // Primary Key (UUID)
	UserID      string          `json:"userID"`   // FK -> users.user_id (Not Null)
	Category    string          `json:"category"`
	Period      BudgetPeriod    `json:"period"`
	LimitAmount decimal.Decimal `json:"limitAmount"`
	StartDate   time.Time       `json:"startDate"` // Period boundary at UTC midnight
	AuditFields
}

// AlertLevel grades a budget alert.
type AlertLevel string

const (
	LevelWarning       AlertLevel = "warning"
	LevelLimitExceeded AlertLevel = "limit_exceeded"
)

// BudgetAlert is an append-only record emitted by budget evaluation. Repeated
// evaluations of the same period insert fresh rows; nothing deduplicates them.
type BudgetAlert struct {
	AlertID   string     `json:"alertID"` // Primary Key (UUID)
	UserID    string     `json:"userID"`
	BudgetID  string     `json:"budgetID"`
	Level     AlertLevel `json:"level"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"createdAt"`
}
