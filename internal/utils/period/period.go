package period

import (
	"fmt"
	"time"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
)

// Start maps a timestamp to the start boundary of the budget period containing
// it: the Monday of the ISO week for weekly budgets, the first of the calendar
// month for monthly ones. The result is a UTC date at midnight.
func Start(t time.Time, p domain.BudgetPeriod) (time.Time, error) {
	t = t.UTC()
	switch p {
	case domain.Weekly:
		date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		// time.Weekday counts Sunday as 0; shift so Monday is 0.
		offset := (int(date.Weekday()) + 6) % 7
		return date.AddDate(0, 0, -offset), nil
	case domain.Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, fmt.Errorf("unknown budget period %q", p)
	}
}

// End returns the exclusive end boundary of the period starting at start:
// seven days later for weekly, the first of the following month for monthly.
// Spend aggregation uses the half-open window [start, End(start, p)).
func End(start time.Time, p domain.BudgetPeriod) (time.Time, error) {
	switch p {
	case domain.Weekly:
		return start.AddDate(0, 0, 7), nil
	case domain.Monthly:
		return start.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown budget period %q", p)
	}
}
