package domain

import "time"

// RecommendationType names the producer of a recommendation. Only low_balance
// is populated today; the other values are reserved for future producers.
type RecommendationType string

const (
	LowBalance      RecommendationType = "low_balance"
	Overspending    RecommendationType = "overspending"
	UnusualActivity RecommendationType = "unusual_activity"
)

// Recommendation is an append-only advisory record for a user.
type Recommendation struct {
	RecommendationID string             `json:"recommendationID"` // Primary Key (UUID)
	UserID           string             `json:"userID"`
	Type             RecommendationType `json:"type"`
	Message          string             `json:"message"`
	CreatedAt        time.Time          `json:"createdAt"`
}
