package dto

import (
	"time"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
)

// ListSignalsParams defines query parameters for listing alerts,
// recommendations and audit entries.
type ListSignalsParams struct {
	Limit int `form:"limit,default=50"`
}

// AlertResponse defines the data returned for a budget alert.
type AlertResponse struct {
	AlertID   string            `json:"alertID"`
	UserID    string            `json:"userID"`
	BudgetID  string            `json:"budgetID"`
	Level     domain.AlertLevel `json:"level"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"createdAt"`
}

// RecommendationResponse defines the data returned for a recommendation.
type RecommendationResponse struct {
	RecommendationID string                    `json:"recommendationID"`
	UserID           string                    `json:"userID"`
	Type             domain.RecommendationType `json:"type"`
	Message          string                    `json:"message"`
	CreatedAt        time.Time                 `json:"createdAt"`
}

// AuditLogResponse defines the data returned for an audit entry.
type AuditLogResponse struct {
	AuditID    string             `json:"auditID"`
	UserID     *string            `json:"userID"`
	Action     domain.AuditAction `json:"action"`
	EntityName string             `json:"entityName"`
	EntityID   string             `json:"entityID"`
	Details    string             `json:"details"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// ToAlertResponses converts domain alerts to DTOs.
func ToAlertResponses(alerts []domain.BudgetAlert) []AlertResponse {
	res := make([]AlertResponse, len(alerts))
	for i, a := range alerts {
		res[i] = AlertResponse{
			AlertID:   a.AlertID,
			UserID:    a.UserID,
			BudgetID:  a.BudgetID,
			Level:     a.Level,
			Message:   a.Message,
			CreatedAt: a.CreatedAt,
		}
	}
	return res
}

// ToRecommendationResponses converts domain recommendations to DTOs.
func ToRecommendationResponses(recs []domain.Recommendation) []RecommendationResponse {
	res := make([]RecommendationResponse, len(recs))
	for i, r := range recs {
		res[i] = RecommendationResponse{
			RecommendationID: r.RecommendationID,
			UserID:           r.UserID,
			Type:             r.Type,
			Message:          r.Message,
			CreatedAt:        r.CreatedAt,
		}
	}
	return res
}

// ToAuditLogResponses converts domain audit entries to DTOs.
func ToAuditLogResponses(entries []domain.AuditLog) []AuditLogResponse {
	res := make([]AuditLogResponse, len(entries))
	for i, e := range entries {
		res[i] = AuditLogResponse{
			AuditID:    e.AuditID,
			UserID:     e.UserID,
			Action:     e.Action,
			EntityName: e.EntityName,
			EntityID:   e.EntityID,
			Details:    e.Details,
			CreatedAt:  e.CreatedAt,
		}
	}
	return res
}
