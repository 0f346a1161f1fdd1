package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
)

// insightHandler serves the read side of the pipeline's derived signals:
// budget alerts, recommendations and the audit trail.
type insightHandler struct {
	insightService portssvc.InsightSvcFacade
}

// newInsightHandler creates a new insightHandler.
func newInsightHandler(is portssvc.InsightSvcFacade) *insightHandler {
	return &insightHandler{
		insightService: is,
	}
}

// registerInsightRoutes registers the signal read routes.
func registerInsightRoutes(rg *gin.RouterGroup, insightService portssvc.InsightSvcFacade) {
	h := newInsightHandler(insightService)

	rg.GET("/users/:userID/alerts", h.listAlerts)
	rg.GET("/users/:userID/recommendations", h.listRecommendations)
	rg.GET("/users/:userID/audit-logs", h.listAuditLogs)
}

// listAlerts godoc
// @Summary List a user's budget alerts
// @Description Retrieves budget alerts, newest first
// @Tags insights
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   limit query int false "Max alerts to return" default(50)
// @Success 200 {array} dto.AlertResponse
// @Failure 500 {object} map[string]string "Failed to list alerts"
// @Router /users/{userID}/alerts [get]
func (h *insightHandler) listAlerts(c *gin.Context) {
	userID := c.Param("userID")

	var params dto.ListSignalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	alerts, err := h.insightService.ListAlerts(c.Request.Context(), userID, params.Limit)
	if err != nil {
		respondWithError(c, err, "Failed to list alerts")
		return
	}

	c.JSON(http.StatusOK, dto.ToAlertResponses(alerts))
}

// listRecommendations godoc
// @Summary List a user's recommendations
// @Description Retrieves recommendations, newest first
// @Tags insights
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   limit query int false "Max recommendations to return" default(50)
// @Success 200 {array} dto.RecommendationResponse
// @Failure 500 {object} map[string]string "Failed to list recommendations"
// @Router /users/{userID}/recommendations [get]
func (h *insightHandler) listRecommendations(c *gin.Context) {
	userID := c.Param("userID")

	var params dto.ListSignalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	recs, err := h.insightService.ListRecommendations(c.Request.Context(), userID, params.Limit)
	if err != nil {
		respondWithError(c, err, "Failed to list recommendations")
		return
	}

	c.JSON(http.StatusOK, dto.ToRecommendationResponses(recs))
}

// listAuditLogs godoc
// @Summary List a user's audit trail
// @Description Retrieves audit entries, newest first
// @Tags insights
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   limit query int false "Max entries to return" default(50)
// @Success 200 {array} dto.AuditLogResponse
// @Failure 500 {object} map[string]string "Failed to list audit entries"
// @Router /users/{userID}/audit-logs [get]
func (h *insightHandler) listAuditLogs(c *gin.Context) {
	userID := c.Param("userID")

	var params dto.ListSignalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.insightService.ListAuditLogs(c.Request.Context(), userID, params.Limit)
	if err != nil {
		respondWithError(c, err, "Failed to list audit entries")
		return
	}

	c.JSON(http.StatusOK, dto.ToAuditLogResponses(entries))
}
