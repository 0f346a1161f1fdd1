package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/middleware"
)

// goalHandler handles HTTP requests related to savings goals.
type goalHandler struct {
	goalService portssvc.GoalSvcFacade
}

// newGoalHandler creates a new goalHandler.
func newGoalHandler(gs portssvc.GoalSvcFacade) *goalHandler {
	return &goalHandler{
		goalService: gs,
	}
}

// registerGoalRoutes registers all goal-related routes.
func registerGoalRoutes(rg *gin.RouterGroup, goalService portssvc.GoalSvcFacade) {
	h := newGoalHandler(goalService)

	goals := rg.Group("/goals")
	{
		goals.POST("", h.createGoal)
		goals.GET("/:goalID", h.getGoal)
		goals.PUT("/:goalID", h.updateGoal)
		goals.DELETE("/:goalID", h.deleteGoal)
		goals.POST("/:goalID/contributions", h.contributeToGoal)
	}

	rg.GET("/users/:userID/goals", h.listGoals)
}

// createGoal godoc
// @Summary Create a savings goal
// @Description Creates a goal with a target amount and date
// @Tags goals
// @Accept  json
// @Produce  json
// @Param   goal body dto.CreateGoalRequest true "Goal details"
// @Success 201 {object} dto.GoalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Owning user not found"
// @Failure 500 {object} map[string]string "Failed to create goal"
// @Router /goals [post]
func (h *goalHandler) createGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create goal request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to create goal")
		return
	}

	logger.Info("Goal created", slog.String("goal_id", goal.GoalID))
	c.JSON(http.StatusCreated, dto.ToGoalResponse(goal))
}

// getGoal godoc
// @Summary Get a goal by ID
// @Description Retrieves a goal with its contributed sum
// @Tags goals
// @Produce  json
// @Param   goalID path string true "Goal ID"
// @Success 200 {object} dto.GoalResponse
// @Failure 404 {object} map[string]string "Goal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve goal"
// @Router /goals/{goalID} [get]
func (h *goalHandler) getGoal(c *gin.Context) {
	goalID := c.Param("goalID")

	goal, err := h.goalService.GetGoalByID(c.Request.Context(), goalID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve goal")
		return
	}

	c.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}

// listGoals godoc
// @Summary List a user's goals
// @Description Retrieves all goals for a user with contributed sums
// @Tags goals
// @Produce  json
// @Param   userID path string true "User ID"
// @Success 200 {array} dto.GoalResponse
// @Failure 500 {object} map[string]string "Failed to list goals"
// @Router /users/{userID}/goals [get]
func (h *goalHandler) listGoals(c *gin.Context) {
	userID := c.Param("userID")

	goals, err := h.goalService.ListGoalsByUser(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list goals")
		return
	}

	c.JSON(http.StatusOK, dto.ToGoalResponses(goals))
}

// updateGoal godoc
// @Summary Update a goal
// @Description Updates a goal's name, target amount and target date
// @Tags goals
// @Accept  json
// @Produce  json
// @Param   goalID path string true "Goal ID"
// @Param   goal body dto.UpdateGoalRequest true "New goal shape"
// @Success 200 {object} dto.GoalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Goal not found"
// @Failure 500 {object} map[string]string "Failed to update goal"
// @Router /goals/{goalID} [put]
func (h *goalHandler) updateGoal(c *gin.Context) {
	goalID := c.Param("goalID")

	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), goalID, req)
	if err != nil {
		respondWithError(c, err, "Failed to update goal")
		return
	}

	c.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}

// deleteGoal godoc
// @Summary Delete a goal
// @Description Deletes a goal; past contributions keep their transactions
// @Tags goals
// @Produce  json
// @Param   goalID path string true "Goal ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Goal not found"
// @Failure 500 {object} map[string]string "Failed to delete goal"
// @Router /goals/{goalID} [delete]
func (h *goalHandler) deleteGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("goalID")

	if err := h.goalService.DeleteGoal(c.Request.Context(), goalID); err != nil {
		respondWithError(c, err, "Failed to delete goal")
		return
	}

	logger.Info("Goal deleted", slog.String("goal_id", goalID))
	c.Status(http.StatusNoContent)
}

// contributeToGoal godoc
// @Summary Contribute to a goal
// @Description Credits an account towards a goal via a regular ledger transaction
// @Tags goals
// @Accept  json
// @Produce  json
// @Param   goalID path string true "Goal ID"
// @Param   contribution body dto.ContributeToGoalRequest true "Contribution details"
// @Success 201 {object} dto.CreateTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Goal or account not found"
// @Failure 409 {object} map[string]string "Concurrent mutation conflict"
// @Failure 500 {object} map[string]string "Failed to record contribution"
// @Router /goals/{goalID}/contributions [post]
func (h *goalHandler) contributeToGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("goalID")

	var req dto.ContributeToGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, recs, err := h.goalService.ContributeToGoal(c.Request.Context(), goalID, req)
	if err != nil {
		respondWithError(c, err, "Failed to record contribution")
		return
	}

	logger.Info("Goal contribution recorded", slog.String("goal_id", goalID), slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.CreateTransactionResponse{
		Transaction:     dto.ToTransactionResponse(txn),
		Alerts:          []dto.AlertResponse{},
		Recommendations: dto.ToRecommendationResponses(recs),
	})
}
