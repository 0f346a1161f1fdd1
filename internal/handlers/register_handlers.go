package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/services"
	"github.com/fintrack-io/fintrack_backend/internal/middleware"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	svc *services.ServicesContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, svc)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	svc *services.ServicesContainer,
) {
	v1 := r.Group("/api/v1")

	registerUserRoutes(v1, svc.UserSvc)
	registerAccountRoutes(v1, svc.AccountSvc, svc.TransactionSvc)
	registerTransactionRoutes(v1, svc.TransactionSvc)
	registerBudgetRoutes(v1, svc.BudgetSvc)
	registerGoalRoutes(v1, svc.GoalSvc)
	registerInsightRoutes(v1, svc.InsightSvc)
}

// respondWithError maps application errors onto HTTP status codes. Contention
// maps to 409 so clients know the mutation is safe to retry.
func respondWithError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrContention):
		c.JSON(http.StatusConflict, gin.H{"error": "operation conflicted with a concurrent change, please retry"})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
