package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/middleware"
)

// transactionHandler handles HTTP requests for the transaction mutation
// pipeline. Mutation responses carry the alerts and recommendations emitted
// inside the same atomic unit of work, so clients can surface them without a
// second round trip.
type transactionHandler struct {
	txnService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		txnService: ts,
	}
}

// registerTransactionRoutes registers all transaction-related routes.
func registerTransactionRoutes(rg *gin.RouterGroup, txnService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(txnService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.PUT("/:transactionID", h.updateTransaction)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
	}

	rg.GET("/users/:userID/transactions", h.listTransactions)
}

// createTransaction godoc
// @Summary Create a transaction
// @Description Records a transaction, applies it to the account balance and evaluates budgets and low-balance signals atomically
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.CreateTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Concurrent mutation conflict"
// @Failure 500 {object} map[string]string "Failed to create transaction"
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create transaction request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, alerts, recs, err := h.txnService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.Int("alerts", len(alerts)),
		slog.Int("recommendations", len(recs)))
	c.JSON(http.StatusCreated, dto.CreateTransactionResponse{
		Transaction:     dto.ToTransactionResponse(txn),
		Alerts:          dto.ToAlertResponses(alerts),
		Recommendations: dto.ToRecommendationResponses(recs),
	})
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Description Retrieves a single transaction
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	transactionID := c.Param("transactionID")

	txn, err := h.txnService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List a user's recent transactions
// @Description Retrieves a user's transactions ordered by event time, newest first
// @Tags transactions
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   limit query int false "Max transactions to return" default(50)
// @Success 200 {array} dto.TransactionResponse
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /users/{userID}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID := c.Param("userID")

	var params dto.ListSignalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.txnService.ListRecentTransactions(c.Request.Context(), userID, params.Limit)
	if err != nil {
		respondWithError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Replaces a transaction's fields, reconciling both the old and new account balances atomically
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "New transaction shape"
// @Success 200 {object} dto.UpdateTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Transaction or account not found"
// @Failure 409 {object} map[string]string "Concurrent mutation conflict"
// @Failure 500 {object} map[string]string "Failed to update transaction"
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, alerts, err := h.txnService.UpdateTransaction(c.Request.Context(), transactionID, req)
	if err != nil {
		respondWithError(c, err, "Failed to update transaction")
		return
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID), slog.Int("alerts", len(alerts)))
	c.JSON(http.StatusOK, dto.UpdateTransactionResponse{
		Transaction: dto.ToTransactionResponse(txn),
		Alerts:      dto.ToAlertResponses(alerts),
	})
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Deletes a transaction, restoring the account balance and re-evaluating the affected budget atomically
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.DeleteTransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Concurrent mutation conflict"
// @Failure 500 {object} map[string]string "Failed to delete transaction"
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	alerts, err := h.txnService.DeleteTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondWithError(c, err, "Failed to delete transaction")
		return
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.DeleteTransactionResponse{
		Alerts: dto.ToAlertResponses(alerts),
	})
}
