package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/agency_ledger/internal/core/ports/services"
	"github.com/SscSPs/agency_ledger/internal/dto"
	"github.com/SscSPs/agency_ledger/internal/middleware"
	"github.com/SscSPs/agency_ledger/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for the transaction lifecycle.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(ts)

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("", h.listTransactions)
		txns.GET("/:id", h.getTransaction)
		txns.PUT("/:id", h.updateTransaction)
		txns.DELETE("/:id", h.deleteTransaction)
		txns.PUT("/:id/approval", h.decideTransaction)
	}
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	out, err := h.transactionService.CreateTransaction(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "create transaction")
		return
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", out.Transaction.TransactionID),
		slog.String("approval_status", string(out.Transaction.ApprovalStatus)))
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Transaction created",
		"transaction": dto.ToTransactionResponse(*out),
	})
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	txn, err := h.transactionService.GetTransaction(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, txn)
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), actor, params.ToFilter())
	if err != nil {
		respondError(c, err, "list transactions")
		return
	}

	page, next, err := pagination.Page(txns, params.Limit, params.NextToken, func(t domain.Transaction) pagination.Cursor {
		return pagination.Cursor{Date: t.Date, CreatedAt: t.CreatedAt, ID: t.TransactionID}
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: page, NextToken: next})
}

func (h *transactionHandler) updateTransaction(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	out, err := h.transactionService.UpdateTransaction(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "update transaction")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Transaction updated",
		"transaction": dto.ToTransactionResponse(*out),
	})
}

func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err, "delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// decideTransaction approves or rejects a pending transaction.
func (h *transactionHandler) decideTransaction(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	transactionID := c.Param("id")
	if req.Decision == "reject" {
		if err := h.transactionService.RejectTransaction(c.Request.Context(), actor, transactionID); err != nil {
			respondError(c, err, "reject transaction")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Transaction rejected", "id": transactionID})
		return
	}

	out, err := h.transactionService.ApproveTransaction(c.Request.Context(), actor, transactionID)
	if err != nil {
		respondError(c, err, "approve transaction")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Transaction approved",
		"transaction": dto.ToTransactionResponse(*out),
	})
}
