package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/agency_ledger/internal/core/ports/services"
	"github.com/SscSPs/agency_ledger/internal/dto"
	"github.com/SscSPs/agency_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts and transfers.
type accountHandler struct {
	accountService  portssvc.AccountSvcFacade
	transferService portssvc.TransferSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, ts portssvc.TransferSvcFacade) *accountHandler {
	return &accountHandler{
		accountService:  as,
		transferService: ts,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, as portssvc.AccountSvcFacade, ts portssvc.TransferSvcFacade) {
	h := newAccountHandler(as, ts)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("/transfer", h.transfer)
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PATCH("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger.Info("Received request to create account", slog.String("account_name", req.Name), slog.String("currency", string(req.Currency)))
	account, err := h.accountService.CreateAccount(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, gin.H{"message": "Account created", "account": account})
}

func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve account")
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err, "list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: accounts})
}

func (h *accountHandler) updateAccount(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "update account")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account updated", "account": account})
}

// deleteAccount soft-deletes an account no transaction references.
func (h *accountHandler) deleteAccount(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	if err := h.accountService.DeleteAccount(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err, "delete account")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *accountHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.transferService.Transfer(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "transfer funds")
		return
	}

	logger.Info("Transfer completed",
		slog.String("from_account_id", req.FromAccountID),
		slog.String("to_account_id", req.ToAccountID))
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Transfer completed",
		"outgoing": resp.Outgoing,
		"incoming": resp.Incoming,
	})
}
