package handler

import (
	"strconv"

	"wallet-topup-service/internal/adapter/http/dto"
	"wallet-topup-service/internal/core/domain"
	"wallet-topup-service/internal/core/ports"
	"wallet-topup-service/pkg/apperror"
	"wallet-topup-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler serves the read-only ledger endpoints.
type WalletHandler struct {
	repo ports.WalletRepository
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(repo ports.WalletRepository) *WalletHandler {
	return &WalletHandler{repo: repo}
}

// GetWallet handles GET /users/:userId/wallet.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID := c.Param("userId")

	wallet, err := h.repo.GetWallet(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if wallet == nil {
		response.Error(c, apperror.ErrWalletNotFound(userID))
		return
	}

	response.OK(c, wallet)
}

// ListTransactions handles GET /users/:userId/payment-transactions.
// Query parameters: sort (asc, default, or desc), limit, and
// lastEvaluatedKey, the cursor echoed from the previous page.
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID := c.Param("userId")

	sort := c.DefaultQuery("sort", "asc")
	if sort != "asc" && sort != "desc" {
		response.Error(c, apperror.ErrInvalidRequest())
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.Error(c, apperror.ErrInvalidRequest())
			return
		}
		limit = parsed
	}

	page, err := h.repo.ListTransactions(c.Request.Context(), ports.TransactionListQuery{
		UserID: userID,
		Sort:   sort,
		Cursor: c.Query("lastEvaluatedKey"),
		Limit:  limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := page.Items
	if items == nil {
		items = []domain.Transaction{}
	}
	response.OK(c, dto.TransactionListResponse{
		Items:            items,
		LastEvaluatedKey: page.LastEvaluatedKey,
	})
}
