package handler

import (
	"wallet-topup-service/internal/adapter/http/dto"
	"wallet-topup-service/internal/adapter/http/middleware"
	"wallet-topup-service/internal/core/ports"
	"wallet-topup-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TopupHandler receives provider webhook notifications.
type TopupHandler struct {
	validator ports.PayloadValidator
	topupSvc  ports.TopupService
	log       zerolog.Logger
}

// NewTopupHandler creates a new TopupHandler.
func NewTopupHandler(validator ports.PayloadValidator, topupSvc ports.TopupService, log zerolog.Logger) *TopupHandler {
	return &TopupHandler{validator: validator, topupSvc: topupSvc, log: log}
}

// Notify handles POST /wallet/top-up/notify. The signature gate already ran;
// this parses and validates the batch, applies every entry, and always
// answers 200 with the partitioned echo lists. A schema violation gets the
// same generic rejection as a bad signature.
func (h *TopupHandler) Notify(c *gin.Context) {
	raw, ok := c.Get(middleware.CtxRawBody)
	if !ok {
		response.Unauthorized(c)
		return
	}

	batch, err := h.validator.Validate(raw.([]byte))
	if err != nil {
		h.log.Warn().Err(err).Msg("webhook payload rejected")
		response.Unauthorized(c)
		return
	}

	result := h.topupSvc.ProcessBatch(c.Request.Context(), batch.Transactions)

	response.OK(c, dto.TopupResultResponse{
		SuccessfullTransactions: result.Succeeded,
		FailedTransactions:      result.Failed,
	})
}
