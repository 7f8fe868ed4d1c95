package response

import (
	"errors"
	"net/http"

	"wallet-topup-service/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// MessageBody is the error envelope used across the API. The webhook contract
// pins the exact shape: {"message": "..."}.
type MessageBody struct {
	Message string `json:"message"`
}

// OK sends a 200 response with the payload as-is. The external contracts
// (webhook result lists, wallet reads) dictate flat bodies, so there is no
// data envelope here.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Unauthorized sends the generic rejection used for every failed webhook
// gate: missing header/body, bad signature, and schema violations all look
// identical to the caller.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusBadRequest, MessageBody{Message: "Unauthorized Access"})
}

// Error sends an error response. It checks if err is an *apperror.AppError
// and maps it accordingly, otherwise returns 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, MessageBody{Message: appErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, MessageBody{Message: "Internal server error"})
}
