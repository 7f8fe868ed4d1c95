package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses and
// per-transaction failure reasons.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Security & Authentication (SEC) ----

// ErrUnauthorized covers missing header/body, signature mismatch, and schema
// violations alike. The webhook contract returns one generic message for all
// three so a caller probing the endpoint cannot tell which gate rejected it.
func ErrUnauthorized() *AppError {
	return New("SEC_001", "Unauthorized Access", http.StatusBadRequest)
}

func ErrInvalidToken() *AppError {
	return New("SEC_002", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Validation (VAL) ----

func ErrMalformedBody() *AppError {
	return New("VAL_001", "Malformed request body", http.StatusBadRequest)
}

func ErrSchemaViolation(err error) *AppError {
	return Wrap("VAL_002", "Request body failed schema validation", http.StatusBadRequest, err)
}

func ErrInvalidRequest() *AppError {
	return New("VAL_003", "Invalid request", http.StatusBadRequest)
}

// ---- Ledger Business Logic (PAY) ----

func ErrAmountInvalid(amount string) *AppError {
	return New("PAY_001", fmt.Sprintf("Amount %q is not a valid decimal", amount), http.StatusBadRequest)
}

func ErrAlreadyApplied(transactionID string) *AppError {
	return New("PAY_002", fmt.Sprintf("Transaction %s already applied", transactionID), http.StatusConflict)
}

func ErrWalletNotFound(userID string) *AppError {
	return New("PAY_003", fmt.Sprintf("No wallet for user %s", userID), http.StatusBadRequest)
}

// ---- System & Infrastructure (SYS) ----

func ErrStorageUnavailable(err error) *AppError {
	return Wrap("SYS_001", "Storage unavailable", http.StatusServiceUnavailable, err)
}

// InternalError wraps an internal error as a SYS_002 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_002", "Internal server error", http.StatusInternalServerError, err)
}
