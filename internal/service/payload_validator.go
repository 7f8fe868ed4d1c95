package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"

	"wallet-topup-service/internal/core/domain"
	"wallet-topup-service/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// Non-negative decimal, at most 12 fractional digits. Matches the provider's
// published schema for the amount field.
var topupAmountRe = regexp.MustCompile(`^\d+(\.\d{1,12})?$`)

// JSONPayloadValidator implements ports.PayloadValidator for the webhook's
// JSON body. Validation is all-or-nothing: the caller gets a single
// rejection, never partial results.
type JSONPayloadValidator struct {
	validate *validator.Validate
}

// NewPayloadValidator creates a validator with the custom amount rule
// registered.
func NewPayloadValidator() *JSONPayloadValidator {
	v := validator.New()
	_ = v.RegisterValidation("topup_amount", validateTopupAmount)
	return &JSONPayloadValidator{validate: v}
}

// validateTopupAmount enforces the decimal-string shape of amounts. The
// numeric conversion happens later, in one place, at the storage boundary.
func validateTopupAmount(fl validator.FieldLevel) bool {
	return topupAmountRe.MatchString(fl.Field().String())
}

// Validate parses raw bytes and checks every entry against the closed wire
// schema. Parse failures come back as a generic malformed-body error with no
// schema detail.
func (p *JSONPayloadValidator) Validate(raw []byte) (*domain.TopupBatch, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, apperror.ErrMalformedBody()
	}

	var batch domain.TopupBatch
	if err := json.Unmarshal(raw, &batch); err != nil {
		return nil, apperror.ErrMalformedBody()
	}

	// The transactions key itself is mandatory; an empty array is a valid
	// (if pointless) notification.
	if batch.Transactions == nil {
		return nil, apperror.ErrSchemaViolation(errors.New("transactions field is required"))
	}

	if err := p.validate.Struct(&batch); err != nil {
		return nil, apperror.ErrSchemaViolation(err)
	}

	return &batch, nil
}
