package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"wallet-topup-service/internal/core/domain"
	"wallet-topup-service/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEntry() map[string]interface{} {
	return map[string]interface{}{
		"id":           "1231cb10-0202-0138-225b-028e897a70a6",
		"created_at":   "2019-12-17T07:20:14.966Z",
		"updated_at":   "2019-12-17T07:20:14.966Z",
		"description":  "Credit of $4.00 to Wallet Account by Debit of $4.00 from NPP Payin Funding Account",
		"type":         "deposit",
		"type_method":  "npp_payin",
		"state":        "successful",
		"user_id":      "449416d8-ec3c-4c0b-a326-e2cfaadaa3a6",
		"user_name":    "Neol Buyer",
		"amount":       "4.00",
		"currency":     "AUD",
		"debit_credit": "credit",
	}
}

func marshalBatch(t *testing.T, entries ...map[string]interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{"transactions": entries})
	require.NoError(t, err)
	return raw
}

func TestValidate_ValidBatch(t *testing.T) {
	v := NewPayloadValidator()

	batch, err := v.Validate(marshalBatch(t, validEntry()))
	require.NoError(t, err)
	require.Len(t, batch.Transactions, 1)

	entry := batch.Transactions[0]
	assert.Equal(t, "449416d8-ec3c-4c0b-a326-e2cfaadaa3a6", entry.UserID)
	assert.Equal(t, "4.00", entry.Amount)
	assert.Equal(t, domain.StateSuccessful, entry.State)
	assert.True(t, entry.IsSuccessful())
}

func TestValidate_EmptyTransactionsArray(t *testing.T) {
	v := NewPayloadValidator()

	batch, err := v.Validate([]byte(`{"transactions":[]}`))
	require.NoError(t, err)
	assert.Empty(t, batch.Transactions)
}

func TestValidate_MalformedJSON(t *testing.T) {
	v := NewPayloadValidator()

	for _, raw := range []string{"", "   ", "{", "not json", `"string"`} {
		_, err := v.Validate([]byte(raw))
		require.Error(t, err, "body %q", raw)

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "VAL_001", appErr.Code, "body %q", raw)
	}
}

func TestValidate_MissingTransactionsKey(t *testing.T) {
	v := NewPayloadValidator()

	_, err := v.Validate([]byte(`{}`))
	assert.Error(t, err)
}

func TestValidate_MissingField(t *testing.T) {
	v := NewPayloadValidator()

	for _, field := range []string{"id", "state", "amount", "user_id", "currency"} {
		entry := validEntry()
		delete(entry, field)

		_, err := v.Validate(marshalBatch(t, entry))
		assert.Error(t, err, "missing %s should fail the batch", field)
	}
}

func TestValidate_EnumViolations(t *testing.T) {
	v := NewPayloadValidator()

	cases := map[string]string{
		"type":         "withdrawal",
		"type_method":  "card",
		"state":        "pending",
		"currency":     "USD",
		"debit_credit": "debit",
	}
	for field, bad := range cases {
		entry := validEntry()
		entry[field] = bad

		_, err := v.Validate(marshalBatch(t, entry))
		assert.Error(t, err, "%s=%q should be rejected", field, bad)
	}
}

func TestValidate_AmountShapes(t *testing.T) {
	v := NewPayloadValidator()

	valid := []string{"0", "4", "4.0", "4.00", "4.000000000001", "123456.99"}
	for _, amount := range valid {
		entry := validEntry()
		entry["amount"] = amount
		_, err := v.Validate(marshalBatch(t, entry))
		assert.NoError(t, err, "amount %q should pass", amount)
	}

	invalid := []string{"-4.00", "4.", ".5", "4,00", "4.0000000000001", "1e3", "four"}
	for _, amount := range invalid {
		entry := validEntry()
		entry["amount"] = amount
		_, err := v.Validate(marshalBatch(t, entry))
		assert.Error(t, err, "amount %q should be rejected", amount)
	}
}

func TestValidate_OneBadEntryFailsWholeBatch(t *testing.T) {
	v := NewPayloadValidator()

	bad := validEntry()
	delete(bad, "state")

	_, err := v.Validate(marshalBatch(t, validEntry(), bad))
	assert.Error(t, err)
}

func TestValidate_BatchSizeCap(t *testing.T) {
	v := NewPayloadValidator()

	entries := make([]map[string]interface{}, 0, domain.MaxBatchSize+1)
	for i := 0; i <= domain.MaxBatchSize; i++ {
		entry := validEntry()
		entry["id"] = fmt.Sprintf("tx-%d", i)
		entries = append(entries, entry)
	}

	_, err := v.Validate(marshalBatch(t, entries...))
	assert.Error(t, err, "11 entries should exceed the cap")

	_, err = v.Validate(marshalBatch(t, entries[:domain.MaxBatchSize]...))
	assert.NoError(t, err, "10 entries is within the cap")
}
