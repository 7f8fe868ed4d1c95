package redis

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_RoundTrip(t *testing.T) {
	key := PageKey{
		PK: "USER#3dc4e7c0-9e17-4a3f-a2f1-4f4e3a000001",
		SK: "TRANSACTION#tx-42#CREATED_AT#2023-03-01T04:32:26.837Z",
	}

	cursor := EncodeCursor(key)
	require.NotEmpty(t, cursor)

	decoded, err := DecodeCursor(cursor)
	require.NoError(t, err)
	assert.Equal(t, key, decoded)
}

func TestCursor_IsOpaqueBase64(t *testing.T) {
	cursor := EncodeCursor(PageKey{PK: "USER#u1", SK: "TRANSACTION#t1#CREATED_AT#now"})

	raw, err := base64.StdEncoding.DecodeString(cursor)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"pk"`)
	assert.Contains(t, string(raw), `"sk"`)
}

func TestDecodeCursor_RejectsGarbage(t *testing.T) {
	_, err := DecodeCursor("%%% not base64 %%%")
	assert.Error(t, err)

	// Valid base64 but not a JSON key.
	_, err = DecodeCursor(base64.StdEncoding.EncodeToString([]byte("plain text")))
	assert.Error(t, err)
}
