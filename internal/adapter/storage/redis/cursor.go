package redis

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// PageKey is the storage pagination key: the partition and sort key of the
// last item a page returned.
type PageKey struct {
	PK string `json:"pk"`
	SK string `json:"sk"`
}

// EncodeCursor serialises a pagination key into the opaque cursor handed to
// callers: base64 over the JSON form. Callers never interpret the inside.
func EncodeCursor(key PageKey) string {
	raw, _ := json.Marshal(key) // PageKey cannot fail to marshal
	return base64.StdEncoding.EncodeToString(raw)
}

// DecodeCursor reverses EncodeCursor. Any undecodable cursor is a caller
// error.
func DecodeCursor(cursor string) (PageKey, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return PageKey{}, fmt.Errorf("decoding cursor: %w", err)
	}

	var key PageKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return PageKey{}, fmt.Errorf("unmarshaling cursor: %w", err)
	}
	return key, nil
}
