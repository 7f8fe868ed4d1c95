package ports

import (
	"context"
	"time"

	"wallet-topup-service/internal/core/domain"
)

// SignatureService handles HMAC-SHA256 digests over raw request bytes.
type SignatureService interface {
	// Sign returns the lowercase hex encoding of the digest.
	Sign(secret string, payload []byte) string
	// SignBase64 returns the standard base64 encoding of the digest.
	SignBase64(secret string, payload []byte) string
	// Verify compares a hex signature against the recomputed digest in
	// constant time. Malformed signature strings yield false, never an
	// error.
	Verify(secret string, payload []byte, signature string) bool
	// VerifyBase64 is Verify for base64-encoded signatures.
	VerifyBase64(secret string, payload []byte, signature string) bool
}

// PayloadValidator parses and structurally validates a webhook body.
// Validation is all-or-nothing: one bad entry rejects the whole batch.
type PayloadValidator interface {
	Validate(raw []byte) (*domain.TopupBatch, error)
}

// SecretSource resolves the webhook's pre-shared HMAC secret. Retrieval
// mechanics (parameter store, env) live with the caller; this core only sees
// the value.
type SecretSource interface {
	WebhookSecret(ctx context.Context) (string, error)
}

// TopupService applies a validated batch to the ledger.
type TopupService interface {
	// ProcessBatch attempts every entry regardless of earlier failures and
	// partitions the originals into succeeded and failed lists.
	ProcessBatch(ctx context.Context, batch []domain.TopupNotification) *BatchResult
}

// BatchResult partitions a processed batch. Both slices hold the original
// wire entries so the webhook response can echo them back.
type BatchResult struct {
	Succeeded []domain.TopupNotification
	Failed    []domain.TopupNotification
}

// TokenService validates bearer tokens for the read-only endpoints. Tokens
// are minted by the surrounding platform with the shared secret; Generate
// exists for that platform's tooling and for tests.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed token claims.
type TokenClaims struct {
	Subject string
}

// EventPublisher announces applied top-ups to downstream consumers.
// Publishing is best-effort: a failure must never fail the entry.
type EventPublisher interface {
	PublishTopupApplied(ctx context.Context, txn *domain.Transaction) error
}
