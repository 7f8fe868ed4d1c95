package service

import (
	"context"
	"errors"
)

// StaticSecretSource serves the webhook HMAC secret from configuration. The
// secret is provisioned out of band and shared with the payment provider; in
// larger deployments this would be swapped for a parameter-store reader
// behind the same interface.
type StaticSecretSource struct {
	secret string
}

// NewStaticSecretSource creates a config-backed secret source.
func NewStaticSecretSource(secret string) *StaticSecretSource {
	return &StaticSecretSource{secret: secret}
}

// WebhookSecret returns the configured secret. An empty secret is a
// deployment fault, surfaced as an error rather than silently accepting
// unsigned requests.
func (s *StaticSecretSource) WebhookSecret(_ context.Context) (string, error) {
	if s.secret == "" {
		return "", errors.New("webhook secret is not configured")
	}
	return s.secret, nil
}
