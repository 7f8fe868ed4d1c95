package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"wallet-topup-service/internal/core/ports"
	"wallet-topup-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// HeaderSignature carries the provider's HMAC-SHA256 hex digest of the
	// raw request body.
	HeaderSignature = "Authorization"

	// Context keys
	CtxRawBody = "raw_body"
	CtxSubject = "auth_subject"
)

// WebhookAuth verifies the provider signature over the exact raw body bytes.
// Every rejection, missing header, missing body, digest mismatch, produces
// the same generic 400 so a probing caller cannot tell which gate failed.
// The raw body is stashed in the context for the handler; signature
// verification and payload parsing must see identical bytes.
func WebhookAuth(secrets ports.SecretSource, sigSvc ports.SignatureService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		signature := c.GetHeader(HeaderSignature)
		if signature == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		// Providers differ on whitespace in the header value; the digest
		// itself never contains spaces, so drop them all before comparing.
		signature = strings.ReplaceAll(signature, " ", "")

		body, err := io.ReadAll(c.Request.Body)
		if err != nil || len(body) == 0 {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		secret, err := secrets.WebhookSecret(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("webhook secret unavailable")
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if !sigSvc.Verify(secret, body, signature) {
			log.Warn().Str("client_ip", c.ClientIP()).Msg("webhook signature mismatch")
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(CtxRawBody, body)
		c.Next()
	}
}

// JWTAuth validates bearer tokens for the read-only routes.
func JWTAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := tokenSvc.Validate(authHeader[7:])
		if err != nil {
			log.Warn().Err(err).Msg("token rejected")
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(CtxSubject, claims.Subject)
		c.Next()
	}
}

// RequestLogger logs every HTTP request. Requests without an X-Request-ID
// header get one assigned so provider deliveries can be traced end to end.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery converts panics into 500 responses.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"message": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// MaxBodySize limits the request body size.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
