package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// digestEncoding selects the textual representation of a digest. Hashing and
// comparison are encoding-agnostic; only the rendering differs.
type digestEncoding int

const (
	encodingHex digestEncoding = iota
	encodingBase64
)

// HMACSignatureService implements ports.SignatureService using HMAC-SHA256
// over the exact raw bytes of the request body.
type HMACSignatureService struct{}

// NewHMACSignatureService creates a new HMAC-SHA256 signature service.
func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{}
}

func (s *HMACSignatureService) digest(secret string, payload []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return mac.Sum(nil)
}

func (s *HMACSignatureService) encode(enc digestEncoding, digest []byte) string {
	if enc == encodingBase64 {
		return base64.StdEncoding.EncodeToString(digest)
	}
	return hex.EncodeToString(digest)
}

// Sign computes HMAC-SHA256 of payload using secret.
// Returns the lowercase hex-encoded digest.
func (s *HMACSignatureService) Sign(secret string, payload []byte) string {
	return s.encode(encodingHex, s.digest(secret, payload))
}

// SignBase64 computes HMAC-SHA256 of payload using secret.
// Returns the standard base64-encoded digest.
func (s *HMACSignatureService) SignBase64(secret string, payload []byte) string {
	return s.encode(encodingBase64, s.digest(secret, payload))
}

// Verify checks a hex-encoded signature against HMAC-SHA256(secret, payload).
func (s *HMACSignatureService) Verify(secret string, payload []byte, signature string) bool {
	return s.verify(encodingHex, secret, payload, signature)
}

// VerifyBase64 checks a base64-encoded signature.
func (s *HMACSignatureService) VerifyBase64(secret string, payload []byte, signature string) bool {
	return s.verify(encodingBase64, secret, payload, signature)
}

// verify recomputes the digest and compares the encoded forms with
// hmac.Equal. A malformed signature string simply fails the comparison; it
// never causes an error or a variable-time bail-out on content.
func (s *HMACSignatureService) verify(enc digestEncoding, secret string, payload []byte, signature string) bool {
	expected := s.encode(enc, s.digest(secret, payload))
	return hmac.Equal([]byte(expected), []byte(signature))
}
