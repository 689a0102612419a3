package ingest

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignatureHeader carries the hex HMAC-SHA256 of the exact raw request body.
const SignatureHeader = "x-temp-signature"

// VerifySignature reports whether provided is the hex-encoded HMAC-SHA256
// of rawBody keyed by secret. Comparison is constant-time (hex case is
// normalized first). Never logs or echoes the secret or the expected value;
// the caller maps false to a bare 401 with no detail on what failed.
func VerifySignature(secret string, rawBody []byte, provided string) bool {
	if provided == "" {
		return false
	}
	m := hmac.New(sha256.New, []byte(secret))
	m.Write(rawBody)
	want := hex.EncodeToString(m.Sum(nil))
	return hmac.Equal([]byte(strings.ToLower(provided)), []byte(want))
}

// Sign computes the signature a device would send. Exported for provisioning
// tools and tests.
func Sign(secret string, rawBody []byte) string {
	m := hmac.New(sha256.New, []byte(secret))
	m.Write(rawBody)
	return hex.EncodeToString(m.Sum(nil))
}
