package ingest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"coldwatch/internal/ingest"
)

func TestVerifySignature(t *testing.T) {
	secret := "super-secret"
	body := []byte(`{"tenant_id":"t1","site_id":"s1","reading":5}`)
	good := ingest.Sign(secret, body)

	assert.True(t, ingest.VerifySignature(secret, body, good))
	assert.True(t, ingest.VerifySignature(secret, body, strings.ToUpper(good)), "hex case must not matter")

	assert.False(t, ingest.VerifySignature(secret, body, ""), "absent signature")
	assert.False(t, ingest.VerifySignature(secret, body, "deadbeef"), "wrong length")
	assert.False(t, ingest.VerifySignature(secret, body, good[:len(good)-1]+"0"), "wrong value")
	assert.False(t, ingest.VerifySignature("other-secret", body, good), "wrong secret")

	// single-byte body tamper invalidates
	tampered := append([]byte{}, body...)
	tampered[10] ^= 0x01
	assert.False(t, ingest.VerifySignature(secret, tampered, good))
}
