package gatepass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatParseRoundTrip(t *testing.T) {
	signer := NewHMACSigner("test-secret")
	payload := ParsedToken{EntityID: "OF-2026-A7F3", IssuedAtMS: 1700000000000}
	sig := signer.Sign(payload.Payload())

	raw := FormatToken("OF-2026-A7F3", 1700000000000, sig)
	parsed, err := ParseToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "OF-2026-A7F3", parsed.EntityID)
	assert.Equal(t, int64(1700000000000), parsed.IssuedAtMS)
	assert.Len(t, parsed.SignatureHex, 64)
}

func TestParseToken_Malformed(t *testing.T) {
	cases := []string{
		"",
		"OF-2026-A7F3",
		"OF-2026-A7F3:1700000000000",
		"OF-2026-A7F3:1:2:3",
		":1700000000000:abcd",
		"OF-2026-A7F3::abcd",
		"OF-2026-A7F3:1700000000000:",
	}
	for _, raw := range cases {
		_, err := ParseToken(raw)
		assert.Equal(t, ErrMalformedToken, err, "input %q", raw)
	}
}

func TestParseToken_BadTimestampIsExpired(t *testing.T) {
	_, err := ParseToken("OF-2026-A7F3:notanumber:abcd")
	assert.Equal(t, ErrExpired, err)
}

func TestHMACSigner_VerifyRejectsTamper(t *testing.T) {
	signer := NewHMACSigner("test-secret")
	data := []byte("OF-2026-A7F3:1700000000000")
	sig := signer.Sign(data)

	assert.True(t, signer.Verify(data, sig))

	tampered := append([]byte{}, sig...)
	tampered[0] ^= 0x01
	assert.False(t, signer.Verify(data, tampered))
	assert.False(t, signer.Verify([]byte("OF-2026-A7F3:1700000000001"), sig))
}

func TestHMACSigner_DifferentSecrets(t *testing.T) {
	a := NewHMACSigner("secret-a")
	b := NewHMACSigner("secret-b")
	data := []byte("OF-2026-A7F3:1700000000000")
	assert.False(t, b.Verify(data, a.Sign(data)))
}
