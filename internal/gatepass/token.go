package gatepass

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Token wire format: <entityId>:<unixMillis>:<hex-lowercase-signature>.
// The signed payload is "<entityId>:<unixMillis>".

// ParsedToken is the decoded form of a scanned gate pass string.
type ParsedToken struct {
	EntityID     string
	IssuedAtMS   int64
	SignatureHex string
}

// Payload returns the bytes the signature covers.
func (p ParsedToken) Payload() []byte {
	return []byte(p.EntityID + ":" + strconv.FormatInt(p.IssuedAtMS, 10))
}

// FormatToken builds the wire string from its parts.
func FormatToken(entityID string, issuedAtMS int64, sig []byte) string {
	return fmt.Sprintf("%s:%d:%s", entityID, issuedAtMS, hex.EncodeToString(sig))
}

// ParseToken splits a scanned string into its three segments. The timestamp
// is validated later so that a garbled number reports Expired, not Malformed.
func ParseToken(raw string) (*ParsedToken, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return nil, ErrMalformedToken
	}
	ms, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, ErrExpired
	}
	return &ParsedToken{
		EntityID:     parts[0],
		IssuedAtMS:   ms,
		SignatureHex: parts[2],
	}, nil
}
