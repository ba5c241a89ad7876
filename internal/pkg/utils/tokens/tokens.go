package tokens

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HMAC256Hex signs secret with pepper and returns 64 hex chars.
func HMAC256Hex(pepper, secret string) string {
	m := hmac.New(sha256.New, []byte(pepper))
	m.Write([]byte(secret))
	return hex.EncodeToString(m.Sum(nil))
}
