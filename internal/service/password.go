package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// HashPassword returns the lowercase hex SHA-256 digest of plain. The
// digest is unsalted so that ADMIN_PASSWORD_HASH values produced by other
// tools keep working.
func HashPassword(plain string) string {
	h := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(h[:])
}

// VerifyPassword reports whether plain hashes to digest.
func VerifyPassword(plain, digest string) bool {
	want := strings.ToLower(strings.TrimSpace(digest))
	if want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(HashPassword(plain)), []byte(want)) == 1
}
