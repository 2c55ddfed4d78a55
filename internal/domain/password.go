package domain

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Password holds a one-way digest of a secret, never the plaintext.
type Password struct {
	digest string
}

// HashPassword digests plaintext with SHA-256 and hex-encodes the result.
func HashPassword(plain string) Password {
	sum := sha256.Sum256([]byte(plain))
	return Password{digest: hex.EncodeToString(sum[:])}
}

// PasswordFromHash wraps a digest loaded from storage. Never pass plaintext here.
func PasswordFromHash(digest string) Password {
	return Password{digest: digest}
}

func (p Password) String() string {
	return p.digest
}

// Matches reports whether plain produces this digest. Rows written before the
// switch to SHA-256 still carry bcrypt hashes and are checked with bcrypt.
func (p Password) Matches(plain string) bool {
	if isBcryptHash(p.digest) {
		return bcrypt.CompareHashAndPassword([]byte(p.digest), []byte(plain)) == nil
	}
	candidate := HashPassword(plain).digest
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(p.digest)) == 1
}

func isBcryptHash(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") ||
		strings.HasPrefix(digest, "$2b$") ||
		strings.HasPrefix(digest, "$2y$")
}
