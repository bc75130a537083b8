package auth

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Checker compares submitted passwords against a configured digest.
// The digest is either an MD5 hex string or a bcrypt hash.
type Checker struct {
	digest string
	bcrypt bool
}

// NewChecker initializes a checker for an MD5 hex digest or a bcrypt hash.
func NewChecker(digest string) *Checker {
	digest = strings.TrimSpace(digest)
	isBcrypt := strings.HasPrefix(digest, "$2a$") ||
		strings.HasPrefix(digest, "$2b$") ||
		strings.HasPrefix(digest, "$2y$")
	if !isBcrypt {
		digest = strings.ToLower(digest)
	}
	return &Checker{digest: digest, bcrypt: isBcrypt}
}

// Verify reports whether password matches the configured digest.
func (c *Checker) Verify(password string) bool {
	if c.digest == "" {
		return false
	}
	if c.bcrypt {
		return bcrypt.CompareHashAndPassword([]byte(c.digest), []byte(password)) == nil
	}
	sum := md5.Sum([]byte(password))
	got := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(got), []byte(c.digest)) == 1
}
