// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

var ErrInvalidAuthorKey = errors.New("invalid author key")

// NewID creates a fresh opaque identifier
func NewID() string {
	return uuid.NewString()
}

// GenerateAuthorKey creates an HMAC-based capability key for an author.
// This is deterministic and verifiable, so keys are never stored.
func GenerateAuthorKey(authorID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(authorID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAuthorKey checks if the provided key is valid for the author
func ValidateAuthorKey(authorID, authorKey, salt string) error {
	expected := GenerateAuthorKey(authorID, salt)
	if !hmac.Equal([]byte(authorKey), []byte(expected)) {
		return ErrInvalidAuthorKey
	}
	return nil
}

// Slugify converts free text into a URL-safe slug: lowercase, runs of
// non-alphanumerics collapsed into single hyphens, no leading or
// trailing hyphen. Returns "" if nothing usable remains.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
