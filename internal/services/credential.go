package services

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const redacted = "[redacted]"

// Fingerprint returns a short stable digest of key, safe to log.
func Fingerprint(key string) string {
	if key == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(key))
	return hex.EncodeToString(sum[:4])
}

// MaskKey renders key for diagnostics: a short prefix plus its fingerprint.
func MaskKey(key string) string {
	if key == "" {
		return "<unset>"
	}
	prefix := key
	if len(prefix) > 6 {
		prefix = prefix[:6]
	}
	if len(key) <= 12 {
		prefix = ""
	}
	return prefix + "…(" + Fingerprint(key) + ")"
}

// Redact removes every occurrence of key from s.
func Redact(s, key string) string {
	if key == "" {
		return s
	}
	return strings.ReplaceAll(s, key, redacted)
}
