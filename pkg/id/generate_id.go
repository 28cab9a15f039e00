package id

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Prefixes used for public identifiers.
const (
	PrefixApplication = "APP"
	PrefixSanction    = "SAN"
)

const stampLayout = "060102150405"

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// WithPrefix returns prefix followed by t in UTC as yyMMddHHmmss.
// Uniqueness is best effort: two calls within the same second yield the same id.
// app_id carries a unique index, so a clash there fails the insert. sanction_id
// does not (non-approved rows hold ""), so a repeat force-approve within one
// second keeps the previous sanction id and two approvals in the same second
// share one.
func WithPrefix(prefix string, t time.Time) string {
	return prefix + t.UTC().Format(stampLayout)
}

// New is WithPrefix at the current time.
func New(prefix string) string { return WithPrefix(prefix, time.Now()) }
