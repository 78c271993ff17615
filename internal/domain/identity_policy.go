package domain

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// IdentityPolicy computes a stable identifier for a submitted source URL.
// It ensures idempotency: same URL (normalized) -> same id, so a
// resubmission updates the existing ledger entry instead of duplicating it.
type IdentityPolicy interface {
	Compute(url string) string
}

type identityPolicy struct{}

// NewIdentityPolicy creates a new instance of the default IdentityPolicy.
func NewIdentityPolicy() IdentityPolicy {
	return &identityPolicy{}
}

// Compute returns "req-" followed by the hex MD5 of the trimmed URL.
// MD5 is a content address here, not an integrity check.
func (p *identityPolicy) Compute(url string) string {
	normalized := strings.TrimSpace(url)

	hash := md5.Sum([]byte(normalized))
	return "req-" + hex.EncodeToString(hash[:])
}
