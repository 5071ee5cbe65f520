// Package proof decides whether oracle-held DNS evidence may be used.
//
// The oracle has already verified the DNSSEC signature chain when the
// evidence was submitted; this package only checks that the evidence is of
// the expected record type and that its validity window covers the current
// time. The outcome is a three-way Result rather than a bool because "no
// evidence" and "rejected evidence" lead to different policy downstream:
// absence may fall forward to a default owner, rejection must leave the
// registry untouched.
package proof

import (
	"errors"
	"fmt"
	"time"

	"github.com/jroosing/tldclaim/internal/dns"
)

var (
	ErrTypeMismatch = errors.New("proof record type mismatch")
	ErrExpired      = errors.New("proof expired")
	ErrNotYetValid  = errors.New("proof not yet valid")
)

// Metadata is what the oracle reports for a (type, name) key.
// The zero value means nothing has been submitted for that key.
type Metadata struct {
	Type       dns.RecordType
	Inception  time.Time
	Expiration time.Time
	Proof      []byte
}

// IsZero reports whether m is the oracle's "no record" answer.
func (m Metadata) IsZero() bool {
	return m.Type == dns.TypeNone && len(m.Proof) == 0
}

// Kind discriminates a validation Result.
type Kind int

const (
	// NoEvidence means the oracle holds nothing for the key.
	NoEvidence Kind = iota
	// Valid means the evidence is usable; Result.Proof carries its bytes.
	Valid
	// Rejected means evidence exists but must not be used; Result.Err says why.
	Rejected
)

func (k Kind) String() string {
	switch k {
	case NoEvidence:
		return "no-evidence"
	case Valid:
		return "valid"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the outcome of Validate.
type Result struct {
	Kind  Kind
	Proof []byte
	Err   error
}

// Validate checks meta against the expected record type at time now.
//
// The usable window is [Inception, Expiration): evidence is rejected with
// ErrExpired once now reaches Expiration, regardless of whether its bytes
// are well-formed.
func Validate(meta Metadata, expected dns.RecordType, now time.Time) Result {
	if meta.IsZero() {
		return Result{Kind: NoEvidence}
	}
	if meta.Type != expected {
		return Result{Kind: Rejected, Err: fmt.Errorf("%w: have %s, want %s", ErrTypeMismatch, meta.Type, expected)}
	}
	if !now.Before(meta.Expiration) {
		return Result{Kind: Rejected, Err: fmt.Errorf("%w at %s", ErrExpired, meta.Expiration.UTC().Format(time.RFC3339))}
	}
	if now.Before(meta.Inception) {
		return Result{Kind: Rejected, Err: fmt.Errorf("%w until %s", ErrNotYetValid, meta.Inception.UTC().Format(time.RFC3339))}
	}
	return Result{Kind: Valid, Proof: meta.Proof}
}
