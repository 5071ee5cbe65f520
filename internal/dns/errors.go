// Package dns provides the DNS wire-format codec used to read ownership proofs.
//
// Standards Compliance:
//
// This package implements the subset of the DNS wire format needed to decode
// standalone resource records submitted as proofs:
//
//   - RFC 1035 Section 3.1: domain name encoding (length-prefixed labels)
//   - RFC 1035 Section 3.2.1: resource record layout
//   - RFC 1035 Section 3.3.14: TXT RDATA (<character-string> sequences)
//   - RFC 4343: case-insensitive name comparison
//
// Proofs are not DNS messages, so message compression pointers are never
// valid inside them and are rejected like any other oversized label length.
//
// Error Handling:
//
// Every decode or encode failure wraps one of the sentinels below, and each
// sentinel wraps ErrDNSError. Callers can therefore test for the precise
// failure (errors.Is(err, ErrTruncatedTXT)) or for any wire error at all
// (errors.Is(err, ErrDNSError)).
package dns

import (
	"errors"
	"fmt"
)

var (
	// ErrDNSError is the sentinel for every DNS wire-format violation.
	ErrDNSError = errors.New("dns wire error")

	ErrTruncatedName   = fmt.Errorf("%w: truncated name", ErrDNSError)
	ErrTruncatedRecord = fmt.Errorf("%w: truncated resource record", ErrDNSError)
	ErrTruncatedTXT    = fmt.Errorf("%w: truncated TXT character-string", ErrDNSError)
	ErrLabelTooLong    = fmt.Errorf("%w: label too long", ErrDNSError)
	ErrNameTooLong     = fmt.Errorf("%w: name too long", ErrDNSError)
	ErrEmptyLabel      = fmt.Errorf("%w: empty label", ErrDNSError)
	ErrStringTooLong   = fmt.Errorf("%w: character-string too long", ErrDNSError)
	ErrRDataTooLong    = fmt.Errorf("%w: rdata too long", ErrDNSError)
)
