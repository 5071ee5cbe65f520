package dns

import (
	"fmt"
	"strconv"
	"strings"
)

// Wire-format limits (RFC 1035 Section 2.3.4).
const (
	MaxLabelLength  = 63
	MaxNameLength   = 255
	MaxStringLength = 255
	MaxRDataLength  = 65535
)

// RecordType represents DNS resource record types (RFC 1035, RFC 4034).
type RecordType uint16

const (
	TypeNone   RecordType = 0  // Absent record (zero value)
	TypeA      RecordType = 1  // IPv4 address
	TypeNS     RecordType = 2  // Authoritative name server
	TypeSOA    RecordType = 6  // Start of Authority
	TypeTXT    RecordType = 16 // Text strings
	TypeAAAA   RecordType = 28 // IPv6 address
	TypeDS     RecordType = 43 // Delegation signer
	TypeRRSIG  RecordType = 46 // DNSSEC signature
	TypeDNSKEY RecordType = 48 // DNSSEC public key
)

var typeNames = map[RecordType]string{
	TypeNone:   "NONE",
	TypeA:      "A",
	TypeNS:     "NS",
	TypeSOA:    "SOA",
	TypeTXT:    "TXT",
	TypeAAAA:   "AAAA",
	TypeDS:     "DS",
	TypeRRSIG:  "RRSIG",
	TypeDNSKEY: "DNSKEY",
}

// String returns the mnemonic for known types and TYPEnnn (RFC 3597) otherwise.
func (t RecordType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "TYPE" + strconv.Itoa(int(t))
}

// ParseRecordType accepts a mnemonic ("TXT"), the RFC 3597 form ("TYPE16")
// or a bare decimal code, case-insensitively.
func ParseRecordType(s string) (RecordType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for t, name := range typeNames {
		if t != TypeNone && name == s {
			return t, nil
		}
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "TYPE"), 10, 16)
	if err != nil || n == 0 {
		return TypeNone, fmt.Errorf("%w: unknown record type %q", ErrDNSError, s)
	}
	return RecordType(n), nil
}

// RecordClass represents DNS resource record classes (RFC 1035).
type RecordClass uint16

const (
	ClassIN RecordClass = 1 // Internet class
)
