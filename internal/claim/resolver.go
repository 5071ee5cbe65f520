// Package claim extracts an owner address from TXT proof records.
//
// A claim is a TXT character-string of the form "a=0x<40 hex digits>". The
// first such string found, scanning TXT records in proof order and chunks in
// record order, decides the outcome; later entries are ignored even when
// they disagree. A malformed first entry falls back to the default owner and
// never propagates as a real address.
package claim

import (
	"bytes"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jroosing/tldclaim/internal/dns"
)

// Key is the TXT prefix that introduces an owner address.
const Key = "a="

// Outcome says how Resolve arrived at its owner.
type Outcome int

const (
	// Default means no claim was present (or the proof did not decode).
	Default Outcome = iota
	// Claimed means a well-formed "a=" entry supplied the owner.
	Claimed
	// Malformed means the first "a=" entry was not a valid address.
	Malformed
)

func (o Outcome) String() string {
	switch o {
	case Claimed:
		return "claimed"
	case Malformed:
		return "malformed"
	default:
		return "default"
	}
}

// Result is the resolved owner and how it was chosen.
type Result struct {
	Owner   common.Address
	Outcome Outcome
}

// ResolveOwner returns the address claimed by proof, or defaultOwner.
// An explicit all-zero claim is returned as the zero address, not the default.
func ResolveOwner(proof []byte, defaultOwner common.Address) common.Address {
	return Resolve(proof, defaultOwner).Owner
}

// Resolve is ResolveOwner with the reason attached.
func Resolve(proof []byte, defaultOwner common.Address) Result {
	fallback := Result{Owner: defaultOwner, Outcome: Default}

	records, err := dns.DecodeRecords(proof)
	if err != nil || len(records) == 0 {
		return fallback
	}

	value, found, ok := firstClaim(records)
	if !ok || !found {
		return fallback
	}
	addr, valid := ParseAddress(value)
	if !valid {
		return Result{Owner: defaultOwner, Outcome: Malformed}
	}
	return Result{Owner: addr, Outcome: Claimed}
}

// firstClaim scans TXT records for the first "a=" chunk.
// ok is false when a TXT record's rdata does not decode.
func firstClaim(records []dns.ResourceRecord) (value string, found, ok bool) {
	key := []byte(Key)
	for _, rr := range records {
		if rr.Type != dns.TypeTXT {
			continue
		}
		chunks, err := rr.TXTStrings()
		if err != nil {
			return "", false, false
		}
		for _, chunk := range chunks {
			if bytes.HasPrefix(chunk, key) {
				return string(chunk[len(key):]), true, true
			}
		}
	}
	return "", false, true
}

// ParseAddress accepts exactly "0x" followed by 40 hex digits, in any case.
func ParseAddress(s string) (common.Address, bool) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return common.Address{}, false
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, false
	}
	return common.HexToAddress(s), true
}
