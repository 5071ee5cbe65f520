// Command txtproof builds and inspects the TXT evidence blobs the oracle
// stores for a TLD claim.
//
//	txtproof -tld test -owner 0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed
//	txtproof -decode 0x045f656e73...
package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	mdns "github.com/miekg/dns"

	"github.com/jroosing/tldclaim/internal/claim"
	"github.com/jroosing/tldclaim/internal/dns"
)

type stringList []string

func (s *stringList) String() string     { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error { *s = append(*s, v); return nil }

func main() {
	var (
		tld    = flag.String("tld", "", "TLD the claim is for, e.g. test")
		owner  = flag.String("owner", "", "Claimed owner address (emits an a=<addr> string)")
		marker = flag.String("marker", "_ens.nic", "Claim marker prefixed to the TLD")
		ttl    = flag.Uint64("ttl", 3600, "Record TTL in seconds (at most 4294967295)")
		decode = flag.String("decode", "", "Decode a hex proof instead of building one")
		text   stringList
	)
	flag.Var(&text, "text", "Additional TXT character-string (repeatable)")
	flag.Parse()

	if *decode != "" {
		if err := printProof(*decode); err != nil {
			fmt.Fprintf(os.Stderr, "txtproof: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *owner != "" {
		if !common.IsHexAddress(*owner) {
			fmt.Fprintf(os.Stderr, "txtproof: invalid owner address %q\n", *owner)
			os.Exit(2)
		}
		text = append(stringList{"a=" + common.HexToAddress(*owner).Hex()}, text...)
	}
	proof, err := buildProof(*tld, *marker, *ttl, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "txtproof: %v\n", err)
		os.Exit(2)
	}
	fmt.Println(hexutil.Encode(proof))
}

// buildProof packs a single uncompressed TXT record for <marker>.<tld>.
func buildProof(tld, marker string, ttl uint64, text []string) ([]byte, error) {
	if ttl > math.MaxUint32 {
		return nil, fmt.Errorf("-ttl %d exceeds %d", ttl, uint32(math.MaxUint32))
	}
	tld = strings.Trim(strings.TrimSpace(tld), ".")
	if tld == "" || strings.Contains(tld, ".") {
		return nil, fmt.Errorf("-tld must be a single label, got %q", tld)
	}
	if len(text) == 0 {
		return nil, errors.New("nothing to encode; pass -owner or -text")
	}
	owner := mdns.Fqdn(strings.Trim(marker, ".") + "." + tld)
	quoted := make([]string, len(text))
	for i, s := range text {
		quoted[i] = quoteTXT(s)
	}
	rr, err := mdns.NewRR(fmt.Sprintf("%s %d IN TXT %s", owner, ttl, strings.Join(quoted, " ")))
	if err != nil {
		return nil, err
	}
	buf := make([]byte, mdns.Len(rr))
	off, err := mdns.PackRR(rr, buf, 0, nil, false)
	if err != nil {
		return nil, err
	}
	return buf[:off], nil
}

// quoteTXT renders s as a zone-file character-string.
func quoteTXT(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c < 0x20 || c > 0x7e:
			fmt.Fprintf(&b, "\\%03d", c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func printProof(raw string) error {
	if !strings.HasPrefix(raw, "0x") {
		raw = "0x" + raw
	}
	blob, err := hexutil.Decode(raw)
	if err != nil {
		return fmt.Errorf("decode hex: %w", err)
	}
	records, err := dns.DecodeRecords(blob)
	if err != nil {
		return err
	}
	for _, rr := range records {
		fmt.Printf("%s %d CLASS%d %s\n", rr.Name, rr.TTL, rr.Class, rr.Type)
		if rr.Type != dns.TypeTXT {
			continue
		}
		strs, err := rr.TXTStrings()
		if err != nil {
			return err
		}
		for _, s := range strs {
			fmt.Printf("  %q\n", s)
		}
	}
	res := claim.Resolve(blob, common.Address{})
	fmt.Printf("outcome=%s owner=%s\n", res.Outcome, res.Owner.Hex())
	return nil
}
