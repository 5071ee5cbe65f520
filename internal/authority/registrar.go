package authority

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jroosing/tldclaim/internal/claim"
	"github.com/jroosing/tldclaim/internal/dns"
	"github.com/jroosing/tldclaim/internal/oracle"
	"github.com/jroosing/tldclaim/internal/proof"
)

// DefaultClaimMarker is prefixed to a TLD to form the name whose TXT
// records carry ownership claims ("_ens.nic.test." for "test.").
var DefaultClaimMarker = dns.Name{"_ens", "nic"}

// anchorTypes are the record types that show the oracle has ingested
// evidence for the TLD itself, independent of any TXT claim.
var anchorTypes = []dns.RecordType{dns.TypeDS, dns.TypeSOA}

// RegistrarConfig configures a Registrar.
type RegistrarConfig struct {
	// Identity is the controller address the registrar acts as.
	Identity common.Address
	// DefaultOwner receives TLDs without a valid claim.
	DefaultOwner common.Address
	// ClaimMarker defaults to DefaultClaimMarker when empty.
	ClaimMarker dns.Name
	// Now defaults to time.Now.
	Now func() time.Time
}

// Registration describes a completed RegisterTLD call.
type Registration struct {
	Name    dns.Name
	Node    common.Hash
	Owner   common.Address
	Outcome claim.Outcome
	// Evidence is proof.NoEvidence or proof.Valid.
	Evidence proof.Kind
}

// Registrar delegates TLDs according to DNS evidence held by an oracle.
type Registrar struct {
	root     *Root
	oracle   oracle.Oracle
	identity common.Address
	fallback common.Address
	marker   dns.Name
	now      func() time.Time
	logger   *slog.Logger
}

// NewRegistrar wires a registrar to its root authority and oracle.
// cfg.Identity must be a controller of root for registrations to succeed.
func NewRegistrar(root *Root, o oracle.Oracle, cfg RegistrarConfig, logger *slog.Logger) *Registrar {
	if root == nil || o == nil {
		panic("authority.NewRegistrar: root and oracle are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	marker := cfg.ClaimMarker
	if len(marker) == 0 {
		marker = DefaultClaimMarker
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Registrar{
		root:     root,
		oracle:   o,
		identity: cfg.Identity,
		fallback: cfg.DefaultOwner,
		marker:   marker,
		now:      now,
		logger:   logger,
	}
}

// DefaultOwner returns the registrar that receives unclaimed TLDs.
func (r *Registrar) DefaultOwner() common.Address { return r.fallback }

// QueryName returns the name whose TXT records carry claims for tld.
func (r *Registrar) QueryName(tld dns.Name) dns.Name {
	return tld.Prepend(r.marker...)
}

// RegisterTLD sets the owner of tld from oracle evidence.
//
// A nil error means the registry now holds the resolved owner. Any error
// means nothing was written. proofBytes must equal the oracle's TXT evidence
// when there is any, and must be empty when there is none unless the oracle
// anchors the TLD with a DS or SOA record.
func (r *Registrar) RegisterTLD(ctx context.Context, tld dns.Name, proofBytes []byte) (Registration, error) {
	reg, err := r.register(ctx, tld, proofBytes, r.now())
	if err != nil {
		r.logger.Warn("registration rejected", "tld", tld.String(), "err", err)
		return Registration{}, err
	}
	r.logger.Info("tld registered",
		"tld", tld.String(),
		"owner", reg.Owner.Hex(),
		"outcome", reg.Outcome.String(),
		"evidence", reg.Evidence.String(),
	)
	return reg, nil
}

// register is RegisterTLD with the clock already read.
func (r *Registrar) register(ctx context.Context, tld dns.Name, proofBytes []byte, now time.Time) (Registration, error) {
	if len(tld) != 1 {
		return Registration{}, fmt.Errorf("%w: %s must have exactly one label", ErrInvalidName, tld)
	}
	label := tld[0]
	if r.root.IsReserved(label) {
		return Registration{}, fmt.Errorf("%w: %s", ErrReservedName, tld)
	}

	query, err := dns.EncodeName(r.QueryName(tld))
	if err != nil {
		return Registration{}, fmt.Errorf("%w: %w", ErrInvalidName, err)
	}
	meta, err := r.oracle.Data(ctx, dns.TypeTXT, query)
	if err != nil {
		return Registration{}, fmt.Errorf("oracle lookup %s: %w", r.QueryName(tld), err)
	}

	res := proof.Validate(meta, dns.TypeTXT, now)
	var resolved claim.Result
	switch res.Kind {
	case proof.NoEvidence:
		if len(proofBytes) > 0 {
			anchored, err := r.anchored(ctx, tld)
			if err != nil {
				return Registration{}, err
			}
			if !anchored {
				return Registration{}, fmt.Errorf("%w: %s", ErrProofNotNeeded, tld)
			}
		}
		resolved = claim.Resolve(nil, r.fallback)
	case proof.Rejected:
		return Registration{}, res.Err
	case proof.Valid:
		if len(res.Proof) == 0 {
			return Registration{}, fmt.Errorf("%w: %s", ErrEmptyEvidence, r.QueryName(tld))
		}
		// The caller must present the evidence itself; an empty proof does
		// not stand in for the oracle's bytes.
		if !bytes.Equal(proofBytes, res.Proof) {
			return Registration{}, fmt.Errorf("%w: %s", ErrProofMismatch, tld)
		}
		resolved = claim.Resolve(res.Proof, r.fallback)
	default:
		return Registration{}, fmt.Errorf("unexpected validation result %s", res.Kind)
	}

	node, err := r.root.SetSubnodeOwner(ctx, r.identity, label, resolved.Owner)
	if err != nil {
		return Registration{}, err
	}
	return Registration{
		Name:     tld,
		Node:     node,
		Owner:    resolved.Owner,
		Outcome:  resolved.Outcome,
		Evidence: res.Kind,
	}, nil
}

// anchored reports whether the oracle holds any anchoring record for tld.
func (r *Registrar) anchored(ctx context.Context, tld dns.Name) (bool, error) {
	wire, err := dns.EncodeName(tld)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidName, err)
	}
	for _, t := range anchorTypes {
		meta, err := r.oracle.Data(ctx, t, wire)
		if err != nil {
			return false, fmt.Errorf("oracle lookup %s %s: %w", t, tld, err)
		}
		if !meta.IsZero() {
			return true, nil
		}
	}
	return false, nil
}
