// Package oracle defines the DNSSEC oracle collaborator.
//
// Trust assumption: an Oracle only ever returns evidence whose signature
// chain it has already verified, and the inception/expiration it reports
// are the validity window of that verified evidence. Nothing in this module
// re-checks RRSIGs; callers consume the answers as authentic.
package oracle

import (
	"context"
	"sync"
	"time"

	"github.com/jroosing/tldclaim/internal/dns"
	"github.com/jroosing/tldclaim/internal/proof"
)

// Oracle answers lookups keyed by record type and wire-encoded name.
// An unknown key yields zero Metadata and a nil error.
type Oracle interface {
	Data(ctx context.Context, rrtype dns.RecordType, name []byte) (proof.Metadata, error)
}

// Store is an Oracle that also accepts evidence, replacing any earlier
// entry for the same (rrtype, name).
type Store interface {
	Oracle
	Submit(ctx context.Context, rrtype dns.RecordType, name []byte, inception, expiration time.Time, p []byte) error
}

type key struct {
	rrtype dns.RecordType
	name   string
}

func keyFor(rrtype dns.RecordType, name []byte) key {
	return key{rrtype: rrtype, name: string(CanonicalName(name))}
}

// Memory is an in-process Oracle fed through SetData. It stands in for a
// real oracle in tests and single-node deployments.
type Memory struct {
	mu      sync.RWMutex
	records map[key]proof.Metadata
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty oracle.
func NewMemory() *Memory {
	return &Memory{records: make(map[key]proof.Metadata)}
}

// Data implements Oracle.
func (m *Memory) Data(_ context.Context, rrtype dns.RecordType, name []byte) (proof.Metadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	meta, ok := m.records[keyFor(rrtype, name)]
	if !ok {
		return proof.Metadata{}, nil
	}
	meta.Proof = append([]byte(nil), meta.Proof...)
	return meta, nil
}

// SetData stores evidence for (rrtype, name), replacing any earlier entry.
func (m *Memory) SetData(rrtype dns.RecordType, name []byte, inception, expiration time.Time, p []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[keyFor(rrtype, name)] = proof.Metadata{
		Type:       rrtype,
		Inception:  inception,
		Expiration: expiration,
		Proof:      append([]byte(nil), p...),
	}
}

// Submit implements Store.
func (m *Memory) Submit(_ context.Context, rrtype dns.RecordType, name []byte, inception, expiration time.Time, p []byte) error {
	m.SetData(rrtype, name, inception, expiration, p)
	return nil
}

// Delete forgets the evidence for (rrtype, name).
func (m *Memory) Delete(rrtype dns.RecordType, name []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, keyFor(rrtype, name))
}

// CanonicalName returns a copy of a wire-encoded name with ASCII letters
// lowercased, so lookups follow DNS case-insensitivity. Label length bytes
// (at most 63) sit below 'A' and are left alone.
func CanonicalName(name []byte) []byte {
	b := make([]byte, len(name))
	for i, c := range name {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		b[i] = c
	}
	return b
}
