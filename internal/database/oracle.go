package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jroosing/tldclaim/internal/dns"
	"github.com/jroosing/tldclaim/internal/oracle"
	"github.com/jroosing/tldclaim/internal/proof"
)

var _ oracle.Store = (*DB)(nil)

// Data implements oracle.Oracle. Unknown keys yield zero Metadata.
func (db *DB) Data(ctx context.Context, rrtype dns.RecordType, name []byte) (proof.Metadata, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var inception, expiration int64
	var p []byte
	err := db.conn.QueryRowContext(ctx, `
		SELECT inception, expiration, proof
		FROM oracle_records
		WHERE rrtype = ? AND name = ?
	`, int(rrtype), oracle.CanonicalName(name)).Scan(&inception, &expiration, &p)
	if errors.Is(err, sql.ErrNoRows) {
		return proof.Metadata{}, nil
	}
	if err != nil {
		return proof.Metadata{}, fmt.Errorf("failed to query oracle record: %w", err)
	}
	return proof.Metadata{
		Type:       rrtype,
		Inception:  time.Unix(inception, 0),
		Expiration: time.Unix(expiration, 0),
		Proof:      p,
	}, nil
}

// Submit implements oracle.Store. Times are kept at second precision.
func (db *DB) Submit(ctx context.Context, rrtype dns.RecordType, name []byte, inception, expiration time.Time, p []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if p == nil {
		p = []byte{}
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO oracle_records (rrtype, name, inception, expiration, proof, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(rrtype, name) DO UPDATE SET
			inception = excluded.inception,
			expiration = excluded.expiration,
			proof = excluded.proof,
			updated_at = CURRENT_TIMESTAMP
	`, int(rrtype), oracle.CanonicalName(name), inception.Unix(), expiration.Unix(), p)
	if err != nil {
		return fmt.Errorf("failed to store oracle record: %w", err)
	}
	return nil
}

// DeleteData forgets the evidence for (rrtype, name).
func (db *DB) DeleteData(ctx context.Context, rrtype dns.RecordType, name []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.ExecContext(ctx,
		"DELETE FROM oracle_records WHERE rrtype = ? AND name = ?",
		int(rrtype), oracle.CanonicalName(name))
	if err != nil {
		return fmt.Errorf("failed to delete oracle record: %w", err)
	}
	return nil
}
