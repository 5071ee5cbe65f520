package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jroosing/tldclaim/internal/helpers"
)

// Registration is one journaled RegisterTLD attempt. Error is empty for
// accepted attempts; Node, Owner and Outcome are empty for rejected ones.
type Registration struct {
	ID        string    `json:"id"`
	TLD       string    `json:"tld"`
	Node      string    `json:"node,omitempty"`
	Owner     string    `json:"owner,omitempty"`
	Outcome   string    `json:"outcome,omitempty"`
	Evidence  string    `json:"evidence,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	// DefaultHistoryLimit is used when History is called with limit <= 0.
	DefaultHistoryLimit = 50
	// MaxHistoryLimit caps a single History page.
	MaxHistoryLimit = 500
)

// RecordRegistration appends r to the journal. ID and CreatedAt are filled
// in when empty; the stored copy is returned.
func (db *DB) RecordRegistration(ctx context.Context, r Registration) (Registration, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO registrations (id, tld, node, owner, outcome, evidence, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.TLD, r.Node, r.Owner, r.Outcome, r.Evidence, r.Error, r.CreatedAt.UnixNano())
	if err != nil {
		return Registration{}, fmt.Errorf("failed to record registration for %s: %w", r.TLD, err)
	}
	return r, nil
}

// History returns the most recent attempts for tld, newest first.
func (db *DB) History(ctx context.Context, tld string, limit int) ([]Registration, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit = helpers.ClampInt(limit, 1, MaxHistoryLimit)
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, tld, node, owner, outcome, evidence, error, created_at
		FROM registrations
		WHERE tld = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, tld, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []Registration
	for rows.Next() {
		var r Registration
		var created int64
		if err := rows.Scan(&r.ID, &r.TLD, &r.Node, &r.Owner, &r.Outcome, &r.Evidence, &r.Error, &created); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		r.CreatedAt = time.Unix(0, created)
		out = append(out, r)
	}
	return out, rows.Err()
}
