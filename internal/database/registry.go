package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jroosing/tldclaim/internal/registry"
)

var _ registry.Registry = (*DB)(nil)

// InitRoot sets the owner of the root node unless one is already stored.
// It reports whether the row was created.
func (db *DB) InitRoot(ctx context.Context, owner common.Address) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO nodes (node, owner) VALUES (?, ?) ON CONFLICT(node) DO NOTHING`,
		registry.RootNode.Hex(), owner.Hex())
	if err != nil {
		return false, fmt.Errorf("failed to init root node: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to init root node: %w", err)
	}
	return n == 1, nil
}

// Owner implements registry.Registry.
func (db *DB) Owner(ctx context.Context, node common.Hash) (common.Address, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return ownerOf(ctx, db.conn, node)
}

// SetOwner implements registry.Registry.
func (db *DB) SetOwner(ctx context.Context, caller common.Address, node common.Hash, owner common.Address) error {
	return db.withOwnedNode(ctx, caller, node, func(tx *sql.Tx) error {
		return putOwner(ctx, tx, node, owner)
	})
}

// SetSubnodeOwner implements registry.Registry.
func (db *DB) SetSubnodeOwner(ctx context.Context, caller common.Address, parent, labelHash common.Hash, owner common.Address) (common.Hash, error) {
	node := registry.SubNode(parent, labelHash)
	err := db.withOwnedNode(ctx, caller, parent, func(tx *sql.Tx) error {
		return putOwner(ctx, tx, node, owner)
	})
	if err != nil {
		return common.Hash{}, err
	}
	return node, nil
}

// withOwnedNode runs fn in a transaction after checking that caller owns node.
func (db *DB) withOwnedNode(ctx context.Context, caller common.Address, node common.Hash, fn func(*sql.Tx) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := ownerOf(ctx, tx, node)
	if err != nil {
		return err
	}
	if caller == (common.Address{}) || current != caller {
		return registry.ErrNotOwner
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func ownerOf(ctx context.Context, q queryer, node common.Hash) (common.Address, error) {
	var raw string
	err := q.QueryRowContext(ctx, "SELECT owner FROM nodes WHERE node = ?", node.Hex()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return common.Address{}, nil
	}
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to query owner of %s: %w", node.Hex(), err)
	}
	return common.HexToAddress(raw), nil
}

func putOwner(ctx context.Context, tx *sql.Tx, node common.Hash, owner common.Address) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO nodes (node, owner, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(node) DO UPDATE SET
			owner = excluded.owner,
			updated_at = CURRENT_TIMESTAMP
	`, node.Hex(), owner.Hex())
	if err != nil {
		return fmt.Errorf("failed to set owner of %s: %w", node.Hex(), err)
	}
	return nil
}
