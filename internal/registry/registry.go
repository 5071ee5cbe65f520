// Package registry models the naming registry that stores node → owner
// bindings. The registry itself enforces delegation: only the current owner
// of a node may reassign it or create children beneath it.
package registry

import (
	"context"
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// ErrNotOwner is returned when a caller mutates a node it does not own.
var ErrNotOwner = errors.New("caller does not own node")

// Registry is the narrow surface the authority needs from a naming registry.
type Registry interface {
	// Owner returns the owner of node, or the zero address when unset.
	Owner(ctx context.Context, node common.Hash) (common.Address, error)

	// SetOwner reassigns node. caller must currently own it.
	SetOwner(ctx context.Context, caller common.Address, node common.Hash, owner common.Address) error

	// SetSubnodeOwner assigns the child labelHash of parent to owner and
	// returns the child's node. caller must currently own parent.
	SetSubnodeOwner(ctx context.Context, caller common.Address, parent, labelHash common.Hash, owner common.Address) (common.Hash, error)
}

// Memory is an in-process Registry safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	owners map[common.Hash]common.Address
}

var _ Registry = (*Memory)(nil)

// NewMemory creates a registry whose root node is owned by rootOwner.
func NewMemory(rootOwner common.Address) *Memory {
	return &Memory{owners: map[common.Hash]common.Address{RootNode: rootOwner}}
}

// Owner implements Registry.
func (m *Memory) Owner(_ context.Context, node common.Hash) (common.Address, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.owners[node], nil
}

// SetOwner implements Registry.
func (m *Memory) SetOwner(_ context.Context, caller common.Address, node common.Hash, owner common.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !owns(m.owners[node], caller) {
		return ErrNotOwner
	}
	m.owners[node] = owner
	return nil
}

// SetSubnodeOwner implements Registry.
func (m *Memory) SetSubnodeOwner(_ context.Context, caller common.Address, parent, labelHash common.Hash, owner common.Address) (common.Hash, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !owns(m.owners[parent], caller) {
		return common.Hash{}, ErrNotOwner
	}
	node := SubNode(parent, labelHash)
	m.owners[node] = owner
	return node, nil
}

// owns reports whether caller may act as owner. Unowned nodes have no owner:
// the zero address never authorizes anything.
func owns(owner, caller common.Address) bool {
	return caller != (common.Address{}) && owner == caller
}
