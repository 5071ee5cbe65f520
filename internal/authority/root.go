// Package authority turns validated DNS evidence into registry ownership.
//
// Root holds the authorization state of the top-level naming authority: who
// holds it, which identities are controllers allowed to delegate children
// of the root node, and which labels are reserved. Registrar is a
// controller that delegates TLDs based on oracle evidence.
package authority

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jroosing/tldclaim/internal/dns"
	"github.com/jroosing/tldclaim/internal/registry"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrReservedName   = errors.New("name is reserved")
	ErrInvalidName    = errors.New("invalid TLD name")
	ErrProofNotNeeded = errors.New("proof submitted but oracle holds no evidence for name")
	ErrProofMismatch  = errors.New("submitted proof does not match oracle evidence")
	ErrEmptyEvidence  = errors.New("oracle evidence holds no TXT records")
)

// Config is the initial authorization state of a Root.
type Config struct {
	// Identity is the address under which the authority owns the root node.
	Identity common.Address
	// Owner is the holder allowed to transfer the root node.
	Owner         common.Address
	Controllers   []common.Address
	ReservedNames []string
}

// Root is the top-level authority. It is safe for concurrent use; its sets
// are read-mostly and change only through the administrative methods.
type Root struct {
	registry registry.Registry
	identity common.Address
	owner    common.Address
	logger   *slog.Logger

	mu          sync.RWMutex
	controllers map[common.Address]struct{}
	reserved    map[string]struct{}
}

// NewRoot builds a Root from cfg. A nil logger uses slog.Default().
func NewRoot(reg registry.Registry, cfg Config, logger *slog.Logger) *Root {
	if reg == nil {
		panic("authority.NewRoot: registry is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	r := &Root{
		registry:    reg,
		identity:    cfg.Identity,
		owner:       cfg.Owner,
		logger:      logger,
		controllers: make(map[common.Address]struct{}, len(cfg.Controllers)),
		reserved:    make(map[string]struct{}, len(cfg.ReservedNames)),
	}
	for _, c := range cfg.Controllers {
		r.controllers[c] = struct{}{}
	}
	for _, name := range cfg.ReservedNames {
		r.reserved[normalizeLabel(name)] = struct{}{}
	}
	return r
}

// Identity returns the address the authority acts as in the registry.
func (r *Root) Identity() common.Address { return r.identity }

// Owner returns the holder of the authority.
func (r *Root) Owner() common.Address { return r.owner }

// IsController reports whether addr may delegate children of the root node.
func (r *Root) IsController(addr common.Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.controllers[addr]
	return ok
}

// Controllers returns the controller set in address order.
func (r *Root) Controllers() []common.Address {
	r.mu.RLock()
	out := make([]common.Address, 0, len(r.controllers))
	for c := range r.controllers {
		out = append(out, c)
	}
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b common.Address) int { return bytes.Compare(a[:], b[:]) })
	return out
}

// IsReserved reports whether label may never be claimed through evidence.
func (r *Root) IsReserved(label string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.reserved[normalizeLabel(label)]
	return ok
}

// CanAdminister reports whether caller is the holder or a controller, the
// identities allowed to change controllers and feed oracle evidence.
func (r *Root) CanAdminister(caller common.Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.authorizedLocked(caller)
}

// AddController grants controller rights to addr.
func (r *Root) AddController(caller, addr common.Address) error {
	return r.setController(caller, addr, true)
}

// RemoveController revokes controller rights from addr.
func (r *Root) RemoveController(caller, addr common.Address) error {
	return r.setController(caller, addr, false)
}

func (r *Root) setController(caller, addr common.Address, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.authorizedLocked(caller) {
		return fmt.Errorf("%w: %s may not change controllers", ErrUnauthorized, caller.Hex())
	}
	if enabled {
		r.controllers[addr] = struct{}{}
	} else {
		delete(r.controllers, addr)
	}
	r.logger.Info("controller updated", "controller", addr.Hex(), "enabled", enabled, "by", caller.Hex())
	return nil
}

// authorizedLocked: the holder or any controller. Caller must hold r.mu.
func (r *Root) authorizedLocked(caller common.Address) bool {
	if caller == (common.Address{}) {
		return false
	}
	if caller == r.owner {
		return true
	}
	_, ok := r.controllers[caller]
	return ok
}

// SetSubnodeOwner delegates the child label of the root node to owner.
// Only controllers may call it; no evidence is consulted.
func (r *Root) SetSubnodeOwner(ctx context.Context, caller common.Address, label string, owner common.Address) (common.Hash, error) {
	if !r.IsController(caller) {
		return common.Hash{}, fmt.Errorf("%w: %s is not a controller", ErrUnauthorized, caller.Hex())
	}
	if err := validateLabel(label); err != nil {
		return common.Hash{}, err
	}
	node, err := r.registry.SetSubnodeOwner(ctx, r.identity, registry.RootNode, registry.LabelHash(label), owner)
	if err != nil {
		return common.Hash{}, fmt.Errorf("set subnode %q: %w", label, err)
	}
	r.logger.Debug("subnode delegated", "label", label, "owner", owner.Hex(), "by", caller.Hex())
	return node, nil
}

// TransferRoot hands the root node itself to newOwner. Only the holder may call it.
func (r *Root) TransferRoot(ctx context.Context, caller, newOwner common.Address) error {
	if caller == (common.Address{}) || caller != r.owner {
		return fmt.Errorf("%w: %s does not hold the root", ErrUnauthorized, caller.Hex())
	}
	if err := r.registry.SetOwner(ctx, r.identity, registry.RootNode, newOwner); err != nil {
		return fmt.Errorf("transfer root: %w", err)
	}
	r.logger.Info("root transferred", "new_owner", newOwner.Hex())
	return nil
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSuffix(label, "."))
}

func validateLabel(label string) error {
	if label == "" || len(label) > dns.MaxLabelLength || strings.Contains(label, ".") {
		return fmt.Errorf("%w: %q is not a single label", ErrInvalidName, label)
	}
	return nil
}
