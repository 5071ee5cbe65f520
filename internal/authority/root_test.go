package authority_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jroosing/tldclaim/internal/authority"
	"github.com/jroosing/tldclaim/internal/dns"
	"github.com/jroosing/tldclaim/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	holder      = common.HexToAddress("0x00000000000000000000000000000000000000a0")
	account1    = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	account2    = common.HexToAddress("0x00000000000000000000000000000000000000a2")
	rootID      = common.HexToAddress("0x00000000000000000000000000000000000000f0")
	registrarID = common.HexToAddress("0x00000000000000000000000000000000000000f1")
	defaultReg  = common.HexToAddress("0x00000000000000000000000000000000000000de")
)

func newRoot(t *testing.T) (*authority.Root, *registry.Memory) {
	t.Helper()
	reg := registry.NewMemory(rootID)
	root := authority.NewRoot(reg, authority.Config{
		Identity:      rootID,
		Owner:         holder,
		Controllers:   []common.Address{holder, registrarID},
		ReservedNames: []string{"eth"},
	}, nil)
	return root, reg
}

func ownerOf(t *testing.T, reg registry.Registry, name string) common.Address {
	t.Helper()
	owner, err := reg.Owner(context.Background(), registry.NameHash(dns.MustParseName(name)))
	require.NoError(t, err)
	return owner
}

func TestRoot_SetSubnodeOwner(t *testing.T) {
	root, reg := newRoot(t)

	node, err := root.SetSubnodeOwner(context.Background(), holder, "eth", account1)
	require.NoError(t, err)
	assert.Equal(t, registry.NameHash(dns.MustParseName("eth.")), node)
	assert.Equal(t, account1, ownerOf(t, reg, "eth."))
}

func TestRoot_SetSubnodeOwner_NonController(t *testing.T) {
	root, reg := newRoot(t)

	_, err := root.SetSubnodeOwner(context.Background(), account1, "eth", account1)
	require.ErrorIs(t, err, authority.ErrUnauthorized)
	assert.Equal(t, common.Address{}, ownerOf(t, reg, "eth."))
}

func TestRoot_SetSubnodeOwner_RejectsNonRootLabel(t *testing.T) {
	root, _ := newRoot(t)

	for _, label := range []string{"", "foo.eth", string(make([]byte, 64))} {
		_, err := root.SetSubnodeOwner(context.Background(), holder, label, account1)
		assert.ErrorIs(t, err, authority.ErrInvalidName, "label %q", label)
	}
}

func TestRoot_TransferRoot(t *testing.T) {
	root, reg := newRoot(t)
	ctx := context.Background()

	owner, err := reg.Owner(ctx, registry.RootNode)
	require.NoError(t, err)
	assert.Equal(t, rootID, owner)

	require.NoError(t, root.TransferRoot(ctx, holder, account1))

	owner, err = reg.Owner(ctx, registry.RootNode)
	require.NoError(t, err)
	assert.Equal(t, account1, owner)

	// The authority no longer owns the root node, so delegation now fails in the registry.
	_, err = root.SetSubnodeOwner(ctx, holder, "test", account2)
	assert.ErrorIs(t, err, registry.ErrNotOwner)
}

func TestRoot_TransferRoot_NotHolder(t *testing.T) {
	root, reg := newRoot(t)
	ctx := context.Background()

	err := root.TransferRoot(ctx, account1, account1)
	require.ErrorIs(t, err, authority.ErrUnauthorized)

	// Controllers are not holders.
	err = root.TransferRoot(ctx, registrarID, account1)
	require.ErrorIs(t, err, authority.ErrUnauthorized)

	owner, err := reg.Owner(ctx, registry.RootNode)
	require.NoError(t, err)
	assert.Equal(t, rootID, owner)
}

func TestRoot_Controllers(t *testing.T) {
	root, _ := newRoot(t)

	t.Run("holder adds", func(t *testing.T) {
		require.NoError(t, root.AddController(holder, account1))
		assert.True(t, root.IsController(account1))
	})

	t.Run("controller adds", func(t *testing.T) {
		require.NoError(t, root.AddController(account1, account2))
		assert.True(t, root.IsController(account2))
	})

	t.Run("controller removes", func(t *testing.T) {
		require.NoError(t, root.RemoveController(account1, account2))
		assert.False(t, root.IsController(account2))
	})

	t.Run("stranger rejected", func(t *testing.T) {
		err := root.AddController(account2, account2)
		require.ErrorIs(t, err, authority.ErrUnauthorized)
		assert.False(t, root.IsController(account2))

		err = root.RemoveController(account2, account1)
		require.ErrorIs(t, err, authority.ErrUnauthorized)
		assert.True(t, root.IsController(account1))
	})

	t.Run("zero address rejected", func(t *testing.T) {
		err := root.AddController(common.Address{}, account2)
		assert.ErrorIs(t, err, authority.ErrUnauthorized)
	})

	t.Run("removed controller cannot delegate", func(t *testing.T) {
		require.NoError(t, root.RemoveController(holder, account1))
		_, err := root.SetSubnodeOwner(context.Background(), account1, "test", account1)
		assert.ErrorIs(t, err, authority.ErrUnauthorized)
	})

	assert.Equal(t, []common.Address{holder, registrarID}, root.Controllers())
}

func TestRoot_CanAdminister(t *testing.T) {
	root, _ := newRoot(t)
	assert.True(t, root.CanAdminister(holder))
	assert.True(t, root.CanAdminister(registrarID))
	assert.False(t, root.CanAdminister(account1))
	assert.False(t, root.CanAdminister(common.Address{}))
}

func TestRoot_IsReserved(t *testing.T) {
	root, _ := newRoot(t)
	assert.True(t, root.IsReserved("eth"))
	assert.True(t, root.IsReserved("ETH."))
	assert.False(t, root.IsReserved("test"))
}

func TestRoot_Accessors(t *testing.T) {
	root, _ := newRoot(t)
	assert.Equal(t, rootID, root.Identity())
	assert.Equal(t, holder, root.Owner())
}
