package registry_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jroosing/tldclaim/internal/dns"
	"github.com/jroosing/tldclaim/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	rootOwner = common.HexToAddress("0x0000000000000000000000000000000000000a11")
	other     = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
)

func TestNameHash_KnownVectors(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{".", "0x0000000000000000000000000000000000000000000000000000000000000000"},
		{"eth.", "0x93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae"},
		{"foo.eth.", "0xde9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, common.HexToHash(tt.want), registry.NameHash(dns.MustParseName(tt.name)))
		})
	}
}

func TestLabelHash(t *testing.T) {
	assert.Equal(t,
		common.HexToHash("0x4f5b812789fc606be1b3b16908db13fc7a9adf7ca72641f84d75b47069d3d7f0"),
		registry.LabelHash("eth"))
	assert.Equal(t, registry.LabelHash("eth"), registry.LabelHash("ETH"), "labels hash case-insensitively")
}

func TestSubNodeMatchesNameHash(t *testing.T) {
	n := dns.MustParseName("test.")
	assert.Equal(t, registry.NameHash(n), registry.SubNode(registry.RootNode, registry.LabelHash("test")))
}

func TestMemory_SetSubnodeOwner(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewMemory(rootOwner)

	node, err := reg.SetSubnodeOwner(ctx, rootOwner, registry.RootNode, registry.LabelHash("test"), other)
	require.NoError(t, err)
	assert.Equal(t, registry.NameHash(dns.MustParseName("test.")), node)

	owner, err := reg.Owner(ctx, node)
	require.NoError(t, err)
	assert.Equal(t, other, owner)
}

func TestMemory_SetSubnodeOwner_NotOwner(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewMemory(rootOwner)

	_, err := reg.SetSubnodeOwner(ctx, other, registry.RootNode, registry.LabelHash("test"), other)
	assert.ErrorIs(t, err, registry.ErrNotOwner)

	owner, err := reg.Owner(ctx, registry.NameHash(dns.MustParseName("test.")))
	require.NoError(t, err)
	assert.Equal(t, common.Address{}, owner)
}

func TestMemory_SetOwner(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewMemory(rootOwner)

	require.ErrorIs(t, reg.SetOwner(ctx, other, registry.RootNode, other), registry.ErrNotOwner)
	require.NoError(t, reg.SetOwner(ctx, rootOwner, registry.RootNode, other))

	owner, err := reg.Owner(ctx, registry.RootNode)
	require.NoError(t, err)
	assert.Equal(t, other, owner)

	// The previous owner lost control.
	assert.ErrorIs(t, reg.SetOwner(ctx, rootOwner, registry.RootNode, rootOwner), registry.ErrNotOwner)
}

func TestMemory_ZeroCallerNeverOwns(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewMemory(rootOwner)
	unowned := registry.NameHash(dns.MustParseName("nobody."))

	err := reg.SetOwner(ctx, common.Address{}, unowned, other)
	assert.ErrorIs(t, err, registry.ErrNotOwner)
}
