package server_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jroosing/tldclaim/internal/config"
	"github.com/jroosing/tldclaim/internal/dns"
	"github.com/jroosing/tldclaim/internal/registry"
	"github.com/jroosing/tldclaim/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, dbPath string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Database.Path = dbPath
	cfg.Authority.OwnerRaw = "0x00000000000000000000000000000000000000a0"
	cfg.Registrar.DefaultRegistrarRaw = "0x00000000000000000000000000000000000000de"
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestBuild_Memory(t *testing.T) {
	cfg := testConfig(t, "")
	ctx := context.Background()

	deps, closeStore, err := server.Build(ctx, cfg, nil)
	require.NoError(t, err)
	defer closeStore()

	assert.Nil(t, deps.DB)
	assert.True(t, deps.Root.IsController(cfg.Registrar.Identity), "registrar is always a controller")
	assert.True(t, deps.Root.IsReserved("eth"))
	assert.Equal(t, "_ens.nic.test.", deps.Registrar.QueryName(dns.MustParseName("test.")).String())

	owner, err := deps.Registry.Owner(ctx, registry.RootNode)
	require.NoError(t, err)
	assert.Equal(t, cfg.Authority.Identity, owner)

	reg, err := deps.Registrar.RegisterTLD(ctx, dns.MustParseName("test."), nil)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xde"), reg.Owner)
}

func TestBuild_DatabasePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	cfg := testConfig(t, path)
	ctx := context.Background()

	deps, closeStore, err := server.Build(ctx, cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, deps.DB)
	_, err = deps.Registrar.RegisterTLD(ctx, dns.MustParseName("test."), nil)
	require.NoError(t, err)
	require.NoError(t, closeStore())

	deps, closeStore, err = server.Build(ctx, cfg, nil)
	require.NoError(t, err)
	defer closeStore()

	owner, err := deps.Registry.Owner(ctx, registry.NameHash(dns.MustParseName("test.")))
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xde"), owner)
}

func TestBuild_BadMarker(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.Registrar.ClaimMarker = "a..b"

	_, _, err := server.Build(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, dns.ErrDNSError)
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestRunWithContext_ServesUntilCanceled(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.API.Host = "127.0.0.1"
	cfg.API.Port = freePort(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.NewRunner(nil).RunWithContext(ctx, cfg) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/api/v1/health", cfg.API.Port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestRunWithContext_APIDisabled(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.API.Enabled = false

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.NoError(t, server.NewRunner(nil).RunWithContext(ctx, cfg))
}
