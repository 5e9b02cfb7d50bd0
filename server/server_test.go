package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nexaaman/CodeDoc/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Home = t.TempDir()
	require.NoError(t, cfg.EnsureDirs())
	return cfg
}

// pointAt rewires the config at a test HTTP server.
func pointAt(t *testing.T, cfg *config.Config, srv *httptest.Server) {
	t.Helper()
	host, portStr, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	cfg.Host = host
	cfg.Port = port
}

func TestIsRunning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/models" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	pointAt(t, &cfg, srv)

	m := New(cfg, nil)
	assert.True(t, m.IsRunning())

	srv.Close()
	assert.False(t, m.IsRunning())
}

func TestStartMissingBinary(t *testing.T) {
	cfg := testConfig(t)
	cfg.ServerBinary = "definitely-not-llama-server"
	cfg.Port = 1 // nothing answers here

	m := New(cfg, nil)
	err := m.Start(context.Background(), "model.gguf")
	assert.Error(t, err)
}

func TestStartDetectsImmediateDeath(t *testing.T) {
	cfg := testConfig(t)
	cfg.Port = 1

	// a stand-in binary that exits at once, whatever its arguments
	script := filepath.Join(t.TempDir(), "fake-server")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexit 3\n"), 0o755))
	cfg.ServerBinary = script

	m := New(cfg, nil)
	m.startTimeout = 5 * time.Second
	m.pollInterval = 50 * time.Millisecond

	err := m.Start(context.Background(), "model.gguf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited during startup")
}

func TestStopWithoutPIDFile(t *testing.T) {
	m := New(testConfig(t), nil)
	assert.ErrorIs(t, m.Stop(), ErrNotRunning)
}

func TestPIDRoundTrip(t *testing.T) {
	m := New(testConfig(t), nil)

	require.NoError(t, m.writePID(12345))
	pid, err := m.readPID()
	require.NoError(t, err)
	assert.Equal(t, 12345, pid)
}

func TestReadMalformedPID(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.PIDFile(), []byte("not-a-pid"), 0o644))

	m := New(cfg, nil)
	_, err := m.readPID()
	assert.ErrorContains(t, err, "malformed")
}
