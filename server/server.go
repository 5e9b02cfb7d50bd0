// Package server manages the local llama.cpp inference server as a
// detached subprocess: spawning, health polling over its OpenAI-compatible
// API, and teardown via a recorded PID.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Nexaaman/CodeDoc/config"
)

// ErrNotRunning is returned by Stop when no server PID is recorded.
var ErrNotRunning = errors.New("no server PID found")

// Manager controls the inference server lifecycle.
type Manager struct {
	cfg          config.Config
	httpClient   *http.Client
	log          *zap.Logger
	startTimeout time.Duration
	pollInterval time.Duration
}

// New creates a Manager for the configured server.
func New(cfg config.Config, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		cfg:          cfg,
		httpClient:   &http.Client{Timeout: 2 * time.Second},
		log:          log,
		startTimeout: 30 * time.Second,
		pollInterval: time.Second,
	}
}

// IsRunning reports whether the API answers on the configured endpoint.
func (m *Manager) IsRunning() bool {
	resp, err := m.httpClient.Get(m.cfg.BaseURL() + "/models")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Start launches the server detached from the CLI, records its PID, and
// waits for the API to come up. It is a no-op when a server is already
// answering.
func (m *Manager) Start(ctx context.Context, modelPath string) error {
	if m.IsRunning() {
		m.log.Info("server already running", zap.String("url", m.cfg.BaseURL()))
		return nil
	}

	gpuLayers := m.cfg.GPULayers
	if gpuLayers < 0 {
		// offload as many layers as fit
		gpuLayers = 999
	}

	args := []string{
		"--model", modelPath,
		"--host", m.cfg.Host,
		"--port", strconv.Itoa(m.cfg.Port),
		"--n-gpu-layers", strconv.Itoa(gpuLayers),
		"--ctx-size", strconv.Itoa(m.cfg.ContextSize),
	}

	logPath := filepath.Join(m.cfg.LogsDir(), "server.log")
	logFile, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("create server log: %w", err)
	}
	defer logFile.Close()

	cmd := exec.Command(m.cfg.ServerBinary, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	// a fresh process group detaches the server from the CLI's lifetime
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", m.cfg.ServerBinary, err)
	}

	if err := m.writePID(cmd.Process.Pid); err != nil {
		return err
	}
	m.log.Info("booting inference server",
		zap.Int("pid", cmd.Process.Pid),
		zap.String("model", filepath.Base(modelPath)))

	died := make(chan error, 1)
	go func() { died <- cmd.Wait() }()

	deadline := time.After(m.startTimeout)
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-died:
			return fmt.Errorf("server process exited during startup (see %s): %w", logPath, err)
		case <-deadline:
			return fmt.Errorf("timeout waiting for server to start (see %s)", logPath)
		case <-ticker.C:
			if m.IsRunning() {
				m.log.Info("server online", zap.String("url", m.cfg.BaseURL()))
				return nil
			}
		}
	}
}

// Stop kills the recorded server process and its children, then removes
// the PID file.
func (m *Manager) Stop() error {
	pid, err := m.readPID()
	if err != nil {
		return err
	}
	defer os.Remove(m.cfg.PIDFile())

	// negative PID targets the whole process group
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
		if errors.Is(err, syscall.ESRCH) {
			m.log.Info("process already gone", zap.Int("pid", pid))
			return nil
		}
		return fmt.Errorf("kill server (pid %d): %w", pid, err)
	}

	m.log.Info("stopped server", zap.Int("pid", pid))
	return nil
}

func (m *Manager) writePID(pid int) error {
	if err := os.WriteFile(m.cfg.PIDFile(), []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return fmt.Errorf("write PID file: %w", err)
	}
	return nil
}

func (m *Manager) readPID() (int, error) {
	content, err := os.ReadFile(m.cfg.PIDFile())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, ErrNotRunning
		}
		return 0, fmt.Errorf("read PID file: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return 0, fmt.Errorf("malformed PID file: %w", err)
	}
	return pid, nil
}
