// Package config holds the application directories and user settings.
// Settings live in ~/.codedoc/config.yaml; anything absent falls back to a
// default tuned for small local coding models.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	appDirName     = ".codedoc"
	configFileName = "config.yaml"

	// A good balance of speed and quality for local coding assistance.
	DefaultRepo     = "Qwen/Qwen2.5-Coder-3B-Instruct-GGUF"
	DefaultFilename = "qwen2.5-coder-3b-instruct-q4_k_m.gguf"

	DefaultHost = "127.0.0.1"
	DefaultPort = 8000
)

// Config is the user-tunable application configuration.
type Config struct {
	Home         string `yaml:"-"`
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Repo         string `yaml:"repo"`
	Filename     string `yaml:"filename"`
	ServerBinary string `yaml:"server_binary"`
	GPULayers    int    `yaml:"gpu_layers"`
	ContextSize  int    `yaml:"context_size"`
}

// Default returns the built-in configuration rooted at ~/.codedoc.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	return defaultIn(filepath.Join(home, appDirName)), nil
}

func defaultIn(home string) Config {
	return Config{
		Home:         home,
		Host:         DefaultHost,
		Port:         DefaultPort,
		Repo:         DefaultRepo,
		Filename:     DefaultFilename,
		ServerBinary: "llama-server",
		GPULayers:    -1,
		ContextSize:  16384,
	}
}

// Load returns the defaults merged with ~/.codedoc/config.yaml when the
// file exists. A missing file is not an error.
func Load() (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}
	return loadFrom(cfg)
}

func loadFrom(cfg Config) (Config, error) {
	content, err := os.ReadFile(filepath.Join(cfg.Home, configFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ModelsDir is where downloaded GGUF files are stored.
func (c Config) ModelsDir() string {
	return filepath.Join(c.Home, "models")
}

// LogsDir is where the inference server writes its log.
func (c Config) LogsDir() string {
	return filepath.Join(c.Home, "logs")
}

// PIDFile records the PID of the detached inference server.
func (c Config) PIDFile() string {
	return filepath.Join(c.Home, "server.pid")
}

// BaseURL is the OpenAI-compatible endpoint of the local server.
func (c Config) BaseURL() string {
	return fmt.Sprintf("http://%s:%d/v1", c.Host, c.Port)
}

// EnsureDirs creates the application directories if they do not exist.
func (c Config) EnsureDirs() error {
	for _, dir := range []string{c.ModelsDir(), c.LogsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
