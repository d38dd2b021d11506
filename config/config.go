// config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const envConfig = "KCLI_CONFIG"

// Config holds the client-side settings for talking to the KuberDock API.
// A missing config file is not an error; defaults apply.
type Config struct {
	URL      string `yaml:"url"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
	Token    string `yaml:"token,omitempty"`

	path     string
	explicit bool // path came from --config, not the default location
}

func DefaultPath() string {
	if fromEnv := strings.TrimSpace(os.Getenv(envConfig)); fromEnv != "" {
		return fromEnv
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".kcli", "config.yaml")
	}
	return filepath.Join(home, ".kcli", "config.yaml")
}

func Load(path string) (*Config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := &Config{URL: "https://127.0.0.1", path: path, explicit: explicit}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	if strings.TrimSpace(cfg.URL) == "" {
		cfg.URL = "https://127.0.0.1"
	}
	cfg.path = path
	return cfg, nil
}

func (c *Config) Save() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	if strings.TrimSpace(c.path) == "" {
		c.path = DefaultPath()
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory %q: %w", dir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temp config file %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace config file %q: %w", c.path, err)
	}
	return nil
}

func (c *Config) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

// DraftsDir is where pending pod drafts live: a fixed subdirectory of the
// user's home, or of the config file's directory when an explicit config
// path was given.
func (c *Config) DraftsDir() string {
	const kubeDir = ".kube_drafts"
	if c != nil && c.explicit {
		return filepath.Join(filepath.Dir(c.path), kubeDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return kubeDir
	}
	return filepath.Join(home, kubeDir)
}
