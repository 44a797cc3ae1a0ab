// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bitfsorg/instantwallet-go/network"
)

// Config holds the settings of the instantwallet CLI.
type Config struct {
	Network        string        `yaml:"network"`
	RPCURL         string        `yaml:"rpc_url,omitempty"`
	SignerURL      string        `yaml:"signer_url,omitempty"`
	ChainID        uint64        `yaml:"chain_id,omitempty"`
	Factory        string        `yaml:"factory,omitempty"`
	Account        string        `yaml:"account,omitempty"`
	ShareDecimals  uint8         `yaml:"share_decimals"`
	ConfirmTimeout time.Duration `yaml:"confirm_timeout"`
	GracePeriod    time.Duration `yaml:"grace_period"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	LogLevel       string        `yaml:"log_level"`
	LogFile        string        `yaml:"log_file,omitempty"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Network:        "bsc-testnet",
		ConfirmTimeout: 60 * time.Second,
		GracePeriod:    2 * time.Second,
		PollInterval:   time.Second,
		LogLevel:       "info",
	}
}

// DefaultDataDir returns the default data directory (~/.instantwallet).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".instantwallet"
	}
	return filepath.Join(home, ".instantwallet")
}

// ConfigPath returns the path to the configuration file within dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config.yaml")
}

// DefaultConfigPath returns ConfigPath(DefaultDataDir()).
func DefaultConfigPath() string {
	return ConfigPath(DefaultDataDir())
}

// LoadConfig reads a YAML configuration file. Keys absent from the file keep
// their DefaultConfig values; unknown keys are ignored.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML, creating parent directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	out := append([]byte("# instantwallet configuration\n"), data...)
	if err := os.WriteFile(path, out, 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// ChainOverrides returns the chain settings from the file as a lookup table
// keyed like the environment variables read by network.ResolveConfig.
// Entries are present only for values that are set.
func (c Config) ChainOverrides() map[string]string {
	m := make(map[string]string, 3)
	if c.RPCURL != "" {
		m["INSTANTWALLET_RPC_URL"] = c.RPCURL
	}
	if c.SignerURL != "" {
		m["INSTANTWALLET_SIGNER_URL"] = c.SignerURL
	}
	if c.Factory != "" {
		m["INSTANTWALLET_FACTORY"] = c.Factory
	}
	return m
}

// ResolveChain layers flags over env over the file over the network preset.
func (c Config) ResolveChain(flags *network.ChainConfig, env map[string]string) (*network.ChainConfig, error) {
	merged := c.ChainOverrides()
	for k, v := range env {
		if v != "" {
			merged[k] = v
		}
	}
	f := network.ChainConfig{}
	if flags != nil {
		f = *flags
	}
	if f.ChainID == 0 {
		f.ChainID = c.ChainID
	}
	return network.ResolveConfig(&f, merged, c.Network)
}
