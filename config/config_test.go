// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bitfsorg/instantwallet-go/network"
)

const testFactory = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

// ---------------------------------------------------------------------------
// DefaultConfig tests
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"Network", cfg.Network, "bsc-testnet"},
		{"ConfirmTimeout", cfg.ConfirmTimeout, 60 * time.Second},
		{"GracePeriod", cfg.GracePeriod, 2 * time.Second},
		{"PollInterval", cfg.PollInterval, time.Second},
		{"ShareDecimals", cfg.ShareDecimals, uint8(0)},
		{"LogLevel", cfg.LogLevel, "info"},
		{"LogFile", cfg.LogFile, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}

	if err := ValidateConfig(cfg); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

// ---------------------------------------------------------------------------
// SaveConfig / LoadConfig round-trip tests
// ---------------------------------------------------------------------------

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	original := Config{
		Network:        "localhost",
		RPCURL:         "http://127.0.0.1:8545",
		SignerURL:      "http://127.0.0.1:8550",
		ChainID:        31337,
		Factory:        testFactory,
		ShareDecimals:  2,
		ConfirmTimeout: 90 * time.Second,
		GracePeriod:    500 * time.Millisecond,
		PollInterval:   250 * time.Millisecond,
		LogLevel:       "debug",
		LogFile:        "/tmp/instantwallet.log",
	}

	if err := SaveConfig(path, original); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if loaded != original {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", loaded, original)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "confirm_timeout: 1m30s") {
		t.Errorf("durations should be written in Go notation, got:\n%s", data)
	}
}

func TestSaveConfigCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deep", "config.yaml")

	if err := SaveConfig(path, DefaultConfig()); err != nil {
		t.Fatalf("SaveConfig should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

// ---------------------------------------------------------------------------
// LoadConfig error tests
// ---------------------------------------------------------------------------

func TestLoadConfigNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig nonexistent: got %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "network: [unterminated\n")

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadConfig bad yaml: got %v, want ErrInvalidConfig", err)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "# comment\nfactory: "+testFactory+"\nconfirm_timeout: 2m\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Factory != testFactory {
		t.Errorf("Factory = %q, want %q", cfg.Factory, testFactory)
	}
	if cfg.ConfirmTimeout != 2*time.Minute {
		t.Errorf("ConfirmTimeout = %v, want 2m", cfg.ConfirmTimeout)
	}
	if cfg.Network != "bsc-testnet" || cfg.GracePeriod != 2*time.Second {
		t.Errorf("unset keys should keep defaults, got %+v", cfg)
	}
}

func TestLoadConfigUnknownKeysIgnored(t *testing.T) {
	path := writeConfig(t, "network: localhost\nfuture_option: true\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig with unknown key: %v", err)
	}
	if cfg.Network != "localhost" {
		t.Errorf("Network = %q, want localhost", cfg.Network)
	}
}

// ---------------------------------------------------------------------------
// ValidateConfig tests
// ---------------------------------------------------------------------------

func TestValidateConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"empty network", func(c *Config) { c.Network = "" }, ErrEmptyNetwork},
		{"unknown network", func(c *Config) { c.Network = "mainnet" }, ErrInvalidNetwork},
		{"bad rpc url", func(c *Config) { c.RPCURL = "localhost:8545" }, ErrInvalidURL},
		{"bad signer url", func(c *Config) { c.SignerURL = "ftp://signer" }, ErrInvalidURL},
		{"bad factory", func(c *Config) { c.Factory = "0x1234" }, ErrInvalidFactory},
		{"bad account", func(c *Config) { c.Account = "alice" }, ErrInvalidAccount},
		{"share decimals", func(c *Config) { c.ShareDecimals = 9 }, ErrInvalidShareDecimals},
		{"zero confirm timeout", func(c *Config) { c.ConfirmTimeout = 0 }, ErrInvalidDuration},
		{"negative grace", func(c *Config) { c.GracePeriod = -time.Second }, ErrInvalidDuration},
		{"zero poll interval", func(c *Config) { c.PollInterval = 0 }, ErrInvalidDuration},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, ErrInvalidLogLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			if err := ValidateConfig(cfg); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestValidateConfigCustomNetwork(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Network = "anvil"
	cfg.RPCURL = "http://127.0.0.1:8545"
	cfg.GracePeriod = 0
	if err := ValidateConfig(cfg); err != nil {
		t.Errorf("custom network with rpc_url should validate: %v", err)
	}
}

func TestValidateConfigValidLogLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
		cfg := DefaultConfig()
		cfg.LogLevel = level
		if err := ValidateConfig(cfg); err != nil {
			t.Errorf("log level %q rejected: %v", level, err)
		}
	}
}

// ---------------------------------------------------------------------------
// Path helpers
// ---------------------------------------------------------------------------

func TestConfigPath(t *testing.T) {
	got := ConfigPath("/home/user/.instantwallet")
	want := filepath.Join("/home/user/.instantwallet", "config.yaml")
	if got != want {
		t.Errorf("ConfigPath = %q, want %q", got, want)
	}
}

func TestDefaultDataDirEndsWithDotInstantwallet(t *testing.T) {
	dir := DefaultDataDir()
	if !strings.HasSuffix(dir, ".instantwallet") {
		t.Errorf("DefaultDataDir() = %q, want suffix %q", dir, ".instantwallet")
	}
}

// ---------------------------------------------------------------------------
// Chain resolution
// ---------------------------------------------------------------------------

func TestResolveChainLayering(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Factory = testFactory
	cfg.RPCURL = "http://file-rpc:8545"

	// File beats preset.
	chain, err := cfg.ResolveChain(nil, nil)
	if err != nil {
		t.Fatalf("ResolveChain: %v", err)
	}
	if chain.RPCURL != "http://file-rpc:8545" || chain.ChainID != 97 {
		t.Errorf("file layer not applied: %+v", chain)
	}
	if chain.SignerURL != network.NetworkPresets["bsc-testnet"].SignerURL {
		t.Errorf("preset signer expected, got %q", chain.SignerURL)
	}

	// Env beats file; flags beat env.
	env := map[string]string{"INSTANTWALLET_RPC_URL": "http://env-rpc:8545", "INSTANTWALLET_SIGNER_URL": ""}
	flags := &network.ChainConfig{SignerURL: "http://flag-signer:8550"}
	chain, err = cfg.ResolveChain(flags, env)
	if err != nil {
		t.Fatalf("ResolveChain: %v", err)
	}
	if chain.RPCURL != "http://env-rpc:8545" {
		t.Errorf("RPCURL = %q, want env value", chain.RPCURL)
	}
	if chain.SignerURL != "http://flag-signer:8550" {
		t.Errorf("SignerURL = %q, want flag value", chain.SignerURL)
	}
}

func TestResolveChainCustomNetworkUsesFileChainID(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Network = "anvil"
	cfg.RPCURL = "http://127.0.0.1:8545"
	cfg.SignerURL = "http://127.0.0.1:8545"
	cfg.ChainID = 31337
	cfg.Factory = testFactory

	chain, err := cfg.ResolveChain(nil, nil)
	if err != nil {
		t.Fatalf("ResolveChain: %v", err)
	}
	if chain.ChainID != 31337 || chain.Name != "anvil" {
		t.Errorf("unexpected chain %+v", chain)
	}
}

// ---------------------------------------------------------------------------
// Logger
// ---------------------------------------------------------------------------

func TestNewLoggerWritesToStderrAndFile(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.LogFile = filepath.Join(dir, "logs", "instantwallet.log")

	var stderr bytes.Buffer
	logger, closeFn, err := NewLogger(cfg, &stderr)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Info("wallet created")
	logger.Debug("hidden at info level")
	closeFn()

	if !strings.Contains(stderr.String(), "wallet created") {
		t.Errorf("stderr missing entry: %q", stderr.String())
	}
	if strings.Contains(stderr.String(), "hidden at info level") {
		t.Error("debug entry should be filtered at info level")
	}

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"wallet created"`) {
		t.Errorf("log file missing JSON entry: %q", data)
	}
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "loud"
	if _, _, err := NewLogger(cfg, &bytes.Buffer{}); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("got %v, want ErrInvalidLogLevel", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}
