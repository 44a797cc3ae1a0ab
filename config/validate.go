// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bitfsorg/instantwallet-go/factory"
	"github.com/bitfsorg/instantwallet-go/network"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.Network == "" {
		return ErrEmptyNetwork
	}

	if _, ok := network.NetworkPresets[cfg.Network]; !ok && cfg.RPCURL == "" {
		return fmt.Errorf("%w: %q", ErrInvalidNetwork, cfg.Network)
	}

	for _, u := range []string{cfg.RPCURL, cfg.SignerURL} {
		if u == "" {
			continue
		}
		if err := validateURL(u); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidURL, err)
		}
	}

	if cfg.Factory != "" && !network.IsValidAddress(cfg.Factory) {
		return fmt.Errorf("%w: %q", ErrInvalidFactory, cfg.Factory)
	}

	if cfg.Account != "" && !network.IsValidAddress(cfg.Account) {
		return fmt.Errorf("%w: %q", ErrInvalidAccount, cfg.Account)
	}

	if cfg.ShareDecimals > factory.MaxShareDecimals {
		return fmt.Errorf("%w: %d (max %d)", ErrInvalidShareDecimals, cfg.ShareDecimals, factory.MaxShareDecimals)
	}

	if cfg.ConfirmTimeout <= 0 {
		return fmt.Errorf("%w: confirm_timeout must be positive", ErrInvalidDuration)
	}
	if cfg.GracePeriod < 0 {
		return fmt.Errorf("%w: grace_period must not be negative", ErrInvalidDuration)
	}
	if cfg.PollInterval <= 0 {
		return fmt.Errorf("%w: poll_interval must be positive", ErrInvalidDuration)
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	return nil
}

// validateURL checks that raw is an absolute http(s) or ws(s) URL.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("unsupported scheme in %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
