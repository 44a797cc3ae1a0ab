// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrEmptyNetwork indicates no network name was configured.
	ErrEmptyNetwork = errors.New("config: network must not be empty")

	// ErrInvalidNetwork indicates the network has no preset and no explicit RPC URL.
	ErrInvalidNetwork = errors.New("config: unknown network (use a preset or set rpc_url, signer_url and chain_id)")

	// ErrInvalidURL indicates an endpoint URL is malformed.
	ErrInvalidURL = errors.New("config: invalid endpoint URL")

	// ErrInvalidFactory indicates the factory address is not a valid address.
	ErrInvalidFactory = errors.New("config: invalid factory address")

	// ErrInvalidAccount indicates the account address is not a valid address.
	ErrInvalidAccount = errors.New("config: invalid account address")

	// ErrInvalidShareDecimals indicates the share scale is out of range.
	ErrInvalidShareDecimals = errors.New("config: share_decimals out of range")

	// ErrInvalidDuration indicates a timeout or interval is out of range.
	ErrInvalidDuration = errors.New("config: invalid duration")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfig indicates the configuration file could not be parsed.
	ErrInvalidConfig = errors.New("config: invalid configuration file")
)
