package network

import "errors"

var (
	// ErrConnectionFailed indicates the client could not connect to the endpoint.
	ErrConnectionFailed = errors.New("network: connection failed")

	// ErrInvalidResponse indicates the endpoint returned a malformed or unexpected response.
	ErrInvalidResponse = errors.New("network: invalid response")

	// ErrSimulationFailed indicates the dry run of a contract call failed (usually a revert).
	ErrSimulationFailed = errors.New("network: simulation failed")

	// ErrSubmitFailed indicates the signer did not accept the transaction for broadcast.
	ErrSubmitFailed = errors.New("network: submit failed")

	// ErrConfirmationTimeout indicates no receipt arrived before the confirmation deadline.
	ErrConfirmationTimeout = errors.New("network: timed out waiting for confirmation")

	// ErrReverted indicates the transaction was mined with a failed status.
	ErrReverted = errors.New("network: transaction reverted")

	// ErrNoAccounts indicates the signer exposes no accounts.
	ErrNoAccounts = errors.New("network: signer has no accounts")

	// ErrWrongChain indicates the signer is connected to a different chain than configured.
	ErrWrongChain = errors.New("network: signer is on a different chain")

	// ErrUnknownNetwork indicates the network name has no preset and no explicit endpoints.
	ErrUnknownNetwork = errors.New("network: unknown network")
)
