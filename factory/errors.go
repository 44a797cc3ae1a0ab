package factory

import "errors"

var (
	// ErrShareNotRepresentable indicates a share cannot be encoded exactly at the configured scale.
	ErrShareNotRepresentable = errors.New("factory: share not representable on chain")

	// ErrMismatchedRequest indicates owners and shares differ in length.
	ErrMismatchedRequest = errors.New("factory: owners and shares differ in length")

	// ErrCallFailed indicates a read call to a contract failed.
	ErrCallFailed = errors.New("factory: contract call failed")

	// ErrDecode indicates a contract returned data that does not match the ABI.
	ErrDecode = errors.New("factory: decode contract output")
)
