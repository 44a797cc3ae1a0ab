package wallets

import "errors"

var (
	// ErrNoAccount indicates a read was requested without an account.
	ErrNoAccount = errors.New("wallets: account is required")

	// ErrNoWallet indicates a wallet read was requested without a wallet address.
	ErrNoWallet = errors.New("wallets: wallet address is required")
)
