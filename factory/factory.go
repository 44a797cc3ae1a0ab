package factory

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3"

	"github.com/bitfsorg/instantwallet-go/network"
)

// Entry is one row of the factory's per-account wallet list.
type Entry struct {
	Name    string
	Address common.Address
	Kind    string
}

// Detail is the full state of one instant wallet.
type Detail struct {
	Name     string
	Owners   []common.Address
	Percents []*big.Int
	Stopped  bool
	Total    *big.Int
}

// Transfer is one recorded movement of funds into or out of a wallet.
type Transfer struct {
	From   common.Address
	To     common.Address
	Side   string
	Amount *big.Int
}

// Factory reads the factory contract on behalf of one account. Reads carry
// the account as the call sender because the contract keys results by it.
type Factory struct {
	caller  network.ContractCaller
	address common.Address
}

// New binds a factory contract at address.
func New(caller network.ContractCaller, address common.Address) *Factory {
	return &Factory{caller: caller, address: address}
}

// Address returns the factory contract address.
func (f *Factory) Address() common.Address { return f.address }

// CreateCall builds the simulation input for createInstantWallet.
func (f *Factory) CreateCall(from common.Address, data []byte) network.Call {
	return network.Call{From: from, To: f.address, Method: MethodCreateInstantWallet, Data: data}
}

// UserWallets returns the wallets the account created.
func (f *Factory) UserWallets(ctx context.Context, account common.Address) ([]Entry, error) {
	var raw []walletTuple
	if err := call(ctx, f.caller, account, f.address, funcGetUserWallets, &raw); err != nil {
		return nil, err
	}
	out := make([]Entry, len(raw))
	for i, w := range raw {
		out[i] = Entry{Name: w.Name, Address: w.Wallet, Kind: w.Kind}
	}
	return out, nil
}

// SharedWallets returns the addresses of wallets the account co-owns.
func (f *Factory) SharedWallets(ctx context.Context, account common.Address) ([]common.Address, error) {
	var addrs []common.Address
	if err := call(ctx, f.caller, account, f.address, funcGetSharedWallets, &addrs); err != nil {
		return nil, err
	}
	return addrs, nil
}

// UserWalletsCount returns how many wallets the account created.
func (f *Factory) UserWalletsCount(ctx context.Context, account common.Address) (*big.Int, error) {
	var n *big.Int
	if err := call(ctx, f.caller, account, f.address, funcGetUserWalletsCount, &n); err != nil {
		return nil, err
	}
	if n == nil {
		n = new(big.Int)
	}
	return n, nil
}

// InstantWallet reads a single deployed instant wallet.
type InstantWallet struct {
	caller  network.ContractCaller
	address common.Address
}

// NewInstantWallet binds the wallet contract at address.
func NewInstantWallet(caller network.ContractCaller, address common.Address) *InstantWallet {
	return &InstantWallet{caller: caller, address: address}
}

// Address returns the wallet contract address.
func (w *InstantWallet) Address() common.Address { return w.address }

// Wallet returns the wallet's name, owners, shares and totals.
func (w *InstantWallet) Wallet(ctx context.Context, account common.Address) (*Detail, error) {
	var raw detailTuple
	if err := call(ctx, w.caller, account, w.address, funcGetWallet, &raw); err != nil {
		return nil, err
	}
	if len(raw.Owners) != len(raw.Percents) {
		return nil, fmt.Errorf("%w: getWallet: %d owners, %d percents", ErrDecode, len(raw.Owners), len(raw.Percents))
	}
	d := Detail(raw)
	if d.Total == nil {
		d.Total = new(big.Int)
	}
	return &d, nil
}

// Transactions returns the wallet's transfer history in contract order.
func (w *InstantWallet) Transactions(ctx context.Context, account common.Address) ([]Transfer, error) {
	var raw []transferTuple
	if err := call(ctx, w.caller, account, w.address, funcGetTransactions, &raw); err != nil {
		return nil, err
	}
	out := make([]Transfer, len(raw))
	for i, t := range raw {
		out[i] = Transfer(t)
	}
	return out, nil
}

func call(ctx context.Context, caller network.ContractCaller, from, to common.Address, fn *w3.Func, result any) error {
	input, err := fn.EncodeArgs()
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrCallFailed, fn.Signature, err)
	}
	out, err := caller.CallContract(ctx, ethereum.CallMsg{From: from, To: &to, Data: input}, nil)
	if err != nil {
		return fmt.Errorf("%w: %s on %s: %w", ErrCallFailed, fn.Signature, to.Hex(), err)
	}
	if err := fn.DecodeReturns(out, result); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, fn.Signature, err)
	}
	return nil
}
