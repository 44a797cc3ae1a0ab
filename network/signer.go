package network

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

var _ Submitter = (*WalletSubmitter)(nil)

// sendTxArgs maps the transaction object accepted by eth_sendTransaction.
type sendTxArgs struct {
	From  common.Address  `json:"from"`
	To    *common.Address `json:"to"`
	Gas   hexutil.Uint64  `json:"gas"`
	Value *hexutil.Big    `json:"value"`
	Data  hexutil.Bytes   `json:"data"`
}

// Accounts returns the accounts the signer is willing to sign for.
// It calls `eth_accounts`.
func (c *RPCClient) Accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := c.Call(ctx, "eth_accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// ChainID returns the chain the signer is connected to. It calls `eth_chainId`.
func (c *RPCClient) ChainID(ctx context.Context) (uint64, error) {
	var id hexutil.Uint64
	if err := c.Call(ctx, "eth_chainId", nil, &id); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// SendTransaction asks the signer to approve and broadcast req, returning
// the transaction hash. It calls `eth_sendTransaction`; the call blocks
// while the account holder decides.
func (c *RPCClient) SendTransaction(ctx context.Context, req *Request) (common.Hash, error) {
	to := req.To
	args := sendTxArgs{
		From: req.From,
		To:   &to,
		Gas:  hexutil.Uint64(req.Gas),
		Data: req.Data,
	}
	if req.Value != nil {
		args.Value = (*hexutil.Big)(req.Value)
	} else {
		args.Value = new(hexutil.Big)
	}

	var hash common.Hash
	if err := c.Call(ctx, "eth_sendTransaction", []interface{}{args}, &hash); err != nil {
		return common.Hash{}, err
	}
	if hash == (common.Hash{}) {
		return common.Hash{}, fmt.Errorf("%w: empty transaction hash", ErrInvalidResponse)
	}
	return hash, nil
}

// PrimaryAccount returns the first account exposed by the signer.
func (c *RPCClient) PrimaryAccount(ctx context.Context) (common.Address, error) {
	accounts, err := c.Accounts(ctx)
	if err != nil {
		return common.Address{}, err
	}
	if len(accounts) == 0 {
		return common.Address{}, ErrNoAccounts
	}
	return accounts[0], nil
}

// CheckChain verifies that the signer is connected to the expected chain.
func (c *RPCClient) CheckChain(ctx context.Context, want uint64) error {
	got, err := c.ChainID(ctx)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: got chain %d, want %d", ErrWrongChain, got, want)
	}
	return nil
}

// WalletSubmitter sends transactions through a wallet signer and waits for
// them on a node.
type WalletSubmitter struct {
	signer *RPCClient
	chain  *Chain
}

// NewWalletSubmitter pairs a signer endpoint with the node used for receipts.
func NewWalletSubmitter(signer *RPCClient, chain *Chain) *WalletSubmitter {
	return &WalletSubmitter{signer: signer, chain: chain}
}

// Submit sends req to the signer for approval.
func (s *WalletSubmitter) Submit(ctx context.Context, req *Request) (common.Hash, error) {
	hash, err := s.signer.SendTransaction(ctx, req)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %s: %w", ErrSubmitFailed, req.Method, err)
	}
	return hash, nil
}

// AwaitConfirmation waits for the receipt on the node.
func (s *WalletSubmitter) AwaitConfirmation(ctx context.Context, hash common.Hash, timeout time.Duration) (*types.Receipt, error) {
	return s.chain.AwaitConfirmation(ctx, hash, timeout)
}
