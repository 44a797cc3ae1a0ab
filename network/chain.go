package network

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// Compile-time interface checks.
var (
	_ Simulator      = (*Chain)(nil)
	_ ContractCaller = (*Chain)(nil)
	_ Backend        = (*ethclient.Client)(nil)
)

const (
	defaultPollInterval = time.Second
	defaultGasMargin    = 20 // percent added on top of the node's estimate
)

// Chain is the node-facing side: reads, simulation and receipt polling.
type Chain struct {
	backend      Backend
	logger       *zap.Logger
	pollInterval time.Duration
	gasMargin    uint64
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithPollInterval sets how often AwaitConfirmation asks for a receipt.
func WithPollInterval(d time.Duration) ChainOption {
	return func(c *Chain) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithGasMargin sets the percentage added to gas estimates.
func WithGasMargin(percent uint64) ChainOption {
	return func(c *Chain) { c.gasMargin = percent }
}

// WithChainLogger sets the logger used for receipt polling diagnostics.
func WithChainLogger(l *zap.Logger) ChainOption {
	return func(c *Chain) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewChain wraps a node backend.
func NewChain(backend Backend, opts ...ChainOption) *Chain {
	c := &Chain{
		backend:      backend,
		logger:       zap.NewNop(),
		pollInterval: defaultPollInterval,
		gasMargin:    defaultGasMargin,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DialChain connects to the node at rpcURL.
func DialChain(ctx context.Context, rpcURL string, opts ...ChainOption) (*Chain, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	return NewChain(client, opts...), nil
}

// Close releases the node connection if the backend holds one.
func (c *Chain) Close() {
	if cl, ok := c.backend.(interface{ Close() }); ok {
		cl.Close()
	}
}

// CallContract forwards a read-only call to the node at the latest block.
func (c *Chain) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return c.backend.CallContract(ctx, msg, blockNumber)
}

// ChainID returns the chain ID reported by the node.
func (c *Chain) ChainID(ctx context.Context) (uint64, error) {
	id, err := c.backend.ChainID(ctx)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

// Simulate executes call with eth_call to surface reverts without changing
// state, then estimates gas. The returned request carries the padded gas
// limit and can be handed to a Submitter as is.
func (c *Chain) Simulate(ctx context.Context, call Call) (*Request, error) {
	to := call.To
	msg := ethereum.CallMsg{From: call.From, To: &to, Data: call.Data}

	if _, err := c.backend.CallContract(ctx, msg, nil); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSimulationFailed, call.Method, err)
	}
	gas, err := c.backend.EstimateGas(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: estimate gas: %w", ErrSimulationFailed, call.Method, err)
	}
	gas += gas * c.gasMargin / 100

	return &Request{
		From:   call.From,
		To:     call.To,
		Method: call.Method,
		Data:   call.Data,
		Gas:    gas,
		Value:  new(big.Int),
	}, nil
}

// AwaitConfirmation polls for the receipt of hash until it appears or
// timeout elapses. Lookup errors other than "not found" are logged and
// retried; the deadline is the only terminal condition besides ctx.
func (c *Chain) AwaitConfirmation(ctx context.Context, hash common.Hash, timeout time.Duration) (*types.Receipt, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) && ctx.Err() == nil {
			c.logger.Debug("receipt lookup failed", zap.Stringer("tx", hash), zap.Error(err))
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: tx %s after %s", ErrConfirmationTimeout, hash.Hex(), timeout)
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
