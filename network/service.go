package network

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Call describes a state-changing contract call to be dry-run.
type Call struct {
	From   common.Address
	To     common.Address
	Method string // for logs and error messages only
	Data   []byte
}

// Request is an executable transaction produced by a successful simulation.
type Request struct {
	From   common.Address
	To     common.Address
	Method string
	Data   []byte
	Gas    uint64
	Value  *big.Int
}

// Simulator dry-runs a state-changing call against the chain and returns a
// request ready to be sent for approval.
type Simulator interface {
	Simulate(ctx context.Context, call Call) (*Request, error)
}

// Submitter sends a request for the account holder's approval and waits for
// the network to include it.
type Submitter interface {
	// Submit returns the transaction hash once the signer has accepted the
	// request. A declined signature prompt surfaces as an error.
	Submit(ctx context.Context, req *Request) (common.Hash, error)

	// AwaitConfirmation blocks until a receipt for hash is available or the
	// timeout elapses, in which case the error wraps ErrConfirmationTimeout.
	AwaitConfirmation(ctx context.Context, hash common.Hash, timeout time.Duration) (*types.Receipt, error)
}

// ContractCaller executes read-only contract calls.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Backend is the subset of the node API used by Chain. *ethclient.Client
// satisfies it.
type Backend interface {
	ContractCaller
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	ChainID(ctx context.Context) (*big.Int, error)
}
