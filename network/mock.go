package network

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// MockSimulator is a test double for Simulator.
type MockSimulator struct {
	SimulateFn func(ctx context.Context, call Call) (*Request, error)
}

func (m *MockSimulator) Simulate(ctx context.Context, call Call) (*Request, error) {
	return m.SimulateFn(ctx, call)
}

// MockSubmitter is a test double for Submitter.
// All function fields must be set before the corresponding method is called.
type MockSubmitter struct {
	SubmitFn            func(ctx context.Context, req *Request) (common.Hash, error)
	AwaitConfirmationFn func(ctx context.Context, hash common.Hash, timeout time.Duration) (*types.Receipt, error)
}

func (m *MockSubmitter) Submit(ctx context.Context, req *Request) (common.Hash, error) {
	return m.SubmitFn(ctx, req)
}
func (m *MockSubmitter) AwaitConfirmation(ctx context.Context, hash common.Hash, timeout time.Duration) (*types.Receipt, error) {
	return m.AwaitConfirmationFn(ctx, hash, timeout)
}

// MockBackend is a test double for Backend.
// All function fields must be set before the corresponding method is called.
type MockBackend struct {
	CallContractFn       func(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	EstimateGasFn        func(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	TransactionReceiptFn func(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	ChainIDFn            func(ctx context.Context) (*big.Int, error)
}

func (m *MockBackend) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return m.CallContractFn(ctx, msg, blockNumber)
}
func (m *MockBackend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return m.EstimateGasFn(ctx, msg)
}
func (m *MockBackend) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return m.TransactionReceiptFn(ctx, hash)
}
func (m *MockBackend) ChainID(ctx context.Context) (*big.Int, error) {
	return m.ChainIDFn(ctx)
}
