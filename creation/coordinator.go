package creation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bitfsorg/instantwallet-go/factory"
	"github.com/bitfsorg/instantwallet-go/network"
	"github.com/bitfsorg/instantwallet-go/shares"
)

const (
	// DefaultConfirmTimeout bounds the wait for an on-chain receipt.
	DefaultConfirmTimeout = 60 * time.Second

	// DefaultGracePeriod is the pause between confirmation and success, giving
	// indexers and read replicas time to catch up.
	DefaultGracePeriod = 2 * time.Second
)

// Resetter clears the caller's input after a successful run.
type Resetter interface {
	Reset()
}

// RunID identifies one submission attempt in logs and observer callbacks.
type RunID string

// Run is the state of one submission attempt.
type Run struct {
	ID RunID

	mu      sync.Mutex
	state   State
	hash    common.Hash
	failure *Failure
}

// State returns the run's current phase.
func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// TxHash returns the submitted transaction hash, zero before signing.
func (r *Run) TxHash() common.Hash {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hash
}

// Failure returns the classified failure of a Failed run, or nil.
func (r *Run) Failure() *Failure {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failure
}

// Coordinator drives the simulate, sign, confirm sequence for wallet creation.
// At most one run is in flight at a time.
type Coordinator struct {
	simulator      network.Simulator
	submitter      network.Submitter
	factory        common.Address
	validator      shares.Validator
	logger         *zap.Logger
	confirmTimeout time.Duration
	grace          time.Duration
	decimals       uint8
	observer       func(RunID, State)

	mu     sync.Mutex
	active *Run
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger for state transitions.
func WithLogger(l *zap.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithConfirmTimeout overrides DefaultConfirmTimeout.
func WithConfirmTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.confirmTimeout = d
		}
	}
}

// WithGracePeriod overrides DefaultGracePeriod. Zero disables the pause.
func WithGracePeriod(d time.Duration) Option {
	return func(c *Coordinator) {
		if d >= 0 {
			c.grace = d
		}
	}
}

// WithShareDecimals sets the on-chain share scale.
func WithShareDecimals(n uint8) Option {
	return func(c *Coordinator) { c.decimals = n }
}

// WithValidator replaces the validator used by SubmitForm.
func WithValidator(v shares.Validator) Option {
	return func(c *Coordinator) { c.validator = v }
}

// WithObserver registers fn to be called on every state transition. It runs
// on the submitting goroutine and must not call back into the Coordinator's
// Submit methods.
func WithObserver(fn func(RunID, State)) Option {
	return func(c *Coordinator) { c.observer = fn }
}

// New returns a Coordinator that creates wallets through the factory at
// factoryAddr.
func New(sim network.Simulator, sub network.Submitter, factoryAddr common.Address, opts ...Option) *Coordinator {
	c := &Coordinator{
		simulator:      sim,
		submitter:      sub,
		factory:        factoryAddr,
		logger:         zap.NewNop(),
		confirmTimeout: DefaultConfirmTimeout,
		grace:          DefaultGracePeriod,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the phase of the most recent run, or Idle if none started.
func (c *Coordinator) State() State {
	c.mu.Lock()
	run := c.active
	c.mu.Unlock()
	if run == nil {
		return Idle
	}
	return run.State()
}

// Current returns the most recent run, or nil.
func (c *Coordinator) Current() *Run {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// SubmitForm validates form and, when valid, submits it. A validation
// failure returns the *shares.ValidationError and leaves the coordinator
// Idle; nothing is sent to the chain.
func (c *Coordinator) SubmitForm(ctx context.Context, form *shares.Form, account common.Address, onSuccess func()) (*Run, error) {
	run, err := c.begin(Validating)
	if err != nil {
		return nil, err
	}
	req, err := form.Request(c.validator)
	if err != nil {
		c.transition(run, Idle)
		return run, err
	}
	return run, c.execute(ctx, run, req, account, form, onSuccess)
}

// Submit runs the two-phase transaction for req on behalf of account. On
// success it resets reset and calls onSuccess once. On failure the returned
// error is a *Failure and reset is left alone.
func (c *Coordinator) Submit(ctx context.Context, req *shares.CreationRequest, account common.Address, reset Resetter, onSuccess func()) (*Run, error) {
	run, err := c.begin(Simulating)
	if err != nil {
		return nil, err
	}
	return run, c.execute(ctx, run, req, account, reset, onSuccess)
}

func (c *Coordinator) begin(initial State) (*Run, error) {
	c.mu.Lock()
	if c.active != nil && !c.active.State().Terminal() {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	run := &Run{ID: RunID(uuid.NewString()), state: initial}
	c.active = run
	c.mu.Unlock()

	c.logger.Debug("submission started", zap.String("run", string(run.ID)), zap.Stringer("state", initial))
	c.notify(run.ID, initial)
	return run, nil
}

func (c *Coordinator) execute(ctx context.Context, run *Run, req *shares.CreationRequest, account common.Address, reset Resetter, onSuccess func()) error {
	if run.State() != Simulating {
		c.transition(run, Simulating)
	}

	data, err := factory.EncodeCreateInstantWallet(req, c.decimals)
	if err != nil {
		return c.fail(run, err)
	}
	prepared, err := c.simulator.Simulate(ctx, network.Call{
		From:   account,
		To:     c.factory,
		Method: factory.MethodCreateInstantWallet,
		Data:   data,
	})
	if err != nil {
		return c.fail(run, err)
	}

	c.transition(run, AwaitingSignature)
	hash, err := c.submitter.Submit(ctx, prepared)
	if err != nil {
		return c.fail(run, err)
	}
	run.mu.Lock()
	run.hash = hash
	run.mu.Unlock()
	c.logger.Info("transaction submitted", zap.String("run", string(run.ID)), zap.String("tx", hash.Hex()))

	c.transition(run, AwaitingConfirmation)
	receipt, err := c.submitter.AwaitConfirmation(ctx, hash, c.confirmTimeout)
	if err != nil {
		return c.fail(run, err)
	}
	if receipt == nil || receipt.Status != types.ReceiptStatusSuccessful {
		return c.fail(run, fmt.Errorf("%w: tx %s", network.ErrReverted, hash.Hex()))
	}

	// Confirmed on chain; a cancelled context only shortens the pause.
	if c.grace > 0 {
		t := time.NewTimer(c.grace)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
		}
	}

	c.transition(run, Succeeded)
	if reset != nil {
		reset.Reset()
	}
	if onSuccess != nil {
		onSuccess()
	}
	return nil
}

func (c *Coordinator) fail(run *Run, err error) error {
	f := ClassifyFailure(err)
	run.mu.Lock()
	run.failure = f
	run.mu.Unlock()

	c.logger.Warn("submission failed",
		zap.String("run", string(run.ID)),
		zap.Stringer("kind", f.Kind),
		zap.Error(err),
	)
	c.transition(run, Failed)
	return f
}

func (c *Coordinator) transition(run *Run, s State) {
	run.mu.Lock()
	prev := run.state
	run.state = s
	run.mu.Unlock()

	c.logger.Debug("submission state",
		zap.String("run", string(run.ID)),
		zap.Stringer("from", prev),
		zap.Stringer("to", s),
	)
	c.notify(run.ID, s)
}

func (c *Coordinator) notify(id RunID, s State) {
	if c.observer != nil {
		c.observer(id, s)
	}
}
