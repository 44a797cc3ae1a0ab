package wallets

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Params are the inputs a view depends on. Token is bumped by callers that
// want a refetch without changing anything else, e.g. after a wallet was
// created.
type Params struct {
	Account common.Address
	Wallet  common.Address
	Token   uint64
}

// Bump returns p with the refresh token advanced.
func (p Params) Bump() Params {
	p.Token++
	return p
}

// ParamsChanged reports whether a view keyed on prev must be refetched for next.
func ParamsChanged[P comparable](prev, next P) bool {
	return prev != next
}

// FetchFunc loads a view for the given params.
type FetchFunc[P comparable, T any] func(ctx context.Context, p P) (T, error)

// Refresher holds the last fetched value of a view and refetches it on demand
// or when its params change. It is safe for concurrent use; fetches are
// serialized.
type Refresher[P comparable, T any] struct {
	fetch FetchFunc[P, T]

	mu     sync.Mutex
	params P
	value  T
	err    error
	loaded bool
}

// NewRefresher returns a Refresher for params. Nothing is fetched until
// Refresh or Update is called.
func NewRefresher[P comparable, T any](params P, fetch FetchFunc[P, T]) *Refresher[P, T] {
	return &Refresher[P, T]{params: params, fetch: fetch}
}

// Refresh refetches with the current params.
func (r *Refresher[P, T]) Refresh(ctx context.Context) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// Update switches to p and refetches if p differs from the current params or
// nothing has been loaded yet. The bool reports whether a fetch happened.
func (r *Refresher[P, T]) Update(ctx context.Context, p P) (T, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded && !ParamsChanged(r.params, p) {
		return r.value, false, r.err
	}
	r.params = p
	v, err := r.load(ctx)
	return v, true, err
}

// Value returns the last fetched value and error.
func (r *Refresher[P, T]) Value() (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value, r.err
}

// Params returns the current params.
func (r *Refresher[P, T]) Params() P {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.params
}

func (r *Refresher[P, T]) load(ctx context.Context) (T, error) {
	v, err := r.fetch(ctx, r.params)
	if err != nil {
		// Keep the previous value visible; the error is reported alongside it.
		r.err = err
		r.loaded = true
		return r.value, err
	}
	r.value, r.err, r.loaded = v, nil, true
	return v, nil
}

// ListView returns a Refresher over the account's wallet list.
func (r *Reader) ListView(p Params) *Refresher[Params, []Wallet] {
	return NewRefresher(p, func(ctx context.Context, p Params) ([]Wallet, error) {
		return r.List(ctx, p.Account)
	})
}

// DetailView returns a Refresher over one wallet's details.
func (r *Reader) DetailView(p Params) *Refresher[Params, *Detail] {
	return NewRefresher(p, func(ctx context.Context, p Params) (*Detail, error) {
		return r.Details(ctx, p.Account, p.Wallet)
	})
}
