package wallets

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bitfsorg/instantwallet-go/factory"
	"github.com/bitfsorg/instantwallet-go/network"
	"github.com/bitfsorg/instantwallet-go/shares"
)

const defaultLookupLimit = 8

// Reader serves the read-only wallet views. Every call goes to the chain;
// nothing is cached.
type Reader struct {
	caller  network.ContractCaller
	factory *factory.Factory
	logger  *zap.Logger
	limit   int
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithReaderLogger sets the logger for degraded lookups.
func WithReaderLogger(l *zap.Logger) ReaderOption {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithLookupLimit bounds concurrent shared-wallet name lookups.
func WithLookupLimit(n int) ReaderOption {
	return func(r *Reader) {
		if n > 0 {
			r.limit = n
		}
	}
}

// NewReader returns a Reader for the factory at factoryAddr.
func NewReader(caller network.ContractCaller, factoryAddr common.Address, opts ...ReaderOption) *Reader {
	r := &Reader{
		caller:  caller,
		factory: factory.New(caller, factoryAddr),
		logger:  zap.NewNop(),
		limit:   defaultLookupLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns the wallets the account created followed by the wallets it
// co-owns. A shared wallet whose name cannot be read is listed as Unknown.
func (r *Reader) List(ctx context.Context, account common.Address) ([]Wallet, error) {
	if account == (common.Address{}) {
		return nil, ErrNoAccount
	}
	created, err := r.factory.UserWallets(ctx, account)
	if err != nil {
		return nil, err
	}
	sharedAddrs, err := r.factory.SharedWallets(ctx, account)
	if err != nil {
		return nil, err
	}

	shared := make([]Wallet, len(sharedAddrs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	for i, addr := range sharedAddrs {
		g.Go(func() error {
			shared[i] = Wallet{Name: r.sharedName(gctx, account, addr), Address: addr, Type: SharedWalletType, Shared: true}
			return nil
		})
	}
	_ = g.Wait() // lookups never fail the list
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]Wallet, 0, len(created)+len(shared))
	for _, w := range created {
		out = append(out, Wallet{Name: w.Name, Address: w.Address, Type: w.Kind})
	}
	return append(out, shared...), nil
}

func (r *Reader) sharedName(ctx context.Context, account, addr common.Address) string {
	d, err := factory.NewInstantWallet(r.caller, addr).Wallet(ctx, account)
	if err != nil {
		r.logger.Warn("shared wallet lookup failed", zap.String("wallet", addr.Hex()), zap.Error(err))
		return UnknownName
	}
	if d.Name == "" {
		return UnknownName
	}
	return d.Name
}

// Count returns how many wallets the account created.
func (r *Reader) Count(ctx context.Context, account common.Address) (*big.Int, error) {
	return r.factory.UserWalletsCount(ctx, account)
}

// Details returns the wallet's name, status, owners and total received. Each
// owner's entitlement is their proportional portion of the total.
func (r *Reader) Details(ctx context.Context, account, wallet common.Address) (*Detail, error) {
	if wallet == (common.Address{}) {
		return nil, ErrNoWallet
	}
	raw, err := factory.NewInstantWallet(r.caller, wallet).Wallet(ctx, account)
	if err != nil {
		return nil, err
	}

	d := &Detail{
		Address:       wallet,
		Name:          raw.Name,
		Stopped:       raw.Stopped,
		TotalReceived: raw.Total,
		Owners:        make([]Owner, len(raw.Owners)),
	}
	holdings := make([]shares.Holding, len(raw.Owners))
	for i, addr := range raw.Owners {
		d.Owners[i] = Owner{Address: addr, Percent: raw.Percents[i], Entitlement: new(big.Int)}
		holdings[i] = shares.Holding{Address: addr, Share: raw.Percents[i]}
	}

	dists, err := shares.SplitAmount(raw.Total, holdings)
	switch {
	case err == nil:
		for i, dist := range dists {
			d.Owners[i].Entitlement = dist.Amount
		}
	case errors.Is(err, shares.ErrNoEntries), errors.Is(err, shares.ErrZeroTotalShares):
		// nothing to split
	default:
		return nil, err
	}
	return d, nil
}

// Transactions returns the wallet's transfers, incoming only unless
// includeOut is set.
func (r *Reader) Transactions(ctx context.Context, account, wallet common.Address, includeOut bool) ([]Transaction, error) {
	if wallet == (common.Address{}) {
		return nil, ErrNoWallet
	}
	raw, err := factory.NewInstantWallet(r.caller, wallet).Transactions(ctx, account)
	if err != nil {
		return nil, err
	}
	txs := make([]Transaction, len(raw))
	for i, t := range raw {
		txs[i] = Transaction{From: t.From, To: t.To, Side: ParseSide(t.Side), Amount: t.Amount}
	}
	return FilterTransactions(txs, includeOut), nil
}
