package wallets

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/instantwallet-go/network"
)

var (
	fnUserWallets  = w3.MustNewFunc("getUserWallets()", "(string name, address wallet, string kind)[] wallets")
	fnSharedWallet = w3.MustNewFunc("getSharedWallets()", "address[] wallets")
	fnCount        = w3.MustNewFunc("getUserWalletsCount()", "uint256 count")
	fnGetWallet    = w3.MustNewFunc("getWallet()", "(string name, address[] owners, uint256[] percents, bool stopped, uint256 total) wallet")
	fnTransactions = w3.MustNewFunc("getTransactions()", "(address from, address to, string side, uint256 amount)[] txs")
)

type userWallet struct {
	Name   string
	Wallet common.Address
	Kind   string
}

type walletState struct {
	Name     string
	Owners   []common.Address
	Percents []*big.Int
	Stopped  bool
	Total    *big.Int
}

type transfer struct {
	From   common.Address
	To     common.Address
	Side   string
	Amount *big.Int
}

var (
	factoryAddr = common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	account     = common.HexToAddress("0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359")
	partner     = common.HexToAddress("0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB")
	created1    = common.HexToAddress("0x1000000000000000000000000000000000000001")
	shared1     = common.HexToAddress("0x2000000000000000000000000000000000000002")
	shared2     = common.HexToAddress("0x3000000000000000000000000000000000000003")
)

type callKey struct {
	to  common.Address
	sel [4]byte
}

// chainStub answers contract calls keyed by target address and selector.
type chainStub struct {
	mu      sync.Mutex
	replies map[callKey][]byte
	calls   int
}

func newChainStub() *chainStub {
	return &chainStub{replies: make(map[callKey][]byte)}
}

func (s *chainStub) on(t *testing.T, to common.Address, fn *w3.Func, returns ...any) {
	t.Helper()
	out, err := fn.Returns.Pack(returns...)
	require.NoError(t, err)
	s.replies[callKey{to, fn.Selector}] = out
}

func (s *chainStub) backend(t *testing.T) *network.MockBackend {
	return &network.MockBackend{
		CallContractFn: func(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.calls++
			assert.Equal(t, account, msg.From, "reads must carry the account")
			var sel [4]byte
			copy(sel[:], msg.Data)
			out, ok := s.replies[callKey{*msg.To, sel}]
			if !ok {
				return nil, errors.New("execution reverted")
			}
			return out, nil
		},
	}
}

func TestListCombinesCreatedAndShared(t *testing.T) {
	stub := newChainStub()
	stub.on(t, factoryAddr, fnUserWallets, []userWallet{{Name: "Team Fund", Wallet: created1, Kind: "Instant"}})
	stub.on(t, factoryAddr, fnSharedWallet, []common.Address{shared1, shared2})
	stub.on(t, shared1, fnGetWallet, walletState{
		Name:     "Rent",
		Owners:   []common.Address{partner, account},
		Percents: []*big.Int{big.NewInt(50), big.NewInt(50)},
		Total:    big.NewInt(0),
	})
	// shared2 has no reply: its lookup fails.

	r := NewReader(stub.backend(t), factoryAddr, WithLookupLimit(1))
	got, err := r.List(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, []Wallet{
		{Name: "Team Fund", Address: created1, Type: "Instant", Shared: false},
		{Name: "Rent", Address: shared1, Type: SharedWalletType, Shared: true},
		{Name: UnknownName, Address: shared2, Type: SharedWalletType, Shared: true},
	}, got)
}

func TestListFailsWhenFactoryFails(t *testing.T) {
	stub := newChainStub()
	stub.on(t, factoryAddr, fnUserWallets, []userWallet{})

	r := NewReader(stub.backend(t), factoryAddr)
	_, err := r.List(context.Background(), account)
	assert.Error(t, err)

	_, err = r.List(context.Background(), common.Address{})
	assert.ErrorIs(t, err, ErrNoAccount)
}

func TestListStopsOnCancelledContext(t *testing.T) {
	stub := newChainStub()
	stub.on(t, factoryAddr, fnUserWallets, []userWallet{{Name: "Team Fund", Wallet: created1, Kind: "Instant"}})
	stub.on(t, factoryAddr, fnSharedWallet, []common.Address{shared1, shared2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := NewReader(stub.backend(t), factoryAddr).List(ctx, account)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
}

func TestCount(t *testing.T) {
	stub := newChainStub()
	stub.on(t, factoryAddr, fnCount, big.NewInt(4))

	n, err := NewReader(stub.backend(t), factoryAddr).Count(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n.Int64())
}

func TestDetailsComputesEntitlements(t *testing.T) {
	stub := newChainStub()
	stub.on(t, shared1, fnGetWallet, walletState{
		Name:     "Team Fund",
		Owners:   []common.Address{account, partner},
		Percents: []*big.Int{big.NewInt(60), big.NewInt(40)},
		Stopped:  true,
		Total:    new(big.Int).Mul(big.NewInt(5), big.NewInt(1e18)),
	})

	d, err := NewReader(stub.backend(t), factoryAddr).Details(context.Background(), account, shared1)
	require.NoError(t, err)
	assert.Equal(t, "Team Fund", d.Name)
	assert.Equal(t, "Stopped", d.Status())
	assert.Equal(t, "5", FormatEther(d.TotalReceived))
	require.Len(t, d.Owners, 2)
	assert.Equal(t, account, d.Owners[0].Address)
	assert.Equal(t, "3", FormatEther(d.Owners[0].Entitlement))
	assert.Equal(t, "2", FormatEther(d.Owners[1].Entitlement))
	assert.Equal(t, int64(40), d.Owners[1].Percent.Int64())
}

func TestDetailsWithoutShares(t *testing.T) {
	stub := newChainStub()
	stub.on(t, shared1, fnGetWallet, walletState{
		Name:     "Empty",
		Owners:   []common.Address{},
		Percents: []*big.Int{},
		Total:    big.NewInt(7),
	})

	d, err := NewReader(stub.backend(t), factoryAddr).Details(context.Background(), account, shared1)
	require.NoError(t, err)
	assert.Empty(t, d.Owners)
	assert.Equal(t, "Active", d.Status())

	_, err = NewReader(stub.backend(t), factoryAddr).Details(context.Background(), account, common.Address{})
	assert.ErrorIs(t, err, ErrNoWallet)
}

func TestTransactionsFilter(t *testing.T) {
	stub := newChainStub()
	stub.on(t, shared1, fnTransactions, []transfer{
		{From: partner, To: shared1, Side: "IN", Amount: big.NewInt(100)},
		{From: shared1, To: account, Side: "out", Amount: big.NewInt(60)},
		{From: account, To: shared1, Side: " in ", Amount: big.NewInt(5)},
	})
	r := NewReader(stub.backend(t), factoryAddr)

	in, err := r.Transactions(context.Background(), account, shared1, false)
	require.NoError(t, err)
	require.Len(t, in, 2)
	assert.Equal(t, SideIn, in[0].Side)
	assert.Equal(t, int64(5), in[1].Amount.Int64())

	all, err := r.Transactions(context.Background(), account, shared1, true)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, SideOut, all[1].Side)
}

func TestFormatEther(t *testing.T) {
	assert.Equal(t, "0", FormatEther(nil))
	assert.Equal(t, "0", FormatEther(big.NewInt(0)))
	assert.Equal(t, "1.5", FormatEther(big.NewInt(1_500_000_000_000_000_000)))
	assert.Equal(t, "0.000000000000000001", FormatEther(big.NewInt(1)))
	assert.Equal(t, "10", FormatEther(new(big.Int).Mul(big.NewInt(10), big.NewInt(1e18))))
}

func TestRefresherUpdateOnlyOnChange(t *testing.T) {
	fetches := 0
	r := NewRefresher(Params{Account: account}, func(_ context.Context, p Params) (int, error) {
		fetches++
		return int(p.Token), nil
	})

	v, fetched, err := r.Update(context.Background(), Params{Account: account})
	require.NoError(t, err)
	assert.True(t, fetched, "first update loads")
	assert.Equal(t, 0, v)

	_, fetched, _ = r.Update(context.Background(), Params{Account: account})
	assert.False(t, fetched)
	assert.Equal(t, 1, fetches)

	v, fetched, _ = r.Update(context.Background(), r.Params().Bump())
	assert.True(t, fetched)
	assert.Equal(t, 1, v)

	_, fetched, _ = r.Update(context.Background(), Params{Account: partner, Token: 1})
	assert.True(t, fetched)

	_, err = r.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, fetches)
}

func TestRefresherKeepsLastValueOnError(t *testing.T) {
	fail := false
	r := NewRefresher(Params{}, func(context.Context, Params) (string, error) {
		if fail {
			return "", errors.New("node unavailable")
		}
		return "ok", nil
	})

	v, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	fail = true
	v, err = r.Refresh(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "ok", v)

	last, lastErr := r.Value()
	assert.Equal(t, "ok", last)
	assert.Error(t, lastErr)
}

func TestParamsChanged(t *testing.T) {
	p := Params{Account: account, Wallet: shared1}
	assert.False(t, ParamsChanged(p, p))
	assert.True(t, ParamsChanged(p, p.Bump()))
	assert.True(t, ParamsChanged(p, Params{Account: account, Wallet: shared2}))
}

func TestListView(t *testing.T) {
	stub := newChainStub()
	stub.on(t, factoryAddr, fnUserWallets, []userWallet{{Name: "A", Wallet: created1, Kind: "Instant"}})
	stub.on(t, factoryAddr, fnSharedWallet, []common.Address{})

	view := NewReader(stub.backend(t), factoryAddr).ListView(Params{Account: account})
	list, fetched, err := view.Update(context.Background(), Params{Account: account})
	require.NoError(t, err)
	assert.True(t, fetched)
	assert.Len(t, list, 1)
	assert.Equal(t, 2, stub.calls)
}
