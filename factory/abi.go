package factory

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3"

	"github.com/bitfsorg/instantwallet-go/shares"
)

// MethodCreateInstantWallet names the state-changing factory call.
const MethodCreateInstantWallet = "createInstantWallet"

// MaxShareDecimals bounds the share scale so scaled values stay exact in a float64.
const MaxShareDecimals = 6

// Factory contract.
var (
	funcCreateInstantWallet = w3.MustNewFunc(
		"createInstantWallet(address[] owners, uint256[] percents, string name)", "",
	)
	funcGetUserWallets = w3.MustNewFunc(
		"getUserWallets()", "(string name, address wallet, string kind)[] wallets",
	)
	funcGetSharedWallets = w3.MustNewFunc(
		"getSharedWallets()", "address[] wallets",
	)
	funcGetUserWalletsCount = w3.MustNewFunc(
		"getUserWalletsCount()", "uint256 count",
	)
)

// Instant wallet contract.
var (
	funcGetWallet = w3.MustNewFunc(
		"getWallet()", "(string name, address[] owners, uint256[] percents, bool stopped, uint256 total) wallet",
	)
	funcGetTransactions = w3.MustNewFunc(
		"getTransactions()", "(address from, address to, string side, uint256 amount)[] txs",
	)
)

// Tuple layouts. Field names follow the ABI component names.
type walletTuple struct {
	Name   string
	Wallet common.Address
	Kind   string
}

type detailTuple struct {
	Name     string
	Owners   []common.Address
	Percents []*big.Int
	Stopped  bool
	Total    *big.Int
}

type transferTuple struct {
	From   common.Address
	To     common.Address
	Side   string
	Amount *big.Int
}

// EncodeCreateInstantWallet builds the calldata for createInstantWallet.
// Shares are sent as uint256 values scaled by 10^decimals.
func EncodeCreateInstantWallet(req *shares.CreationRequest, decimals uint8) ([]byte, error) {
	if len(req.Owners) != len(req.Shares) {
		return nil, fmt.Errorf("%w: %d owners, %d shares", ErrMismatchedRequest, len(req.Owners), len(req.Shares))
	}
	percents := make([]*big.Int, len(req.Shares))
	for i, s := range req.Shares {
		p, err := ScaleShare(s, decimals)
		if err != nil {
			return nil, fmt.Errorf("share %d: %w", i+1, err)
		}
		percents[i] = p
	}
	return funcCreateInstantWallet.EncodeArgs(req.Owners, percents, req.Name)
}

// ScaleShare converts a percentage to its on-chain integer form. The value
// must be exactly representable at the given number of decimals.
func ScaleShare(share float64, decimals uint8) (*big.Int, error) {
	if decimals > MaxShareDecimals {
		return nil, fmt.Errorf("%w: %d decimals", ErrShareNotRepresentable, decimals)
	}
	scaled := share * math.Pow10(int(decimals))
	rounded := math.Round(scaled)
	if math.Abs(scaled-rounded) > 1e-6 || rounded <= 0 {
		return nil, fmt.Errorf("%w: %g at %d decimals", ErrShareNotRepresentable, share, decimals)
	}
	return big.NewInt(int64(rounded)), nil
}

// FormatShare renders an on-chain share with the given decimals, trimming
// trailing zeros ("60", "33.5").
func FormatShare(v *big.Int, decimals uint8) string {
	if v == nil {
		return "0"
	}
	if decimals == 0 {
		return v.String()
	}
	f := new(big.Rat).SetFrac(v, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	s := f.FloatString(int(decimals))
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
