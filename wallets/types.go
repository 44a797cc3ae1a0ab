package wallets

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// SharedWalletType is reported for wallets the account co-owns but did not create.
const SharedWalletType = "Instant"

// UnknownName stands in for a shared wallet whose name could not be read.
const UnknownName = "Unknown"

// Wallet is one entry of the account's wallet list.
type Wallet struct {
	Name    string         `json:"name"`
	Address common.Address `json:"address"`
	Type    string         `json:"type"`
	Shared  bool           `json:"shared"`
}

// Owner is one co-owner of a wallet with their share and their portion of
// everything the wallet has received.
type Owner struct {
	Address     common.Address `json:"address"`
	Percent     *big.Int       `json:"percent"`
	Entitlement *big.Int       `json:"entitlement"`
}

// Detail is the full view of one wallet.
type Detail struct {
	Address       common.Address `json:"address"`
	Name          string         `json:"name"`
	Owners        []Owner        `json:"owners"`
	Stopped       bool           `json:"stopped"`
	TotalReceived *big.Int       `json:"total_received"`
}

// Status returns "Stopped" or "Active".
func (d *Detail) Status() string {
	if d.Stopped {
		return "Stopped"
	}
	return "Active"
}

// Side is the direction of a transfer relative to the wallet.
type Side string

const (
	SideIn  Side = "in"
	SideOut Side = "out"
)

// ParseSide normalizes the contract's side label. Case and surrounding
// space are ignored; anything other than "in" or "out" is returned as is.
func ParseSide(s string) Side {
	return Side(strings.ToLower(strings.TrimSpace(s)))
}

// Transaction is one transfer recorded by a wallet.
type Transaction struct {
	From   common.Address `json:"from"`
	To     common.Address `json:"to"`
	Side   Side           `json:"side"`
	Amount *big.Int       `json:"amount"`
}

// FilterTransactions keeps incoming transfers, plus outgoing ones when
// includeOut is set. Order is preserved.
func FilterTransactions(txs []Transaction, includeOut bool) []Transaction {
	if includeOut {
		return txs
	}
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Side == SideIn {
			out = append(out, tx)
		}
	}
	return out
}

var weiPerEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// FormatEther renders a wei amount in whole units of the native coin,
// trimming trailing zeros ("1.5", "0").
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	s := new(big.Rat).SetFrac(wei, weiPerEther).FloatString(18)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
