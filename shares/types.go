package shares

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Field selects which half of a ShareEntry UpdateEntry replaces.
type Field int

const (
	FieldAddress Field = iota
	FieldShare
)

// ShareEntry is one row of the creation form. Both fields hold raw user
// input; nothing is checked until Validate runs.
type ShareEntry struct {
	OwnerAddress string `json:"address"`
	SharePercent string `json:"share"`
}

// CreationRequest is the validated input for one wallet creation. It is
// produced only by a successful validation and is never persisted.
type CreationRequest struct {
	Name   string
	Owners []common.Address
	Shares []float64 // percentages, same order as Owners
}

// Holding is an owner's recorded share in an existing wallet.
type Holding struct {
	Address common.Address
	Share   *big.Int
}

// Distribution is one owner's portion of an amount split by share.
type Distribution struct {
	Address common.Address
	Amount  *big.Int
}
