package shares

import "math/big"

// SplitAmount calculates each holder's portion of total in proportion to
// their share. The last holder gets the remainder to avoid integer division
// precision loss. A zero total yields zero portions.
func SplitAmount(total *big.Int, holdings []Holding) ([]Distribution, error) {
	if len(holdings) == 0 {
		return nil, ErrNoEntries
	}

	totalShares := new(big.Int)
	for _, h := range holdings {
		if h.Share != nil {
			totalShares.Add(totalShares, h.Share)
		}
	}
	if totalShares.Sign() == 0 {
		return nil, ErrZeroTotalShares
	}
	if total == nil {
		total = new(big.Int)
	}

	distributions := make([]Distribution, len(holdings))
	distributed := new(big.Int)

	for i, h := range holdings {
		distributions[i].Address = h.Address
		if i == len(holdings)-1 {
			// Last holder gets remainder
			distributions[i].Amount = new(big.Int).Sub(total, distributed)
			continue
		}
		amount := new(big.Int)
		if h.Share != nil {
			amount.Mul(total, h.Share)
			amount.Quo(amount, totalShares)
		}
		distributions[i].Amount = amount
		distributed.Add(distributed, amount)
	}

	return distributions, nil
}
