package shares

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bitfsorg/instantwallet-go/network"
)

const (
	// FullShare is the total every wallet's shares must reach.
	FullShare = 100.0

	// SumTolerance is the allowed deviation of the share total from FullShare.
	SumTolerance = 0.01
)

// decimalShare matches plain decimal notation. strconv.ParseFloat also
// accepts hex floats, digit separators and "Inf", none of which are shares.
var decimalShare = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Validator checks creation input. IsValidAddress is the address format
// check; when nil, network.IsValidAddress is used.
type Validator struct {
	IsValidAddress func(string) bool
}

// Validate checks name and entries with the default address check.
func Validate(name string, entries []ShareEntry) error {
	return Validator{}.Validate(name, entries)
}

// Validate returns nil or the first applicable *ValidationError. Checks run
// in a fixed order so the reported problem is deterministic: name, entry
// count, each entry's address and share in turn, duplicates, then the total.
func (v Validator) Validate(name string, entries []ShareEntry) error {
	isValid := v.IsValidAddress
	if isValid == nil {
		isValid = network.IsValidAddress
	}

	if strings.TrimSpace(name) == "" {
		return reject(ErrNameRequired, -1, "Wallet name is required")
	}
	if len(entries) == 0 {
		return reject(ErrNoEntries, -1, "At least one address is required")
	}

	for i, e := range entries {
		addr := strings.TrimSpace(e.OwnerAddress)
		if addr == "" {
			return reject(ErrAddressRequired, i, fmt.Sprintf("Address %d is required", i+1))
		}
		if !isValid(addr) {
			return reject(ErrInvalidAddress, i, fmt.Sprintf("Address %d is not a valid address", i+1))
		}
		if strings.TrimSpace(e.SharePercent) == "" {
			return reject(ErrShareRequired, i, fmt.Sprintf("Share %d is required", i+1))
		}
		if _, ok := parseShare(e.SharePercent); !ok {
			return reject(ErrShareOutOfRange, i, fmt.Sprintf("Share %d must be a number between 0 and 100", i+1))
		}
	}

	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.OwnerAddress))
		if _, dup := seen[key]; dup {
			return reject(ErrDuplicateAddress, i, "Duplicate addresses are not allowed")
		}
		seen[key] = struct{}{}
	}

	total := Total(entries)
	if math.Abs(total-FullShare) > SumTolerance {
		return reject(ErrShareSum, -1, fmt.Sprintf("Shares must sum to 100%% (currently %.2f%%)", total))
	}
	return nil
}

// NewRequest validates the input and, if it passes, builds the request the
// submission coordinator consumes.
func (v Validator) NewRequest(name string, entries []ShareEntry) (*CreationRequest, error) {
	if err := v.Validate(name, entries); err != nil {
		return nil, err
	}
	req := &CreationRequest{
		Name:   strings.TrimSpace(name),
		Owners: make([]common.Address, len(entries)),
		Shares: make([]float64, len(entries)),
	}
	for i, e := range entries {
		req.Owners[i] = common.HexToAddress(strings.TrimSpace(e.OwnerAddress))
		req.Shares[i], _ = parseShare(e.SharePercent)
	}
	return req, nil
}

// Total sums the shares that parse as numbers; blank or malformed values
// count as zero. It backs both the sum check and live total displays.
func Total(entries []ShareEntry) float64 {
	var total float64
	for _, e := range entries {
		if f, ok := parseDecimal(e.SharePercent); ok {
			total += f
		}
	}
	return total
}

// IsBalanced reports whether the entries currently add up to 100%.
func IsBalanced(entries []ShareEntry) bool {
	return math.Abs(Total(entries)-FullShare) <= SumTolerance
}

// parseShare parses a share and reports whether it lies in (0, 100].
func parseShare(s string) (float64, bool) {
	f, ok := parseDecimal(s)
	if !ok || f <= 0 || f > FullShare {
		return 0, false
	}
	return f, true
}

// parseDecimal parses a finite number written in decimal notation.
func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !decimalShare.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func reject(reason error, index int, msg string) *ValidationError {
	return &ValidationError{Reason: reason, Index: index, Message: msg}
}
