package shares

import "errors"

var (
	// ErrNameRequired indicates the wallet name is empty or whitespace.
	ErrNameRequired = errors.New("shares: wallet name required")

	// ErrNoEntries indicates there are no owner entries.
	ErrNoEntries = errors.New("shares: no owner entries")

	// ErrAddressRequired indicates an entry has no owner address.
	ErrAddressRequired = errors.New("shares: address required")

	// ErrInvalidAddress indicates an owner address fails the format check.
	ErrInvalidAddress = errors.New("shares: invalid address")

	// ErrShareRequired indicates an entry has no share value.
	ErrShareRequired = errors.New("shares: share required")

	// ErrShareOutOfRange indicates a share is not a number in (0, 100].
	ErrShareOutOfRange = errors.New("shares: share out of range")

	// ErrDuplicateAddress indicates two entries name the same owner.
	ErrDuplicateAddress = errors.New("shares: duplicate address")

	// ErrShareSum indicates the shares do not add up to 100%.
	ErrShareSum = errors.New("shares: shares do not sum to 100")

	// ErrZeroTotalShares indicates the holdings being split carry no shares.
	ErrZeroTotalShares = errors.New("shares: zero total shares")
)

// ValidationError is a rejection produced by Validate. Message is the
// user-facing text; Index is the zero-based entry the rejection refers to,
// or -1 for form-level problems.
type ValidationError struct {
	Reason  error
	Index   int
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Reason }
