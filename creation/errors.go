package creation

import "errors"

var (
	// ErrSubmissionInFlight is returned when Submit is called while a run is active.
	ErrSubmissionInFlight = errors.New("creation: submission already in flight")

	// ErrUserCancelled matches failures where the account holder declined to sign.
	ErrUserCancelled = errors.New("creation: user cancelled")

	// ErrTransactionFailed matches simulation, broadcast and confirmation failures.
	ErrTransactionFailed = errors.New("creation: transaction failed")
)

const (
	cancelledMessage = "Transaction was rejected. Please try again if you want to create the wallet."
	fallbackMessage  = "Failed to create wallet. Please try again."
)

// Failure is the only error a run hands back to its caller. Message is
// suitable for display; the underlying cause is deliberately not unwrapped.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f *Failure) Error() string { return f.Message }

// Is matches ErrUserCancelled or ErrTransactionFailed by kind.
func (f *Failure) Is(target error) bool {
	switch target {
	case ErrUserCancelled:
		return f.Kind == UserCancelled
	case ErrTransactionFailed:
		return f.Kind == TransactionFailed
	}
	return false
}
