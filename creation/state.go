package creation

// State is the phase of a single submission run.
type State int

const (
	Idle State = iota
	Validating
	Simulating
	AwaitingSignature
	AwaitingConfirmation
	Succeeded
	Failed
)

var stateNames = [...]string{
	Idle:                 "idle",
	Validating:           "validating",
	Simulating:           "simulating",
	AwaitingSignature:    "awaiting_signature",
	AwaitingConfirmation: "awaiting_confirmation",
	Succeeded:            "succeeded",
	Failed:               "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether s ends a run. Idle counts as terminal because no
// run is in flight.
func (s State) Terminal() bool {
	switch s {
	case Idle, Succeeded, Failed:
		return true
	}
	return false
}

// FailureKind categorizes a failed run.
type FailureKind int

const (
	TransactionFailed FailureKind = iota
	UserCancelled
)

func (k FailureKind) String() string {
	if k == UserCancelled {
		return "user_cancelled"
	}
	return "transaction_failed"
}
