package creation

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
)

// userRejectedCode is the EIP-1193 "user rejected request" error code.
const userRejectedCode = 4001

// cancelPhrases are matched against the lowercased error text. The list is
// heuristic; signers word rejections differently.
var cancelPhrases = []string{
	"user rejected",
	"user denied",
	"rejected",
	"denied transaction",
	"user cancelled",
}

// ClassifyFailure maps any error from a run into a Failure. Nil yields nil.
func ClassifyFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	if isUserRejection(err) {
		return &Failure{Kind: UserCancelled, Message: cancelledMessage}
	}
	msg := err.Error()
	if strings.TrimSpace(msg) == "" {
		msg = fallbackMessage
	}
	return &Failure{Kind: TransactionFailed, Message: msg}
}

func isUserRejection(err error) bool {
	var coded rpc.Error
	if errors.As(err, &coded) && coded.ErrorCode() == userRejectedCode {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, p := range cancelPhrases {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
