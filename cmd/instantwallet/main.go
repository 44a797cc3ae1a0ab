// Command instantwallet creates and inspects instant wallets: contracts that
// split every incoming payment between their owners by fixed percentages.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
