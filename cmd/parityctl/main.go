// Command parityctl is the one-verb-per-invocation operator CLI for a
// parity overlay: it builds a deterministic network from --nodes and
// --seed, runs exactly one verb against it, and exits 0 on success, 1 on
// usage error, 2 on runtime error.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCodeFor(err))
	}
}
