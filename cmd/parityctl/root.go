package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luxfi/parity/log"
	"github.com/luxfi/parity/overlay"
	"github.com/luxfi/parity/vector"
)

func logField(key string, value int64) zap.Field {
	return zap.Int64(key, value)
}

// usageErr marks an error as a CLI usage error (exit code 1) rather
// than a runtime error (exit code 2).
type usageErr struct{ err error }

func (u usageErr) Error() string { return u.err.Error() }
func (u usageErr) Unwrap() error { return u.err }

func usageErrorf(format string, args ...interface{}) error {
	return usageErr{fmt.Errorf(format, args...)}
}

func exitCodeFor(err error) int {
	var u usageErr
	if errors.As(err, &u) {
		return 1
	}
	return 2
}

type rootOptions struct {
	nodes int
	seed  int64
	dim   int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{dim: vector.Dim}
	logger := log.NewStderr("info")

	cmd := &cobra.Command{
		Use:           "parityctl",
		Short:         "Operate a fractal-density parity overlay network",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().IntVar(&opts.nodes, "nodes", 8, "total nodes in the network")
	cmd.PersistentFlags().Int64Var(&opts.seed, "seed", 0, "deterministic PRNG seed (0 selects one and logs it)")

	cmd.AddCommand(
		newInjectVecCmd(opts, logger),
		newFindNearestCmd(opts, logger),
		newVectorStatsCmd(opts, logger),
		newEvolveAnnCmd(opts, logger),
		newAnnounceCmd(opts, logger),
		newRecoveryCmd(opts, logger),
		newDistributeCmd(opts, logger),
		newCheckMemCmd(),
		newDetectLeaksCmd(),
		newShutdownCmd(opts, logger),
	)

	// Bad flags and wrong argument counts are usage errors (exit code 1).
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageErr{err} })
	for _, sub := range cmd.Commands() {
		if validate := sub.Args; validate != nil {
			sub.Args = func(c *cobra.Command, args []string) error {
				if err := validate(c, args); err != nil {
					return usageErr{err}
				}
				return nil
			}
		}
	}
	return cmd
}

// buildTable constructs the deterministic network every verb operates
// against. Seed 0 is treated as "unset": a fresh seed is drawn and
// logged so the invocation's randomness stays reproducible after the
// fact.
func buildTable(opts *rootOptions, logger log.Logger) (*overlay.Table, error) {
	if opts.nodes <= 0 {
		return nil, usageErrorf("--nodes must be positive, got %d", opts.nodes)
	}
	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Info("no seed supplied, selected one", logField("seed", seed))
	}
	tbl, err := overlay.NewTable(opts.nodes, opts.dim, seed)
	if err != nil {
		return nil, err
	}
	fanout := opts.nodes - 1
	if fanout > overlay.MaxNeighbors {
		fanout = overlay.MaxNeighbors
	}
	for i := 0; fanout > 0 && i < opts.nodes; i++ {
		if ferr := tbl.ConnectNeighbors(i, fanout); ferr != nil {
			return nil, ferr
		}
	}
	return tbl, nil
}

func parseNodeID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, usageErrorf("invalid node id %q: %v", arg, err)
	}
	return id, nil
}

