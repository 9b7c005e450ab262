package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luxfi/parity/log"
	"github.com/luxfi/parity/merkle"
	"github.com/luxfi/parity/utils/wrappers"
)

// newShutdownCmd drives the network's graceful-shutdown path: a
// best-effort journal flush followed by releasing the table. Flush
// failures are logged and accumulated rather than aborting the release,
// matching the source's graceful_shutdown contract (spec §7, "fatal"
// errors aside).
func newShutdownCmd(opts *rootOptions, logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "shutdown",
		Short: "Flush the Merkle journal and release the network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := buildTable(opts, logger)
			if err != nil {
				return err
			}

			var errs wrappers.Errs
			tree, berr := merkle.Build(tbl)
			if berr != nil {
				errs.Add(berr)
				logger.Warn("shutdown: journal build failed", zap.Error(berr))
			} else if werr := merkle.ExportJournal(cmd.OutOrStdout(), tree); werr != nil {
				errs.Add(werr)
				logger.Warn("shutdown: journal flush failed", zap.Error(werr))
			}

			tbl.Shutdown()
			return errs.Err()
		},
	}
}
