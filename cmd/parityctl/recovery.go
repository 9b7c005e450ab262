package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/parity/config"
	"github.com/luxfi/parity/gossip"
	"github.com/luxfi/parity/log"
	"github.com/luxfi/parity/overlay"
	"github.com/luxfi/parity/placement"
	"github.com/luxfi/parity/recovery"
)

// gossipAnnouncer routes placement's and recovery's post-assignment
// announce call through the same in-process gossip/transport path
// announce uses, so a recovered or newly-placed node's knowledge map
// gets the same treatment as any other announcement.
type gossipAnnouncer struct{ tbl *overlay.Table }

func (a gossipAnnouncer) Announce(nodeID int) error {
	return gossip.NewService(a.tbl, localTransport{tbl: a.tbl}, 1).Announce(nodeID)
}

func newRecoveryCmd(opts *rootOptions, logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "recovery <tag>",
		Short: "Re-replicate a parity tag among its surviving holders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := args[0]

			tbl, err := buildTable(opts, logger)
			if err != nil {
				return err
			}
			defer tbl.Shutdown()

			policy := config.DefaultPlacementPolicy()
			targets, err := recovery.Recover(tbl, tag, policy, placement.DefaultTopologyOracle{}, gossipAnnouncer{tbl: tbl})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recovered tag %q onto nodes %v\n", tag, targets)
			return nil
		},
	}
}
