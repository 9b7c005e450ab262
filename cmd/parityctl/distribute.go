package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/parity/config"
	"github.com/luxfi/parity/log"
	"github.com/luxfi/parity/placement"
)

// newDistributeCmd exposes the placement engine (spec §4.E) directly,
// alongside recovery: distribute picks a fresh replica set for a tag
// from scratch, where recovery re-replicates among a tag's surviving
// holders.
func newDistributeCmd(opts *rootOptions, logger log.Logger) *cobra.Command {
	var minReplicas int
	cmd := &cobra.Command{
		Use:   "distribute <tag>",
		Short: "Place a parity tag's replica set across the network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := args[0]

			tbl, err := buildTable(opts, logger)
			if err != nil {
				return err
			}
			defer tbl.Shutdown()

			policy := config.DefaultPlacementPolicy()
			if minReplicas > 0 {
				policy.MinReplicas = minReplicas
				if policy.MaxReplicas < minReplicas {
					policy.MaxReplicas = minReplicas
				}
			}

			selected, insufficient, err := placement.Distribute(tbl, tag, policy, placement.DefaultTopologyOracle{}, gossipAnnouncer{tbl: tbl})
			if err != nil {
				return err
			}
			if insufficient {
				logger.Warn("min_replicas exceeds node count, selected every node")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "distributed tag %q onto nodes %v\n", tag, selected)
			return nil
		},
	}
	cmd.Flags().IntVar(&minReplicas, "min-replicas", 0, "override the default policy's min_replicas")
	return cmd
}
