package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/parity/log"
)

func newVectorStatsCmd(opts *rootOptions, logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "vectorstats <id>",
		Short: "Print a node's density, coherence, and vector components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNodeID(args[0])
			if err != nil {
				return err
			}

			tbl, err := buildTable(opts, logger)
			if err != nil {
				return err
			}
			defer tbl.Shutdown()

			n, err := tbl.NodeAt(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Node %d | Density: %.6f | Coherence: %.6f | Vector: %v\n",
				n.ID, n.Density, n.Coherence, n.Vector)
			return nil
		},
	}
}
