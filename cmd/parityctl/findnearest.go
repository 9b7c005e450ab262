package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/luxfi/parity/ann"
	"github.com/luxfi/parity/log"
)

func newFindNearestCmd(opts *rootOptions, logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "findnearest <id> <k>",
		Short: "Print the k nearest neighbors to a node by combined score",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNodeID(args[0])
			if err != nil {
				return err
			}
			k, err := strconv.Atoi(args[1])
			if err != nil {
				return usageErrorf("invalid k %q: %v", args[1], err)
			}

			tbl, err := buildTable(opts, logger)
			if err != nil {
				return err
			}
			defer tbl.Shutdown()

			results, truncated := ann.FindKNearest(tbl, id, k)
			if truncated {
				logger.Warn("k exceeds candidate count, returning full set")
			}
			for i, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "#%d -> Node %d | Similarity: %.6f | Score: %.6f\n",
					i, r.ID, r.Similarity, r.CombinedScore)
			}
			return nil
		},
	}
}
