package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/luxfi/parity/log"
	"github.com/luxfi/parity/vector"
)

func newInjectVecCmd(opts *rootOptions, logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "injectvec <id> <v0..v7>",
		Short: "Replace a node's vector; its density is reset to 1.0",
		Args:  cobra.ExactArgs(1 + vector.Dim),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNodeID(args[0])
			if err != nil {
				return err
			}
			v := make([]float64, vector.Dim)
			for i, raw := range args[1:] {
				f, perr := strconv.ParseFloat(raw, 64)
				if perr != nil {
					return usageErrorf("invalid vector component %q: %v", raw, perr)
				}
				v[i] = f
			}

			tbl, err := buildTable(opts, logger)
			if err != nil {
				return err
			}
			defer tbl.Shutdown()

			if err := tbl.InjectVector(id, v); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "injected vector into node %d\n", id)
			return nil
		},
	}
}
