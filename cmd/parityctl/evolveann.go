package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luxfi/parity/log"
	"github.com/luxfi/parity/vector"
)

// defaultGlobalTarget is the CLI's stand-in for the undefined
// global_query_vector oracle: the normalized all-ones vector, overridable
// with --target.
func defaultGlobalTarget() []float64 {
	v := make([]float64, vector.Dim)
	for i := range v {
		v[i] = 1.0
	}
	vector.Normalize(v)
	return v
}

func newEvolveAnnCmd(opts *rootOptions, logger log.Logger) *cobra.Command {
	var targetRaw string
	cmd := &cobra.Command{
		Use:   "evolveann <id> <rate>",
		Short: "Move a node's vector toward the global target vector, then normalize",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNodeID(args[0])
			if err != nil {
				return err
			}
			rate, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return usageErrorf("invalid rate %q: %v", args[1], err)
			}

			target := defaultGlobalTarget()
			if targetRaw != "" {
				parts := strings.Split(targetRaw, ",")
				if len(parts) != vector.Dim {
					return usageErrorf("--target must have %d comma-separated components, got %d", vector.Dim, len(parts))
				}
				for i, p := range parts {
					f, perr := strconv.ParseFloat(strings.TrimSpace(p), 64)
					if perr != nil {
						return usageErrorf("invalid --target component %q: %v", p, perr)
					}
					target[i] = f
				}
			}

			tbl, err := buildTable(opts, logger)
			if err != nil {
				return err
			}
			defer tbl.Shutdown()

			if err := tbl.EvolveVector(id, target, rate); err != nil {
				return err
			}
			n, err := tbl.NodeAt(id)
			if err != nil {
				return err
			}
			norm := vector.Norm(n.Vector)
			if math.Abs(norm-1.0) > 1e-6 {
				logger.Warn("evolved vector norm drifted from unit length")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "node %d evolved, vector: %v\n", id, n.Vector)
			return nil
		},
	}
	cmd.Flags().StringVar(&targetRaw, "target", "", "comma-separated target vector components (default: normalized all-ones)")
	return cmd
}
