package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/parity/diag"
)

func newCheckMemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkmem",
		Short: "Print current heap and goroutine diagnostics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := diag.CheckMem()
			fmt.Fprintf(cmd.OutOrStdout(),
				"[MEMORY REPORT]\nHeap alloc: %d bytes\nHeap objects: %d\nGC cycles: %d\nGoroutines: %d\n",
				r.HeapAllocBytes, r.HeapObjects, r.NumGC, r.Goroutines)
			return nil
		},
	}
}

func newDetectLeaksCmd() *cobra.Command {
	var baseline int
	cmd := &cobra.Command{
		Use:   "detectleaks",
		Short: "Report goroutine growth beyond a baseline count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := diag.DetectLeaks(baseline)
			fmt.Fprintf(cmd.OutOrStdout(), "[LEAK] suspicious goroutines: %d (baseline %d, current %d)\n",
				r.Suspicious, r.Baseline, r.Current)
			return nil
		},
	}
	cmd.Flags().IntVar(&baseline, "baseline", 0, "goroutine count baseline to compare against")
	return cmd
}
