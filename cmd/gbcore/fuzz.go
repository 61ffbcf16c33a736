package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sm83/gbcore/pkg/fuzz"
)

func fuzzCmd() *cobra.Command {
	var iterations int
	var workers int
	var seed int64
	var verbose bool

	cmd := &cobra.Command{
		Use:   "fuzz",
		Short: "Check the core's documented properties across randomized pre-states",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool := fuzz.NewWorkerPool(workers)
			props := fuzz.Properties()
			fmt.Printf("Checking %d properties, %d iterations, %d workers\n",
				len(props), iterations, pool.NumWorkers)

			pool.Run(props, iterations, seed, verbose)

			checked, failed := pool.Stats()
			violations := pool.Results.Violations()
			for _, v := range violations {
				fmt.Printf("  VIOLATION [%s]: %s\n", v.Property, v.Detail)
			}
			fmt.Printf("%d checked, %d failed\n", checked, failed)
			if failed > 0 {
				return fmt.Errorf("%d property violations found", failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&iterations, "iterations", 100000, "trials per property, split across workers")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = NumCPU)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "base RNG seed (worker i uses seed+i)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print periodic progress")
	return cmd
}
