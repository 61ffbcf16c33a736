// Command gbcore drives the SM83 core from the command line: run a ROM to
// completion, emit a gameboy-doctor trace (optionally diffed against a
// golden run), launch an interactive single-step debugger, or fuzz the
// core's documented properties.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gbcore",
		Short: "Sharp SM83 core interpreter toolkit",
	}
	root.AddCommand(runCmd())
	root.AddCommand(traceCmd())
	root.AddCommand(debugCmd())
	root.AddCommand(fuzzCmd())
	return root
}
