package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sm83/gbcore/pkg/machine"
	"github.com/sm83/gbcore/pkg/trace"
)

func traceCmd() *cobra.Command {
	var out string
	var compare string
	var save string
	var maxSteps int
	var skipBoot bool

	cmd := &cobra.Command{
		Use:   "trace <rom>",
		Short: "Run a ROM, emitting gameboy-doctor trace lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read ROM: %w", err)
			}

			m := machine.New()
			m.LoadROM(rom)
			if skipBoot {
				m.ResetRegistersPostBoot()
			}

			w := os.Stdout
			var bw *bufio.Writer
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create trace output: %w", err)
				}
				defer f.Close()
				bw = bufio.NewWriter(f)
				defer bw.Flush()
			}

			var lines []trace.Line
			for i := 0; i < maxSteps; i++ {
				line := trace.Capture(m)
				lines = append(lines, line)
				if bw != nil {
					trace.WriteLine(bw, line)
				} else {
					trace.WriteLine(w, line)
				}
				if _, err := m.Step(); err != nil {
					return fmt.Errorf("step %d: %w", i, err)
				}
			}

			if save != "" {
				if err := trace.SaveGolden(save, trace.Golden{Lines: lines}); err != nil {
					return err
				}
			}

			if compare != "" {
				golden, err := trace.LoadGolden(compare)
				if err != nil {
					return err
				}
				if d, diverged := trace.Compare(lines, golden.Lines); diverged {
					return fmt.Errorf("trace diverges at line %d:\n  got:  %s\n  want: %s",
						d.Index, d.Got.Format(), d.Expected.Format())
				}
				fmt.Println("trace matches golden")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "write trace lines to this file instead of stdout")
	cmd.Flags().StringVar(&compare, "compare", "", "compare the run against a saved golden trace")
	cmd.Flags().StringVar(&save, "save", "", "save this run as a golden trace")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 10000, "number of steps to trace")
	cmd.Flags().BoolVar(&skipBoot, "skip-boot", true, "apply the post-boot register snapshot instead of running a boot ROM")
	return cmd
}
