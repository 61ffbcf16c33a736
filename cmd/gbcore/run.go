package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sm83/gbcore/pkg/machine"
	"github.com/sm83/gbcore/pkg/trace"
)

func runCmd() *cobra.Command {
	var maxSteps int
	var skipBoot bool
	var serial bool

	cmd := &cobra.Command{
		Use:   "run <rom>",
		Short: "Load a ROM and step the core until it loops or max-steps is reached",
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
			if serial {
				m.SetSerialSink(trace.SerialSink{W: os.Stdout})
			}

			lastPC := m.CPU.Reg.PC
			repeat := 0
			for i := 0; i < maxSteps; i++ {
				if _, err := m.Step(); err != nil {
					return fmt.Errorf("step %d: %w", i, err)
				}
				if m.CPU.Reg.PC == lastPC {
					repeat++
					if repeat > 64 {
						fmt.Printf("PC loop detected at 0x%04X after %d steps\n", lastPC, i)
						break
					}
				} else {
					repeat = 0
				}
				lastPC = m.CPU.Reg.PC
			}

			fmt.Printf("A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X PC:%04X cycles:%d\n",
				m.CPU.Reg.A, m.CPU.Reg.F, m.CPU.Reg.B, m.CPU.Reg.C, m.CPU.Reg.D, m.CPU.Reg.E,
				m.CPU.Reg.H, m.CPU.Reg.L, m.CPU.Reg.SP, m.CPU.Reg.PC, m.CPU.Reg.Cycles)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxSteps, "max-steps", 10_000_000, "maximum instructions to execute")
	cmd.Flags().BoolVar(&skipBoot, "skip-boot", true, "apply the post-boot register snapshot instead of running a boot ROM")
	cmd.Flags().BoolVar(&serial, "serial", false, "emit the SB/SC debug serial sink to stdout")
	return cmd
}
