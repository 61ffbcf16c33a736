package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sm83/gbcore/internal/debugtui"
	"github.com/sm83/gbcore/pkg/machine"
)

func debugCmd() *cobra.Command {
	var skipBoot bool

	cmd := &cobra.Command{
		Use:   "debug <rom>",
		Short: "Launch the interactive single-step debugger",
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
			return debugtui.Run(m)
		},
	}

	cmd.Flags().BoolVar(&skipBoot, "skip-boot", true, "apply the post-boot register snapshot instead of running a boot ROM")
	return cmd
}
