package main

import "testing"

func TestRootCmdRegistersSubcommands(t *testing.T) {
	root := rootCmd()
	want := map[string]bool{"run": false, "trace": false, "debug": false, "fuzz": false}
	for _, c := range root.Commands() {
		name := c.Name()
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
