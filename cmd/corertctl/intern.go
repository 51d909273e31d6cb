package main

import (
	"github.com/spf13/cobra"

	"github.com/nyxlang/corert/intern"
)

func init() {
	rootCmd.AddCommand(newInternCmd())
}

func newInternCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intern <name>...",
		Short: "Intern each argument and report which ones share a buffer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntern(args)
		},
	}
	return cmd
}

func runIntern(names []string) error {
	m := intern.NewMap(nil)
	defer m.Free()

	firstSeenAt := map[string]int{}
	for i, name := range names {
		m.Intern([]byte(name))
		origin, dup := firstSeenAt[name]
		if !dup {
			firstSeenAt[name] = i
			printInfo("%d: %-20q -> new node\n", i, name)
			continue
		}
		printInfo("%d: %-20q -> shares node from argument %d\n", i, name, origin)
	}
	return nil
}
