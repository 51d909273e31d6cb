package main

import (
	"github.com/spf13/cobra"

	"github.com/nyxlang/corert/alloc"
)

func init() {
	rootCmd.AddCommand(newAllocCmd())
}

func newAllocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alloc",
		Short: "Grow an arena and print a trace of every allocation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlloc()
		},
	}
	return cmd
}

func runAlloc() error {
	arena := alloc.NewArena(alloc.Default, 64)
	trace := alloc.NewTrace(arena, alloc.Default)

	sizes := []int{8, 16, 100, 200}
	for _, size := range sizes {
		buf := trace.Alloc(size, 8)
		printVerbose("allocated %d bytes at block count %d\n", size, arena.Blocks())
		_ = buf
	}

	printInfo("blocks: %d\n", arena.Blocks())
	printInfo("trace events: %d\n", trace.Len())
	for _, ev := range trace.Events() {
		kind := "alloc"
		if ev.Kind == alloc.EventFree {
			kind = "free"
		}
		printInfo("  %-5s size=%-4d align=%-2d addr=%#x\n", kind, ev.Size, ev.Align, ev.Addr)
	}
	return nil
}
