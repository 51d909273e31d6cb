package main

import (
	"encoding/binary"

	"github.com/spf13/cobra"

	"github.com/nyxlang/corert/container"
)

func init() {
	rootCmd.AddCommand(newArrayCmd())
}

func newArrayCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "array",
		Short: "Push keyed entries into an array, watching the indexer upgrade",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArray(count)
		},
	}
	cmd.Flags().IntVar(&count, "count", 40, "number of distinct-key entries to push")
	return cmd
}

// runArray pushes count distinct 4-byte-keyed, 8-byte-valued entries into
// an Array, driving it through the linear-to-hash indexer upgrade at the
// 32-element threshold, then reports the final length and capacity and the
// element index of key count/2.
func runArray(count int) error {
	arr := container.New(nil, 12, 8, 4)
	defer arr.Free()

	kv := make([]byte, 12)
	for i := 0; i < count; i++ {
		binary.LittleEndian.PutUint32(kv[0:4], uint32(i))
		binary.LittleEndian.PutUint64(kv[4:12], uint64(i*i))
		arr.Put(kv)
		if i == 30 || i == 31 || i == 32 {
			printVerbose("after pushing key %d, len=%d\n", i, arr.Len())
		}
	}

	printInfo("final length: %d\n", arr.Len())
	printInfo("final capacity: %d\n", arr.Cap())

	key := make([]byte, 4)
	binary.LittleEndian.PutUint32(key, uint32(count/2))
	i := arr.GetI(key)
	printInfo("geti(%d) = %d\n", count/2, i)
	return nil
}
