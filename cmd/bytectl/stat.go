package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	statChunkSize   int64
	statOverlapSize int64
)

func init() {
	cmd := newStatCmd()
	cmd.Flags().Int64Var(&statChunkSize, "chunk-size", 64<<20, "Chunk size a mapped view would use")
	cmd.Flags().
		Int64Var(&statOverlapSize, "overlap-size", 1<<20, "Overlap window a mapped view would use")
	rootCmd.AddCommand(cmd)
}

func newStatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stat <file>",
		Short: "Report the chunk geometry of a file",
		Long: `The stat command reports file size and the chunk layout a memory-mapped
view with the given chunk and overlap sizes would produce: chunk count,
per-chunk base offsets, and how far each mapping window extends.

Example:
  bytectl stat data.bin
  bytectl stat data.bin --chunk-size 4096 --overlap-size 4096`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStat(args)
		},
	}
	return cmd
}

func runStat(args []string) error {
	path := args[0]

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	size := st.Size()

	chunkSize := alignUpPage(statChunkSize)
	overlapSize := alignUpPage(statOverlapSize)
	chunks := (size + chunkSize - 1) / chunkSize
	if chunks == 0 {
		chunks = 1
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":        path,
			"size":        size,
			"chunkSize":   chunkSize,
			"overlapSize": overlapSize,
			"chunks":      chunks,
		})
	}

	printInfo("File: %s\n", path)
	printInfo("Size: %d bytes\n", size)
	printInfo("Chunk size: %d\n", chunkSize)
	printInfo("Overlap size: %d\n", overlapSize)
	printInfo("Chunks: %d\n", chunks)
	for i := int64(0); i < chunks; i++ {
		base := i * chunkSize
		printVerbose("  chunk %d: base %d, window [%d, %d)\n",
			i, base, base, base+chunkSize+overlapSize)
	}
	return nil
}

// alignUpPage rounds n up to a 4096-byte boundary, matching the page
// alignment a mapped view applies to its sizes.
func alignUpPage(n int64) int64 {
	const page = 4096
	if n <= 0 {
		return page
	}
	return (n + page - 1) / page * page
}
