package main

import (
	"fmt"

	"github.com/joshuapare/bytekit"
	"github.com/spf13/cobra"
)

var (
	dumpOffset int64
	dumpLength int64
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().Int64Var(&dumpOffset, "offset", 0, "Byte offset to start at")
	cmd.Flags().Int64Var(&dumpLength, "length", 256, "Bytes to dump (0 = to end of file)")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Hex dump a region of a file",
		Long: `The dump command prints a region of a file as offset, hex bytes, and
ASCII, sixteen bytes per line.

Example:
  bytectl dump data.bin
  bytectl dump data.bin --offset 4096 --length 64`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	path := args[0]
	printVerbose("Reading %s at offset %d\n", path, dumpOffset)

	p, err := readRegion(path, dumpOffset, dumpLength)
	if err != nil {
		return fmt.Errorf("failed to read region: %w", err)
	}

	b := bytekit.WrapRead(p)
	defer b.Release()
	fmt.Print(b.Dump())
	return nil
}
