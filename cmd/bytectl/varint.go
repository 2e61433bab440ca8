package main

import (
	"errors"
	"fmt"

	"github.com/joshuapare/bytekit"
	"github.com/spf13/cobra"
)

var (
	varintOffset int64
	varintLength int64
	varintMax    int
)

func init() {
	cmd := newVarintCmd()
	cmd.Flags().Int64Var(&varintOffset, "offset", 0, "Byte offset to start at")
	cmd.Flags().Int64Var(&varintLength, "length", 0, "Bytes to decode (0 = to end of file)")
	cmd.Flags().IntVar(&varintMax, "max", 64, "Maximum values to decode (0 = unlimited)")
	rootCmd.AddCommand(cmd)
}

func newVarintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "varint <file>",
		Short: "Decode stop-bit varints from a file region",
		Long: `The varint command decodes a region of a file as a sequence of stop-bit
encoded integers, printing each value with its offset and encoded width.
Decoding stops at the end of the region, at a malformed sequence, or after
--max values.

Example:
  bytectl varint records.bin
  bytectl varint records.bin --offset 16 --max 10 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVarint(args)
		},
	}
	return cmd
}

type varintEntry struct {
	Offset int64 `json:"offset"`
	Width  int64 `json:"width"`
	Value  int64 `json:"value"`
}

func runVarint(args []string) error {
	path := args[0]

	p, err := readRegion(path, varintOffset, varintLength)
	if err != nil {
		return fmt.Errorf("failed to read region: %w", err)
	}

	entries, errAt, decodeErr := scanVarints(p, varintOffset, varintMax)

	if jsonOut {
		out := map[string]interface{}{
			"file":   path,
			"offset": varintOffset,
			"values": entries,
		}
		if decodeErr != nil {
			out["error"] = decodeErr.Error()
		}
		return printJSON(out)
	}

	for _, e := range entries {
		printInfo("%8d  %d byte(s)  %d\n", e.Offset, e.Width, e.Value)
	}
	if decodeErr != nil {
		if errors.Is(decodeErr, bytekit.ErrBufferUnderflow) {
			printInfo("(truncated sequence at end of region)\n")
			return nil
		}
		return fmt.Errorf("decode failed at offset %d: %w", errAt, decodeErr)
	}
	return nil
}

// scanVarints decodes stop-bit values from p until the region, the max
// count, or a malformed sequence ends the scan. Offsets are reported
// relative to base. errAt is the file offset of a failed decode.
func scanVarints(p []byte, base int64, max int) (entries []varintEntry, errAt int64, err error) {
	b := bytekit.WrapRead(p)
	defer b.Release()

	for b.ReadRemaining() > 0 {
		if max > 0 && len(entries) >= max {
			break
		}
		at := b.ReadPosition()
		v, rerr := b.ReadStopBit()
		if rerr != nil {
			return entries, base + at, rerr
		}
		entries = append(entries, varintEntry{
			Offset: base + at,
			Width:  b.ReadPosition() - at,
			Value:  v,
		})
	}
	return entries, 0, nil
}
