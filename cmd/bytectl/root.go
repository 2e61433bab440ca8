package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "bytectl",
	Short: "Inspect byte-store backed binary files",
	Long: `bytectl is a tool for inspecting raw binary files through the bytekit
byte-store primitives. It can hex-dump file regions, compute the library's
fast hash and modular checksum over ranges, and report the chunk geometry
a memory-mapped view of the file would use.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// readRegion reads [offset, offset+length) of a file. A zero length means
// through end of file.
func readRegion(path string, offset, length int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if offset < 0 || offset > st.Size() {
		return nil, fmt.Errorf("offset %d outside file of %d bytes", offset, st.Size())
	}
	if length <= 0 || offset+length > st.Size() {
		length = st.Size() - offset
	}

	p := make([]byte, length)
	if _, err := f.ReadAt(p, offset); err != nil {
		return nil, err
	}
	return p, nil
}
