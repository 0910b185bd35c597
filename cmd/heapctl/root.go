package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

var (
	// Global flags
	verbose   bool
	arenaSize int
	useMmap   bool
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Exercise the freestanding C runtime from a terminal",
	Long: `heapctl drives the fixed-arena allocator, the bounded printf engine and the
strtol parser of the freestanding runtime. It is meant for inspecting allocator
behavior and checking format output without booting a kernel.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every runtime operation to stderr")
	rootCmd.PersistentFlags().IntVar(&arenaSize, "arena-size", 0, "Arena capacity in bytes (0 selects 8MiB)")
	rootCmd.PersistentFlags().BoolVar(&useMmap, "mmap", false, "Reserve the arena with an anonymous mapping")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger returns a logger writing to stderr, at debug level when --verbose is set
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
