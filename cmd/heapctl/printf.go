package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zigu-os/freestand/cstrconv"
)

var (
	printfSize int
)

func init() {
	cmd := newPrintfCmd()
	cmd.Flags().IntVar(&printfSize, "size", 0, "Format with snprintf into a buffer of this size and report truncation")
	rootCmd.AddCommand(cmd)
}

func newPrintfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "printf <format> [args...]",
		Short: "Format arguments with the runtime's printf",
		Long: `The printf command formats its arguments with the runtime's bounded printf
engine. Arguments that parse completely as integers (in any base strtol accepts
with base 0) are passed as integers; everything else is passed as a string.

Example:
  heapctl printf '%05d|%x|%s\n' 42 255 hello
  heapctl printf --size 5 '%d' 12345`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrintf(args)
		},
	}
	return cmd
}

// printfArgs converts command line words into format arguments
func printfArgs(words []string) []any {
	args := make([]any, 0, len(words))
	for _, word := range words {
		value, consumed, err := cstrconv.ParseInt([]byte(word), cstrconv.BaseAuto)
		if err == nil && consumed == len(word) && consumed > 0 {
			args = append(args, value)
			continue
		}
		args = append(args, word)
	}
	return args
}

func runPrintf(args []string) error {
	rt, err := newRuntime(0)
	if err != nil {
		return err
	}
	defer rt.Destroy()

	format, values := args[0], printfArgs(args[1:])

	if printfSize <= 0 {
		rt.Printf(format, values...)
		return nil
	}

	buf := rt.Malloc(printfSize)
	if buf == 0 {
		return fmt.Errorf("cannot allocate a %d byte buffer", printfSize)
	}
	defer rt.Free(buf)

	n := rt.Vsnprintf(buf, printfSize, format, values)
	fmt.Fprintf(os.Stdout, "%q\n", rt.GoString(buf))
	if n >= printfSize {
		fmt.Fprintf(os.Stdout, "truncated: %d of %d bytes written\n", printfSize-1, n)
	}
	return nil
}
