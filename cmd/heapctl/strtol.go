package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	strtolBase     int
	strtolUnsigned bool
)

func init() {
	cmd := newStrtolCmd()
	cmd.Flags().IntVarP(&strtolBase, "base", "b", 0, "Base from 2 to 36, or 0 to detect it from the prefix")
	cmd.Flags().BoolVarP(&strtolUnsigned, "unsigned", "u", false, "Parse with strtoul instead of strtol")
	rootCmd.AddCommand(cmd)
}

func newStrtolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strtol <text>",
		Short: "Parse an integer the way the runtime's strtol does",
		Long: `The strtol command parses the front of its argument and reports the value,
how many bytes were consumed, the unparsed remainder and errno.

Example:
  heapctl strtol 0x1F
  heapctl strtol "  -42abc" --base 10
  heapctl strtol -u -- -1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrtol(args[0])
		},
	}
	return cmd
}

func runStrtol(text string) error {
	rt, err := newRuntime(0)
	if err != nil {
		return err
	}
	defer rt.Destroy()

	s := rt.CString(text)
	if s == 0 {
		return fmt.Errorf("cannot copy %d bytes into the arena", len(text)+1)
	}
	defer rt.Free(s)

	var end = s
	var value string
	if strtolUnsigned {
		value = fmt.Sprint(rt.Strtoul(s, &end, strtolBase))
	} else {
		value = fmt.Sprint(rt.Strtol(s, &end, strtolBase))
	}

	fmt.Fprintf(os.Stdout, "value=%s consumed=%d rest=%q errno=%d\n", value, end-s, rt.GoString(end), rt.Errno())
	return nil
}
