package main

import (
	"os"

	"github.com/zigu-os/freestand/format"
	"github.com/zigu-os/freestand/heap"
	"github.com/zigu-os/freestand/libc"
)

// newRuntime creates a runtime whose sink is stdout. A fatal path exits the process with the
// status a C program killed by SIGABRT would report.
func newRuntime(flags heap.CreateFlags) (*libc.Runtime, error) {
	if useMmap {
		flags |= heap.CreateMmapArena
	}

	printVerbose("Creating runtime: arena=%d flags=%s\n", arenaSize, flags)

	return libc.New(newLogger(), format.WriterSink{Writer: os.Stdout}, libc.Options{
		HeapOptions: heap.CreateOptions{
			Flags:     flags,
			ArenaSize: arenaSize,
		},
		Halt: func() {
			os.Exit(134)
		},
	})
}
