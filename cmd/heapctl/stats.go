package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"github.com/zigu-os/freestand/heap"
	"github.com/zigu-os/freestand/memutils"
)

var (
	statsAllocations int
	statsMaxSize     int
	statsFreePercent int
	statsSeed        int64
	statsDetailed    bool
	statsSummary     bool
)

func init() {
	cmd := newStatsCmd()
	cmd.Flags().IntVarP(&statsAllocations, "allocations", "n", 1000, "Number of malloc calls in the workload")
	cmd.Flags().IntVar(&statsMaxSize, "max-size", 512, "Largest request size in bytes")
	cmd.Flags().IntVar(&statsFreePercent, "free-percent", 40, "Chance, in percent, that each step frees a random live block")
	cmd.Flags().Int64Var(&statsSeed, "seed", 1, "Seed for the workload generator")
	cmd.Flags().BoolVar(&statsDetailed, "detailed", false, "List every block in the JSON output")
	cmd.Flags().BoolVar(&statsSummary, "summary", false, "Print a one-line summary instead of JSON")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Run a random malloc/free workload and report arena statistics",
		Long: `The stats command runs a reproducible workload of random malloc and free
calls against a fresh arena, validates the heap, and prints its statistics as JSON.

Example:
  heapctl stats
  heapctl stats -n 10000 --max-size 4096 --free-percent 60
  heapctl stats --arena-size 65536 --detailed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
	return cmd
}

func runStats() error {
	if statsMaxSize <= 0 {
		return fmt.Errorf("--max-size must be positive, got %d", statsMaxSize)
	}

	rt, err := newRuntime(heap.CreateTrackAllocations)
	if err != nil {
		return err
	}
	defer rt.Destroy()

	rng := rand.New(rand.NewSource(statsSeed))
	var live []heap.Ptr
	failures := 0

	for i := 0; i < statsAllocations; i++ {
		if len(live) > 0 && rng.Intn(100) < statsFreePercent {
			victim := rng.Intn(len(live))
			rt.Free(live[victim])
			live[victim] = live[len(live)-1]
			live = live[:len(live)-1]
		}

		ptr := rt.Malloc(1 + rng.Intn(statsMaxSize))
		if ptr == heap.Null {
			failures++
			continue
		}
		live = append(live, ptr)
	}

	printVerbose("Workload finished: %d live, %d failed\n", len(live), failures)

	h := rt.Heap()
	if err := h.Validate(); err != nil {
		return fmt.Errorf("heap failed validation: %w", err)
	}
	if err := h.CheckCorruption(); err != nil {
		return fmt.Errorf("heap failed corruption check: %w", err)
	}

	if statsSummary {
		var stats memutils.DetailedStatistics
		stats.Clear()
		if err := h.AddDetailedStatistics(&stats); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "blocks=%d live=%d live_bytes=%d free=%d free_bytes=%d uncarved=%d failed=%d\n",
			stats.BlockCount, stats.AllocationCount, stats.AllocationBytes,
			stats.FreeBlockCount, stats.FreeBlockBytes, stats.UncarvedBytes(), failures)
		return nil
	}

	fmt.Fprintln(os.Stdout, h.BuildStatsString(statsDetailed))
	return nil
}
