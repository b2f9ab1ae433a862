// Command heapdemo drives an in-process heap.Allocator from the command
// line: it allocates and frees a synthetic workload and prints the
// resulting memory map and statistics. It exists for manual inspection;
// nothing in the heap package depends on it.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"unsafe"

	"github.com/orizon-lang/heapalloc/internal/heap"
)

// version is fixed for this demonstration binary; a real release process
// would stamp it at build time via -ldflags.
const version = "0.1.0"

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		jsonOutput  = flag.Bool("json", false, "output version in JSON format")
		heapSize    = flag.Int("heap-size", 1<<20, "initial heap size in bytes")
		strategy    = flag.String("strategy", "first-fit", "placement strategy: first-fit, best-fit, worst-fit")
		count       = flag.Int("count", 64, "number of allocations to simulate")
		minSize     = flag.Int("min-size", 16, "minimum allocation size in bytes")
		maxSize     = flag.Int("max-size", 512, "maximum allocation size in bytes")
		freeEvery   = flag.Int("free-every", 2, "free every Nth live allocation (0 disables freeing)")
		seed        = flag.Int64("seed", 1, "random seed for the simulated workload")
		showMap     = flag.Bool("map", false, "print the full block map instead of just statistics")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Drives a heap.Allocator with a synthetic allocation workload.\n\n")
		fmt.Fprintf(os.Stderr, "OPTIONS:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *showVersion {
		printVersion(*jsonOutput)
		os.Exit(0)
	}

	strat, err := parseStrategy(*strategy)
	if err != nil {
		exitWithError("%v", err)
	}

	a, err := heap.New(
		heap.WithInitialHeapSize(uintptr(*heapSize)),
		heap.WithStrategy(strat),
	)
	if err != nil {
		exitWithError("initializing allocator: %v", err)
	}
	defer a.Close()

	if *maxSize < *minSize {
		exitWithError("max-size (%d) must be >= min-size (%d)", *maxSize, *minSize)
	}

	rng := rand.New(rand.NewSource(*seed))
	span := *maxSize - *minSize + 1

	var live []unsafe.Pointer
	for i := 0; i < *count; i++ {
		size := uintptr(*minSize + rng.Intn(span))
		p := a.Alloc(size)
		if p == nil {
			fmt.Printf("allocation %d of %d bytes failed: %v\n", i, size, a.LastError())
			continue
		}
		live = append(live, p)

		if *freeEvery > 0 && len(live) > 0 && i%(*freeEvery) == 0 {
			victim := live[len(live)-1]
			a.Free(victim)
			live = live[:len(live)-1]
		}
	}

	if *showMap {
		printMap(a)
	}
	printStats(a)
}

// printVersion prints this binary's version, optionally as JSON.
func printVersion(jsonOutput bool) {
	if jsonOutput {
		fmt.Printf("{\"tool\":\"heapdemo\",\"version\":%q,\"go_version\":%q,\"platform\":%q}\n",
			version, runtime.Version(), runtime.GOOS+"/"+runtime.GOARCH)
		return
	}
	fmt.Printf("heapdemo v%s\n", version)
	fmt.Printf("Go Version: %s\n", runtime.Version())
	fmt.Printf("Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// exitWithError prints an error message to stderr and exits with code 1.
func exitWithError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func parseStrategy(s string) (heap.Strategy, error) {
	switch s {
	case "first-fit":
		return heap.FirstFit, nil
	case "best-fit":
		return heap.BestFit, nil
	case "worst-fit":
		return heap.WorstFit, nil
	default:
		return heap.FirstFit, fmt.Errorf("unrecognized strategy %q", s)
	}
}

func printMap(a *heap.Allocator) {
	fmt.Println("ADDRESS             SIZE       STATE")
	for _, b := range a.Walk() {
		state := "used"
		if b.Free {
			state = "free"
		}
		fmt.Printf("%-20p %-10d %s\n", b.Address, b.Size, state)
	}
	fmt.Println()
}

func printStats(a *heap.Allocator) {
	s := a.Stats()
	fmt.Printf("total memory:        %d bytes\n", s.TotalMemory)
	fmt.Printf("used memory:         %d bytes\n", s.UsedMemory)
	fmt.Printf("free memory:         %d bytes\n", s.FreeMemory)
	fmt.Printf("header overhead:     %d bytes/block\n", s.Overhead)
	fmt.Printf("peak usage:          %d bytes\n", s.PeakUsage)
	fmt.Printf("total allocations:   %d\n", s.TotalAllocations)
	fmt.Printf("active allocations:  %d\n", s.ActiveAllocations)
	fmt.Printf("fragmentation ratio: %.4f\n", s.FragmentationRatio)
}
