// Package cmd provides the command-line interface for cachesim.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/trace"
)

var (
	traceFile string
	dbPath    string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use: "cachesim <sets> <blocks-per-set> <bytes-per-block> " +
		"<write-allocate|no-write-allocate> <write-through|write-back> " +
		"<lru|fifo>",
	Short: "cachesim replays a memory access trace through a " +
		"set-associative cache model",
	Long: `cachesim replays a trace of load and store accesses through a ` +
		`set-associative cache model and reports hit, miss, and cycle ` +
		`counts. The trace is read from stdin unless --trace is given; ` +
		`each record is an operation code, a hexadecimal address, and an ` +
		`access size.`,
	Args:         cobra.ExactArgs(6),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&traceFile, "trace", "",
		"read the trace from a file instead of stdin")
	rootCmd.Flags().StringVar(&dbPath, "db", "",
		"record each access into a SQLite database at this path")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false,
		"log each access to stderr")
}

// Execute runs the root command. It terminates the process with exit code
// 1 if the command fails.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := parseConfig(args)
	if err != nil {
		return err
	}

	comp := buildCache(cfg)

	if dbPath != "" {
		recorder := datarecording.New(dbPath)
		comp.AcceptHook(trace.NewDBTracer(recorder))
		defer recorder.Flush()
	}

	if verbose {
		comp.AcceptHook(trace.NewLogTracer(
			log.New(cmd.ErrOrStderr(), "", 0)))
	}

	input := cmd.InOrStdin()
	if traceFile != "" {
		file, err := os.Open(traceFile)
		if err != nil {
			return fmt.Errorf("cannot open trace: %w", err)
		}
		defer file.Close()
		input = file
	}

	if err := simulate(comp, input); err != nil {
		return err
	}

	printStats(cmd.OutOrStdout(), comp.Stats())

	return nil
}

func buildCache(cfg config) *cache.Comp {
	return cache.MakeBuilder().
		WithNumSets(cfg.numSets).
		WithWayAssociativity(cfg.blocksPerSet).
		WithBlockSize(cfg.blockSize).
		WithWriteAllocate(cfg.writeAllocate).
		WithWriteThrough(cfg.writeThrough).
		WithReplaceStrategy(cfg.replaceStrategy).
		Build("Cache")
}

// simulate replays every access of the trace through the cache.
func simulate(comp *cache.Comp, input io.Reader) error {
	reader := trace.NewReader(input)

	for {
		access, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		comp.Access(access.Op, access.Address)
	}
}

func printStats(w io.Writer, stats cache.Stats) {
	fmt.Fprintf(w, "Total loads: %d\n", stats.TotalLoads)
	fmt.Fprintf(w, "Total stores: %d\n", stats.TotalStores)
	fmt.Fprintf(w, "Load hits: %d\n", stats.LoadHits)
	fmt.Fprintf(w, "Load misses: %d\n", stats.LoadMisses)
	fmt.Fprintf(w, "Store hits: %d\n", stats.StoreHits)
	fmt.Fprintf(w, "Store misses: %d\n", stats.StoreMisses)
	fmt.Fprintf(w, "Total cycles: %d\n", stats.TotalCycles)
}
