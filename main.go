package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/ashsingh21/naive-btree/bench"
	"github.com/ashsingh21/naive-btree/index"
	"github.com/ashsingh21/naive-btree/index/btree"
	"github.com/ashsingh21/naive-btree/index/classic"
	"github.com/ashsingh21/naive-btree/index/lsm"
	"github.com/ashsingh21/naive-btree/index/sorted"
)

// The sorted-slice baseline shifts its tail on every insert; above this many
// keys a shuffled load takes minutes.
const maxSortedKeys = 100_000

var (
	order    = flag.Int("order", 10, "B-tree order (max children per internal node), at least 3")
	count    = flag.Int("n", 1_000_000, "number of keys to insert and search")
	keyOrder = flag.String("keys", "asc", "key order: asc, desc or shuffle")
	compare  = flag.Bool("compare", false, "also run the classic B-tree, sorted slice and pebble baselines")
	verbose  = flag.Bool("verbose", false, "print the latency of every single operation")
	check    = flag.Bool("check", false, "validate the whole tree after loading and print its statistics")
	csvPath  = flag.String("csv", "", "write results as CSV to this file")
	plotPath = flag.String("plot", "", "save a latency bar chart to this file (.png, .svg or .pdf)")
	dotPath  = flag.String("dot", "", "write the loaded tree as a Graphviz digraph to this file")
)

func main() {
	flag.Parse()
	if *order < btree.MinOrder {
		log.Fatalf("order must be at least %d, got %d", btree.MinOrder, *order)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(ctx context.Context) error {
	ko, err := bench.ParseKeyOrder(*keyOrder)
	if err != nil {
		return err
	}
	keys, err := bench.Keys(ko, *count)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	var trace func(bench.Op, int32, time.Duration)
	if *verbose {
		trace = func(op bench.Op, key int32, d time.Duration) {
			switch op {
			case bench.OpInsert:
				fmt.Fprintf(out, "Inserting %d takes: %d in micro seconds\n", key, d.Microseconds())
			case bench.OpSearch:
				fmt.Fprintf(out, "Searching %d takes: %d in nano seconds\n", key, d.Nanoseconds())
			}
		}
	}

	var results []bench.Result
	runSuite := func(name, conf string, idx index.Index) error {
		fmt.Fprintf(out, "Testing %s (Config: %s, %d %s keys)\n", name, conf, len(keys), ko)
		out.Flush()
		res, err := bench.Run(ctx, bench.Suite{Name: name, Config: conf, Keys: keys, Trace: trace}, idx)
		if closeErr := idx.Close(); closeErr != nil {
			err = errors.CombineErrors(err, closeErr)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  insert %d ns/op, search %d ns/op, %d MB live, %d heap objects\n",
			res.InsertNs(), res.SearchNs(), res.MemMB, res.HeapObjects)
		results = append(results, res)
		return nil
	}

	tree := btree.New(*order)
	if err := runSuite("B-Tree", strconv.Itoa(*order), index.Wrap(tree)); err != nil {
		return err
	}
	if *check {
		if err := tree.Check(); err != nil {
			return err
		}
		s := tree.Stats()
		fmt.Fprintf(out, "  tree ok: height %d, %d splits (%d at root), %d of %d arena slots live, %d leaked\n",
			s.Height, s.Splits, s.RootSplits, s.Live, s.Slots, s.Leaked())
	}
	if *dotPath != "" {
		if err := writeFile(*dotPath, tree.WriteDOT); err != nil {
			return err
		}
	}

	if *compare {
		degree := max(2, *order/2)
		if err := runSuite("Classic", strconv.Itoa(degree), index.Wrap(classic.New(degree))); err != nil {
			return err
		}
		if len(keys) <= maxSortedKeys || ko == bench.Ascending {
			if err := runSuite("Sorted", "-", index.Wrap(sorted.New())); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(out, "Skipping Sorted: %d %s keys exceeds %d\n", len(keys), ko, maxSortedKeys)
		}
		l, err := lsm.Open()
		if err != nil {
			return err
		}
		if err := runSuite("LSM", "pebble", l); err != nil {
			return err
		}
	}

	if *csvPath != "" {
		if err := writeFile(*csvPath, func(w io.Writer) error { return bench.WriteCSV(w, results) }); err != nil {
			return err
		}
	}
	if *plotPath != "" {
		if err := bench.Plot(*plotPath, results); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, "Benchmark complete.")
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		err = errors.CombineErrors(err, f.Close())
	}()
	return write(f)
}
