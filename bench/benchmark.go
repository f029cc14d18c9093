package bench

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"runtime"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/ashsingh21/naive-btree/index"
)

// ErrMissing is returned when a key that was inserted cannot be found.
var ErrMissing = errors.New("bench: inserted key not found")

// ErrPhantom is returned when a key that was never inserted is found.
var ErrPhantom = errors.New("bench: absent key found")

// Op names the operation reported to a Trace callback.
type Op string

const (
	OpInsert Op = "insert"
	OpSearch Op = "search"
)

// ctxCheckEvery is how many operations run between context checks.
const ctxCheckEvery = 4096

// Suite is one load-then-verify run against a single structure.
type Suite struct {
	Name   string
	Config string
	Keys   []int32

	// Trace, if set, is called with the latency of every operation. Each
	// operation is then timed on its own, which slows the run down.
	Trace func(op Op, key int32, d time.Duration)
}

type Result struct {
	Name        string
	Config      string
	Keys        int
	Insert      time.Duration // total time spent inserting
	Search      time.Duration // total time spent searching
	MemMB       uint64
	HeapObjects uint64
}

// InsertNs returns the mean insert latency in nanoseconds.
func (r Result) InsertNs() int64 { return perOp(r.Insert, r.Keys) }

// SearchNs returns the mean search latency in nanoseconds.
func (r Result) SearchNs() int64 { return perOp(r.Search, r.Keys) }

func perOp(d time.Duration, n int) int64 {
	if n == 0 {
		return 0
	}
	return d.Nanoseconds() / int64(n)
}

// Run inserts every key of s, samples memory, then searches every key. A
// search that misses an inserted key fails the run with ErrMissing; a key
// above the loaded range must miss, or the run fails with ErrPhantom.
func Run(ctx context.Context, s Suite, idx index.Index) (Result, error) {
	res := Result{Name: s.Name, Config: s.Config, Keys: len(s.Keys)}

	d, err := s.each(ctx, OpInsert, func(k int32) error { return idx.Insert(k) })
	if err != nil {
		return res, errors.Wrapf(err, "%s: insert", s.Name)
	}
	res.Insert = d

	mem := GetDetailedMem()
	res.MemMB, res.HeapObjects = mem.AllocMB, mem.HeapObjects

	d, err = s.each(ctx, OpSearch, func(k int32) error {
		found, err := idx.Search(k)
		if err != nil {
			return err
		}
		if !found {
			return errors.Wrapf(ErrMissing, "key %d", k)
		}
		return nil
	})
	if err != nil {
		return res, errors.Wrapf(err, "%s: search", s.Name)
	}
	res.Search = d

	if probe, ok := absentKey(s.Keys); ok {
		found, err := idx.Search(probe)
		if err != nil {
			return res, errors.Wrapf(err, "%s: probe", s.Name)
		}
		if found {
			return res, errors.Wrapf(ErrPhantom, "%s: key %d", s.Name, probe)
		}
	}
	return res, nil
}

func (s Suite) each(ctx context.Context, op Op, fn func(int32) error) (time.Duration, error) {
	var total time.Duration
	for start := 0; start < len(s.Keys); start += ctxCheckEvery {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		batch := s.Keys[start:min(start+ctxCheckEvery, len(s.Keys))]

		if s.Trace == nil {
			t0 := time.Now()
			for _, k := range batch {
				if err := fn(k); err != nil {
					return total, err
				}
			}
			total += time.Since(t0)
			continue
		}

		for _, k := range batch {
			t0 := time.Now()
			err := fn(k)
			d := time.Since(t0)
			if err != nil {
				return total, err
			}
			total += d
			s.Trace(op, k, d)
		}
	}
	return total, nil
}

// absentKey returns a key larger than every key in keys.
func absentKey(keys []int32) (int32, bool) {
	if len(keys) == 0 {
		return 0, true
	}
	hi := keys[0]
	for _, k := range keys[1:] {
		hi = max(hi, k)
	}
	if hi == math.MaxInt32 {
		return 0, false
	}
	return hi + 1, true
}

// ─── Memory ───────────────────────────────────────────────────────────────────

type MemoryStats struct {
	AllocMB      uint64
	TotalAllocMB uint64
	HeapObjects  uint64
}

// GetDetailedMem forces a GC so that only live data is measured.
func GetDetailedMem() MemoryStats {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return MemoryStats{
		AllocMB:      m.Alloc / 1024 / 1024,
		TotalAllocMB: m.TotalAlloc / 1024 / 1024,
		HeapObjects:  m.HeapObjects,
	}
}

// ─── CSV ──────────────────────────────────────────────────────────────────────

var csvHeader = []string{"Structure", "Config", "Keys", "InsertNs", "SearchNs", "MemMB", "HeapObjects"}

// WriteCSV writes a header row followed by one row per result.
func WriteCSV(out io.Writer, results []Result) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return errors.Wrap(err, "bench: write csv header")
	}
	for _, r := range results {
		row := []string{
			r.Name,
			r.Config,
			strconv.Itoa(r.Keys),
			strconv.FormatInt(r.InsertNs(), 10),
			strconv.FormatInt(r.SearchNs(), 10),
			strconv.FormatUint(r.MemMB, 10),
			strconv.FormatUint(r.HeapObjects, 10),
		}
		if err := w.Write(row); err != nil {
			return errors.Wrapf(err, "bench: write csv row for %s", r.Name)
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "bench: flush csv")
}
