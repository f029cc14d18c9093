package btree

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func requirePanicsWithAssertion(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.HasAssertionFailure(err), "not an assertion failure: %v", err)
	}()
	fn()
}

func TestNewRejectsSmallOrder(t *testing.T) {
	requirePanicsWithAssertion(t, func() { New(2) })
	requirePanicsWithAssertion(t, func() { New(0) })
	require.NotPanics(t, func() { New(MinOrder) })
}

func TestEmptyTree(t *testing.T) {
	tr := New(3)

	require.False(t, tr.Search(0))
	require.Equal(t, InvalidHandle, tr.Root())
	require.NoError(t, tr.Check())
	require.Equal(t, Stats{}, tr.Stats())
	require.Equal(t, "(empty)", tr.String())
}

func TestInsertFirstKeyCreatesLeafRoot(t *testing.T) {
	tr := New(3)
	tr.Insert(1)

	root := tr.Node(tr.Root())
	require.True(t, root.Leaf)
	require.Equal(t, []int32{1}, root.Keys)
	require.Nil(t, root.Children)
	require.True(t, tr.Search(1))
	require.Equal(t, 1, tr.Stats().Height)
}

func TestLeafOverflowGrowsRoot(t *testing.T) {
	tr := New(3)
	tr.Insert(1)
	tr.Insert(2)

	root := tr.Node(tr.Root())
	require.True(t, root.Leaf)
	require.Equal(t, []int32{1, 2}, root.Keys)

	tr.Insert(3)

	root = tr.Node(tr.Root())
	require.False(t, root.Leaf)
	require.Equal(t, []int32{2}, root.Keys)
	require.Len(t, root.Children, 2)
	require.Equal(t, []int32{1, 2}, tr.Node(root.Children[0]).Keys)
	require.Equal(t, []int32{3}, tr.Node(root.Children[1]).Keys)

	for _, k := range []int32{1, 2, 3} {
		require.True(t, tr.Search(k), "key %d", k)
	}
	require.False(t, tr.Search(4))
	require.False(t, tr.Search(0))
	require.NoError(t, tr.Check())
	require.Equal(t, "[2]\n[1 2] [3]\n", tr.String())

	s := tr.Stats()
	require.Equal(t, 2, s.Height)
	require.Equal(t, 4, s.Slots)
	require.Equal(t, 3, s.Live)
	require.Equal(t, 1, s.Leaked())
	require.Equal(t, 1, s.Splits)
	require.Equal(t, 1, s.RootSplits)
}

func TestAscendingThousand(t *testing.T) {
	tr := New(10)
	for k := int32(0); k < 1000; k++ {
		tr.Insert(k)
	}
	for k := int32(0); k < 1000; k++ {
		require.True(t, tr.Search(k), "key %d", k)
	}
	require.False(t, tr.Search(1000))
	require.False(t, tr.Search(-1))
	require.NoError(t, tr.Check())
}

func TestAscendingMillionWideOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("inserts one million keys")
	}
	const n = 1_000_000
	tr := New(10000)
	for k := int32(0); k < n; k++ {
		tr.Insert(k)
	}
	for k := int32(0); k < n; k++ {
		if !tr.Search(k) {
			t.Fatalf("failed to find %d", k)
		}
	}
	require.False(t, tr.Search(n))
	require.NoError(t, tr.Check())
}

func TestInvariantsHoldAfterEveryInsert(t *testing.T) {
	orders := []int{3, 4, 5, 7, 16}
	for _, order := range orders {
		rng := rand.New(rand.NewSource(int64(order)))
		tr := New(order)
		inserted := make(map[int32]bool)
		for i := 0; i < 600; i++ {
			k := int32(rng.Intn(400)) - 200
			tr.Insert(k)
			inserted[k] = true
			require.NoError(t, tr.Check(), "order %d after inserting %d", order, k)
		}
		for k := int32(-250); k < 250; k++ {
			require.Equal(t, inserted[k], tr.Search(k), "order %d key %d", order, k)
		}
	}
}

func TestDescendingInserts(t *testing.T) {
	tr := New(3)
	for k := int32(999); k >= 0; k-- {
		tr.Insert(k)
	}
	require.NoError(t, tr.Check())
	for k := int32(0); k < 1000; k++ {
		require.True(t, tr.Search(k), "key %d", k)
	}
	require.False(t, tr.Search(1000))
}

func TestExtremeKeys(t *testing.T) {
	tr := New(4)
	keys := []int32{math.MaxInt32, math.MinInt32, 0, -1, 1, math.MaxInt32 - 1, math.MinInt32 + 1}
	for _, k := range keys {
		tr.Insert(k)
	}
	require.NoError(t, tr.Check())
	for _, k := range keys {
		require.True(t, tr.Search(k), "key %d", k)
	}
	require.False(t, tr.Search(2))
}

func TestDuplicatesAreStored(t *testing.T) {
	tr := New(3)
	for i := 0; i < 20; i++ {
		tr.Insert(5)
	}
	tr.Insert(4)
	tr.Insert(6)

	require.NoError(t, tr.Check())
	require.True(t, tr.Search(5))
	require.True(t, tr.Search(4))
	require.True(t, tr.Search(6))

	var fives int
	tr.Ascend(func(k int32) bool {
		if k == 5 {
			fives++
		}
		return true
	})
	require.Equal(t, 20, fives)
	require.Equal(t, 22, tr.Stats().Keys)
}

func TestRootChangesOnlyOnRootSplit(t *testing.T) {
	tr := New(3)
	tr.Insert(0)
	prevRoot, prevHeight := tr.Root(), tr.Stats().Height
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		tr.Insert(int32(rng.Intn(1 << 20)))
		s := tr.Stats()
		if tr.Root() != prevRoot {
			require.Equal(t, prevHeight+1, s.Height)
		} else {
			require.Equal(t, prevHeight, s.Height)
		}
		require.Equal(t, s.Height-1, s.RootSplits)
		prevRoot, prevHeight = tr.Root(), s.Height
	}
}

func TestAscendVisitsEveryKeyInOrder(t *testing.T) {
	tr := New(5)
	rng := rand.New(rand.NewSource(7))
	perm := rng.Perm(500)
	for _, k := range perm {
		tr.Insert(int32(k))
	}

	var got []int32
	tr.Ascend(func(k int32) bool {
		got = append(got, k)
		return true
	})
	require.Len(t, got, 500)
	for i, k := range got {
		require.Equal(t, int32(i), k)
	}

	var n int
	tr.Ascend(func(int32) bool {
		n++
		return n < 10
	})
	require.Equal(t, 10, n)
}

func TestLeakedSlotsGrowWithSplits(t *testing.T) {
	tr := New(3)
	for k := int32(0); k < 100; k++ {
		tr.Insert(k)
	}
	s := tr.Stats()
	require.Equal(t, s.Slots, s.Live+s.Leaked())
	// Every split supersedes the overflowing node; every non-root split
	// also discards the one-key parent after it has been absorbed.
	require.Equal(t, 2*s.Splits-s.RootSplits, s.Leaked())
}

func TestInsertPanicsOnCorruptedNode(t *testing.T) {
	tr := New(4)
	tr.Insert(1)
	tr.arena.node(tr.Root()).Children = []Handle{0}

	requirePanicsWithAssertion(t, func() { tr.Insert(2) })
}

func TestCheckReportsCorruption(t *testing.T) {
	build := func() *Tree {
		tr := New(3)
		for k := int32(1); k <= 3; k++ {
			tr.Insert(k)
		}
		return tr
	}

	t.Run("keys out of order", func(t *testing.T) {
		tr := build()
		root := tr.arena.node(tr.Root())
		leaf := tr.arena.node(root.Children[0])
		leaf.Keys[0], leaf.Keys[1] = leaf.Keys[1], leaf.Keys[0]
		err := tr.Check()
		require.Error(t, err)
		require.True(t, errors.HasAssertionFailure(err))
	})

	t.Run("key outside separator", func(t *testing.T) {
		tr := build()
		root := tr.arena.node(tr.Root())
		tr.arena.node(root.Children[1]).Keys[0] = 0
		require.ErrorContains(t, tr.Check(), "below separator")
	})

	t.Run("uneven leaves", func(t *testing.T) {
		tr := build()
		for k := int32(4); k <= 9; k++ {
			tr.Insert(k)
		}
		require.NoError(t, tr.Check())
		root := tr.arena.node(tr.Root())
		left := tr.arena.node(root.Children[0])
		require.False(t, left.Leaf)
		root.Children[0] = left.Children[0]
		require.ErrorContains(t, tr.Check(), "expected 2")
	})

	t.Run("dangling handle", func(t *testing.T) {
		tr := build()
		tr.arena.node(tr.Root()).Children[1] = 1000
		require.ErrorContains(t, tr.Check(), "out of range")
	})
}

func TestWriteDOT(t *testing.T) {
	tr := New(3)
	for k := int32(1); k <= 3; k++ {
		tr.Insert(k)
	}
	var buf bytes.Buffer
	require.NoError(t, tr.WriteDOT(&buf))

	out := buf.String()
	require.Contains(t, out, "digraph BTree {")
	require.Contains(t, out, "n3 [label=\"{#3 internal|{<f0>|2|<f1>}}\"")
	require.Contains(t, out, "n3:f0 -> n1;")
	require.Contains(t, out, "n3:f1 -> n2;")
	require.NotContains(t, out, "n0 ")
}

func BenchmarkInsertAscending(b *testing.B) {
	tr := New(10)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Insert(int32(i))
	}
}

func BenchmarkSearch(b *testing.B) {
	const n = 1 << 20
	tr := New(10)
	for k := int32(0); k < n; k++ {
		tr.Insert(k)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !tr.Search(int32(i % n)) {
			b.Fatalf("missing %d", i%n)
		}
	}
}
