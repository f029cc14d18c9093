// Package index defines the key-only surfaces shared by the B-tree and the
// baseline structures it is benchmarked against.
package index

import "sync"

// Set is an in-memory key set whose operations cannot fail.
type Set interface {
	Insert(key int32)
	Search(key int32) bool
}

// Index is the common interface for all implementations, including those
// backed by a storage engine.
type Index interface {
	Insert(key int32) error
	Search(key int32) (bool, error)
	Close() error
}

// Wrap adapts a Set to Index.
func Wrap(s Set) Index { return setIndex{s} }

type setIndex struct{ s Set }

func (i setIndex) Insert(key int32) error         { i.s.Insert(key); return nil }
func (i setIndex) Search(key int32) (bool, error) { return i.s.Search(key), nil }
func (i setIndex) Close() error                   { return nil }

// Locked guards s with a single RWMutex so it can be shared between
// goroutines. Searches run concurrently; inserts are exclusive.
func Locked(s Set) Set { return &lockedSet{s: s} }

type lockedSet struct {
	mu sync.RWMutex
	s  Set
}

func (l *lockedSet) Insert(key int32) {
	l.mu.Lock()
	l.s.Insert(key)
	l.mu.Unlock()
}

func (l *lockedSet) Search(key int32) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.s.Search(key)
}
