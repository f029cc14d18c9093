// Package lsm wraps Pebble (CockroachDB's LSM storage engine) behind the
// common Index interface so it can be benchmarked alongside the in-memory
// trees. Pebble runs on an in-memory filesystem; nothing touches disk.
package lsm

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	"github.com/ashsingh21/naive-btree/index"
)

var _ index.Index = (*LSM)(nil)

type LSM struct {
	db *pebble.DB
}

// Open creates an empty Pebble database backed by vfs.NewMem.
func Open() (*LSM, error) {
	opts := &pebble.Options{
		FS:                          vfs.NewMem(),
		MemTableSize:                16 << 20,
		MemTableStopWritesThreshold: 4,
		L0CompactionThreshold:       4,
		L0StopWritesThreshold:       12,
	}

	db, err := pebble.Open("", opts)
	if err != nil {
		return nil, errors.Wrap(err, "lsm: open")
	}
	return &LSM{db: db}, nil
}

// Close shuts Pebble down and drops its in-memory state.
func (l *LSM) Close() error {
	return l.db.Close()
}

// Insert records key. Keys carry no value, so inserting a key twice leaves
// one entry.
func (l *LSM) Insert(key int32) error {
	if err := l.db.Set(encodeKey(key), nil, pebble.NoSync); err != nil {
		return errors.Wrapf(err, "lsm: insert %d", key)
	}
	return nil
}

func (l *LSM) Search(key int32) (bool, error) {
	_, closer, err := l.db.Get(encodeKey(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "lsm: search %d", key)
	}
	if err := closer.Close(); err != nil {
		return false, errors.Wrap(err, "lsm: release value")
	}
	return true, nil
}

// ─── Key encoding ─────────────────────────────────────────────────────────────

// encodeKey encodes an int32 big-endian with the sign bit flipped, so that
// byte order (what Pebble sorts by) matches numeric order.
func encodeKey(k int32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(k)^(1<<31))
	return b
}

func decodeKey(b []byte) int32 {
	return int32(binary.BigEndian.Uint32(b) ^ (1 << 31))
}

// Ascend calls fn for every key in ascending order until fn returns false.
func (l *LSM) Ascend(fn func(key int32) bool) (err error) {
	iter, err := l.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return errors.Wrap(err, "lsm: ascend")
	}
	defer func() {
		err = errors.CombineErrors(err, iter.Close())
	}()

	for valid := iter.First(); valid; valid = iter.Next() {
		k := iter.Key()
		if len(k) != 4 {
			return errors.Newf("lsm: unexpected key length %d", len(k))
		}
		if !fn(decodeKey(k)) {
			break
		}
	}
	return iter.Error()
}
