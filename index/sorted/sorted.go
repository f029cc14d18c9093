// Package sorted is the flat baseline: a single sorted slice searched with
// binary search. Inserts shift the tail, so loading n keys in random order
// costs O(n²).
package sorted

import (
	"slices"

	"github.com/ashsingh21/naive-btree/index"
)

var _ index.Set = (*List)(nil)

type List struct {
	Keys []int32
}

func New() *List {
	return &List{Keys: make([]int32, 0)}
}

// Insert keeps duplicates, placing the new copy after existing ones.
func (l *List) Insert(key int32) {
	i, found := slices.BinarySearch(l.Keys, key)
	if found {
		for i < len(l.Keys) && l.Keys[i] == key {
			i++
		}
	}
	l.Keys = slices.Insert(l.Keys, i, key)
}

func (l *List) Search(key int32) bool {
	_, found := slices.BinarySearch(l.Keys, key)
	return found
}

func (l *List) Len() int { return len(l.Keys) }
