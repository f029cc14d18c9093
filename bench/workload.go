package bench

import (
	"github.com/cockroachdb/errors"
	"github.com/go-faker/faker/v4"
)

// KeyOrder selects the order in which a workload presents its keys.
type KeyOrder string

const (
	Ascending  KeyOrder = "asc"
	Descending KeyOrder = "desc"
	Shuffled   KeyOrder = "shuffle"
)

func ParseKeyOrder(s string) (KeyOrder, error) {
	switch o := KeyOrder(s); o {
	case Ascending, Descending, Shuffled:
		return o, nil
	}
	return "", errors.Newf("bench: unknown key order %q (want asc, desc or shuffle)", s)
}

// Keys returns the n distinct keys 0..n-1 in the given order.
func Keys(order KeyOrder, n int) ([]int32, error) {
	if n < 0 {
		return nil, errors.Newf("bench: negative key count %d", n)
	}
	keys := make([]int32, n)
	switch order {
	case Ascending:
		for i := range keys {
			keys[i] = int32(i)
		}
	case Descending:
		for i := range keys {
			keys[i] = int32(n - 1 - i)
		}
	case Shuffled:
		if n == 0 {
			return keys, nil
		}
		perm, err := faker.RandomInt(0, n-1)
		if err != nil {
			return nil, errors.Wrap(err, "bench: shuffle keys")
		}
		if len(perm) != n {
			return nil, errors.AssertionFailedf("bench: shuffle returned %d keys, want %d", len(perm), n)
		}
		for i, k := range perm {
			keys[i] = int32(k)
		}
	default:
		return nil, errors.Newf("bench: unknown key order %q", order)
	}
	return keys, nil
}
