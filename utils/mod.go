package utils

import "cmp"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// ArgMaxBy returns the element of slice with the largest key, keeping the
// first one on ties. It panics on an empty slice.
func ArgMaxBy[T any, K cmp.Ordered](slice []T, key func(T) K) T {
	if len(slice) == 0 {
		panic("ArgMaxBy of empty slice")
	}
	best := slice[0]
	bestKey := key(best)
	for _, v := range slice[1:] {
		if k := key(v); k > bestKey {
			best = v
			bestKey = k
		}
	}
	return best
}
