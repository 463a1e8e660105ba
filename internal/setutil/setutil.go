// Package setutil provides deterministic helpers for the state and symbol
// sets used throughout the engines. Anything whose iteration order is
// observable in output goes through Sorted.
package setutil

import (
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Sorted returns the members of set in ascending order.
func Sorted[T constraints.Ordered](set map[T]bool) []T {
	out := maps.Keys(set)
	slices.Sort(out)
	return out
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	out := maps.Keys(m)
	slices.Sort(out)
	return out
}

// Clone returns an independent copy of set.
func Clone[T comparable](set map[T]bool) map[T]bool {
	return maps.Clone(set)
}

// CloneMap returns a copy of m. Values are copied shallowly.
func CloneMap[K comparable, V any](m map[K]V) map[K]V {
	return maps.Clone(m)
}

// FromSlice builds a set from a slice, ignoring duplicates.
func FromSlice[T comparable](members []T) map[T]bool {
	set := make(map[T]bool, len(members))
	for _, m := range members {
		set[m] = true
	}
	return set
}

// Intersects reports whether the two sets share a member.
func Intersects[T comparable](a, b map[T]bool) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for m := range a {
		if b[m] {
			return true
		}
	}
	return false
}

// Key returns a canonical identifier for a set of strings: the sorted
// members joined with "," inside braces. A "\" or "," inside a member is
// backslash-escaped, making the key injective over sets of arbitrary
// strings: equal sets always map to the same key and unequal sets never do.
// Key is used to intern subsets during subset construction and to name
// merged blocks during minimization.
func Key[T ~string](set map[T]bool) string {
	members := Sorted(set)
	var b strings.Builder
	b.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			b.WriteByte(',')
		}
		for _, r := range string(m) {
			if r == '\\' || r == ',' {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('}')
	return b.String()
}
