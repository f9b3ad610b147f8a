package post

import "sort"

// Pair is a single attribute key/value pair.
type Pair [2]string

// Key returns the attribute name.
func (p Pair) Key() string { return p[0] }

// Value returns the attribute value.
func (p Pair) Value() string { return p[1] }

// SortedPairs canonicalizes an attribute mapping into key/value pairs ordered
// lexicographically by key. It returns nil for an empty mapping.
func SortedPairs(attrs map[string]string) []Pair {
	if len(attrs) == 0 {
		return nil
	}

	pairs := make([]Pair, 0, len(attrs))
	for key, value := range attrs {
		pairs = append(pairs, Pair{key, value})
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i][0] < pairs[j][0]
	})

	return pairs
}
