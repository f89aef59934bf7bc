package dfa

// filled returns a slice of the given size with every element set to v.
func filled[T any](size int, v T) []T {
	s := make([]T, size)
	for i := range s {
		s[i] = v
	}
	return s
}
