package hstring

// Compare orders two strings byte by byte up to the shorter length; if that
// prefix is equal the shorter string sorts first. It returns -1, 0 or +1.
func Compare(a, b *String) int {
	n := min(a.size, b.size)
	for i := 0; i < n; i++ {
		x, y := a.byteAt(i), b.byteAt(i)
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	switch {
	case a.size < b.size:
		return -1
	case a.size > b.size:
		return 1
	}
	return 0
}

// Compare is the method form of Compare(s, o)
func (s *String) Compare(o *String) int {
	return Compare(s, o)
}

// Equal reports whether both strings hold the same bytes
func (s *String) Equal(o *String) bool {
	return s.size == o.size && Compare(s, o) == 0
}

// Less reports whether s sorts before o
func (s *String) Less(o *String) bool {
	return Compare(s, o) < 0
}

// Greater reports whether s sorts after o
func (s *String) Greater(o *String) bool {
	return Compare(s, o) > 0
}
