// Package hstring provides String, a byte string with small-buffer optimization.
//
// The first InlineCapacity bytes of a String live in a fixed array inside the
// value itself; only the bytes beyond that spill into a heap-backed overflow
// slice. Short strings therefore never allocate. All operations are byte
// oriented and classify bytes the way the C locale does.
//
// A String is not safe for concurrent mutation. Plain assignment copies the
// inline array and, until the copy is next written, shares the overflow
// backing array: a String remembers its own address, and the first mutation
// through a value living elsewhere moves its overflow onto a private array.
// Writes through a copy therefore never reach the source. The source itself
// keeps writing in place, so use Clone when a copy must stay fixed while the
// source changes.
package hstring

import (
	"slices"
	"strings"
)

// InlineCapacity is the number of bytes stored without heap allocation
const InlineCapacity = 20

// String is a mutable byte string. The zero value is an empty string ready to use.
type String struct {
	inline   [InlineCapacity]byte // logical bytes [0, min(size, InlineCapacity))
	overflow []byte               // logical bytes [InlineCapacity, size), empty otherwise
	size     int                  // logical length
	capacity int                  // InlineCapacity + cap(overflow)
	addr     *String              // owner of overflow's backing array, nil until first write
}

// New returns an empty string
func New() String {
	return String{capacity: InlineCapacity}
}

// FromBytes builds a string holding a copy of b
func FromBytes(b []byte) String {
	var s String
	s.AppendBytes(b)
	return s
}

// FromString builds a string holding the bytes of str
func FromString(str string) String {
	return FromBytes([]byte(str))
}

// Repeat builds a string of n copies of c. n <= 0 yields an empty string.
func Repeat(n int, c byte) String {
	s := New()
	if n <= 0 {
		return s
	}
	inline := min(n, InlineCapacity)
	for i := 0; i < inline; i++ {
		s.inline[i] = c
	}
	if n > InlineCapacity {
		s.overflow = make([]byte, n-InlineCapacity)
		for i := range s.overflow {
			s.overflow[i] = c
		}
	}
	s.size = n
	s.recompute()
	return s
}

// Len returns the number of logical bytes
func (s *String) Len() int {
	return s.size
}

// Cap returns the advisory capacity: InlineCapacity plus the overflow allocation.
// It is always >= Len but growth never depends on it.
func (s *String) Cap() int {
	if s.capacity < InlineCapacity {
		return InlineCapacity
	}
	return s.capacity
}

// IsEmpty reports whether the string has no bytes
func (s *String) IsEmpty() bool {
	return s.size == 0
}

// Clear empties the string. The overflow allocation is kept for reuse.
func (s *String) Clear() {
	s.size = 0
	s.overflow = s.overflow[:0]
	s.recompute()
}

// Clone returns a deep copy that shares no storage with s
func (s *String) Clone() String {
	c := String{inline: s.inline, size: s.size}
	if len(s.overflow) > 0 {
		c.overflow = make([]byte, len(s.overflow))
		copy(c.overflow, s.overflow)
	}
	c.recompute()
	return c
}

// own makes s the sole writer of its overflow backing array. Every mutation
// that may store into overflow calls it first.
func (s *String) own() {
	if s.addr == s {
		return
	}
	if cap(s.overflow) > 0 {
		s.overflow = slices.Clone(s.overflow)
		s.recompute()
	}
	s.addr = s
}

// ref routes a logical index to its storage slot. Every read and write of a
// byte goes through here.
func (s *String) ref(i int) (*byte, error) {
	if i < 0 || i >= s.size {
		return nil, &OutOfRangeError{Index: i, Size: s.size}
	}
	if i < InlineCapacity {
		return &s.inline[i], nil
	}
	return &s.overflow[i-InlineCapacity], nil
}

// mustRef is ref for indices the caller has already bounded. It panics with
// *OutOfRangeError otherwise, the same way slice indexing panics.
func (s *String) mustRef(i int) *byte {
	p, err := s.ref(i)
	if err != nil {
		panic(err)
	}
	return p
}

func (s *String) byteAt(i int) byte {
	return *s.mustRef(i)
}

// At returns the byte at logical index i
func (s *String) At(i int) (byte, error) {
	p, err := s.ref(i)
	if err != nil {
		return 0, err
	}
	return *p, nil
}

// Set overwrites the byte at logical index i
func (s *String) Set(i int, c byte) error {
	s.own()
	p, err := s.ref(i)
	if err != nil {
		return err
	}
	*p = c
	return nil
}

// Append adds c to the end of the string in amortized O(1)
func (s *String) Append(c byte) {
	s.own()
	if s.size < InlineCapacity {
		s.inline[s.size] = c
	} else {
		s.overflow = append(s.overflow, c)
	}
	s.size++
	s.recompute()
}

// AppendBytes adds every byte of b in order
func (s *String) AppendBytes(b []byte) {
	s.own()
	if s.size < InlineCapacity {
		n := copy(s.inline[s.size:], b)
		s.size += n
		b = b[n:]
	}
	if len(b) > 0 {
		s.overflow = append(s.overflow, b...)
		s.size += len(b)
	}
	s.recompute()
}

// AppendString adds every logical byte of other in order. other may be s itself.
func (s *String) AppendString(other *String) {
	if other == s {
		s.AppendBytes(s.Bytes())
		return
	}
	s.AppendBytes(other.inline[:min(other.size, InlineCapacity)])
	s.AppendBytes(other.overflow)
}

// Write implements io.Writer. It never fails.
func (s *String) Write(p []byte) (int, error) {
	s.AppendBytes(p)
	return len(p), nil
}

// WriteByte implements io.ByteWriter. It never fails.
func (s *String) WriteByte(c byte) error {
	s.Append(c)
	return nil
}

// Bytes returns a copy of the logical byte sequence
func (s *String) Bytes() []byte {
	b := make([]byte, 0, s.size)
	b = append(b, s.inline[:min(s.size, InlineCapacity)]...)
	return append(b, s.overflow...)
}

// String returns the logical byte sequence as a Go string. The value
// receiver lets fmt print String values that are not addressable.
func (s String) String() string {
	return s.key()
}

// key returns the bytes as a Go string with a single allocation
func (s *String) key() string {
	var b strings.Builder
	b.Grow(s.size)
	b.Write(s.inline[:min(s.size, InlineCapacity)])
	b.Write(s.overflow)
	return b.String()
}

// truncate shrinks the string to n bytes, n <= size
func (s *String) truncate(n int) {
	s.size = n
	if n <= InlineCapacity {
		s.overflow = s.overflow[:0]
	} else {
		s.overflow = s.overflow[:n-InlineCapacity]
	}
	s.recompute()
}

func (s *String) recompute() {
	s.capacity = InlineCapacity + cap(s.overflow)
}
