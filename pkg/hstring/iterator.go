package hstring

import "iter"

// Position is the contract shared by every iterator: where it points and what
// is there.
type Position interface {
	Index() int
	Value() byte
}

// Iterators are (string, position) pairs. Any mutation that changes the
// length of the string or reallocates its overflow storage invalidates them;
// using a stale iterator is undefined. Dereferencing a position outside the
// string panics with *OutOfRangeError.

// cursor carries the arithmetic shared by all iterator kinds
type cursor struct {
	s   *String
	pos int
}

func (c cursor) at(i int) byte {
	return c.s.byteAt(i)
}

func (c cursor) put(i int, b byte) {
	c.s.own()
	*c.s.mustRef(i) = b
}

// Iterator is a mutable forward random-access iterator
type Iterator struct{ cursor }

// Begin returns an iterator at the first byte
func (s *String) Begin() Iterator { return Iterator{cursor{s, 0}} }

// End returns an iterator one past the last byte
func (s *String) End() Iterator { return Iterator{cursor{s, s.size}} }

// Index returns the logical index the iterator points at
func (it Iterator) Index() int { return it.pos }

// Value returns the byte under the iterator
func (it Iterator) Value() byte { return it.at(it.pos) }

// Set overwrites the byte under the iterator
func (it Iterator) Set(b byte) { it.put(it.pos, b) }

// Next returns the iterator advanced by one
func (it Iterator) Next() Iterator { return it.Add(1) }

// Prev returns the iterator moved back by one
func (it Iterator) Prev() Iterator { return it.Add(-1) }

// Add returns the iterator advanced by n
func (it Iterator) Add(n int) Iterator { return Iterator{cursor{it.s, it.pos + n}} }

// Sub returns the iterator moved back by n
func (it Iterator) Sub(n int) Iterator { return it.Add(-n) }

// Distance returns how many steps lead from it to o
func (it Iterator) Distance(o Iterator) int { return o.pos - it.pos }

// Equal reports whether both iterators point at the same position
func (it Iterator) Equal(o Iterator) bool { return it.pos == o.pos }

// Less reports whether it comes before o
func (it Iterator) Less(o Iterator) bool { return it.pos < o.pos }

// ConstIterator is a read-only forward random-access iterator
type ConstIterator struct{ cursor }

// CBegin returns a read-only iterator at the first byte
func (s *String) CBegin() ConstIterator { return ConstIterator{cursor{s, 0}} }

// CEnd returns a read-only iterator one past the last byte
func (s *String) CEnd() ConstIterator { return ConstIterator{cursor{s, s.size}} }

// Index returns the logical index the iterator points at
func (it ConstIterator) Index() int { return it.pos }

// Value returns the byte under the iterator
func (it ConstIterator) Value() byte { return it.at(it.pos) }

// Next returns the iterator advanced by one
func (it ConstIterator) Next() ConstIterator { return it.Add(1) }

// Prev returns the iterator moved back by one
func (it ConstIterator) Prev() ConstIterator { return it.Add(-1) }

// Add returns the iterator advanced by n
func (it ConstIterator) Add(n int) ConstIterator { return ConstIterator{cursor{it.s, it.pos + n}} }

// Sub returns the iterator moved back by n
func (it ConstIterator) Sub(n int) ConstIterator { return it.Add(-n) }

// Distance returns how many steps lead from it to o
func (it ConstIterator) Distance(o ConstIterator) int { return o.pos - it.pos }

// Equal reports whether both iterators point at the same position
func (it ConstIterator) Equal(o ConstIterator) bool { return it.pos == o.pos }

// Less reports whether it comes before o
func (it ConstIterator) Less(o ConstIterator) bool { return it.pos < o.pos }

// ReverseIterator walks the string from the last byte to the first. A reverse
// position p refers to logical index p-1, so RBegin sits at Len and REnd at 0.
type ReverseIterator struct{ cursor }

// RBegin returns a reverse iterator at the last byte
func (s *String) RBegin() ReverseIterator { return ReverseIterator{cursor{s, s.size}} }

// REnd returns a reverse iterator one before the first byte
func (s *String) REnd() ReverseIterator { return ReverseIterator{cursor{s, 0}} }

// Index returns the logical index the iterator points at (-1 for REnd)
func (it ReverseIterator) Index() int { return it.pos - 1 }

// Value returns the byte under the iterator
func (it ReverseIterator) Value() byte { return it.at(it.pos - 1) }

// Set overwrites the byte under the iterator
func (it ReverseIterator) Set(b byte) { it.put(it.pos-1, b) }

// Next returns the iterator moved one byte toward the front
func (it ReverseIterator) Next() ReverseIterator { return it.Add(1) }

// Prev returns the iterator moved one byte toward the back
func (it ReverseIterator) Prev() ReverseIterator { return it.Add(-1) }

// Add returns the iterator advanced by n, i.e. n bytes closer to the front
func (it ReverseIterator) Add(n int) ReverseIterator {
	return ReverseIterator{cursor{it.s, it.pos - n}}
}

// Sub returns the iterator moved back by n, i.e. n bytes closer to the end
func (it ReverseIterator) Sub(n int) ReverseIterator { return it.Add(-n) }

// Distance returns how many steps lead from it to o
func (it ReverseIterator) Distance(o ReverseIterator) int { return it.pos - o.pos }

// Equal reports whether both iterators point at the same position
func (it ReverseIterator) Equal(o ReverseIterator) bool { return it.pos == o.pos }

// Less reports whether it comes before o in reverse order
func (it ReverseIterator) Less(o ReverseIterator) bool { return it.pos > o.pos }

// All yields every (index, byte) pair front to back
func (s *String) All() iter.Seq2[int, byte] {
	return func(yield func(int, byte) bool) {
		for it := s.CBegin(); it.Less(s.CEnd()); it = it.Next() {
			if !yield(it.Index(), it.Value()) {
				return
			}
		}
	}
}

// Backward yields every (index, byte) pair back to front
func (s *String) Backward() iter.Seq2[int, byte] {
	return func(yield func(int, byte) bool) {
		for it := s.RBegin(); it.Less(s.REnd()); it = it.Next() {
			if !yield(it.Index(), it.Value()) {
				return
			}
		}
	}
}
