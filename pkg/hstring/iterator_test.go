package hstring

import (
	"testing"
)

func TestForwardIteration(t *testing.T) {
	const text = "iterate across the inline and overflow regions"
	s := FromString(text)

	var got []byte
	for it := s.Begin(); !it.Equal(s.End()); it = it.Next() {
		got = append(got, it.Value())
	}
	if string(got) != text {
		t.Fatalf("forward iteration gave %q", got)
	}
	if d := s.Begin().Distance(s.End()); d != len(text) {
		t.Fatalf("distance %d, want %d", d, len(text))
	}
}

func TestReverseIteration(t *testing.T) {
	const text = "abcdefghijklmnopqrstuvwxyz0123"
	s := FromString(text)

	var got []byte
	for it := s.RBegin(); !it.Equal(s.REnd()); it = it.Next() {
		got = append(got, it.Value())
	}
	for i := range got {
		if got[i] != text[len(text)-1-i] {
			t.Fatalf("reverse iteration gave %q", got)
		}
	}
	if d := s.RBegin().Distance(s.REnd()); d != len(text) {
		t.Fatalf("reverse distance %d, want %d", d, len(text))
	}
	if idx := s.RBegin().Index(); idx != len(text)-1 {
		t.Fatalf("RBegin index %d", idx)
	}
	if !s.RBegin().Less(s.REnd()) {
		t.Fatal("RBegin should come before REnd")
	}
}

func TestIteratorArithmetic(t *testing.T) {
	s := FromString("0123456789abcdefghijKLMNOP")
	it := s.Begin().Add(22)
	if it.Value() != 'M' {
		t.Fatalf("Begin+22 = %q", it.Value())
	}
	it = it.Sub(3)
	if it.Value() != 'j' || it.Index() != 19 {
		t.Fatalf("after Sub(3): %q at %d", it.Value(), it.Index())
	}
	if it.Next().Value() != 'K' || it.Prev().Value() != 'i' {
		t.Fatal("Next/Prev crossed the region boundary incorrectly")
	}
	end := s.End()
	if !it.Less(end) || end.Less(it) {
		t.Fatal("ordering by index broken")
	}
	if end.Sub(1).Value() != 'P' {
		t.Fatalf("End-1 = %q", end.Sub(1).Value())
	}

	c := s.CBegin().Add(5)
	if c.Value() != '5' || c.Distance(s.CEnd()) != s.Len()-5 {
		t.Fatalf("const iterator at %d reads %q", c.Index(), c.Value())
	}

	r := s.RBegin().Add(2)
	if r.Value() != 'N' {
		t.Fatalf("RBegin+2 = %q", r.Value())
	}
}

func TestIteratorSet(t *testing.T) {
	s := FromString("aaaaaaaaaaaaaaaaaaaaaaaa")
	s.Begin().Set('X')
	s.End().Sub(1).Set('Y')
	s.RBegin().Add(4).Set('Z')
	if s.String() != "XaaaaaaaaaaaaaaaaaaZaaaY" {
		t.Fatalf("got %q", s.String())
	}
}

func TestIteratorsSatisfyPosition(t *testing.T) {
	s := FromString("pos")
	positions := []Position{s.Begin(), s.CBegin().Add(1), s.RBegin()}
	want := []byte{'p', 'o', 's'}
	for i, p := range positions {
		if p.Value() != want[i] {
			t.Fatalf("position %d reads %q, want %q", i, p.Value(), want[i])
		}
	}
}

func TestDereferenceEndPanics(t *testing.T) {
	s := FromString("abc")
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !IsOutOfRange(err) {
			t.Fatalf("expected out of range panic, got %v", r)
		}
	}()
	_ = s.End().Value()
}

func TestRangeOverAllAndBackward(t *testing.T) {
	s := FromString("range over func")
	var fwd []byte
	for i, c := range s.All() {
		if i != len(fwd) {
			t.Fatalf("index %d out of sequence", i)
		}
		fwd = append(fwd, c)
	}
	if string(fwd) != "range over func" {
		t.Fatalf("All gave %q", fwd)
	}

	var back []byte
	for _, c := range s.Backward() {
		back = append(back, c)
	}
	if string(back) != "cnuf revo egnar" {
		t.Fatalf("Backward gave %q", back)
	}

	count := 0
	for range s.All() {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Fatalf("early break yielded %d", count)
	}
}
