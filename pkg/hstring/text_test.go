package hstring

import (
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"
)

const catText = "The cat sat on the MAT. The cat ran."

func TestTrim(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{" \t\n\v\f\r", ""},
		{"abc", "abc"},
		{"  abc", "abc"},
		{"abc  ", "abc"},
		{"\t abc def \n", "abc def"},
		{"          " + strings.Repeat("long", 10) + "          ", strings.Repeat("long", 10)},
		{strings.Repeat(" ", 25) + "x", "x"},
		{"x" + strings.Repeat(" ", 25), "x"},
		{"\xa0x\xa0", "\xa0x\xa0"},
	}
	for _, tt := range tests {
		s := FromString(tt.in)
		s.Trim()
		if s.String() != tt.want {
			t.Fatalf("Trim(%q) = %q, want %q", tt.in, s.String(), tt.want)
		}
		checkInvariants(t, &s)
	}
}

func TestTrimIsIdempotent(t *testing.T) {
	for _, in := range []string{"  a b  ", "", "   ", "no-space", "  " + strings.Repeat("ab ", 20)} {
		x := FromString(in)
		x.Trim()
		y := x.Clone()
		y.Trim()
		if !x.Equal(&y) {
			t.Fatalf("trim not idempotent for %q: %q vs %q", in, x.String(), y.String())
		}
	}
}

func TestToLowerAndUpper(t *testing.T) {
	s := FromString("Hello, WORLD! Mixed Case Beyond Twenty Bytes 123")
	s.ToLower()
	if s.String() != "hello, world! mixed case beyond twenty bytes 123" {
		t.Fatalf("ToLower gave %q", s.String())
	}
	once := s.Clone()
	s.ToLower().ToLower()
	if !s.Equal(&once) {
		t.Fatal("ToLower is not idempotent")
	}
	if got := s.ToUpper().String(); got != "HELLO, WORLD! MIXED CASE BEYOND TWENTY BYTES 123" {
		t.Fatalf("ToUpper gave %q", got)
	}

	nonASCII := FromString("\xc4\xd6")
	nonASCII.ToLower()
	if nonASCII.String() != "\xc4\xd6" {
		t.Fatal("bytes above 0x7f must not be folded")
	}
}

func TestUniqueWords(t *testing.T) {
	s := FromString(catText)
	set := s.UniqueWords()
	want := []string{"cat", "mat", "on", "ran", "sat", "the"}
	if !reflect.DeepEqual(set.Strings(), want) {
		t.Fatalf("UniqueWords = %v, want %v", set.Strings(), want)
	}
	the := FromString("the")
	if !set.Contains(&the) {
		t.Fatal("set should contain \"the\"")
	}
	if s.String() != catText {
		t.Fatal("UniqueWords must not modify the receiver")
	}
}

func TestWordFrequency(t *testing.T) {
	s := FromString(catText)
	freq := s.WordFrequency()
	want := map[string]int{"the": 3, "cat": 2, "sat": 1, "on": 1, "mat": 1, "ran": 1}
	if freq.Len() != len(want) {
		t.Fatalf("got %d keys, want %d", freq.Len(), len(want))
	}
	for w, n := range want {
		key := FromString(w)
		if got := freq.Count(&key); got != n {
			t.Fatalf("count(%q) = %d, want %d", w, got, n)
		}
	}
	if freq.Total() != 9 {
		t.Fatalf("total %d, want 9", freq.Total())
	}
	entries := freq.Entries()
	if entries[0].Word != "cat" || entries[len(entries)-1].Word != "the" {
		t.Fatalf("entries not ordered: %v", entries)
	}
}

func TestWordFrequencyScales(t *testing.T) {
	if testing.Short() {
		t.Skip("large input")
	}
	const n = 100_000
	var b strings.Builder
	word := func(i int) string {
		var w [4]byte
		for j := 3; j >= 0; j-- {
			w[j] = 'a' + byte(i%26)
			i /= 26
		}
		return string(w[:])
	}
	for i := n - 1; i >= 0; i-- {
		b.WriteString(word(i))
		b.WriteByte(' ')
		b.WriteString(word(i))
		b.WriteByte('\n')
	}
	s := FromString(b.String())

	start := time.Now()
	freq := s.WordFrequency()
	set := s.UniqueWords()
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Fatalf("%d distinct words took %v", n, elapsed)
	}

	if freq.Len() != n || set.Len() != n || freq.Total() != 2*n {
		t.Fatalf("len %d, set %d, total %d", freq.Len(), set.Len(), freq.Total())
	}
	entries := freq.Entries()
	if !slices.IsSortedFunc(entries, func(a, b WordCount) int { return strings.Compare(a.Word, b.Word) }) {
		t.Fatal("entries not ordered")
	}
	if entries[0].Word != "aaaa" || entries[0].Count != 2 {
		t.Fatalf("first entry %+v", entries[0])
	}
	if !slices.IsSorted(set.Strings()) {
		t.Fatal("set not ordered")
	}
	mid := FromString(word(n / 2))
	if freq.Count(&mid) != 2 || !set.Contains(&mid) {
		t.Fatalf("lookup of %q failed", mid.String())
	}
}

func TestWordSetInsertAfterRead(t *testing.T) {
	set := NewWordSet()
	for _, w := range []string{"pear", "apple", "pear"} {
		v := FromString(w)
		set.Insert(&v)
	}
	if got := set.Strings(); !reflect.DeepEqual(got, []string{"apple", "pear"}) {
		t.Fatalf("Strings = %v", got)
	}
	fig := FromString("fig")
	if !set.Insert(&fig) || set.Insert(&fig) {
		t.Fatal("Insert reported the wrong outcome")
	}
	var got []string
	for w := range set.All() {
		got = append(got, w.String())
	}
	if !reflect.DeepEqual(got, []string{"apple", "fig", "pear"}) {
		t.Fatalf("All = %v", got)
	}

	var fm FrequencyMap
	for _, w := range []string{"b", "a", "b"} {
		v := FromString(w)
		fm.Add(&v)
	}
	if e := fm.Entries(); len(e) != 2 || e[0] != (WordCount{"a", 1}) || e[1] != (WordCount{"b", 2}) {
		t.Fatalf("Entries = %v", e)
	}
	c := FromString("c")
	fm.Add(&c)
	b := FromString("b")
	if fm.Count(&b) != 2 || fm.Keys()[2].String() != "c" {
		t.Fatalf("after add: %v", fm.Entries())
	}
}

func TestWordsHandlesLongWordsAndTrailingFlush(t *testing.T) {
	long := strings.Repeat("abc", 12)
	s := FromString("one,two;;" + long + " THREE")
	var got []string
	for _, w := range s.Words() {
		got = append(got, w.String())
	}
	want := []string{"one", "two", long, "three"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Words = %v, want %v", got, want)
	}

	empty := FromString(" \t 123 ... ")
	if n := empty.UniqueWords().Len(); n != 0 {
		t.Fatalf("expected no words, got %d", n)
	}
}

func TestStartsAndEndsWith(t *testing.T) {
	tests := []struct {
		s, p       string
		start, end bool
	}{
		{"hello world", "hello", true, false},
		{"hello world", "world", false, true},
		{"hello", "hello", true, true},
		{"abc", "", true, true},
		{"", "", true, true},
		{"ab", "abc", false, false},
		{"", "x", false, false},
		{"a string that is long enough to overflow", "a string that is long", true, false},
		{"a string that is long enough to overflow", "enough to overflow", false, true},
	}
	for _, tt := range tests {
		s, p := FromString(tt.s), FromString(tt.p)
		if got := s.StartsWith(&p); got != tt.start {
			t.Fatalf("StartsWith(%q, %q) = %v", tt.s, tt.p, got)
		}
		if got := s.EndsWith(&p); got != tt.end {
			t.Fatalf("EndsWith(%q, %q) = %v", tt.s, tt.p, got)
		}
	}
}

func TestJoin(t *testing.T) {
	sep := FromString(", ")
	parts := []String{FromString("a"), FromString("b"), FromString("c")}
	if got := sep.Join(parts); got.String() != "a, b, c" {
		t.Fatalf("Join = %q", got.String())
	}
	if got := sep.Join(nil); got.String() != "" || got.Len() != 0 {
		t.Fatalf("Join(nil) = %q", got.String())
	}
	one := []String{FromString("solo")}
	if got := sep.Join(one); got.String() != "solo" {
		t.Fatalf("Join(one) = %q", got.String())
	}

	longSep := FromString(" <-- separator longer than twenty --> ")
	joined := longSep.Join(parts)
	if joined.String() != strings.Join([]string{"a", "b", "c"}, longSep.String()) {
		t.Fatalf("Join with long separator = %q", joined.String())
	}
	checkInvariants(t, &joined)
}

func TestWordGenerator(t *testing.T) {
	g := NewSeededWordGenerator(42)
	for _, n := range []int{0, 1, 5, 20, 64} {
		w := g.Generate(n)
		if w.Len() != n {
			t.Fatalf("Generate(%d) has length %d", n, w.Len())
		}
		for _, c := range w.All() {
			if c < 'a' || c > 'z' {
				t.Fatalf("Generate produced %q", c)
			}
		}
	}
	if w := g.Generate(-1); !w.IsEmpty() {
		t.Fatal("negative length should yield empty word")
	}

	a := NewSeededWordGenerator(7).Generate(40)
	b := NewSeededWordGenerator(7).Generate(40)
	if !a.Equal(&b) {
		t.Fatal("same seed should give the same word")
	}

	if w := GenerateRandomWord(12); w.Len() != 12 {
		t.Fatalf("GenerateRandomWord length %d", w.Len())
	}
}
