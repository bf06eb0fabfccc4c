package hstring

import (
	"iter"
	"slices"
)

// WordSet is an ordered set of strings. Membership is a hash lookup; the
// members are sorted by Compare once, on the first ordered read after an
// insert. A WordSet is not safe for concurrent use while it is being filled.
type WordSet struct {
	members map[string]struct{}
	items   []String
	dirty   bool // items needs sorting
}

// NewWordSet returns an empty set
func NewWordSet() *WordSet {
	return &WordSet{members: make(map[string]struct{})}
}

// Insert adds a copy of w. It reports false when an equal string is already present.
func (ws *WordSet) Insert(w *String) bool {
	if ws.members == nil {
		ws.members = make(map[string]struct{})
	}
	k := w.key()
	if _, ok := ws.members[k]; ok {
		return false
	}
	ws.members[k] = struct{}{}
	ws.items = append(ws.items, w.Clone())
	ws.dirty = true
	return true
}

// Contains reports whether an equal string is in the set
func (ws *WordSet) Contains(w *String) bool {
	_, ok := ws.members[w.key()]
	return ok
}

// Len returns the number of distinct strings
func (ws *WordSet) Len() int {
	return len(ws.items)
}

func (ws *WordSet) sort() {
	if !ws.dirty {
		return
	}
	slices.SortFunc(ws.items, func(a, b String) int { return Compare(&a, &b) })
	ws.dirty = false
}

// Items returns copies of the members in order
func (ws *WordSet) Items() []String {
	ws.sort()
	out := make([]String, len(ws.items))
	for i := range ws.items {
		out[i] = ws.items[i].Clone()
	}
	return out
}

// Strings returns the members as Go strings in order
func (ws *WordSet) Strings() []string {
	ws.sort()
	out := make([]string, len(ws.items))
	for i := range ws.items {
		out[i] = ws.items[i].key()
	}
	return out
}

// All yields copies of the members in order
func (ws *WordSet) All() iter.Seq[String] {
	return func(yield func(String) bool) {
		ws.sort()
		for i := range ws.items {
			if !yield(ws.items[i].Clone()) {
				return
			}
		}
	}
}

// WordCount is one entry of a FrequencyMap
type WordCount struct {
	Word  string `json:"word" msgpack:"word"`
	Count int    `json:"count" msgpack:"count"`
}

type freqEntry struct {
	key   string
	word  String
	count int
}

// FrequencyMap counts occurrences per string. Counting is a hash lookup; keys
// are sorted by Compare on the first ordered read after a new key arrives.
// A FrequencyMap is not safe for concurrent use while it is being filled.
type FrequencyMap struct {
	index   map[string]int // key -> position in entries
	entries []freqEntry
	dirty   bool
}

// NewFrequencyMap returns an empty map
func NewFrequencyMap() *FrequencyMap {
	return &FrequencyMap{index: make(map[string]int)}
}

// Add counts one more occurrence of w and returns the new count
func (fm *FrequencyMap) Add(w *String) int {
	if fm.index == nil {
		fm.index = make(map[string]int)
	}
	k := w.key()
	i, ok := fm.index[k]
	if !ok {
		i = len(fm.entries)
		fm.index[k] = i
		fm.entries = append(fm.entries, freqEntry{key: k, word: w.Clone()})
		fm.dirty = true
	}
	fm.entries[i].count++
	return fm.entries[i].count
}

// Count returns the occurrences of w, 0 when absent
func (fm *FrequencyMap) Count(w *String) int {
	i, ok := fm.index[w.key()]
	if !ok {
		return 0
	}
	return fm.entries[i].count
}

// Len returns the number of distinct keys
func (fm *FrequencyMap) Len() int {
	return len(fm.entries)
}

// Total returns the sum of all counts
func (fm *FrequencyMap) Total() int {
	total := 0
	for _, e := range fm.entries {
		total += e.count
	}
	return total
}

func (fm *FrequencyMap) sort() {
	if !fm.dirty {
		return
	}
	slices.SortFunc(fm.entries, func(a, b freqEntry) int { return Compare(&a.word, &b.word) })
	for i := range fm.entries {
		fm.index[fm.entries[i].key] = i
	}
	fm.dirty = false
}

// Keys returns copies of the keys in order
func (fm *FrequencyMap) Keys() []String {
	fm.sort()
	out := make([]String, len(fm.entries))
	for i := range fm.entries {
		out[i] = fm.entries[i].word.Clone()
	}
	return out
}

// All yields (key copy, count) pairs in key order
func (fm *FrequencyMap) All() iter.Seq2[String, int] {
	return func(yield func(String, int) bool) {
		fm.sort()
		for i := range fm.entries {
			if !yield(fm.entries[i].word.Clone(), fm.entries[i].count) {
				return
			}
		}
	}
}

// Entries returns the map as a slice in key order
func (fm *FrequencyMap) Entries() []WordCount {
	fm.sort()
	out := make([]WordCount, len(fm.entries))
	for i := range fm.entries {
		out[i] = WordCount{Word: fm.entries[i].key, Count: fm.entries[i].count}
	}
	return out
}
