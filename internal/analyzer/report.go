package analyzer

import (
	"sort"

	"github.com/AdrianWangs/go-hstring/pkg/hstring"
)

// Report is the result of analyzing one text. Reports are shared between
// callers through the cache and must be treated as read-only.
type Report struct {
	ID        string              `json:"id" msgpack:"id"`
	Bytes     int                 `json:"bytes" msgpack:"bytes"`         // input length
	Total     int                 `json:"total" msgpack:"total"`         // words counted
	Words     []string            `json:"words" msgpack:"words"`         // distinct words, ordered
	Frequency []hstring.WordCount `json:"frequency" msgpack:"frequency"` // ordered by word
}

// Len approximates the memory held by the report, for cache accounting
func (r *Report) Len() int {
	n := len(r.ID) + 3*8
	for _, w := range r.Words {
		n += len(w)
	}
	for _, wc := range r.Frequency {
		n += len(wc.Word) + 8
	}
	return n
}

// Top returns the n most frequent words, ties broken by word order. n <= 0
// returns every word.
func (r *Report) Top(n int) []hstring.WordCount {
	top := make([]hstring.WordCount, len(r.Frequency))
	copy(top, r.Frequency)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if n > 0 && n < len(top) {
		top = top[:n]
	}
	return top
}

// buildReport runs the hstring tokenizers over text
func buildReport(id string, text *hstring.String) *Report {
	freq := text.WordFrequency()
	return &Report{
		ID:        id,
		Bytes:     text.Len(),
		Total:     freq.Total(),
		Words:     text.UniqueWords().Strings(),
		Frequency: freq.Entries(),
	}
}
