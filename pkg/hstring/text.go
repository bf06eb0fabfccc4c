package hstring

// C-locale classification, the byte taken as unsigned

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func toLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func toUpper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// Trim removes leading and trailing whitespace in place. Retained bytes are
// shifted down to index 0.
func (s *String) Trim() {
	if s.size == 0 {
		return
	}

	begin := 0
	for begin < s.size && isSpace(s.byteAt(begin)) {
		begin++
	}
	if begin == s.size {
		s.Clear()
		return
	}

	end := s.size
	for end > begin && isSpace(s.byteAt(end-1)) {
		end--
	}

	n := end - begin
	if begin > 0 {
		s.own()
		for i := 0; i < n; i++ {
			*s.mustRef(i) = s.byteAt(i + begin)
		}
	}
	s.truncate(n)
}

// ToLower folds A-Z to a-z in place and returns s for chaining
func (s *String) ToLower() *String {
	for it := s.Begin(); it.Less(s.End()); it = it.Next() {
		it.Set(toLower(it.Value()))
	}
	return s
}

// ToUpper folds a-z to A-Z in place and returns s for chaining
func (s *String) ToUpper() *String {
	for it := s.Begin(); it.Less(s.End()); it = it.Next() {
		it.Set(toUpper(it.Value()))
	}
	return s
}

// eachWord calls fn for every maximal run of letters in a trimmed, lowercased
// copy of s. word is reused between calls.
func (s *String) eachWord(fn func(word *String)) {
	tmp := s.Clone()
	tmp.Trim()
	tmp.ToLower()

	var word String
	for it := tmp.CBegin(); it.Less(tmp.CEnd()); it = it.Next() {
		c := it.Value()
		if isAlpha(c) {
			word.Append(c)
			continue
		}
		if !word.IsEmpty() {
			fn(&word)
			word.Clear()
		}
	}
	if !word.IsEmpty() {
		fn(&word)
	}
}

// Words returns the lowercased words of s in order of appearance
func (s *String) Words() []String {
	var words []String
	s.eachWord(func(w *String) {
		words = append(words, w.Clone())
	})
	return words
}

// UniqueWords returns the distinct lowercased words of s
func (s *String) UniqueWords() *WordSet {
	set := NewWordSet()
	s.eachWord(func(w *String) {
		set.Insert(w)
	})
	set.sort()
	return set
}

// WordFrequency counts every lowercased word of s
func (s *String) WordFrequency() *FrequencyMap {
	freq := NewFrequencyMap()
	s.eachWord(func(w *String) {
		freq.Add(w)
	})
	freq.sort()
	return freq
}

// StartsWith reports whether s begins with prefix
func (s *String) StartsWith(prefix *String) bool {
	if prefix.size > s.size {
		return false
	}
	for i := 0; i < prefix.size; i++ {
		if s.byteAt(i) != prefix.byteAt(i) {
			return false
		}
	}
	return true
}

// EndsWith reports whether s ends with suffix
func (s *String) EndsWith(suffix *String) bool {
	if suffix.size > s.size {
		return false
	}
	offset := s.size - suffix.size
	for i := 0; i < suffix.size; i++ {
		if s.byteAt(offset+i) != suffix.byteAt(i) {
			return false
		}
	}
	return true
}

// Join concatenates parts with s between each pair
func (s *String) Join(parts []String) String {
	out := New()
	for i := range parts {
		if i > 0 {
			out.AppendString(s)
		}
		out.AppendString(&parts[i])
	}
	return out
}
