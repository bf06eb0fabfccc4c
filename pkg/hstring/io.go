package hstring

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// WriteTo writes the raw logical bytes to w: the inline region, then the
// overflow region. It implements io.WriterTo.
func (s *String) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.inline[:min(s.size, InlineCapacity)])
	total := int64(n)
	if err != nil || s.size <= InlineCapacity {
		return total, err
	}
	m, err := w.Write(s.overflow)
	return total + int64(m), err
}

// ReadLine replaces the contents of s with the next line from r. The line ends
// at '\n' (not kept) or at end of input. It returns io.EOF when r is exhausted
// before any byte is read; the contents of s are then unspecified.
func (s *String) ReadLine(r *bufio.Reader) error {
	line, err := r.ReadBytes('\n')
	if err != nil && (err != io.EOF || len(line) == 0) {
		return err
	}
	s.Clear()
	s.AppendBytes(bytes.TrimSuffix(line, []byte{'\n'}))
	return nil
}

// Scan implements fmt.Scanner: it reads the rest of the current line into s.
func (s *String) Scan(state fmt.ScanState, verb rune) error {
	if verb != 'v' && verb != 's' {
		return fmt.Errorf("hstring: unsupported scan verb %%%c", verb)
	}
	tok, err := state.Token(false, func(r rune) bool { return r != '\n' })
	if err != nil {
		return err
	}
	s.Clear()
	s.AppendBytes(tok)

	r, _, err := state.ReadRune()
	if err == io.EOF && len(tok) == 0 {
		return io.EOF
	}
	if err == nil && r != '\n' {
		_ = state.UnreadRune()
	}
	return nil
}
