package minisql

import "strings"

// parsebuf is a cursor over query text with utility methods for writing
// hand-crafted scanners.
type parsebuf struct {
	pos int
	str string
}

func newParsebuf(s string) *parsebuf {
	return &parsebuf{0, s}
}

// more returns true if there are characters left to read.
func (b *parsebuf) more() bool {
	return b.pos < len(b.str)
}

// get reads one character. Returns the empty string at the end of input.
func (b *parsebuf) get() string {
	if !b.more() {
		return ""
	}
	s := b.str[b.pos : b.pos+1]
	b.pos++
	return s
}

// peek returns what get would return, without consuming it.
func (b *parsebuf) peek() string {
	if !b.more() {
		return ""
	}
	return b.str[b.pos : b.pos+1]
}

// set reads and returns the longest run of characters from the given set.
func (b *parsebuf) set(allowed string) string {
	s := strings.Builder{}
	for b.more() && strings.Contains(allowed, b.peek()) {
		s.WriteString(b.get())
	}
	return s.String()
}

// space skips a run of whitespace.
func (b *parsebuf) space() {
	b.set(" \t\r\n")
}
