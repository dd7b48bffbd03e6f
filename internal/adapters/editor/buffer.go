// Package editor provides an in-memory note buffer implementing ports.Editor.
package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/0xcro3dile/wordlookup-go/internal/domain/entities"
)

// Buffer holds a note and a selection over it.
type Buffer struct {
	lines    []string
	from, to entities.Position
}

// NewBuffer creates a buffer over text with the given selection.
// Positions are clamped to the document and put in order.
func NewBuffer(text string, from, to entities.Position) *Buffer {
	b := &Buffer{lines: strings.Split(text, "\n")}
	b.Select(from, to)
	return b
}

// Select moves the selection.
func (b *Buffer) Select(from, to entities.Position) {
	from, to = b.clamp(from), b.clamp(to)
	if to.Before(from) {
		from, to = to, from
	}
	b.from, b.to = from, to
}

// Text returns the whole document.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// Selection returns the selected text.
func (b *Buffer) Selection() string {
	doc := b.Text()
	return doc[b.offset(b.from):b.offset(b.to)]
}

// SelectionRange returns the ordered selection bounds.
func (b *Buffer) SelectionRange() (entities.Position, entities.Position) {
	return b.from, b.to
}

// Line returns line n, or "" when out of range.
func (b *Buffer) Line(n int) string {
	if n < 0 || n >= len(b.lines) {
		return ""
	}
	return b.lines[n]
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// ReplaceSelection swaps the selection for text and leaves the cursor,
// as an empty selection, right after the inserted text.
func (b *Buffer) ReplaceSelection(text string) {
	doc := b.Text()
	start := b.offset(b.from)
	updated := doc[:start] + text + doc[b.offset(b.to):]
	b.lines = strings.Split(updated, "\n")

	end := b.position(start + len(text))
	b.from, b.to = end, end
}

// offset converts a position into a byte offset in Text().
func (b *Buffer) offset(p entities.Position) int {
	off := 0
	for i := 0; i < p.Line; i++ {
		off += len(b.lines[i]) + 1
	}
	return off + byteIndex(b.lines[p.Line], p.Ch)
}

// position converts a byte offset in Text() back into a position.
func (b *Buffer) position(off int) entities.Position {
	for i, l := range b.lines {
		if off <= len(l) {
			return entities.Position{Line: i, Ch: utf8.RuneCountInString(l[:off])}
		}
		off -= len(l) + 1
	}
	last := len(b.lines) - 1
	return entities.Position{Line: last, Ch: utf8.RuneCountInString(b.lines[last])}
}

func (b *Buffer) clamp(p entities.Position) entities.Position {
	switch {
	case p.Line < 0:
		return entities.Position{}
	case p.Line >= len(b.lines):
		last := len(b.lines) - 1
		return entities.Position{Line: last, Ch: utf8.RuneCountInString(b.lines[last])}
	}
	n := utf8.RuneCountInString(b.lines[p.Line])
	if p.Ch < 0 {
		p.Ch = 0
	}
	if p.Ch > n {
		p.Ch = n
	}
	return p
}

// byteIndex returns the byte offset of rune ch in s.
func byteIndex(s string, ch int) int {
	i := 0
	for ch > 0 && i < len(s) {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		ch--
	}
	return i
}
