// Package source holds the normalized, append-only code-point buffer that
// feeds the lexer: text is read once, normalized, and then addressed by
// code-point offset for the lifetime of a compile or parse session.
package source

import (
	"io"

	"golang.org/x/text/unicode/norm"
)

// Buffer is a normalized, rune-addressable view over one or more chunks of
// source text, concatenated in the order they were added. Mirrors the
// teacher's lexer reader, but over runes addressed by absolute offset rather
// than a byte-oriented bufio.Reader, since the grammar compiler and engine
// both work in code points.
type Buffer struct {
	runes []rune
	marks []int
}

// New returns an empty Buffer.
func New() *Buffer { return &Buffer{} }

// FromReader reads all of r, NFC-normalizes it, and returns a Buffer over
// the result.
func FromReader(r io.Reader) (*Buffer, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b := New()
	b.AddStr(string(raw))
	return b, nil
}

// AddStr normalizes s to NFC and appends its code points to the buffer.
func (b *Buffer) AddStr(s string) {
	normalized := norm.NFC.String(s)
	b.runes = append(b.runes, []rune(normalized)...)
}

// Len returns the number of code points currently buffered.
func (b *Buffer) Len() int { return len(b.runes) }

// At returns the code point at offset pos. Callers must check pos < Len().
func (b *Buffer) At(pos int) rune { return b.runes[pos] }

// Slice returns the code points in [low, high).
func (b *Buffer) Slice(low, high int) []rune { return b.runes[low:high] }

// String returns the code points in [low, high) as a string.
func (b *Buffer) String(low, high int) string { return string(b.runes[low:high]) }

// Mark records pos as a restore point and returns its index for Restore.
func (b *Buffer) Mark(pos int) int {
	b.marks = append(b.marks, pos)
	return len(b.marks) - 1
}

// Restore returns the position previously recorded by Mark at markIdx.
func (b *Buffer) Restore(markIdx int) int { return b.marks[markIdx] }

// ChangeInput discards everything buffered and replaces it with s, for a
// REPL-style session that re-reads input between compiles.
func (b *Buffer) ChangeInput(s string) {
	b.runes = b.runes[:0]
	b.marks = b.marks[:0]
	b.AddStr(s)
}
