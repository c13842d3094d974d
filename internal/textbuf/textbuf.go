// Package textbuf holds the read-only line buffer displayed by the viewer.
package textbuf

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// DefaultTabStop is the number of spaces a tab expands to.
const DefaultTabStop = 4

// Buffer is an ordered sequence of lines. Lines are replaced wholesale on
// load and never mutated afterwards.
type Buffer struct {
	lines   [][]rune
	tabStop int
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithTabStop sets the tab expansion width. Values below 1 keep the default.
func WithTabStop(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.tabStop = n
		}
	}
}

// New returns an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{tabStop: DefaultTabStop}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// TabStop returns the configured expansion width.
func (b *Buffer) TabStop() int {
	return b.tabStop
}

// LoadFile replaces the buffer with the content of path.
func (b *Buffer) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if err := b.Load(f); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// Load replaces the buffer with the lines read from r. On error the previous
// content is kept.
func (b *Buffer) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.lines = splitLines(data, b.tabStop)
	return nil
}

func splitLines(data []byte, tabStop int) [][]rune {
	if len(data) == 0 {
		return nil
	}
	data = bytes.TrimSuffix(data, []byte{'\n'})
	raw := bytes.Split(data, []byte{'\n'})
	lines := make([][]rune, 0, len(raw))
	for _, line := range raw {
		line = bytes.TrimSuffix(line, []byte{'\r'})
		lines = append(lines, ExpandTabs([]rune(string(line)), tabStop))
	}
	return lines
}

// ExpandTabs returns a copy of line with every tab replaced by width spaces.
func ExpandTabs(line []rune, width int) []rune {
	if width < 1 {
		width = DefaultTabStop
	}
	tabs := 0
	for _, r := range line {
		if r == '\t' {
			tabs++
		}
	}
	out := make([]rune, 0, len(line)+tabs*(width-1))
	for i := 0; i < len(line); i++ {
		if line[i] != '\t' {
			out = append(out, line[i])
			continue
		}
		for j := 0; j < width; j++ {
			out = append(out, ' ')
		}
	}
	return out
}

// Empty reports whether nothing is loaded.
func (b *Buffer) Empty() bool {
	return len(b.lines) == 0
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineLength returns the length of row in characters, or 0 when row is out of range.
func (b *Buffer) LineLength(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

// LineSlice returns the characters of row in [from, to), clamped to the line.
func (b *Buffer) LineSlice(row, from, to int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	line := b.lines[row]
	if from < 0 {
		from = 0
	}
	if to > len(line) {
		to = len(line)
	}
	if from >= to {
		return ""
	}
	return string(line[from:to])
}
