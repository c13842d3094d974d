// Package render paints the visible part of a line buffer with VT100
// control sequences.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"pkt.systems/termview/internal/view"
)

const (
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	cursorHome  = "\x1b[H"
	eraseLine   = "\x1b[K"
	rowBreak    = "\r\n"
	emptyMarker = "~"
)

// LineSource is the read-only view of the buffer the renderer needs.
type LineSource interface {
	Empty() bool
	LineCount() int
	LineSlice(row, from, to int) string
}

// Screen writes whole frames to out, one write per refresh.
type Screen struct {
	out     io.Writer
	welcome string
}

// NewScreen returns a screen writing to out. welcome is shown when the
// buffer is empty.
func NewScreen(out io.Writer, welcome string) *Screen {
	return &Screen{out: out, welcome: welcome}
}

// Refresh repaints every screen row and places the terminal cursor on c.
func (s *Screen) Refresh(src LineSource, c view.Cursor, v view.Viewport, d view.Dimensions) error {
	var b strings.Builder
	b.WriteString(hideCursor)
	b.WriteString(cursorHome)
	s.drawRows(&b, src, v, d)
	row, col := v.ScreenPosition(c)
	fmt.Fprintf(&b, "\x1b[%d;%dH", row, col)
	b.WriteString(showCursor)
	_, err := io.WriteString(s.out, b.String())
	return err
}

func (s *Screen) drawRows(b *strings.Builder, src LineSource, v view.Viewport, d view.Dimensions) {
	empty := src.Empty()
	for y := 0; y < d.Rows; y++ {
		b.WriteString(eraseLine)
		fileRow := y + v.RowOffset
		switch {
		case empty && y == d.Rows/3:
			b.WriteString(welcomeLine(s.welcome, d.Cols))
		case empty || fileRow >= src.LineCount():
			b.WriteString(emptyMarker)
		default:
			b.WriteString(src.LineSlice(fileRow, v.ColOffset, v.ColOffset+d.Cols))
		}
		if y < d.Rows-1 {
			b.WriteString(rowBreak)
		}
	}
}

// welcomeLine centers message in width cells. When there is room on the
// left, the first padding cell carries the empty-row marker.
func welcomeLine(message string, width int) string {
	if width < 1 {
		return ""
	}
	message = runewidth.Truncate(message, width, "")
	padding := (width - runewidth.StringWidth(message)) / 2
	var b strings.Builder
	if padding > 0 {
		b.WriteString(emptyMarker)
		padding--
	}
	b.WriteString(strings.Repeat(" ", padding))
	b.WriteString(message)
	return b.String()
}
