// Package view holds the cursor, viewport and screen geometry shared by the
// session loop and the renderer.
package view

import "fmt"

// Dimensions is the terminal extent in character cells.
type Dimensions struct {
	Rows int
	Cols int
}

// Valid reports whether both extents are positive.
func (d Dimensions) Valid() bool {
	return d.Rows > 0 && d.Cols > 0
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Cols, d.Rows)
}

// Cursor is a buffer-relative position, not a screen position.
type Cursor struct {
	Row int
	Col int
}

// Viewport is the buffer coordinate shown in the top-left screen cell.
type Viewport struct {
	RowOffset int
	ColOffset int
}

// Scroll moves the offsets just far enough that c falls inside the visible
// window on both axes. It never re-centers.
func (v *Viewport) Scroll(c Cursor, d Dimensions) {
	v.RowOffset = follow(v.RowOffset, c.Row, d.Rows)
	v.ColOffset = follow(v.ColOffset, c.Col, d.Cols)
}

func follow(offset, pos, extent int) int {
	if extent < 1 {
		extent = 1
	}
	if pos < offset {
		return pos
	}
	if pos >= offset+extent {
		return pos - extent + 1
	}
	return offset
}

// ScreenPosition returns the 1-indexed terminal row and column of c.
func (v Viewport) ScreenPosition(c Cursor) (int, int) {
	return c.Row - v.RowOffset + 1, c.Col - v.ColOffset + 1
}
