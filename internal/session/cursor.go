package session

import "pkt.systems/termview/internal/keys"

// move applies one key to the cursor and clamps the result.
func (s *Session) move(k keys.Key) {
	c := &s.cursor
	switch k.Kind {
	case keys.KindArrowLeft:
		if c.Col > 0 {
			c.Col--
		} else if c.Row > 0 {
			c.Row--
			c.Col = s.buf.LineLength(c.Row)
		}
	case keys.KindArrowRight:
		if c.Col < s.buf.LineLength(c.Row) {
			c.Col++
		} else if c.Row+1 < s.buf.LineCount() {
			c.Row++
			c.Col = 0
		}
	case keys.KindArrowUp:
		if c.Row > 0 {
			c.Row--
		}
	case keys.KindArrowDown:
		if c.Row < s.lastRow() {
			c.Row++
		}
	case keys.KindPageUp:
		c.Row = 0
	case keys.KindPageDown:
		// Absolute jump to the screen height, not a relative page.
		c.Row = s.dims.Rows
	case keys.KindHome:
		c.Col = 0
	case keys.KindEnd:
		c.Col = s.dims.Cols
	}
	s.clamp()
}

// lastRow is the highest reachable row. Rows past the end of a short buffer
// stay reachable up to the screen height.
func (s *Session) lastRow() int {
	return max(s.buf.LineCount(), s.dims.Rows) - 1
}

func (s *Session) clamp() {
	c := &s.cursor
	c.Row = min(max(c.Row, 0), max(s.lastRow(), 0))
	c.Col = min(max(c.Col, 0), s.buf.LineLength(c.Row))
}
