//go:build linux

// Package rawmode switches a terminal between cooked and raw mode and
// queries its size.
package rawmode

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"pkt.systems/termview/internal/view"
)

// DefaultReadTimeout is the raw-mode read timeout in deciseconds.
const DefaultReadTimeout = 1

// ErrNotTerminal is returned when the descriptor is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// Controller owns the saved terminal attributes for one descriptor.
type Controller struct {
	fd          int
	sizeFD      int
	readTimeout uint8
	orig        *unix.Termios
	raw         bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithReadTimeout sets VTIME in deciseconds. Zero keeps the default.
func WithReadTimeout(deciseconds uint8) Option {
	return func(c *Controller) {
		if deciseconds > 0 {
			c.readTimeout = deciseconds
		}
	}
}

// WithSizeFrom queries the window size on fd instead of the input descriptor.
func WithSizeFrom(fd int) Option {
	return func(c *Controller) {
		c.sizeFD = fd
	}
}

// New returns a controller for fd. Nothing is read from the terminal yet.
func New(fd int, opts ...Option) *Controller {
	c := &Controller{fd: fd, sizeFD: fd, readTimeout: DefaultReadTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsTerminal reports whether the descriptor refers to a terminal.
func (c *Controller) IsTerminal() bool {
	return term.IsTerminal(c.fd)
}

// Enter captures the current attributes once and switches to raw mode.
// Pending output is drained and unread input discarded.
func (c *Controller) Enter() error {
	if c.orig == nil {
		orig, err := unix.IoctlGetTermios(c.fd, unix.TCGETS)
		if err != nil {
			return fmt.Errorf("get terminal attributes: %w", err)
		}
		c.orig = orig
	}
	raw := makeRaw(*c.orig, c.readTimeout)
	if err := unix.IoctlSetTermios(c.fd, unix.TCSETSF, &raw); err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	c.raw = true
	return nil
}

// Exit restores the captured attributes. It is a no-op when raw mode is not
// active.
func (c *Controller) Exit() error {
	if !c.raw || c.orig == nil {
		return nil
	}
	orig := *c.orig
	if err := unix.IoctlSetTermios(c.fd, unix.TCSETSF, &orig); err != nil {
		return fmt.Errorf("restore terminal attributes: %w", err)
	}
	c.raw = false
	return nil
}

// Raw reports whether raw mode is active.
func (c *Controller) Raw() bool {
	return c.raw
}

// Size returns the terminal window size.
func (c *Controller) Size() (view.Dimensions, error) {
	ws, err := unix.IoctlGetWinsize(c.sizeFD, unix.TIOCGWINSZ)
	if err != nil {
		return view.Dimensions{}, fmt.Errorf("get window size: %w", err)
	}
	d := view.Dimensions{Rows: int(ws.Row), Cols: int(ws.Col)}
	if !d.Valid() {
		return view.Dimensions{}, fmt.Errorf("get window size: invalid size %s", d)
	}
	return d, nil
}

func makeRaw(t unix.Termios, readTimeout uint8) unix.Termios {
	t.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Cflag |= unix.CS8
	t.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = readTimeout
	return t
}
