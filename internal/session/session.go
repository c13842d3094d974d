// Package session runs the interactive viewer loop: render, decode one key,
// move the cursor, until the quit chord arrives.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"pkt.systems/pslog"

	"pkt.systems/termview/internal/keys"
	"pkt.systems/termview/internal/logx"
	"pkt.systems/termview/internal/render"
	"pkt.systems/termview/internal/textbuf"
	"pkt.systems/termview/internal/version"
	"pkt.systems/termview/internal/view"
)

// Terminal is the raw-mode device the session brackets its run with.
type Terminal interface {
	Enter() error
	Exit() error
	Size() (view.Dimensions, error)
}

// Options configures a Session.
type Options struct {
	// Path names the file to load. Empty shows the welcome banner.
	Path    string
	TabStop int
	Welcome string
}

// Session owns the buffer, cursor and viewport for one run.
type Session struct {
	term    Terminal
	decoder *keys.Decoder
	screen  *render.Screen
	buf     *textbuf.Buffer
	path    string
	ctx     context.Context

	dims     view.Dimensions
	cursor   view.Cursor
	viewport view.Viewport
}

// New returns a session reading keys from in and painting to out.
func New(term Terminal, in io.Reader, out io.Writer, opts Options) *Session {
	welcome := opts.Welcome
	if welcome == "" {
		welcome = version.Banner()
	}
	return &Session{
		term:    term,
		decoder: keys.NewDecoder(in),
		screen:  render.NewScreen(out, welcome),
		buf:     textbuf.New(textbuf.WithTabStop(opts.TabStop)),
		path:    opts.Path,
	}
}

func (s *Session) log() pslog.Logger {
	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return logx.WithSize(logx.WithFile(ctx, s.path), s.dims)
}

// Cursor returns the current buffer position.
func (s *Session) Cursor() view.Cursor {
	return s.cursor
}

// Viewport returns the current scroll offsets.
func (s *Session) Viewport() view.Viewport {
	return s.viewport
}

// Run executes the session. Raw mode is restored on every path once it has
// been entered, and a restore failure is joined into the returned error.
// Cancelling ctx ends the session without error.
func (s *Session) Run(ctx context.Context) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.ctx = ctx

	dims, err := s.term.Size()
	if err != nil {
		return err
	}
	s.dims = dims
	if err := s.term.Enter(); err != nil {
		return err
	}
	defer func() {
		if restoreErr := s.term.Exit(); restoreErr != nil {
			s.log().Error("terminal restore failed", "err", restoreErr)
			err = errors.Join(err, restoreErr)
		}
	}()
	s.log().Info("session start")

	err = s.run(ctx)
	if renderErr := s.refresh(); renderErr != nil {
		if err == nil {
			err = renderErr
		} else {
			s.log().Debug("final refresh failed", "err", renderErr)
		}
	}
	if err != nil {
		s.log().Error("session failed", "err", err)
	} else {
		s.log().Info("session end", "row", s.cursor.Row, "col", s.cursor.Col)
	}
	return err
}

func (s *Session) run(ctx context.Context) error {
	if s.path != "" {
		if err := s.buf.LoadFile(s.path); err != nil {
			return err
		}
		s.log().Info("file loaded", "lines", s.buf.LineCount())
	}
	quit := keys.Ctrl('q')
	for {
		if err := s.refresh(); err != nil {
			return err
		}
		k, err := s.decoder.ReadKey(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				s.log().Info("session cancelled", "reason", err)
				return nil
			}
			return fmt.Errorf("read key: %w", err)
		}
		if k.Is(quit) {
			s.log().Debug("quit chord")
			return nil
		}
		s.log().Trace("key", "key", k)
		s.move(k)
	}
}

func (s *Session) refresh() error {
	s.viewport.Scroll(s.cursor, s.dims)
	if err := s.screen.Refresh(s.buf, s.cursor, s.viewport, s.dims); err != nil {
		return fmt.Errorf("refresh screen: %w", err)
	}
	return nil
}
