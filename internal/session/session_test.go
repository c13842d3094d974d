package session

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/termview/internal/view"
)

type fakeTerminal struct {
	dims     view.Dimensions
	sizeErr  error
	enterErr error
	exitErr  error
	raw      bool
	enters   int
	exits    int
}

func (f *fakeTerminal) Size() (view.Dimensions, error) {
	if f.sizeErr != nil {
		return view.Dimensions{}, f.sizeErr
	}
	return f.dims, nil
}

func (f *fakeTerminal) Enter() error {
	if f.enterErr != nil {
		return f.enterErr
	}
	f.enters++
	f.raw = true
	return nil
}

func (f *fakeTerminal) Exit() error {
	if !f.raw {
		return nil
	}
	f.exits++
	if f.exitErr != nil {
		return f.exitErr
	}
	f.raw = false
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func numberedLines(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("line ")
		b.WriteString(strings.Repeat("x", i%7))
		b.WriteString("\n")
	}
	return b.String()
}

func TestRunQuitRestoresTerminal(t *testing.T) {
	term := &fakeTerminal{dims: view.Dimensions{Rows: 5, Cols: 20}}
	path := writeFile(t, "first\n\tsecond\nthird\n")
	var out bytes.Buffer
	s := New(term, strings.NewReader("\x1b[B\x1b[C\x1b[C\x11"), &out, Options{Path: path, TabStop: 4})

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if term.enters != 1 || term.exits != 1 || term.raw {
		t.Fatalf("expected one enter and one exit, got enters=%d exits=%d raw=%v", term.enters, term.exits, term.raw)
	}
	if got := s.Cursor(); got != (view.Cursor{Row: 1, Col: 2}) {
		t.Fatalf("unexpected cursor %+v", got)
	}
	if !strings.Contains(out.String(), "    second") {
		t.Fatalf("expected tab-expanded line on screen")
	}
	if !strings.HasSuffix(out.String(), "\x1b[2;3H\x1b[?25h") {
		t.Fatalf("expected final frame with cursor at 2;3, got tail %q", tail(out.String()))
	}
}

func TestRunEmptyBufferShowsWelcome(t *testing.T) {
	term := &fakeTerminal{dims: view.Dimensions{Rows: 6, Cols: 40}}
	var out bytes.Buffer
	s := New(term, strings.NewReader("\x11"), &out, Options{Welcome: "welcome aboard"})
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "welcome aboard") {
		t.Fatalf("expected welcome banner in output")
	}
}

func TestRunPageDownScrolls(t *testing.T) {
	term := &fakeTerminal{dims: view.Dimensions{Rows: 10, Cols: 20}}
	path := writeFile(t, numberedLines(50))
	s := New(term, strings.NewReader("\x1b[6~\x11"), &bytes.Buffer{}, Options{Path: path})
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.Cursor().Row != 10 {
		t.Fatalf("expected cursor row 10, got %d", s.Cursor().Row)
	}
	if s.Viewport().RowOffset != 1 {
		t.Fatalf("expected row offset 1, got %d", s.Viewport().RowOffset)
	}
}

func TestRunSizeFailureSkipsRawMode(t *testing.T) {
	boom := errors.New("no size")
	term := &fakeTerminal{sizeErr: boom}
	s := New(term, strings.NewReader("\x11"), &bytes.Buffer{}, Options{})
	if err := s.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected size error, got %v", err)
	}
	if term.enters != 0 || term.exits != 0 {
		t.Fatalf("expected raw mode untouched, got enters=%d exits=%d", term.enters, term.exits)
	}
}

func TestRunEnterFailure(t *testing.T) {
	boom := errors.New("no raw")
	term := &fakeTerminal{dims: view.Dimensions{Rows: 3, Cols: 3}, enterErr: boom}
	s := New(term, strings.NewReader("\x11"), &bytes.Buffer{}, Options{})
	if err := s.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected enter error, got %v", err)
	}
	if term.exits != 0 {
		t.Fatalf("did not expect restore without raw mode")
	}
}

func TestRunLoadFailureRestoresTerminal(t *testing.T) {
	term := &fakeTerminal{dims: view.Dimensions{Rows: 4, Cols: 10}}
	var out bytes.Buffer
	s := New(term, strings.NewReader(""), &out, Options{Path: filepath.Join(t.TempDir(), "missing.txt")})
	err := s.Run(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if term.exits != 1 || term.raw {
		t.Fatalf("expected terminal restored after load failure")
	}
	if !strings.Contains(out.String(), "\x1b[?25h") {
		t.Fatalf("expected a final frame before restoring")
	}
}

func TestRunWriteFailureRestoresTerminal(t *testing.T) {
	boom := errors.New("broken pipe")
	term := &fakeTerminal{dims: view.Dimensions{Rows: 4, Cols: 10}}
	s := New(term, strings.NewReader("\x11"), failingWriter{err: boom}, Options{})
	err := s.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected write error, got %v", err)
	}
	if term.exits != 1 || term.raw {
		t.Fatalf("expected terminal restored after write failure")
	}
}

func TestRunReadFailureRestoresTerminal(t *testing.T) {
	boom := errors.New("input gone")
	term := &fakeTerminal{dims: view.Dimensions{Rows: 4, Cols: 10}}
	s := New(term, errReader{err: boom}, &bytes.Buffer{}, Options{})
	err := s.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected read error, got %v", err)
	}
	if term.exits != 1 || term.raw {
		t.Fatalf("expected terminal restored after read failure")
	}
}

func TestRunRestoreFailureIsReported(t *testing.T) {
	boom := errors.New("tcsetattr")
	term := &fakeTerminal{dims: view.Dimensions{Rows: 4, Cols: 10}, exitErr: boom}
	s := New(term, strings.NewReader("\x11"), &bytes.Buffer{}, Options{})
	if err := s.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected restore error, got %v", err)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	term := &fakeTerminal{dims: view.Dimensions{Rows: 4, Cols: 10}}
	s := New(term, strings.NewReader(""), &bytes.Buffer{}, Options{})
	if err := s.Run(ctx); err != nil {
		t.Fatalf("expected clean exit on cancellation, got %v", err)
	}
	if term.exits != 1 || term.raw {
		t.Fatalf("expected terminal restored after cancellation")
	}
}

func tail(s string) string {
	if len(s) > 40 {
		return s[len(s)-40:]
	}
	return s
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write([]byte) (int, error) {
	return 0, w.err
}

type errReader struct {
	err error
}

func (r errReader) Read([]byte) (int, error) {
	return 0, r.err
}
