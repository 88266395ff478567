// Package terminal turns logical screen operations into the byte sequences
// understood by the attached terminal, as described by its terminfo entry.
//
// Every drawing operation is best effort: a missing capability falls back to
// a plain-byte equivalent where one exists, and write errors are dropped.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xo/terminfo"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// DefaultDevice is the controlling terminal of the process
const DefaultDevice = "/dev/tty"

// Fallback dimensions when the size ioctl fails
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

var (
	// ErrNoSuchTerminalType means the terminal type is unknown or empty
	ErrNoSuchTerminalType = errors.New("no such terminal type")
	// ErrDatabaseUnavailable means the terminfo database could not be read
	ErrDatabaseUnavailable = errors.New("terminal database unavailable")
	// ErrDeviceUnavailable means the terminal device could not be opened
	ErrDeviceUnavailable = errors.New("terminal device unavailable")
)

// Options configures Open
type Options struct {
	// Term overrides $TERM when non-empty
	Term string
	// Device defaults to DefaultDevice
	Device string
	// Load looks up a terminfo entry by name, defaults to terminfo.Load
	Load func(name string) (*terminfo.Terminfo, error)
}

// Session is an open terminal plus its capability table
type Session struct {
	name string
	info *terminfo.Terminfo
	tty  *os.File
	fd   int
	out  *bufio.Writer
	size func() (cols, rows int, err error)

	orig        *unix.Termios
	savedCursor bool
	closed      bool
}

// Open resolves the terminal type and opens the terminal device.
// The returned session is not yet in raw mode.
func Open(opts Options) (*Session, error) {
	name := opts.Term
	if name == "" {
		name = os.Getenv("TERM")
	}

	info, err := resolve(name, opts.Load)
	if err != nil {
		return nil, err
	}

	device := opts.Device
	if device == "" {
		device = DefaultDevice
	}
	tty, err := os.OpenFile(device, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	fd := int(tty.Fd())
	s := &Session{
		name: name,
		info: info,
		tty:  tty,
		fd:   fd,
		out:  bufio.NewWriter(tty),
		size: func() (int, int, error) { return term.GetSize(fd) },
	}
	return s, nil
}

// NewSession builds a session that writes to w instead of a terminal device.
// Raw mode changes are skipped for such sessions.
func NewSession(w io.Writer, info *terminfo.Terminfo, size func() (cols, rows int, err error)) *Session {
	return &Session{
		info: info,
		fd:   -1,
		out:  bufio.NewWriter(w),
		size: size,
	}
}

// resolve looks up the terminfo entry for name. An empty name defers to
// the database's own environment detection.
func resolve(name string, load func(string) (*terminfo.Terminfo, error)) (*terminfo.Terminfo, error) {
	var (
		info *terminfo.Terminfo
		err  error
	)
	switch {
	case name == "":
		info, err = terminfo.LoadFromEnv()
	case load != nil:
		info, err = load(name)
	default:
		info, err = terminfo.Load(name)
	}
	if err == nil {
		return info, nil
	}

	if errors.Is(err, terminfo.ErrEmptyTermName) || errors.Is(err, terminfo.ErrFileNotFound) {
		return nil, fmt.Errorf("%w %q: %v", ErrNoSuchTerminalType, name, err)
	}
	return nil, fmt.Errorf("%w for %q: %v", ErrDatabaseUnavailable, name, err)
}

// Name returns the resolved terminal type
func (s *Session) Name() string {
	return s.name
}

// File returns the terminal device, or nil for sessions built with NewSession
func (s *Session) File() *os.File {
	return s.tty
}

// put writes capability c, returning false when the terminal lacks it
func (s *Session) put(c int, params ...interface{}) bool {
	if s.info == nil || len(s.info.Strings[c]) == 0 {
		return false
	}
	s.out.WriteString(s.info.Printf(c, params...))
	return true
}

// Write writes raw bytes to the terminal
func (s *Session) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// WriteString writes raw text to the terminal
func (s *Session) WriteString(str string) {
	s.out.WriteString(str)
}

// Flush pushes buffered output to the terminal
func (s *Session) Flush() {
	s.out.Flush()
}

// ClearToLineEnd erases from the cursor to the end of the line. Without the
// el capability it overwrites fallbackWidth cells with spaces.
func (s *Session) ClearToLineEnd(fallbackWidth int) {
	if s.put(terminfo.ClrEol) {
		return
	}
	for i := 0; i < fallbackWidth; i++ {
		s.out.WriteByte(' ')
	}
}

// MoveCursorRight moves the cursor one column right
func (s *Session) MoveCursorRight() {
	s.put(terminfo.CursorRight)
}

// StartOfLine moves the cursor to column 0
func (s *Session) StartOfLine() {
	if !s.put(terminfo.CarriageReturn) {
		s.out.WriteByte('\r')
	}
}

// EnterHighlight starts standout mode
func (s *Session) EnterHighlight() {
	s.put(terminfo.EnterStandoutMode)
}

// ExitHighlight ends standout mode
func (s *Session) ExitHighlight() {
	s.put(terminfo.ExitStandoutMode)
}

// Goto moves the cursor to an absolute position (0-based)
func (s *Session) Goto(col, row int) {
	s.put(terminfo.CursorAddress, row, col)
}

// Dimensions queries the live terminal size
func (s *Session) Dimensions() (cols, rows int) {
	if s.size == nil {
		return DefaultWidth, DefaultHeight
	}
	cols, rows, err := s.size()
	if err != nil || cols <= 0 || rows <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return cols, rows
}
