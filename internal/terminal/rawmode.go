package terminal

import (
	"errors"
	"fmt"

	"github.com/xo/terminfo"
	"golang.org/x/sys/unix"
)

// EnterRawMode turns off echo and line buffering, then moves to the row
// selected by placement. LeaveRawMode undoes both.
func (s *Session) EnterRawMode(placement Placement) error {
	if s.closed {
		return errors.New("terminal session already closed")
	}

	if s.fd >= 0 && s.orig == nil {
		termios, err := unix.IoctlGetTermios(s.fd, ioctlGetTermios)
		if err != nil {
			return fmt.Errorf("failed to get termios: %w", err)
		}

		raw := *termios
		raw.Lflag &^= unix.ECHO | unix.ICANON
		raw.Cc[unix.VMIN] = 1
		raw.Cc[unix.VTIME] = 0

		if err := unix.IoctlSetTermios(s.fd, ioctlSetTermios, &raw); err != nil {
			return fmt.Errorf("failed to set raw mode: %w", err)
		}
		s.orig = termios
	}

	switch placement {
	case PlaceTop:
		s.savedCursor = s.put(terminfo.SaveCursor)
		s.Goto(0, 0)
	case PlaceBottom:
		_, rows := s.Dimensions()
		s.savedCursor = s.put(terminfo.SaveCursor)
		s.Goto(0, rows-1)
	}
	s.Flush()
	return nil
}

// LeaveRawMode restores the saved cursor position and terminal mode, drops
// the capability table and closes the device. Calls after the first are no-ops.
func (s *Session) LeaveRawMode() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.savedCursor {
		s.put(terminfo.RestoreCursor)
		s.savedCursor = false
	}

	var errs []error
	if err := s.out.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("failed to flush terminal: %w", err))
	}
	if s.orig != nil {
		if err := unix.IoctlSetTermios(s.fd, ioctlSetTermios, s.orig); err != nil {
			errs = append(errs, fmt.Errorf("failed to restore termios: %w", err))
		}
		s.orig = nil
	}
	s.info = nil
	if s.tty != nil {
		if err := s.tty.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close terminal: %w", err))
		}
		s.tty = nil
	}
	return errors.Join(errs...)
}
