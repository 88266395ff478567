//go:build e2e && unix

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/creack/pty"
)

const ringSize = 1 << 20 // 1 MiB of scrollback
var binPath = "tmenu_e2e"

// Key constants for better readability
const (
	KeyEnter          = "\r"
	KeyEsc            = "\x1b"
	KeyCtrlD          = "\x04"
	KeyNext           = "\x1b\x06" // alt+ctrl+f
	KeyPrev           = "\x1b\x02" // alt+ctrl+b
	KeyTab            = "\t"
	KeyAcceptSelected = "\x1b\r" // alt+enter
)

// ANSI escape sequence regex for normalization - covers CSI, OSC, charset, keypad modes
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` + // CSI sequences
		`(?:\x1b\][^\x07]*\x07)|` + // OSC sequences
		`(?:\x1b[\(\)][A-Za-z])|` + // charset sequences
		`(?:\x1b=|\x1b>|\x1b7|\x1b8)|` + // keypad mode, save and restore cursor
		`\r`, // carriage returns
)

// MenuTest runs tmenu on a pseudo terminal. Candidates come in on a pipe,
// the selected line goes to a buffer, and the menu itself is drawn on the
// pty, which is the child's controlling terminal.
type MenuTest struct {
	t   *testing.T
	pty *os.File
	tty *os.File
	cmd *exec.Cmd
	dir string

	stdout bytes.Buffer
	stderr bytes.Buffer

	done    chan struct{}
	waitErr error

	// Ring buffer for continuous output capture
	mu   sync.Mutex
	buf  []byte
	head int
	full bool
}

// NewMenuTest creates a test driver
func NewMenuTest(t *testing.T) *MenuTest {
	return &MenuTest{
		t:   t,
		buf: make([]byte, ringSize),
		dir: t.TempDir(),
	}
}

// Start launches tmenu reading candidates from the given lines
func (mt *MenuTest) Start(candidates []string, args ...string) error {
	mt.cmd = exec.Command(binPath, args...)
	mt.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+mt.dir,
		"XDG_CONFIG_HOME="+mt.dir,
		"TMENU_LOG="+filepath.Join(mt.dir, "tmenu.log"),
	)

	ptyFile, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("failed to open pty: %w", err)
	}
	mt.pty = ptyFile
	mt.tty = tty

	if err := pty.Setsize(ptyFile, &pty.Winsize{Rows: 24, Cols: 80}); err != nil {
		return fmt.Errorf("failed to size pty: %w", err)
	}

	input := ""
	if len(candidates) > 0 {
		input = strings.Join(candidates, "\n") + "\n"
	}
	mt.cmd.Stdin = strings.NewReader(input)
	mt.cmd.Stdout = &mt.stdout
	mt.cmd.Stderr = &mt.stderr
	mt.cmd.ExtraFiles = []*os.File{tty}
	mt.cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
		Ctty:    3, // first ExtraFiles entry
	}

	if err := mt.cmd.Start(); err != nil {
		ptyFile.Close()
		tty.Close()
		return fmt.Errorf("failed to start command: %w", err)
	}

	mt.done = make(chan struct{})
	go func() {
		mt.waitErr = mt.cmd.Wait()
		close(mt.done)
	}()

	mt.startReader()
	return nil
}

func (mt *MenuTest) startReader() {
	go func() {
		buf := make([]byte, 8192)
		for {
			n, err := mt.pty.Read(buf)
			if n > 0 {
				mt.mu.Lock()
				for i := 0; i < n; i++ {
					mt.buf[mt.head] = buf[i]
					mt.head = (mt.head + 1) % ringSize
					if mt.head == 0 {
						mt.full = true
					}
				}
				mt.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()
}

// SendKeys writes keystrokes to the terminal
func (mt *MenuTest) SendKeys(keys string) error {
	mt.t.Helper()
	_, err := mt.pty.Write([]byte(keys))
	return err
}

// SeePlain waits for text to appear in the normalized terminal output
func (mt *MenuTest) SeePlain(text string) bool {
	mt.t.Helper()
	return mt.WaitFor(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), text)
	}, 3*time.Second)
}

// WaitFor waits for a predicate to be true in the terminal output
func (mt *MenuTest) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	mt.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if pred(mt.Snapshot()) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// Snapshot returns the terminal output captured so far
func (mt *MenuTest) Snapshot() string {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if !mt.full {
		return string(mt.buf[:mt.head])
	}
	out := make([]byte, ringSize)
	copy(out, mt.buf[mt.head:])
	copy(out[ringSize-mt.head:], mt.buf[:mt.head])
	return string(out)
}

// Wait waits for the process to exit and returns its exit code
func (mt *MenuTest) Wait(timeout time.Duration) (int, error) {
	mt.t.Helper()
	select {
	case <-mt.done:
	case <-time.After(timeout):
		return -1, fmt.Errorf("process did not exit within %s\n--- tail ---\n%s", timeout, mt.tail(2048))
	}

	var exitErr *exec.ExitError
	if errors.As(mt.waitErr, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if mt.waitErr != nil {
		return -1, mt.waitErr
	}
	return 0, nil
}

// Stdout returns what the process wrote to standard output
func (mt *MenuTest) Stdout() string {
	return mt.stdout.String()
}

// Stderr returns what the process wrote to standard error
func (mt *MenuTest) Stderr() string {
	return mt.stderr.String()
}

func (mt *MenuTest) tail(n int) string {
	s := ansiRe.ReplaceAllString(mt.Snapshot(), "")
	if len(s) > n {
		s = s[len(s)-n:]
	}
	return s
}

// Cleanup closes the pty and kills the process if it is still running
func (mt *MenuTest) Cleanup() {
	if mt.pty != nil {
		_ = mt.pty.Close()
		mt.pty = nil
	}
	if mt.tty != nil {
		_ = mt.tty.Close()
		mt.tty = nil
	}
	if mt.cmd != nil && mt.cmd.Process != nil {
		select {
		case <-mt.done:
		default:
			_ = mt.cmd.Process.Kill()
			<-mt.done
		}
		mt.cmd = nil
	}
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
