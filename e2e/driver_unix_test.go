//go:build e2e && unix

package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

const ringSize = 1 << 20 // 1 MiB of scrollback

var binPath = "prodpick_e2e"

// Key constants for better readability
const (
	KeyEnter = "\r"
	KeyEsc   = "\x1b"
	KeyCtrlC = "\x03"
	KeySpace = " "
	KeyDown  = "j"
	KeyQuit  = "q"
)

// ANSI escape sequence regex for normalization
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` + // CSI sequences
		`(?:\x1b\][^\x07]*\x07)|` + // OSC sequences
		`(?:\x1b[\(\)][A-Za-z])|` + // charset sequences
		`(?:\x1b=|\x1b>)|` + // keypad mode sequences
		`\r`,
)

// PickerTest drives the prodpick binary inside a PTY. The picker draws on
// the PTY while stdout is captured separately, so tests can check the
// printed selection.
type PickerTest struct {
	t         *testing.T
	pty       *os.File
	tty       *os.File
	cmd       *exec.Cmd
	workspace string
	stdout    bytes.Buffer
	done      chan error

	// Ring buffer for continuous output capture
	mu   sync.Mutex
	buf  []byte
	head int
	full bool
}

// NewPickerTest creates a driver with its own workspace directory
func NewPickerTest(t *testing.T) *PickerTest {
	return &PickerTest{
		t:         t,
		buf:       make([]byte, ringSize),
		workspace: t.TempDir(),
	}
}

// WriteCatalog stores a YAML catalog in the workspace and returns its path
func (pt *PickerTest) WriteCatalog(content string) string {
	pt.t.Helper()
	path := filepath.Join(pt.workspace, "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		pt.t.Fatalf("failed to write catalog: %v", err)
	}
	return path
}

// Start launches prodpick with args in a PTY
func (pt *PickerTest) Start(args ...string) error {
	pt.cmd = exec.Command(binPath, args...)
	pt.cmd.Dir = pt.workspace
	pt.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+pt.workspace,
	)

	ptyFile, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("failed to open pty: %w", err)
	}
	pt.pty = ptyFile
	pt.tty = tty

	if err := pty.Setsize(ptyFile, &pty.Winsize{Rows: 40, Cols: 120}); err != nil {
		return fmt.Errorf("failed to size pty: %w", err)
	}

	pt.cmd.Stdin = tty
	pt.cmd.Stderr = tty
	pt.cmd.Stdout = &pt.stdout

	if err := pt.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start command: %w", err)
	}

	pt.done = make(chan error, 1)
	go func() { pt.done <- pt.cmd.Wait() }()
	go pt.read()
	return nil
}

func (pt *PickerTest) read() {
	chunk := make([]byte, 8192)
	for {
		n, err := pt.pty.Read(chunk)
		if n > 0 {
			pt.mu.Lock()
			for i := 0; i < n; i++ {
				pt.buf[pt.head] = chunk[i]
				pt.head = (pt.head + 1) % ringSize
				if pt.head == 0 {
					pt.full = true
				}
			}
			pt.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// SendKeys writes raw keystrokes to the picker
func (pt *PickerTest) SendKeys(keys string) {
	pt.t.Helper()
	if _, err := pt.pty.Write([]byte(keys)); err != nil {
		pt.t.Fatalf("failed to send keys: %v", err)
	}
	// Give the program a moment so separate keys are not read as one sequence
	time.Sleep(50 * time.Millisecond)
}

// Type sends each rune of text as its own key press
func (pt *PickerTest) Type(text string) {
	pt.t.Helper()
	for _, r := range text {
		pt.SendKeys(string(r))
	}
}

// SeePlain waits for text to appear in the normalized output
func (pt *PickerTest) SeePlain(text string) bool {
	pt.t.Helper()
	return pt.WaitFor(func(s string) bool { return strings.Contains(s, text) }, 3*time.Second)
}

// WaitFor polls the normalized output until pred holds or timeout passes
func (pt *PickerTest) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	pt.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if pred(pt.SnapshotPlain()) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// WaitExit waits for the process to exit and returns its stdout
func (pt *PickerTest) WaitExit(timeout time.Duration) (string, error) {
	pt.t.Helper()
	select {
	case err := <-pt.done:
		return pt.stdout.String(), err
	case <-time.After(timeout):
		return "", fmt.Errorf("process did not exit within %s\n--- tail ---\n%s", timeout, pt.tail(2048))
	}
}

// SnapshotPlain returns the captured output with ANSI sequences removed
func (pt *PickerTest) SnapshotPlain() string {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	var raw string
	if !pt.full {
		raw = string(pt.buf[:pt.head])
	} else {
		out := make([]byte, ringSize)
		copy(out, pt.buf[pt.head:])
		copy(out[ringSize-pt.head:], pt.buf[:pt.head])
		raw = string(out)
	}
	return ansiRe.ReplaceAllString(raw, "")
}

func (pt *PickerTest) tail(n int) string {
	s := pt.SnapshotPlain()
	if len(s) > n {
		s = s[len(s)-n:]
	}
	return s
}

// Cleanup closes the PTY and terminates the picker
func (pt *PickerTest) Cleanup() {
	if pt.pty != nil {
		_ = pt.pty.Close()
		pt.pty = nil
	}
	if pt.tty != nil {
		_ = pt.tty.Close()
		pt.tty = nil
	}
	if pt.cmd != nil && pt.cmd.Process != nil {
		_ = pt.cmd.Process.Kill()
		if pt.done != nil {
			select {
			case <-pt.done:
			case <-time.After(time.Second):
			}
		}
		pt.cmd = nil
	}
}
