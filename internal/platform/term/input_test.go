//go:build unix

package term

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/vovakirdan/tui-breach/internal/core"
)

func newPipeInput(t *testing.T) (*InputSource, *os.File) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() failed: %v", err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})

	src, err := NewInputSource(r)
	if err != nil {
		t.Fatalf("NewInputSource() failed: %v", err)
	}
	src.SetPromptOutput(io.Discard)
	return src, w
}

func TestInputSourceNotTerminal(t *testing.T) {
	src, _ := newPipeInput(t)

	if src.IsTerminal() {
		t.Error("pipe reported as terminal")
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := src.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestNextKeyTimeout(t *testing.T) {
	src, _ := newPipeInput(t)

	timeout := 50 * time.Millisecond
	start := time.Now()
	_, ok := src.NextKey(timeout)
	elapsed := time.Since(start)

	if ok {
		t.Fatal("NextKey() returned a key with no input")
	}
	if elapsed > timeout+250*time.Millisecond {
		t.Errorf("NextKey() took %v, want about %v", elapsed, timeout)
	}
}

func TestNextKeyDecodes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []core.Key
	}{
		{"rune", "x", []core.Key{core.RuneKey('x')}},
		{"two runes in order", "ab", []core.Key{core.RuneKey('a'), core.RuneKey('b')}},
		{"enter", "\r", []core.Key{core.CodeKey(core.KeyEnter)}},
		{"arrow up", "\x1b[A", []core.Key{core.CodeKey(core.KeyUp)}},
		{"arrow left ss3", "\x1bOD", []core.Key{core.CodeKey(core.KeyLeft)}},
		{"escape alone", "\x1b", []core.Key{core.CodeKey(core.KeyEscape)}},
		{"escape then rune", "\x1bq", []core.Key{core.CodeKey(core.KeyEscape), core.RuneKey('q')}},
		{"utf8", "é", []core.Key{core.RuneKey('é')}},
		{"ctrl-c", "\x03", []core.Key{core.CodeKey(core.KeyCtrlC)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, w := newPipeInput(t)
			if _, err := w.WriteString(tt.input); err != nil {
				t.Fatalf("write failed: %v", err)
			}

			for i, want := range tt.want {
				got, ok := src.NextKey(time.Second)
				if !ok {
					t.Fatalf("key %d: no input", i)
				}
				if got != want {
					t.Errorf("key %d = %v, want %v", i, got, want)
				}
			}
			if k, ok := src.NextKey(10 * time.Millisecond); ok {
				t.Errorf("unexpected extra key %v", k)
			}
		})
	}
}

func TestNextKeyDropsUnknownSequence(t *testing.T) {
	src, w := newPipeInput(t)
	w.WriteString("\x1b[3~z")

	var keys []core.Key
	for i := 0; i < 4; i++ {
		if k, ok := src.NextKey(50 * time.Millisecond); ok {
			keys = append(keys, k)
		}
	}
	if len(keys) != 1 || keys[0] != core.RuneKey('z') {
		t.Errorf("keys = %v, want [z]", keys)
	}
}

func TestReadLinePipe(t *testing.T) {
	src, w := newPipeInput(t)
	w.WriteString("neo\r\nk")

	line, err := src.ReadLine("handle: ", true)
	if err != nil {
		t.Fatalf("ReadLine() failed: %v", err)
	}
	if line != "neo" {
		t.Errorf("ReadLine() = %q, want %q", line, "neo")
	}

	// Bytes after the line stay available to NextKey.
	k, ok := src.NextKey(time.Second)
	if !ok || k != core.RuneKey('k') {
		t.Errorf("NextKey() after ReadLine = %v, %v", k, ok)
	}
}

func TestReadLineEOF(t *testing.T) {
	src, w := newPipeInput(t)
	w.Close()

	if _, err := src.ReadLine("", true); err == nil {
		t.Error("ReadLine() on closed pipe succeeded")
	}
}
