//go:build unix

package term

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"

	"github.com/vovakirdan/tui-breach/internal/core"
)

// escapeTimeout is how long to wait after ESC (or a UTF-8 lead byte) for
// the rest of the sequence before treating it as complete.
const escapeTimeout = 25 * time.Millisecond

// InputSource reads single keys from a terminal in raw mode.
//
// Construction captures the original line discipline and switches to raw,
// non-canonical mode with poll semantics; Close restores it. When the file
// is not a terminal the source still polls and reads, without touching the
// line discipline.
type InputSource struct {
	f       *os.File
	fd      int
	saved   *xterm.State
	out     io.Writer
	pending []core.Key
	buf     [1]byte
}

// NewInputSource captures the terminal settings of f and enables raw mode.
func NewInputSource(f *os.File) (*InputSource, error) {
	s := &InputSource{
		f:   f,
		fd:  int(f.Fd()),
		out: os.Stdout,
	}

	if !xterm.IsTerminal(s.fd) {
		return s, nil
	}

	saved, err := xterm.GetState(s.fd)
	if err != nil {
		return s, nil
	}
	if err := makeRaw(s.fd); err != nil {
		return nil, fmt.Errorf("term: enable raw mode: %w", err)
	}
	s.saved = saved
	return s, nil
}

// IsTerminal reports whether raw mode is active.
func (s *InputSource) IsTerminal() bool {
	return s.saved != nil
}

// SetPromptOutput sets where ReadLine writes its prompt.
func (s *InputSource) SetPromptOutput(w io.Writer) {
	s.out = w
}

// Restorer returns a stateless restorer for signal and panic paths.
func (s *InputSource) Restorer(out io.Writer) *Restorer {
	return NewRestorer(out, s.fd, s.saved)
}

// Close restores the original terminal settings. Safe to call twice.
func (s *InputSource) Close() error {
	if s.saved == nil {
		return nil
	}
	if err := xterm.Restore(s.fd, s.saved); err != nil {
		return fmt.Errorf("term: restore terminal: %w", err)
	}
	return nil
}

// NextKey returns the next key press, waiting at most timeout.
// Keys left over from a previous multi-byte read are returned first.
// The boolean is false when nothing arrived in time.
func (s *InputSource) NextKey(timeout time.Duration) (core.Key, bool) {
	if len(s.pending) > 0 {
		k := s.pending[0]
		s.pending = s.pending[1:]
		return k, true
	}

	if !s.wait(timeout) {
		return core.Key{}, false
	}
	b, ok := s.readByte()
	if !ok {
		return core.Key{}, false
	}

	switch {
	case b == 0x1b:
		return s.readEscape()
	case b >= utf8.RuneSelf:
		return s.readUTF8(b), true
	}
	return core.DecodeByte(b), true
}

// wait polls the descriptor for readability for up to timeout.
func (s *InputSource) wait(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}

	for {
		ms := int(time.Until(deadline) / time.Millisecond)
		if ms < 0 {
			ms = 0
		}
		n, err := unix.Poll(fds, ms)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil || n == 0 {
			return false
		}
		return fds[0].Revents&(unix.POLLIN|unix.POLLHUP) != 0
	}
}

// readByte reads exactly one byte. EOF and transient errors read as nothing.
func (s *InputSource) readByte() (byte, bool) {
	n, err := unix.Read(s.fd, s.buf[:])
	if err != nil || n != 1 {
		return 0, false
	}
	return s.buf[0], true
}

// readEscape decodes what follows an ESC byte. Arrow keys are recognized;
// other CSI sequences are consumed and dropped. A byte that does not start
// a sequence is queued as its own key.
func (s *InputSource) readEscape() (core.Key, bool) {
	esc := core.CodeKey(core.KeyEscape)
	if !s.wait(escapeTimeout) {
		return esc, true
	}
	b, ok := s.readByte()
	if !ok {
		return esc, true
	}
	if b != '[' && b != 'O' {
		s.pending = append(s.pending, core.DecodeByte(b))
		return esc, true
	}

	for s.wait(escapeTimeout) {
		c, ok := s.readByte()
		if !ok {
			break
		}
		switch c {
		case 'A':
			return core.CodeKey(core.KeyUp), true
		case 'B':
			return core.CodeKey(core.KeyDown), true
		case 'C':
			return core.CodeKey(core.KeyRight), true
		case 'D':
			return core.CodeKey(core.KeyLeft), true
		}
		if c >= 0x40 && c <= 0x7e {
			break
		}
	}
	return core.Key{}, false
}

// readUTF8 completes a multi-byte character starting with lead.
func (s *InputSource) readUTF8(lead byte) core.Key {
	need := 0
	switch {
	case lead&0xe0 == 0xc0:
		need = 2
	case lead&0xf0 == 0xe0:
		need = 3
	case lead&0xf8 == 0xf0:
		need = 4
	default:
		return core.RuneKey(utf8.RuneError)
	}

	seq := []byte{lead}
	for len(seq) < need && s.wait(escapeTimeout) {
		b, ok := s.readByte()
		if !ok {
			break
		}
		seq = append(seq, b)
	}
	r, _ := utf8.DecodeRune(seq)
	return core.RuneKey(r)
}

// ReadLine temporarily restores canonical mode, prints prompt and reads one
// line. With echo off the typed characters are hidden. Raw mode is
// re-applied before returning. Meant for use outside the frame loop.
func (s *InputSource) ReadLine(prompt string, echo bool) (string, error) {
	if s.saved != nil {
		if err := xterm.Restore(s.fd, s.saved); err != nil {
			return "", fmt.Errorf("term: restore canonical mode: %w", err)
		}
		defer makeRaw(s.fd) //nolint:errcheck // raw mode was applied before, reapply best-effort
	}

	if prompt != "" && s.out != nil {
		fmt.Fprint(s.out, prompt)
	}

	if !echo && s.saved != nil {
		line, err := xterm.ReadPassword(s.fd)
		if s.out != nil {
			fmt.Fprintln(s.out)
		}
		if err != nil {
			return "", fmt.Errorf("term: read line: %w", err)
		}
		return string(line), nil
	}

	line, err := s.readCookedLine()
	if err != nil {
		return "", fmt.Errorf("term: read line: %w", err)
	}
	return line, nil
}

// readCookedLine reads byte by byte up to a newline so nothing past the
// line is consumed from the descriptor.
func (s *InputSource) readCookedLine() (string, error) {
	var sb strings.Builder
	for {
		n, err := unix.Read(s.fd, s.buf[:])
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			continue
		}
		if err != nil {
			return "", err
		}
		if n == 0 {
			if sb.Len() == 0 {
				return "", io.EOF
			}
			return sb.String(), nil
		}
		if s.buf[0] == '\n' {
			return strings.TrimSuffix(sb.String(), "\r"), nil
		}
		sb.WriteByte(s.buf[0])
	}
}
