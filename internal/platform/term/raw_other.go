//go:build unix && !linux

package term

import xterm "golang.org/x/term"

// makeRaw falls back to x/term's raw mode. Reads still never block the
// loop because NextKey polls for readiness first.
func makeRaw(fd int) error {
	_, err := xterm.MakeRaw(fd)
	return err
}
