package term

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	xterm "golang.org/x/term"
)

// Restorer puts the terminal back into a usable state.
// All fields are fixed at construction, so Restore may run from a signal
// goroutine or a panic handler without touching the renderer or game state.
type Restorer struct {
	out   io.Writer
	fd    int
	saved *xterm.State
}

// NewRestorer creates a restorer that writes reset sequences to out and
// reapplies the saved line discipline to fd. A nil state skips the termios
// restore (input was not a terminal).
func NewRestorer(out io.Writer, fd int, saved *xterm.State) *Restorer {
	return &Restorer{out: out, fd: fd, saved: saved}
}

// Restore resets colors, clears the screen, shows the cursor and restores
// the original terminal settings. Idempotent.
func (r *Restorer) Restore() {
	if r == nil {
		return
	}
	if r.out != nil {
		WriteReset(r.out)
		if f, ok := r.out.(*os.File); ok {
			f.Sync() //nolint:errcheck // terminals may not support fsync
		}
	}
	if r.saved != nil {
		xterm.Restore(r.fd, r.saved) //nolint:errcheck // best-effort restore
	}
}

// HandleInterrupts restores the terminal and exits with status 0 when the
// process receives SIGINT or SIGTERM. The returned function stops listening.
// exit is os.Exit in production.
func HandleInterrupts(r *Restorer, exit func(code int)) (stop func()) {
	if exit == nil {
		exit = os.Exit
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	doneCh := make(chan struct{})

	go func() {
		select {
		case <-sigCh:
			r.Restore()
			exit(0)
		case <-doneCh:
		}
	}()

	stopped := false
	return func() {
		if stopped {
			return
		}
		stopped = true
		signal.Stop(sigCh)
		close(doneCh)
	}
}
