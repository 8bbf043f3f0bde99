package term

import (
	"io"
	"strconv"

	"github.com/vovakirdan/tui-breach/internal/core"
)

// ANSI control sequences. Only these are ever written to the terminal.
const (
	seqClear      = "\x1b[2J"
	seqHome       = "\x1b[H"
	seqCursorHide = "\x1b[?25l"
	seqCursorShow = "\x1b[?25h"
	seqSGR0       = "\x1b[0m"
)

// colorSeqs maps each color tag to its SGR sequence.
// Every sequence starts with a reset so tags never accumulate attributes.
var colorSeqs = map[core.Color]string{
	core.ColorDefault:       seqSGR0,
	core.ColorRed:           "\x1b[0;31m",
	core.ColorGreen:         "\x1b[0;32m",
	core.ColorYellow:        "\x1b[0;33m",
	core.ColorBlue:          "\x1b[0;34m",
	core.ColorMagenta:       "\x1b[0;35m",
	core.ColorCyan:          "\x1b[0;36m",
	core.ColorWhite:         "\x1b[0;37m",
	core.ColorBrightRed:     "\x1b[0;91m",
	core.ColorBrightGreen:   "\x1b[0;92m",
	core.ColorBrightYellow:  "\x1b[0;93m",
	core.ColorBrightBlue:    "\x1b[0;94m",
	core.ColorBrightMagenta: "\x1b[0;95m",
	core.ColorBrightCyan:    "\x1b[0;96m",
	core.ColorBrightWhite:   "\x1b[0;97m",
	core.ColorOrange:        "\x1b[0;38;5;208m",
	core.ColorGray:          "\x1b[0;38;5;245m",
	core.ColorDarkGray:      "\x1b[0;38;5;238m",
}

// ColorSequence returns the SGR sequence for a color tag.
// Unknown tags fall back to the default color.
func ColorSequence(c core.Color) string {
	if seq, ok := colorSeqs[c]; ok {
		return seq
	}
	return seqSGR0
}

// cursorPos returns the sequence moving the cursor to (x, y), 0-indexed.
func cursorPos(x, y int) string {
	return "\x1b[" + strconv.Itoa(y+1) + ";" + strconv.Itoa(x+1) + "H"
}

// resetSequence clears the screen, shows the cursor and resets colors.
const resetSequence = seqSGR0 + seqClear + seqHome + seqCursorShow

// WriteReset writes the terminal reset sequence directly to w.
// It keeps no state, so it is safe from signal and panic paths.
func WriteReset(w io.Writer) {
	io.WriteString(w, resetSequence) //nolint:errcheck // best-effort restore
}
