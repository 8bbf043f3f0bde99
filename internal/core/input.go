package core

import "fmt"

// KeyCode classifies a decoded key press.
type KeyCode uint8

const (
	KeyRune KeyCode = iota // Printable character, see Key.Rune
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
)

// Key is a single decoded key press.
type Key struct {
	Code KeyCode
	Rune rune // Set when Code is KeyRune
}

// RuneKey returns a printable key.
func RuneKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// CodeKey returns a non-printable key.
func CodeKey(code KeyCode) Key {
	return Key{Code: code}
}

// String returns a human-readable key name.
func (k Key) String() string {
	switch k.Code {
	case KeyRune:
		if k.Rune == ' ' {
			return "space"
		}
		return string(k.Rune)
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "esc"
	case KeyBackspace:
		return "backspace"
	case KeyTab:
		return "tab"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyCtrlC:
		return "ctrl+c"
	default:
		return fmt.Sprintf("key(%d)", k.Code)
	}
}

// Digit returns the numeric value of a digit key.
func (k Key) Digit() (int, bool) {
	if k.Code != KeyRune || k.Rune < '0' || k.Rune > '9' {
		return 0, false
	}
	return int(k.Rune - '0'), true
}

// Action represents a semantic action, abstracted from physical key presses.
// Scenes work with intents rather than raw bytes.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow
	ActionDown           // S, J, Down arrow
	ActionLeft           // A, H, Left arrow
	ActionRight          // D, L, Right arrow
	ActionConfirm        // Enter
	ActionToggle         // Space - pick, lock or flip in puzzles
	ActionBack           // B, Escape
	ActionQuit           // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionToggle:
		return "Toggle"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Action translates a key to its semantic action.
// This centralizes key bindings so every scene agrees on them.
func (k Key) Action() Action {
	switch k.Code {
	case KeyUp:
		return ActionUp
	case KeyDown:
		return ActionDown
	case KeyLeft:
		return ActionLeft
	case KeyRight:
		return ActionRight
	case KeyEnter:
		return ActionConfirm
	case KeyEscape:
		return ActionBack
	case KeyCtrlC:
		return ActionQuit
	case KeyRune:
	default:
		return ActionNone
	}

	switch k.Rune {
	case 'w', 'W', 'k':
		return ActionUp
	case 's', 'S', 'j':
		return ActionDown
	case 'a', 'A', 'h':
		return ActionLeft
	case 'd', 'D', 'l':
		return ActionRight
	case ' ':
		return ActionToggle
	case 'b', 'B':
		return ActionBack
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// DecodeByte maps a single raw-mode input byte to a key.
// Bytes 0x80 and above are returned as their Latin-1 rune; multi-byte UTF-8
// assembly is the input layer's job.
func DecodeByte(b byte) Key {
	switch b {
	case '\r', '\n':
		return CodeKey(KeyEnter)
	case 0x1b:
		return CodeKey(KeyEscape)
	case 0x7f, 0x08:
		return CodeKey(KeyBackspace)
	case '\t':
		return CodeKey(KeyTab)
	case 0x03:
		return CodeKey(KeyCtrlC)
	}
	return RuneKey(rune(b))
}
