package core

import "testing"

func TestKeyAction(t *testing.T) {
	tests := []struct {
		key      Key
		expected Action
	}{
		{CodeKey(KeyUp), ActionUp},
		{RuneKey('w'), ActionUp},
		{RuneKey('k'), ActionUp},
		{CodeKey(KeyDown), ActionDown},
		{RuneKey('s'), ActionDown},
		{RuneKey('j'), ActionDown},
		{CodeKey(KeyLeft), ActionLeft},
		{RuneKey('h'), ActionLeft},
		{CodeKey(KeyRight), ActionRight},
		{RuneKey('l'), ActionRight},
		{CodeKey(KeyEnter), ActionConfirm},
		{RuneKey(' '), ActionToggle},
		{CodeKey(KeyEscape), ActionBack},
		{RuneKey('b'), ActionBack},
		{RuneKey('q'), ActionQuit},
		{CodeKey(KeyCtrlC), ActionQuit},
		{RuneKey('7'), ActionNone},
		{CodeKey(KeyTab), ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.key.String(), func(t *testing.T) {
			if got := tc.key.Action(); got != tc.expected {
				t.Errorf("Action() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestDecodeByte(t *testing.T) {
	tests := []struct {
		b        byte
		expected Key
	}{
		{'\r', CodeKey(KeyEnter)},
		{'\n', CodeKey(KeyEnter)},
		{0x1b, CodeKey(KeyEscape)},
		{0x7f, CodeKey(KeyBackspace)},
		{0x03, CodeKey(KeyCtrlC)},
		{'\t', CodeKey(KeyTab)},
		{'x', RuneKey('x')},
		{'5', RuneKey('5')},
	}

	for _, tc := range tests {
		if got := DecodeByte(tc.b); got != tc.expected {
			t.Errorf("DecodeByte(%#x) = %+v, expected %+v", tc.b, got, tc.expected)
		}
	}
}

func TestKeyDigit(t *testing.T) {
	if d, ok := RuneKey('3').Digit(); !ok || d != 3 {
		t.Errorf("Digit() = %d, %v", d, ok)
	}
	if _, ok := RuneKey('x').Digit(); ok {
		t.Error("non-digit should not parse")
	}
	if _, ok := CodeKey(KeyEnter).Digit(); ok {
		t.Error("code keys are not digits")
	}
}
