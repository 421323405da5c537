// Package keys turns raw terminal input into the four navigation actions the
// interactive loops understand: confirm, exit, back and forward.
package keys

import "runtime"

// Action is an abstract user intent.
type Action int

const (
	// ActionNone is input that maps to nothing.
	ActionNone Action = iota
	// ActionConfirm opens another file (Enter or Space).
	ActionConfirm
	// ActionExit leaves the loop (Esc, Backspace, q or Ctrl-C).
	ActionExit
	// ActionBack moves to the previous playlist entry (Left or Up).
	ActionBack
	// ActionForward moves to the next playlist entry (Right or Down).
	ActionForward
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionConfirm:
		return "confirm"
	case ActionExit:
		return "exit"
	case ActionBack:
		return "back"
	case ActionForward:
		return "forward"
	default:
		return "none"
	}
}

// Raw key codes.
const (
	KeyCtrlC     byte = 0x03
	KeyBackspace byte = 0x08
	KeyLF        byte = '\n'
	KeyCR        byte = '\r'
	KeyEscape    byte = 0x1b
	KeySpace     byte = ' '
	KeyQuit      byte = 'q'
	KeyDelete    byte = 0x7f
)

// Arrow prefixes. POSIX terminals send ESC [ or ESC O followed by A-D; the
// Windows console sends 0xE0 (or 0x00) followed by a scan code.
const (
	ArrowPrefixWindows byte = 0xe0
	ArrowPrefixNull    byte = 0x00
	csiIntroducer      byte = '['
	ss3Introducer      byte = 'O'
)

// Normalized arrow codes returned by RefreshArrow.
const (
	ArrowUp    byte = 'H'
	ArrowDown  byte = 'P'
	ArrowLeft  byte = 'K'
	ArrowRight byte = 'M'
)

// consolePrefixes enables the 0xE0/0x00 arrow prefixes. Elsewhere a lone
// 0x00 is Ctrl-Space and must not wait for a scan code.
var consolePrefixes = runtime.GOOS == "windows"

func isConsolePrefix(c byte) bool {
	return consolePrefixes && (c == ArrowPrefixWindows || c == ArrowPrefixNull)
}

var ansiArrows = map[byte]byte{
	'A': ArrowUp,
	'B': ArrowDown,
	'C': ArrowRight,
	'D': ArrowLeft,
}

// IsConfirmKey reports Enter or Space.
func IsConfirmKey(c byte) bool {
	switch c {
	case KeyCR, KeyLF, KeySpace:
		return true
	default:
		return false
	}
}

// IsExitKey reports Esc, Backspace, q or Ctrl-C.
func IsExitKey(c byte) bool {
	switch c {
	case KeyEscape, KeyBackspace, KeyDelete, KeyQuit, KeyCtrlC:
		return true
	default:
		return false
	}
}

// IsBackKey reports a normalized Left or Up arrow.
func IsBackKey(c byte) bool {
	return c == ArrowLeft || c == ArrowUp
}

// IsForwardKey reports a normalized Right or Down arrow.
func IsForwardKey(c byte) bool {
	return c == ArrowRight || c == ArrowDown
}

// IsArrowPrefix reports whether seq starts an arrow sequence that needs at
// least one more byte to be identified.
func IsArrowPrefix(seq []byte) bool {
	switch {
	case len(seq) == 1:
		return isConsolePrefix(seq[0])
	case len(seq) == 2:
		return seq[0] == KeyEscape && (seq[1] == csiIntroducer || seq[1] == ss3Introducer)
	default:
		return false
	}
}

// RefreshArrow resolves an arrow sequence to its normalized arrow code. ok is
// false when seq is not a complete arrow sequence.
func RefreshArrow(seq []byte) (code byte, ok bool) {
	switch {
	case len(seq) >= 2 && isConsolePrefix(seq[0]):
		return seq[1], true
	case len(seq) >= 3 && seq[0] == KeyEscape && (seq[1] == csiIntroducer || seq[1] == ss3Introducer):
		code, ok = ansiArrows[seq[2]]
		return code, ok
	default:
		return 0, false
	}
}

// Decode maps one key press worth of bytes to an Action. A lone Esc is exit;
// any other escape sequence that is not an arrow is ignored.
func Decode(seq []byte) Action {
	if len(seq) == 0 {
		return ActionNone
	}

	if code, ok := RefreshArrow(seq); ok {
		switch {
		case IsBackKey(code):
			return ActionBack
		case IsForwardKey(code):
			return ActionForward
		default:
			return ActionNone
		}
	}

	if len(seq) > 1 && seq[0] == KeyEscape {
		return ActionNone
	}

	c := seq[0]
	switch {
	case IsConfirmKey(c):
		return ActionConfirm
	case IsExitKey(c):
		return ActionExit
	default:
		return ActionNone
	}
}
