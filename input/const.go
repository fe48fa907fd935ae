package input

import "fmt"

// Kernel keyboard table sizes (linux/keyboard.h).
const (
	NRKeys  = 256
	NRShift = 9
)

// Modifier table bits (linux/keyboard.h KG_*).
const (
	KGShift     = 0
	KGAltGr     = 1
	KGCtrl      = 2
	KGAlt       = 3
	KGShiftL    = 4
	KGShiftR    = 5
	KGCtrlL     = 6
	KGCtrlR     = 7
	KGCapsShift = 8
)

// Keymap tables addressed by the syskey overrides.
const (
	TableShift   = 1 << KGShift
	TableCtrl    = 1 << KGCtrl
	TableCtrlAlt = 1<<KGCtrl | 1<<KGAlt
)

// Keyboard modes (linux/kd.h K_*).
const (
	ModeRaw       = 0x00
	ModeXlate     = 0x01
	ModeMediumRaw = 0x02
	ModeUnicode   = 0x03
	ModeOff       = 0x04
)

// Linux input keycodes used by the default syskey table.
const (
	Key1        = 2
	Key2        = 3
	Key3        = 4
	Key4        = 5
	Key5        = 6
	Key6        = 7
	Key7        = 8
	Key8        = 9
	Key9        = 10
	Key0        = 11
	KeyE        = 18
	KeyA        = 30
	KeyD        = 32
	KeyK        = 37
	KeyC        = 46
	KeySpace    = 57
	KeyF1       = 59
	KeyF2       = 60
	KeyF3       = 61
	KeyF4       = 62
	KeyF5       = 63
	KeyF6       = 64
	KeyPageUp   = 104
	KeyLeft     = 105
	KeyRight    = 106
	KeyPageDown = 109
)

// Reserved accelerator codes. They are latin-class keymap values above the
// ASCII range, so the kernel emits them in unicode mode as 2-byte sequences
// (0xC2 0x80 ...).
const (
	ShiftPageUp uint16 = 0x80 + iota
	ShiftPageDown
	ShiftLeft
	ShiftRight
	CtrlSpace
	CtrlAlt1
	CtrlAlt2
	CtrlAlt3
	CtrlAlt4
	CtrlAlt5
	CtrlAlt6
	CtrlAlt7
	CtrlAlt8
	CtrlAlt9
	CtrlAlt0
	CtrlAltC
	CtrlAltD
	CtrlAltE
	CtrlAltF1
	CtrlAltF2
	CtrlAltF3
	CtrlAltF4
	CtrlAltF5
	CtrlAltF6
	CtrlAltK
)

// DefaultAccelerators covers every reserved code above.
var DefaultAccelerators = AcceleratorRange{First: ShiftPageUp, Last: CtrlAltK}

// Escape sequences written to the console.
const (
	seqShowCursor   = "\x1b[?25h"
	seqHideCursor   = "\x1b[?25l"
	seqDisableBlank = "\x1b[9;0]"
	seqEnableBlank  = "\x1b[9;10]"
	seqClearScreen  = "\x1b[2J\x1b[H"
)

// AcceleratorRange is an inclusive range of reserved accelerator codes.
type AcceleratorRange struct {
	First uint16
	Last  uint16
}

// Contains reports whether c lies within the range.
func (r AcceleratorRange) Contains(c uint16) bool {
	return c >= r.First && c <= r.Last
}

var sysKeyNames = map[uint16]string{
	ShiftPageUp:   "Shift+PageUp",
	ShiftPageDown: "Shift+PageDown",
	ShiftLeft:     "Shift+Left",
	ShiftRight:    "Shift+Right",
	CtrlSpace:     "Ctrl+Space",
	CtrlAlt1:      "Ctrl+Alt+1",
	CtrlAlt2:      "Ctrl+Alt+2",
	CtrlAlt3:      "Ctrl+Alt+3",
	CtrlAlt4:      "Ctrl+Alt+4",
	CtrlAlt5:      "Ctrl+Alt+5",
	CtrlAlt6:      "Ctrl+Alt+6",
	CtrlAlt7:      "Ctrl+Alt+7",
	CtrlAlt8:      "Ctrl+Alt+8",
	CtrlAlt9:      "Ctrl+Alt+9",
	CtrlAlt0:      "Ctrl+Alt+0",
	CtrlAltC:      "Ctrl+Alt+C",
	CtrlAltD:      "Ctrl+Alt+D",
	CtrlAltE:      "Ctrl+Alt+E",
	CtrlAltF1:     "Ctrl+Alt+F1",
	CtrlAltF2:     "Ctrl+Alt+F2",
	CtrlAltF3:     "Ctrl+Alt+F3",
	CtrlAltF4:     "Ctrl+Alt+F4",
	CtrlAltF5:     "Ctrl+Alt+F5",
	CtrlAltF6:     "Ctrl+Alt+F6",
	CtrlAltK:      "Ctrl+Alt+K",
}

// SysKeyName returns a readable name for a default accelerator code.
func SysKeyName(code uint16) string {
	if n, ok := sysKeyNames[code]; ok {
		return n
	}
	return fmt.Sprintf("syskey(%#x)", code)
}
