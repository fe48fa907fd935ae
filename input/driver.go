// Package input turns the byte stream of a Linux virtual console into keystrokes
// for the active terminal session and reserved accelerator events.
//
// Two drivers implement the Driver contract: VT owns a real console and
// negotiates VT switching with the kernel, Null is used when no interactive
// console is available (write-only operation).
package input

import (
	"io"
	"syscall"

	"golang.org/x/term"
)

// Driver is the console input contract shared by VT and Null.
type Driver interface {
	// SwitchVc handles the kernel's VT release (enter=false) and acquire
	// (enter=true) requests.
	SwitchVc(enter bool)
	// SetRawMode toggles medium-raw scancode mode. force re-applies the
	// current mode.
	SetRawMode(raw, force bool)
	// ReadyRead decodes one buffer read from the console.
	ReadyRead(buf []byte)
	// ShowInfo reports diagnostics to the user.
	ShowInfo(verbose bool)
	// IsActive reports whether this process owns the foreground console.
	IsActive() bool
	io.Closer
}

// Session receives decoded keystroke bytes. p is only valid for the duration
// of the call.
type Session interface {
	KeyInput(p []byte)
}

// SessionFunc adapts a function to Session.
type SessionFunc func(p []byte)

func (f SessionFunc) KeyInput(p []byte) { f(p) }

// Console is the kernel surface of a virtual console device.
type Console interface {
	io.Writer

	// GetState snapshots the terminal attributes.
	GetState() (*term.State, error)
	// Restore applies a snapshot taken by GetState.
	Restore(st *term.State) error
	// MakeRaw switches the terminal into raw discipline (VMIN=1, VTIME=0).
	MakeRaw() error

	KeyboardMode() (int, error)
	SetKeyboardMode(mode int) error

	// KeymapEntry reads the kernel keymap value of (table, index).
	KeymapEntry(table, index uint8) (uint16, error)
	// SetKeymapEntry writes the kernel keymap value of (table, index).
	SetKeymapEntry(table, index uint8, value uint16) error

	// SetProcessMode registers cooperative (VT_PROCESS) switching.
	SetProcessMode(relsig, acqsig syscall.Signal) error
	// ReleaseDisplay acknowledges a release request.
	ReleaseDisplay() error
	// Activate asks the kernel to make console vt the foreground one.
	Activate(vt int) error
	// ActiveVT returns the foreground console number.
	ActiveVT() (int, error)
	// Minor returns the minor device number of this console.
	Minor() (int, error)

	io.Closer
}

// Privilege raises the effective privilege needed for keymap writes. The
// returned drop func must always be called, also when err is non-nil.
type Privilege interface {
	Elevate() (drop func(), err error)
}

// NoPrivilege is a Privilege that never changes credentials.
type NoPrivilege struct{}

func (NoPrivilege) Elevate() (func(), error) { return func() {}, nil }
