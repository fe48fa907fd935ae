package testing

import (
	"bytes"
	"errors"
	"syscall"
	"testing"

	"golang.org/x/term"

	"github.com/Alia5/vtinput/input"
)

// ErrRejected is returned by FakeConsole for rejected requests.
var ErrRejected = errors.New("operation not permitted")

// KeymapKey addresses one kernel keymap entry.
type KeymapKey struct {
	Table uint8
	Index uint8
}

// KeymapWrite records one SetKeymapEntry call.
type KeymapWrite struct {
	KeymapKey
	Value uint16
}

// FakeConsole is an in-memory input.Console.
type FakeConsole struct {
	Out bytes.Buffer

	Keymap       map[KeymapKey]uint16
	RejectWrites bool
	RejectReads  bool
	KeymapReads  []KeymapKey
	KeymapWrites []KeymapWrite

	KbMode    int
	KbModes   []int
	Raw       bool
	State     *term.State
	Restored  *term.State
	ActiveNum int
	MinorNum  int

	ProcessMode bool
	RelSig      syscall.Signal
	AcqSig      syscall.Signal
	Releases    int
	Activated   []int
	Closed      bool
}

// NewFakeConsole returns a console in unicode mode whose keymap is empty.
func NewFakeConsole() *FakeConsole {
	return &FakeConsole{
		Keymap: map[KeymapKey]uint16{},
		KbMode: input.ModeUnicode,
		State:  &term.State{},
	}
}

var _ input.Console = (*FakeConsole)(nil)

func (c *FakeConsole) Write(p []byte) (int, error) { return c.Out.Write(p) }

func (c *FakeConsole) GetState() (*term.State, error) { return c.State, nil }

func (c *FakeConsole) Restore(st *term.State) error {
	c.Restored = st
	c.Raw = false
	return nil
}

func (c *FakeConsole) MakeRaw() error {
	c.Raw = true
	return nil
}

func (c *FakeConsole) KeyboardMode() (int, error) { return c.KbMode, nil }

func (c *FakeConsole) SetKeyboardMode(mode int) error {
	c.KbMode = mode
	c.KbModes = append(c.KbModes, mode)
	return nil
}

func (c *FakeConsole) KeymapEntry(table, index uint8) (uint16, error) {
	k := KeymapKey{Table: table, Index: index}
	c.KeymapReads = append(c.KeymapReads, k)
	if c.RejectReads {
		return 0, ErrRejected
	}
	return c.Keymap[k], nil
}

func (c *FakeConsole) SetKeymapEntry(table, index uint8, value uint16) error {
	k := KeymapKey{Table: table, Index: index}
	c.KeymapWrites = append(c.KeymapWrites, KeymapWrite{KeymapKey: k, Value: value})
	if c.RejectWrites {
		return ErrRejected
	}
	c.Keymap[k] = value
	return nil
}

func (c *FakeConsole) SetProcessMode(relsig, acqsig syscall.Signal) error {
	c.ProcessMode = true
	c.RelSig, c.AcqSig = relsig, acqsig
	return nil
}

func (c *FakeConsole) ReleaseDisplay() error {
	c.Releases++
	return nil
}

func (c *FakeConsole) Activate(vt int) error {
	c.Activated = append(c.Activated, vt)
	return nil
}

func (c *FakeConsole) ActiveVT() (int, error) { return c.ActiveNum, nil }

func (c *FakeConsole) Minor() (int, error) { return c.MinorNum, nil }

func (c *FakeConsole) Close() error {
	c.Closed = true
	return nil
}

// FakePrivilege counts elevations and drops.
type FakePrivilege struct {
	Elevated int
	Dropped  int
	Err      error
}

func (p *FakePrivilege) Elevate() (func(), error) {
	p.Elevated++
	return func() { p.Dropped++ }, p.Err
}

// Event is one output of the input driver, in order.
type Event struct {
	Keys   []byte
	SysKey uint16
}

// Recorder collects session deliveries and syskeys in input order.
type Recorder struct {
	Events []Event
}

func (r *Recorder) KeyInput(p []byte) {
	r.Events = append(r.Events, Event{Keys: append([]byte(nil), p...)})
}

func (r *Recorder) OnSysKey(code uint16) {
	r.Events = append(r.Events, Event{SysKey: code})
}

// Keys concatenates every delivered byte.
func (r *Recorder) Keys() []byte {
	var out []byte
	for _, e := range r.Events {
		out = append(out, e.Keys...)
	}
	return out
}

// SysKeys lists the dispatched syskeys.
func (r *Recorder) SysKeys() []uint16 {
	var out []uint16
	for _, e := range r.Events {
		if e.Keys == nil {
			out = append(out, e.SysKey)
		}
	}
	return out
}

// Options wires r into driver options with the active session always set.
func (r *Recorder) Options() input.Options {
	return input.Options{
		ActiveSession: func() input.Session { return r },
		OnSysKey:      r.OnSysKey,
	}
}

// NewVT builds a VT driver over con with a fresh syskey table and r as
// session and dispatcher.
func NewVT(t *testing.T, con *FakeConsole, r *Recorder, priv *FakePrivilege) *input.VT {
	t.Helper()
	opts := r.Options()
	opts.SysKeys = input.NewSysKeyTable(input.DefaultSysKeys(), nil)
	if priv != nil {
		opts.Privilege = priv
	}
	return input.NewVT(con, opts, nil, nil)
}
