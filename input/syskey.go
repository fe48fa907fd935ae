package input

import (
	"errors"
	"log/slog"
)

// ErrNotSaved is returned when restoring a syskey table whose original kernel
// mappings were never read.
var ErrNotSaved = errors.New("syskey table: original keymap entries not saved")

// SysKey maps (Table, Keycode) to a reserved accelerator Value.
type SysKey struct {
	Table   uint8
	Keycode uint8
	Value   uint16
	// InputMethod entries are only overridden when an input method is configured.
	InputMethod bool

	original uint16
	usable   bool
}

// DefaultSysKeys returns the reserved combinations handled by the emulator.
func DefaultSysKeys() []SysKey {
	return []SysKey{
		{Table: TableShift, Keycode: KeyPageUp, Value: ShiftPageUp},
		{Table: TableShift, Keycode: KeyPageDown, Value: ShiftPageDown},
		{Table: TableShift, Keycode: KeyLeft, Value: ShiftLeft},
		{Table: TableShift, Keycode: KeyRight, Value: ShiftRight},
		{Table: TableCtrl, Keycode: KeySpace, Value: CtrlSpace, InputMethod: true},
		{Table: TableCtrlAlt, Keycode: Key1, Value: CtrlAlt1},
		{Table: TableCtrlAlt, Keycode: Key2, Value: CtrlAlt2},
		{Table: TableCtrlAlt, Keycode: Key3, Value: CtrlAlt3},
		{Table: TableCtrlAlt, Keycode: Key4, Value: CtrlAlt4},
		{Table: TableCtrlAlt, Keycode: Key5, Value: CtrlAlt5},
		{Table: TableCtrlAlt, Keycode: Key6, Value: CtrlAlt6},
		{Table: TableCtrlAlt, Keycode: Key7, Value: CtrlAlt7},
		{Table: TableCtrlAlt, Keycode: Key8, Value: CtrlAlt8},
		{Table: TableCtrlAlt, Keycode: Key9, Value: CtrlAlt9},
		{Table: TableCtrlAlt, Keycode: Key0, Value: CtrlAlt0},
		{Table: TableCtrlAlt, Keycode: KeyC, Value: CtrlAltC},
		{Table: TableCtrlAlt, Keycode: KeyD, Value: CtrlAltD},
		{Table: TableCtrlAlt, Keycode: KeyE, Value: CtrlAltE},
		{Table: TableCtrlAlt, Keycode: KeyF1, Value: CtrlAltF1},
		{Table: TableCtrlAlt, Keycode: KeyF2, Value: CtrlAltF2},
		{Table: TableCtrlAlt, Keycode: KeyF3, Value: CtrlAltF3},
		{Table: TableCtrlAlt, Keycode: KeyF4, Value: CtrlAltF4},
		{Table: TableCtrlAlt, Keycode: KeyF5, Value: CtrlAltF5},
		{Table: TableCtrlAlt, Keycode: KeyF6, Value: CtrlAltF6},
		{Table: TableCtrlAlt, Keycode: KeyK, Value: CtrlAltK, InputMethod: true},
	}
}

type saveState uint8

const (
	notSaved saveState = iota
	saved
)

// SysKeyTable overrides kernel keymap entries with reserved accelerator values
// and puts the original values back on restore. Originals are read once, on
// the first override, and reused for the lifetime of the table.
type SysKeyTable struct {
	entries []SysKey
	state   saveState
	logger  *slog.Logger
}

// NewSysKeyTable creates a table over a copy of entries.
func NewSysKeyTable(entries []SysKey, logger *slog.Logger) *SysKeyTable {
	if logger == nil {
		logger = slog.Default()
	}
	return &SysKeyTable{
		entries: append([]SysKey(nil), entries...),
		logger:  logger,
	}
}

// processSysKeys is shared by every VT driver of the process: the kernel
// keymap is global and its originals must only be captured once.
var processSysKeys = NewSysKeyTable(DefaultSysKeys(), nil)

// Saved reports whether the original kernel values have been captured.
func (t *SysKeyTable) Saved() bool { return t.state == saved }

// Entries returns a copy of the table entries.
func (t *SysKeyTable) Entries() []SysKey {
	return append([]SysKey(nil), t.entries...)
}

// Original returns the saved kernel value of entry i.
func (t *SysKeyTable) Original(i int) (uint16, bool) {
	if t.state != saved || i < 0 || i >= len(t.entries) || !t.entries[i].usable {
		return 0, false
	}
	return t.entries[i].original, true
}

// Apply writes the reserved values (restore=false) or the saved originals
// (restore=true) into the kernel keymap. Entries flagged InputMethod are
// skipped unless withInputMethod is set. failed reports that at least one
// kernel call was rejected; all entries are attempted regardless.
func (t *SysKeyTable) Apply(con Console, priv Privilege, restore, withInputMethod bool) (failed bool, err error) {
	if restore && t.state == notSaved {
		return false, ErrNotSaved
	}
	if priv == nil {
		priv = NoPrivilege{}
	}

	drop, perr := priv.Elevate()
	defer drop()
	if perr != nil {
		t.logger.Debug("syskey: elevate privilege", "error", perr)
	}

	first := t.state == notSaved
	for i := range t.entries {
		e := &t.entries[i]
		if e.InputMethod && !withInputMethod {
			continue
		}

		if first {
			v, rerr := con.KeymapEntry(e.Table, e.Keycode)
			if rerr != nil {
				t.logger.Debug("syskey: read keymap entry", "table", e.Table, "keycode", e.Keycode, "error", rerr)
				failed = true
				continue
			}
			e.original = v
			e.usable = true
		}
		if !e.usable {
			continue
		}

		v := e.Value
		if restore {
			v = e.original
		}
		if werr := con.SetKeymapEntry(e.Table, e.Keycode, v); werr != nil {
			t.logger.Debug("syskey: write keymap entry", "table", e.Table, "keycode", e.Keycode, "value", v, "error", werr)
			failed = true
		}
	}

	if first && !restore {
		t.state = saved
	}
	return failed, nil
}
