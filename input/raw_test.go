package input_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/vtinput/input"
	th "github.com/Alia5/vtinput/internal/testing"
)

const (
	keyLeftCtrl   = 29
	keyLeftShift  = 42
	keyRightShift = 54
	keyLeftAlt    = 56
	keyCapsLock   = 58
	keyB          = 48
	keyS          = 31
)

func kv(t input.KeyType, v uint8) uint16 {
	return input.KeyValue{Type: t, Value: v}.Raw()
}

// rawConsole returns a console with a small US-like keymap.
func rawConsole() *th.FakeConsole {
	con := th.NewFakeConsole()
	set := func(code uint8, v uint16, tables ...uint8) {
		for _, tbl := range tables {
			con.Keymap[th.KeymapKey{Table: tbl, Index: code}] = v
		}
	}
	all := []uint8{0, 1, 4, 5, 8, 12}
	set(keyLeftShift, kv(input.KTShift, input.KGShift), all...)
	set(keyRightShift, kv(input.KTShift, input.KGShift), all...)
	set(keyCapsLock, kv(input.KTShift, input.KGCapsShift), all...)
	set(keyLeftCtrl, kv(input.KTShift, input.KGCtrl), all...)
	set(keyLeftAlt, kv(input.KTShift, input.KGAlt), all...)
	set(input.KeyA, kv(input.KTLetter, 'a'), 0)
	set(input.KeyA, kv(input.KTLetter, 'A'), 1)
	set(keyB, kv(input.KTLetter, 'b'), 0)
	set(keyS, kv(input.KTLetter, 's'), 0)
	set(input.Key1, kv(input.KTLatin, '1'), 0)
	set(input.Key1, kv(input.KTLatin, uint8(input.CtrlAlt1)), input.TableCtrlAlt)
	set(input.KeyF2, kv(input.KTCons, 1), 8)
	set(200, kv(input.KTFn, 0x20), 0)
	return con
}

func rawVT(t *testing.T, con *th.FakeConsole) (*input.VT, *th.Recorder) {
	t.Helper()
	rec := &th.Recorder{}
	d := th.NewVT(t, con, rec, nil)
	d.SetRawMode(true, false)
	require.True(t, d.RawMode())
	require.Equal(t, input.ModeMediumRaw, con.KbMode)
	return d, rec
}

func TestRaw_OrdinaryKeyIsOneRun(t *testing.T) {
	d, rec := rawVT(t, rawConsole())

	d.ReadyRead([]byte{input.KeyA, input.KeyA | 0x80})

	require.Len(t, rec.Events, 1)
	assert.Equal(t, []byte{input.KeyA, input.KeyA | 0x80}, rec.Events[0].Keys)
	assert.Empty(t, rec.SysKeys())
	assert.Equal(t, 0, d.Keys().DownCount())
}

func TestRaw_SysKey(t *testing.T) {
	con := rawConsole()
	d, rec := rawVT(t, con)

	d.ReadyRead([]byte{
		keyLeftCtrl, keyLeftAlt, input.Key1,
		input.Key1 | 0x80, keyLeftAlt | 0x80, keyLeftCtrl | 0x80,
	})

	assert.Equal(t, []th.Event{
		{Keys: []byte{keyLeftCtrl, keyLeftAlt, input.Key1}},
		{SysKey: input.CtrlAlt1},
		{Keys: []byte{input.Key1 | 0x80, keyLeftAlt | 0x80, keyLeftCtrl | 0x80}},
	}, rec.Events)
	assert.Equal(t, uint16(0), d.Keys().ShiftState())
	assert.Equal(t, 0, d.Keys().DownCount())
	assert.Empty(t, con.Activated)
}

func TestRaw_ConsoleSwitch(t *testing.T) {
	con := rawConsole()
	d, rec := rawVT(t, con)

	d.ReadyRead([]byte{keyLeftAlt, input.KeyF2, input.KeyF2 | 0x80, keyLeftAlt | 0x80})

	assert.Equal(t, []int{2}, con.Activated)
	assert.Equal(t, []th.Event{
		{Keys: []byte{keyLeftAlt, input.KeyF2}},
		{Keys: []byte{input.KeyF2 | 0x80, keyLeftAlt | 0x80}},
	}, rec.Events)
	assert.Empty(t, rec.SysKeys())
}

func TestRaw_ShiftState(t *testing.T) {
	type testCase struct {
		name  string
		in    []byte
		shift uint16
		down  int
	}

	cases := []testCase{
		{
			name:  "shift down",
			in:    []byte{keyLeftShift},
			shift: 1 << input.KGShift,
			down:  1,
		},
		{
			name:  "auto-repeat does not stack",
			in:    []byte{keyLeftShift, keyLeftShift, keyLeftShift, keyLeftShift | 0x80},
			shift: 0,
			down:  0,
		},
		{
			name:  "both shifts, one released",
			in:    []byte{keyLeftShift, keyRightShift, keyLeftShift | 0x80},
			shift: 1 << input.KGShift,
			down:  1,
		},
		{
			name:  "caps shift shares the shift slot",
			in:    []byte{keyCapsLock},
			shift: 1 << input.KGShift,
			down:  1,
		},
		{
			name:  "ctrl and alt",
			in:    []byte{keyLeftCtrl, keyLeftAlt},
			shift: input.TableCtrlAlt,
			down:  2,
		},
		{
			name:  "stray release does not underflow",
			in:    []byte{keyLeftShift | 0x80},
			shift: 0,
			down:  0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, _ := rawVT(t, rawConsole())
			d.ReadyRead(tc.in)
			assert.Equal(t, tc.shift, d.Keys().ShiftState())
			assert.Equal(t, tc.down, d.Keys().DownCount())
		})
	}
}

func TestRaw_ShiftedLookup(t *testing.T) {
	con := rawConsole()
	d, _ := rawVT(t, con)

	d.ReadyRead([]byte{keyLeftShift, input.KeyA})

	require.NotEmpty(t, con.KeymapReads)
	last := con.KeymapReads[len(con.KeymapReads)-1]
	assert.Equal(t, th.KeymapKey{Table: 1 << input.KGShift, Index: input.KeyA}, last)
}

func TestRaw_StrayReleaseIsDropped(t *testing.T) {
	d, rec := rawVT(t, rawConsole())

	d.ReadyRead([]byte{keyB, keyB | 0x80, input.KeyA | 0x80, keyS})

	assert.Equal(t, []th.Event{
		{Keys: []byte{keyB, keyB | 0x80}},
		{Keys: []byte{keyS}},
	}, rec.Events)
	assert.Equal(t, 1, d.Keys().DownCount())
}

func TestRaw_StrayModifierReleaseUpdatesSlot(t *testing.T) {
	con := rawConsole()
	d, rec := rawVT(t, con)

	// left shift was held before raw mode was entered
	d.ReadyRead([]byte{keyRightShift, keyLeftShift | 0x80})

	assert.Equal(t, uint16(0), d.Keys().ShiftState())
	assert.True(t, d.Keys().IsDown(keyRightShift))
	assert.Equal(t, 1, d.Keys().DownCount())
	assert.Equal(t, []th.Event{{Keys: []byte{keyRightShift}}}, rec.Events)
	last := con.KeymapReads[len(con.KeymapReads)-1]
	assert.Equal(t, th.KeymapKey{Table: 1 << input.KGShift, Index: keyLeftShift}, last)

	// the counter never goes below zero
	d.ReadyRead([]byte{keyRightShift | 0x80})
	assert.Equal(t, uint16(0), d.Keys().ShiftState())
	assert.Equal(t, 0, d.Keys().DownCount())
}

func TestRaw_Escape(t *testing.T) {
	t.Run("extended keycode", func(t *testing.T) {
		d, rec := rawVT(t, rawConsole())
		d.ReadyRead([]byte{0x00, 0x81, 0xC8})
		assert.True(t, d.Keys().IsDown(200))
		assert.Equal(t, []byte{0x00, 0x81, 0xC8}, rec.Keys())

		d.ReadyRead([]byte{0x80, 0x81, 0xC8})
		assert.False(t, d.Keys().IsDown(200))
		assert.Equal(t, 0, d.Keys().DownCount())
	})

	t.Run("keycode out of range is ignored", func(t *testing.T) {
		con := rawConsole()
		d, rec := rawVT(t, con)
		d.ReadyRead([]byte{0x00, 0x83, 0x80})
		assert.Equal(t, 0, d.Keys().DownCount())
		assert.Empty(t, con.KeymapReads)
		assert.Equal(t, []byte{0x00, 0x83, 0x80}, rec.Keys())
	})

	t.Run("unmarked extension aborts buffer", func(t *testing.T) {
		d, rec := rawVT(t, rawConsole())
		buf := []byte{input.KeyA, 0x00, 0x01, 0x81, keyS}
		d.ReadyRead(buf)
		assert.True(t, d.Keys().IsDown(input.KeyA))
		assert.False(t, d.Keys().IsDown(keyS))
		assert.Equal(t, buf, rec.Keys())
	})

	t.Run("truncated escape", func(t *testing.T) {
		d, rec := rawVT(t, rawConsole())
		buf := []byte{input.KeyA, 0x00, 0x81}
		d.ReadyRead(buf)
		assert.Equal(t, 1, d.Keys().DownCount())
		assert.Equal(t, buf, rec.Keys())
	})
}

func TestRaw_DownCountBalances(t *testing.T) {
	d, _ := rawVT(t, rawConsole())
	for code := byte(1); code < 0x80; code++ {
		before := d.Keys().DownCount()
		d.ReadyRead([]byte{code, code, code | 0x80})
		d.ReadyRead([]byte{code})
		d.ReadyRead([]byte{code | 0x80})
		assert.Equal(t, before, d.Keys().DownCount(), "code %d", code)
	}
}

func TestRaw_ExitReleasesHeldKeys(t *testing.T) {
	con := rawConsole()
	d, rec := rawVT(t, con)

	d.ReadyRead([]byte{40, input.KeyA, 35, keyB, keyB | 0x80})
	require.Equal(t, 3, d.Keys().DownCount())
	rec.Events = nil

	d.SetRawMode(false, false)

	assert.Equal(t, []th.Event{
		{Keys: []byte{input.KeyA | 0x80}},
		{Keys: []byte{35 | 0x80}},
		{Keys: []byte{40 | 0x80}},
	}, rec.Events)
	assert.Equal(t, input.ModeUnicode, con.KbMode)
	assert.False(t, d.RawMode())
}

func TestRaw_ExitReleasesExtendedKey(t *testing.T) {
	d, rec := rawVT(t, rawConsole())
	d.ReadyRead([]byte{0x00, 0x81, 0xC8})
	rec.Events = nil

	d.SetRawMode(false, false)

	assert.Equal(t, []th.Event{{Keys: []byte{0x80, 0x81, 0xC8}}}, rec.Events)
}

func TestRaw_EnterResetsState(t *testing.T) {
	d, _ := rawVT(t, rawConsole())
	d.ReadyRead([]byte{keyLeftShift, input.KeyA})
	require.Equal(t, 2, d.Keys().DownCount())

	d.SetRawMode(false, false)
	d.SetRawMode(true, false)

	assert.Equal(t, 0, d.Keys().DownCount())
	assert.Equal(t, uint16(0), d.Keys().ShiftState())
	assert.False(t, d.Keys().IsDown(input.KeyA))
}

func TestRaw_SetRawModeIsIdempotent(t *testing.T) {
	con := th.NewFakeConsole()
	d := th.NewVT(t, con, &th.Recorder{}, nil)

	d.SetRawMode(false, false)
	assert.Empty(t, con.KbModes)

	d.SetRawMode(false, true)
	assert.Equal(t, []int{input.ModeUnicode}, con.KbModes)
}
