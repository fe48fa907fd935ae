package input_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/vtinput/input"
	th "github.com/Alia5/vtinput/internal/testing"
)

func probeOf(name string, isTerm bool, err error) input.Prober {
	return func() (string, bool, error) { return name, isTerm, err }
}

func TestSelect(t *testing.T) {
	errOpen := errors.New("open /dev/tty2: permission denied")

	type testCase struct {
		name     string
		cfg      input.Config
		probe    input.Prober
		openErr  error
		wantErr  error
		wantNull bool
		opened   bool
	}

	cases := []testCase{
		{
			name:     "write-only ignores stdin",
			cfg:      input.Config{WriteOnly: true},
			probe:    probeOf("", false, nil),
			wantNull: true,
		},
		{
			name:    "not a terminal",
			probe:   probeOf("", false, nil),
			wantErr: input.ErrNotTTY,
		},
		{
			name:    "probe failure",
			probe:   probeOf("", false, errors.New("bad file descriptor")),
			wantErr: input.ErrNotTTY,
		},
		{
			name:    "pseudo terminal",
			probe:   probeOf("/dev/pts/3", true, nil),
			wantErr: input.ErrNotInteractive,
		},
		{
			name:   "virtual console",
			probe:  probeOf("/dev/tty2", true, nil),
			opened: true,
		},
		{
			name:   "devfs virtual console",
			probe:  probeOf("/dev/vc/1", true, nil),
			opened: true,
		},
		{
			name:    "open failure",
			probe:   probeOf("/dev/tty2", true, nil),
			openErr: errOpen,
			wantErr: errOpen,
			opened:  true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			con := th.NewFakeConsole()
			opened := false
			open := func() (input.Console, input.Privilege, error) {
				opened = true
				if tc.openErr != nil {
					return nil, nil, tc.openErr
				}
				return con, &th.FakePrivilege{}, nil
			}

			drv, err := input.Select(tc.cfg, tc.probe, open, (&th.Recorder{}).Options(), nil, nil)
			assert.Equal(t, tc.opened, opened)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, drv)
				return
			}
			require.NoError(t, err)
			if tc.wantNull {
				assert.IsType(t, &input.Null{}, drv)
				return
			}
			assert.IsType(t, &input.VT{}, drv)
			assert.True(t, con.ProcessMode)
		})
	}
}

func TestSelect_PassesConfigToDriver(t *testing.T) {
	con := th.NewFakeConsole()
	open := func() (input.Console, input.Privilege, error) { return con, nil, nil }
	cfg := input.Config{InputMethod: "fcitx", AccelFirst: 0x80, AccelLast: 0x98}

	opts := (&th.Recorder{}).Options()
	opts.SysKeys = input.NewSysKeyTable(input.DefaultSysKeys(), nil)
	drv, err := input.Select(cfg, probeOf("/dev/tty1", true, nil), open, opts, nil, nil)
	require.NoError(t, err)

	drv.SwitchVc(true)
	assert.Len(t, con.KeymapWrites, len(input.DefaultSysKeys()))
}

func TestIsInteractive(t *testing.T) {
	assert.True(t, input.IsInteractive("/dev/tty1"))
	assert.True(t, input.IsInteractive("/dev/tty63"))
	assert.True(t, input.IsInteractive("/dev/vc/4"))
	assert.False(t, input.IsInteractive("/dev/pts/0"))
	assert.False(t, input.IsInteractive(""))
}

func TestConfig_Accelerators(t *testing.T) {
	assert.Equal(t, input.DefaultAccelerators, input.Config{}.Accelerators())
	assert.Equal(t, input.AcceleratorRange{First: 0x80, Last: 0xA0}, input.Config{AccelFirst: 0x80, AccelLast: 0xA0}.Accelerators())
	assert.True(t, input.DefaultAccelerators.Contains(input.CtrlAltK))
	assert.False(t, input.DefaultAccelerators.Contains(input.CtrlAltK+1))
	assert.False(t, input.DefaultAccelerators.Contains(0x7f))
}
