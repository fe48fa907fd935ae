//go:build linux

package console

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Device is a Linux virtual console. Control requests and escape sequences
// go to the original descriptor; keystrokes are read from a duplicate owned
// by the Device.
type Device struct {
	f  *os.File
	fd int
	in *os.File
}

// Open duplicates f for exclusive reading and returns the console device.
func Open(f *os.File) (*Device, error) {
	fd := int(f.Fd())
	dup, err := unix.Dup(fd)
	if err != nil {
		return nil, fmt.Errorf("dup console descriptor: %w", err)
	}
	unix.CloseOnExec(dup)
	return &Device{
		f:  f,
		fd: fd,
		in: os.NewFile(uintptr(dup), f.Name()+" (input)"),
	}, nil
}

// Input returns the descriptor keystrokes are read from.
func (d *Device) Input() *os.File { return d.in }

func (d *Device) Write(p []byte) (int, error) { return d.f.Write(p) }

func (d *Device) GetState() (*term.State, error) { return term.GetState(d.fd) }

func (d *Device) Restore(st *term.State) error { return term.Restore(d.fd, st) }

func (d *Device) MakeRaw() error {
	_, err := term.MakeRaw(d.fd)
	return err
}

func (d *Device) KeyboardMode() (int, error) {
	return unix.IoctlGetInt(d.fd, _KDGKBMODE)
}

func (d *Device) SetKeyboardMode(mode int) error {
	return unix.IoctlSetInt(d.fd, _KDSKBMODE, mode)
}

func (d *Device) KeymapEntry(table, index uint8) (uint16, error) {
	ke := kbentry{table: table, index: index}
	if err := ioctlPtr(d.fd, _KDGKBENT, unsafe.Pointer(&ke)); err != nil {
		return 0, err
	}
	return ke.value, nil
}

// SetKeymapEntry requires CAP_SYS_TTY_CONFIG.
func (d *Device) SetKeymapEntry(table, index uint8, value uint16) error {
	ke := kbentry{table: table, index: index, value: value}
	return ioctlPtr(d.fd, _KDSKBENT, unsafe.Pointer(&ke))
}

func (d *Device) SetProcessMode(relsig, acqsig syscall.Signal) error {
	vtm := vtMode{
		mode:   _VT_PROCESS,
		relsig: int16(relsig),
		acqsig: int16(acqsig),
	}
	return ioctlPtr(d.fd, _VT_SETMODE, unsafe.Pointer(&vtm))
}

func (d *Device) ReleaseDisplay() error {
	return unix.IoctlSetInt(d.fd, _VT_RELDISP, 1)
}

func (d *Device) Activate(vt int) error {
	return unix.IoctlSetInt(d.fd, _VT_ACTIVATE, vt)
}

func (d *Device) ActiveVT() (int, error) {
	var st vtStat
	if err := ioctlPtr(d.fd, _VT_GETSTATE, unsafe.Pointer(&st)); err != nil {
		return 0, err
	}
	return int(st.active), nil
}

func (d *Device) Minor() (int, error) {
	var st unix.Stat_t
	if err := unix.Fstat(d.fd, &st); err != nil {
		return 0, err
	}
	return int(unix.Minor(uint64(st.Rdev))), nil
}

// Close releases the duplicated input descriptor. The original descriptor
// belongs to the caller.
func (d *Device) Close() error {
	return d.in.Close()
}
