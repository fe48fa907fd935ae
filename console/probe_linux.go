//go:build linux

package console

import (
	"os"
	"strconv"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/Alia5/vtinput/input"
)

// Probe identifies f as a character-device terminal and resolves its path.
func Probe(f *os.File) input.Prober {
	return func() (string, bool, error) {
		fd := int(f.Fd())
		if !term.IsTerminal(fd) {
			return "", false, nil
		}
		var st unix.Stat_t
		if err := unix.Fstat(fd, &st); err != nil {
			return "", false, err
		}
		if st.Mode&unix.S_IFMT != unix.S_IFCHR {
			return "", false, nil
		}
		name, err := os.Readlink("/proc/self/fd/" + strconv.Itoa(fd))
		if err != nil {
			return "", true, err
		}
		return name, true, nil
	}
}

// Opener opens f as a console device with effective-uid elevation for
// keymap writes. onOpen, when set, receives the device so the caller can
// poll its input descriptor.
func Opener(f *os.File, onOpen func(*Device)) input.Opener {
	return func() (input.Console, input.Privilege, error) {
		d, err := Open(f)
		if err != nil {
			return nil, nil, err
		}
		if onOpen != nil {
			onOpen(d)
		}
		return d, EUID{}, nil
	}
}
