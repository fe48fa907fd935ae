//go:build linux

package console

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// linux/kd.h and linux/vt.h
const (
	_KDGKBMODE = 0x4B44 // gets current keyboard mode
	_KDSKBMODE = 0x4B45 // sets current keyboard mode
	_KDGKBENT  = 0x4B46 // gets one entry in translation table
	_KDSKBENT  = 0x4B47 // sets one entry in translation table

	_VT_SETMODE  = 0x5602 // set mode of active vt
	_VT_GETSTATE = 0x5603 // get global vt state info
	_VT_RELDISP  = 0x5605 // release display
	_VT_ACTIVATE = 0x5606 // make vt active

	_VT_PROCESS = 0x01 // process controls switching
)

type kbentry struct {
	table uint8
	index uint8
	value uint16
}

type vtMode struct {
	mode   int8  // vt mode
	waitv  int8  // if set, hang on writes if not active
	relsig int16 // signal to raise on release req
	acqsig int16 // signal to raise on acquisition
	frsig  int16 // unused (set to 0)
}

type vtStat struct {
	active uint16 // active vt
	signal uint16 // signal to send
	state  uint16 // vt bitmask
}

func ioctlPtr(fd int, req uintptr, arg unsafe.Pointer) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg)); errno != 0 {
		return os.NewSyscallError("ioctl", errno)
	}
	return nil
}
