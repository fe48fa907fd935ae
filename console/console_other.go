//go:build !linux

package console

import (
	"errors"
	"os"

	"github.com/Alia5/vtinput/input"
)

var errUnsupported = errors.New("virtual consoles are only supported on linux")

// Device is unavailable on this platform.
type Device struct{}

// Input always returns nil on this platform.
func (*Device) Input() *os.File { return nil }

// Open is unavailable on this platform.
func Open(f *os.File) (*Device, error) { return nil, errUnsupported }

// Probe always reports a non-terminal on this platform.
func Probe(f *os.File) input.Prober {
	return func() (string, bool, error) { return "", false, errUnsupported }
}

// Opener always fails on this platform.
func Opener(f *os.File, onOpen func(*Device)) input.Opener {
	return func() (input.Console, input.Privilege, error) { return nil, nil, errUnsupported }
}

func (*Device) ActiveVT() (int, error)                         { return 0, errUnsupported }
func (*Device) Minor() (int, error)                            { return 0, errUnsupported }
func (*Device) KeymapEntry(table, index uint8) (uint16, error) { return 0, errUnsupported }
func (*Device) Close() error                                   { return nil }
