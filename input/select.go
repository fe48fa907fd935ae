package input

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Alia5/vtinput/internal/log"
)

var (
	// ErrNotTTY is returned when stdin is not a terminal.
	ErrNotTTY = errors.New("stdin isn't a tty")
	// ErrNotInteractive is returned when stdin is a terminal but not a
	// virtual console.
	ErrNotInteractive = errors.New("stdin isn't an interactive tty")
)

// interactivePrefixes are the device paths of virtual consoles.
var interactivePrefixes = []string{"/dev/tty", "/dev/vc"}

// Config holds the user settings that drive selection.
type Config struct {
	WriteOnly   bool   `help:"Don't read keyboard input; use the no-op input driver" default:"false" env:"VTINPUT_WRITE_ONLY"`
	InputMethod string `help:"Input method program; enables the Ctrl+Space and Ctrl+Alt+K shortcuts" env:"VTINPUT_INPUT_METHOD"`
	AccelFirst  uint16 `help:"First reserved accelerator code" default:"128" env:"VTINPUT_ACCEL_FIRST"`
	AccelLast   uint16 `help:"Last reserved accelerator code" default:"152" env:"VTINPUT_ACCEL_LAST"`
}

// Accelerators returns the configured accelerator range.
func (c Config) Accelerators() AcceleratorRange {
	if c.AccelFirst == 0 && c.AccelLast == 0 {
		return DefaultAccelerators
	}
	return AcceleratorRange{First: c.AccelFirst, Last: c.AccelLast}
}

// Prober identifies the process's controlling input. name is the device
// path of stdin; isTerminal is false when stdin is not a terminal at all.
type Prober func() (name string, isTerminal bool, err error)

// Opener opens the console backing stdin.
type Opener func() (Console, Privilege, error)

// IsInteractive reports whether name is a virtual console device path.
func IsInteractive(name string) bool {
	for _, p := range interactivePrefixes {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}

// Check verifies that stdin is an interactive virtual console and returns
// its device path.
func Check(probe Prober) (string, error) {
	name, isTerm, err := probe()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotTTY, err)
	}
	if !isTerm {
		return "", ErrNotTTY
	}
	if !IsInteractive(name) {
		return "", fmt.Errorf("%w: %s", ErrNotInteractive, name)
	}
	return name, nil
}

// Select picks the driver for cfg: Null in write-only mode, otherwise a VT
// driver over the console behind stdin.
func Select(cfg Config, probe Prober, open Opener, opts Options, logger *slog.Logger, rawLogger log.RawLogger) (Driver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.WriteOnly {
		logger.Debug("input: write-only, using null driver")
		return NewNull(), nil
	}

	name, err := Check(probe)
	if err != nil {
		return nil, err
	}

	con, priv, err := open()
	if err != nil {
		return nil, fmt.Errorf("open console %s: %w", name, err)
	}
	opts.InputMethod = cfg.InputMethod
	opts.Accelerators = cfg.Accelerators()
	if priv != nil {
		opts.Privilege = priv
	}
	logger.Debug("input: using console driver", "tty", name)
	return NewVT(con, opts, logger, rawLogger), nil
}
