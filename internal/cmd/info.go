package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Alia5/vtinput/console"
	"github.com/Alia5/vtinput/input"
)

// Info reports which input driver would be selected, whether this console
// is in the foreground, and the state of the syskey keymap entries. It does
// not take over the console.
type Info struct {
	Input input.Config `embed:"" prefix:"input."`
}

// Run is called by Kong when the info command is executed.
func (i *Info) Run(logger *slog.Logger) error {
	if i.Input.WriteOnly {
		logger.Info("input driver", "driver", "null", "reason", "write-only")
		return nil
	}

	tty, err := input.Check(console.Probe(os.Stdin))
	if err != nil {
		return err
	}
	dev, err := console.Open(os.Stdin)
	if err != nil {
		return fmt.Errorf("open console %s: %w", tty, err)
	}
	defer dev.Close()

	active, aerr := dev.ActiveVT()
	minor, merr := dev.Minor()
	logger.Info("input driver", "driver", "vt", "tty", tty,
		"activeVT", active, "minor", minor,
		"foreground", aerr == nil && merr == nil && active == minor)

	accel := i.Input.Accelerators()
	withIM := i.Input.InputMethod != ""
	for _, e := range input.DefaultSysKeys() {
		if e.InputMethod && !withIM {
			logger.Info("syskey", "key", input.SysKeyName(e.Value), "state", "skipped (no input method)")
			continue
		}
		v, err := dev.KeymapEntry(e.Table, e.Keycode)
		if err != nil {
			logger.Warn("syskey", "key", input.SysKeyName(e.Value), "error", err)
			continue
		}
		kv := input.DecodeKeyValue(v)
		state := "kernel default"
		if kv.Type == input.KTLatin && accel.Contains(uint16(kv.Value)) {
			state = "overridden"
		}
		logger.Info("syskey", "key", input.SysKeyName(e.Value), "value", kv.String(), "state", state)
	}
	return nil
}
