package cmd

import (
	"log/slog"

	"github.com/Alia5/vtinput/input"
)

// dispatcher handles accelerators for the run command. Actions that change
// the driver's mode are deferred until the current buffer has been decoded.
type dispatcher struct {
	logger *slog.Logger
	quit   func()
	drv    input.Driver

	raw       bool
	toggleRaw bool
}

func newDispatcher(logger *slog.Logger, quit func()) *dispatcher {
	return &dispatcher{logger: logger, quit: quit}
}

func (d *dispatcher) Handle(code uint16) {
	switch code {
	case input.CtrlAltE:
		d.logger.Info("exit requested", "key", input.SysKeyName(code))
		d.quit()
	case input.CtrlAltD:
		d.toggleRaw = !d.toggleRaw
	default:
		d.logger.Info("accelerator", "key", input.SysKeyName(code), "code", code)
	}
}

// flush applies deferred actions.
func (d *dispatcher) flush() {
	if !d.toggleRaw || d.drv == nil {
		return
	}
	d.toggleRaw = false
	d.raw = !d.raw
	d.logger.Info("keyboard mode changed", "raw", d.raw)
	d.drv.SetRawMode(d.raw, false)
}

// logSession stands in for a terminal session and logs what it receives.
type logSession struct {
	logger *slog.Logger
}

func newLogSession(logger *slog.Logger) *logSession {
	return &logSession{logger: logger}
}

func (s *logSession) KeyInput(p []byte) {
	s.logger.Debug("key input", "len", len(p), "data", string(p))
}
