package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/vtinput/console"
	"github.com/Alia5/vtinput/input"
	"github.com/Alia5/vtinput/internal/log"
)

// Run owns the console behind stdin and pumps keyboard input until
// interrupted or Ctrl+Alt+E is pressed.
type Run struct {
	Input   input.Config `embed:"" prefix:"input."`
	Raw     bool         `help:"Start in medium-raw scancode mode" default:"false" env:"VTINPUT_RAW"`
	Verbose bool         `help:"Report console state on startup" default:"false" env:"VTINPUT_VERBOSE"`
}

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.Serve(ctx, logger, rawLogger)
}

// Serve selects the input driver for stdin and runs the event loop.
func (r *Run) Serve(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sess := newLogSession(logger)
	disp := newDispatcher(logger, cancel)

	var dev *console.Device
	opts := input.Options{
		ActiveSession: func() input.Session { return sess },
		OnSysKey:      disp.Handle,
	}
	drv, err := input.Select(r.Input,
		console.Probe(os.Stdin),
		console.Opener(os.Stdin, func(d *console.Device) { dev = d }),
		opts, logger, rawLogger)
	if err != nil {
		if errors.Is(err, input.ErrNotTTY) || errors.Is(err, input.ErrNotInteractive) {
			logger.Error("interactive console required", "error", err)
			logger.Info("use --input.write-only to run without keyboard input")
		}
		return fmt.Errorf("select input driver: %w", err)
	}
	defer func() {
		if err := drv.Close(); err != nil {
			logger.Error("failed to restore console", "error", err)
		}
	}()
	disp.drv = drv
	disp.raw = r.Raw

	if drv.IsActive() {
		drv.SwitchVc(true)
	}
	if r.Raw {
		drv.SetRawMode(true, false)
	}
	drv.ShowInfo(r.Verbose)

	var in *os.File
	if dev != nil {
		in = dev.Input()
	}
	logger.Info("console input started", "raw", r.Raw, "writeOnly", r.Input.WriteOnly)
	err = pump(ctx, drv, in, disp, logger)
	logger.Info("console input stopped")
	return err
}
