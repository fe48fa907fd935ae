//go:build !linux

package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/Alia5/vtinput/input"
)

func pump(ctx context.Context, drv input.Driver, in *os.File, disp *dispatcher, logger *slog.Logger) error {
	if in != nil {
		return errors.New("console input is only supported on linux")
	}
	<-ctx.Done()
	return nil
}
