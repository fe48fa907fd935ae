//go:build !linux

package cmd

import (
	"errors"
	"log/slog"
)

// Install is only available on linux.
type Install struct {
	Remove bool   `help:"Remove the capability instead of granting it"`
	Binary string `help:"Executable to modify (defaults to the running binary)" type:"path"`
}

func (c *Install) Run(logger *slog.Logger) error {
	return errors.New("install is only supported on linux")
}
