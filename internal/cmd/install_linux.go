//go:build linux

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ttyCapability lets the process rewrite kernel keymap entries without
// running as root.
const ttyCapability = "cap_sys_tty_config+ep"

// Install grants the keymap capability to the vtinput executable.
type Install struct {
	Remove bool   `help:"Remove the capability instead of granting it"`
	Binary string `help:"Executable to modify (defaults to the running binary)" type:"path"`
}

// Run is called by Kong when the install command is executed.
func (c *Install) Run(logger *slog.Logger) error {
	exePath := c.Binary
	if exePath == "" {
		var err error
		if exePath, err = currentExecutable(); err != nil {
			return err
		}
	}
	if c.Remove {
		return uninstall(logger, exePath)
	}
	return install(logger, exePath)
}

func install(logger *slog.Logger, exePath string) error {
	if err := runSetcap(setcapArgs(exePath, false)...); err != nil {
		return err
	}
	logger.Info("keymap capability granted", "exe", exePath, "capability", ttyCapability)
	return nil
}

func uninstall(logger *slog.Logger, exePath string) error {
	if err := runSetcap(setcapArgs(exePath, true)...); err != nil {
		return err
	}
	logger.Info("keymap capability removed", "exe", exePath)
	return nil
}

func setcapArgs(exePath string, remove bool) []string {
	if remove {
		return []string{"-r", exePath}
	}
	return []string{ttyCapability, exePath}
}

func currentExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}
	if exe == "" {
		return "", errors.New("cannot resolve executable path")
	}
	return exe, nil
}

var runSetcap = func(args ...string) error {
	cmd := exec.Command("setcap", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("setcap %s failed: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}
