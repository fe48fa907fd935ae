//go:build linux

package console

import (
	"log/slog"

	"golang.org/x/sys/unix"
)

// EUID raises the effective uid to root for the duration of a keymap update.
// It only succeeds for setuid-root binaries; otherwise keymap writes need
// CAP_SYS_TTY_CONFIG. Real and saved uids are left untouched.
type EUID struct{}

// Elevate sets the effective uid to 0. The returned drop func resets it to
// the real uid and must be called even when err is non-nil.
func (EUID) Elevate() (func(), error) {
	err := unix.Setresuid(-1, 0, -1)
	return func() {
		if derr := unix.Setresuid(-1, unix.Getuid(), -1); derr != nil {
			slog.Debug("console: drop effective uid", "error", derr)
		}
	}, err
}
