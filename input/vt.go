package input

import (
	"errors"
	"log/slog"
	"syscall"

	"golang.org/x/term"

	"github.com/Alia5/vtinput/internal/log"
)

// VTState is the ownership state of the console.
type VTState uint8

const (
	Released VTState = iota
	Acquired
)

func (s VTState) String() string {
	if s == Acquired {
		return "acquired"
	}
	return "released"
}

// Signals used for the cooperative VT switch handshake.
const (
	ReleaseSignal = syscall.SIGUSR1
	AcquireSignal = syscall.SIGUSR2
)

// Options configures a VT driver.
type Options struct {
	// ActiveSession returns the session receiving keystrokes, or nil.
	ActiveSession func() Session
	// OnSysKey receives reserved accelerator codes in input order.
	OnSysKey func(code uint16)
	// InputMethod names the configured input method. When empty the
	// input-method-only syskeys are left alone.
	InputMethod string
	// Accelerators is the reserved code range. Zero means DefaultAccelerators.
	Accelerators AcceleratorRange
	// SysKeys overrides the process-wide syskey table.
	SysKeys   *SysKeyTable
	Privilege Privilege
}

// VT is the console input driver for a Linux virtual console.
type VT struct {
	con     Console
	opts    Options
	sysKeys *SysKeyTable
	priv    Privilege
	keys    KeyState

	rawMode  bool
	state    VTState
	captured bool

	oldTerm   *term.State
	oldKbMode int

	keymapFailure bool

	logger    *slog.Logger
	rawLogger log.RawLogger
}

// NewVT takes ownership of con, hides the cursor, disables blanking and
// registers for cooperative VT switching.
func NewVT(con Console, opts Options, logger *slog.Logger, rawLogger log.RawLogger) *VT {
	if logger == nil {
		logger = slog.Default()
	}
	if rawLogger == nil {
		rawLogger = log.NewRaw(nil)
	}
	if opts.Accelerators == (AcceleratorRange{}) {
		opts.Accelerators = DefaultAccelerators
	}
	d := &VT{
		con:       con,
		opts:      opts,
		sysKeys:   opts.SysKeys,
		priv:      opts.Privilege,
		logger:    logger,
		rawLogger: rawLogger,
	}
	if d.sysKeys == nil {
		d.sysKeys = processSysKeys
	}
	if d.priv == nil {
		d.priv = NoPrivilege{}
	}

	d.write(seqHideCursor)
	d.write(seqDisableBlank)
	if err := con.SetProcessMode(ReleaseSignal, AcquireSignal); err != nil {
		logger.Debug("vt: set process mode", "error", err)
	}
	return d
}

// State returns the current ownership state.
func (d *VT) State() VTState { return d.state }

// RawMode reports whether medium-raw mode is on.
func (d *VT) RawMode() bool { return d.rawMode }

// KeymapFailed reports whether a keymap override was ever rejected.
func (d *VT) KeymapFailed() bool { return d.keymapFailure }

// Keys exposes the raw-mode key state.
func (d *VT) Keys() *KeyState { return &d.keys }

// SwitchVc answers a kernel release (enter=false) or acquire request.
func (d *VT) SwitchVc(enter bool) {
	if !enter {
		if d.state == Acquired {
			d.setupSysKeys(true)
		}
		if err := d.con.ReleaseDisplay(); err != nil {
			d.logger.Debug("vt: release display", "error", err)
		}
		d.state = Released
		d.logger.Debug("vt: released")
		return
	}

	if d.state == Acquired {
		return
	}
	d.setupSysKeys(false)
	d.state = Acquired
	d.logger.Debug("vt: acquired")

	if d.captured {
		return
	}
	d.captured = true

	st, err := d.con.GetState()
	if err != nil {
		d.logger.Debug("vt: get terminal state", "error", err)
	}
	d.oldTerm = st
	mode, err := d.con.KeyboardMode()
	if err != nil {
		d.logger.Debug("vt: get keyboard mode", "error", err)
		mode = ModeUnicode
	}
	d.oldKbMode = mode

	d.SetRawMode(false, true)

	if err := d.con.MakeRaw(); err != nil {
		d.logger.Debug("vt: make raw", "error", err)
	}
}

// SetRawMode switches between unicode and medium-raw keyboard mode.
func (d *VT) SetRawMode(raw, force bool) {
	if !force && raw == d.rawMode {
		return
	}
	d.rawMode = raw

	mode := ModeUnicode
	if raw {
		mode = ModeMediumRaw
	}
	if err := d.con.SetKeyboardMode(mode); err != nil {
		d.logger.Debug("vt: set keyboard mode", "mode", mode, "error", err)
	}

	if raw {
		d.keys.Reset()
		return
	}

	held := d.keys.Held()
	if len(held) == 0 {
		return
	}
	sess := d.activeSession()
	if sess == nil {
		return
	}
	for _, code := range held {
		d.deliver(sess, ReleaseCode(code))
	}
}

// ReadyRead decodes one buffer read from the console.
func (d *VT) ReadyRead(buf []byte) {
	if len(buf) == 0 {
		return
	}
	d.rawLogger.Log(true, buf)
	if d.rawMode {
		d.processRawKeys(buf)
		return
	}
	d.processCooked(buf)
}

// ShowInfo logs the keymap warning and, when verbose, the driver state.
func (d *VT) ShowInfo(verbose bool) {
	if d.keymapFailure {
		d.logger.Warn("can't change kernel keymap table, all shortcuts will NOT work!")
		d.logger.Warn("CAP_SYS_TTY_CONFIG or a setuid root binary is required to override keymap entries")
	}
	if verbose {
		d.logger.Info("console input",
			"state", d.state.String(),
			"rawMode", d.rawMode,
			"inputMethod", d.opts.InputMethod,
			"keysDown", d.keys.DownCount(),
		)
	}
}

// IsActive reports whether this console is the foreground VT.
func (d *VT) IsActive() bool {
	active, err := d.con.ActiveVT()
	if err != nil {
		d.logger.Debug("vt: get state", "error", err)
		return false
	}
	minor, err := d.con.Minor()
	if err != nil {
		d.logger.Debug("vt: stat console", "error", err)
		return false
	}
	return active == minor
}

// Close restores the console if it was ever acquired and releases the
// console descriptor.
func (d *VT) Close() error {
	var errs []error
	if d.captured {
		d.setupSysKeys(true)
		if err := d.con.SetKeyboardMode(d.oldKbMode); err != nil {
			errs = append(errs, err)
		}
		if d.oldTerm != nil {
			if err := d.con.Restore(d.oldTerm); err != nil {
				errs = append(errs, err)
			}
		}
		d.write(seqShowCursor)
		d.write(seqEnableBlank)
		d.write(seqClearScreen)
		d.captured = false
	}
	if err := d.con.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (d *VT) setupSysKeys(restore bool) {
	failed, err := d.sysKeys.Apply(d.con, d.priv, restore, d.opts.InputMethod != "")
	if err != nil {
		d.logger.Debug("vt: syskeys", "restore", restore, "error", err)
		return
	}
	if failed {
		d.keymapFailure = true
	}
}

func (d *VT) activeSession() Session {
	if d.opts.ActiveSession == nil {
		return nil
	}
	return d.opts.ActiveSession()
}

func (d *VT) deliver(sess Session, p []byte) {
	if sess == nil || len(p) == 0 {
		return
	}
	d.rawLogger.Log(false, p)
	sess.KeyInput(p)
}

func (d *VT) sysKey(code uint16) {
	d.logger.Debug("vt: syskey", "code", code)
	if d.opts.OnSysKey != nil {
		d.opts.OnSysKey(code)
	}
}

func (d *VT) write(seq string) {
	if _, err := d.con.Write([]byte(seq)); err != nil {
		d.logger.Debug("vt: write control sequence", "error", err)
	}
}
