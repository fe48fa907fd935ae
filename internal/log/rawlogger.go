package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// RawLogger records raw keyboard traffic.
type RawLogger interface {
	// Log records data read from the console (in=true) or delivered to the
	// active session (in=false).
	Log(in bool, data []byte)
}

type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a RawLogger writing to w. A nil writer discards everything.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// OpenRaw picks the raw logger for cfg: the raw file when set, stderr at
// trace level, otherwise a discarding logger. The returned closer is nil
// unless a file was opened.
func OpenRaw(cfg Config) (RawLogger, io.Closer, error) {
	switch {
	case cfg.RawFile != "":
		f, err := os.OpenFile(cfg.RawFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return NewRaw(nil), nil, err
		}
		return NewRaw(f), f, nil
	case ParseLevel(cfg.Level) == LevelTrace:
		return NewRaw(os.Stderr), nil, nil
	default:
		return NewRaw(nil), nil, nil
	}
}

func (r *rawLogger) Log(in bool, data []byte) {
	if len(data) == 0 || r.w == nil {
		return
	}

	dir := "SES<-"
	if in {
		dir = "CON->"
	}
	line := fmt.Sprintf("%s %s %d bytes: % x\n",
		time.Now().Format("2006/01/02 15:04:05.000"),
		dir,
		len(data),
		data)

	r.mu.Lock()
	_, _ = io.WriteString(r.w, line)
	r.mu.Unlock()
}

