package input

// Null is the driver used in write-only mode. It owns no console.
type Null struct{}

// NewNull returns a Null driver.
func NewNull() *Null { return &Null{} }

func (*Null) SwitchVc(enter bool)        {}
func (*Null) SetRawMode(raw, force bool) {}
func (*Null) ReadyRead(buf []byte)       {}
func (*Null) ShowInfo(verbose bool)      {}
func (*Null) IsActive() bool             { return true }
func (*Null) Close() error               { return nil }
