//go:build linux

package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/Alia5/vtinput/input"
)

const readBufSize = 4096

// waker is a non-blocking self-pipe that interrupts poll.
type waker struct {
	r, w int
}

func newWaker() (*waker, error) {
	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, err
	}
	return &waker{r: p[0], w: p[1]}, nil
}

func (k *waker) wake() {
	// a full pipe already guarantees a wakeup
	_, _ = unix.Write(k.w, []byte{0})
}

func (k *waker) drain() {
	var buf [64]byte
	for {
		if n, err := unix.Read(k.r, buf[:]); n <= 0 || err != nil {
			return
		}
	}
}

func (k *waker) close() {
	_ = unix.Close(k.r)
	_ = unix.Close(k.w)
}

// pump feeds console reads and VT switch signals to drv from a single
// goroutine. Signals and cancellation wake the poll through a self-pipe so a
// release request is acknowledged without waiting for input. in is nil for
// drivers that read nothing.
func pump(ctx context.Context, drv input.Driver, in *os.File, disp *dispatcher, logger *slog.Logger) error {
	sigs := make(chan os.Signal, 4)
	signal.Notify(sigs, input.ReleaseSignal, input.AcquireSignal)
	defer signal.Stop(sigs)

	switchVc := func(sig os.Signal) {
		enter := sig == input.AcquireSignal
		logger.Debug("vt switch", "enter", enter)
		drv.SwitchVc(enter)
	}

	if in == nil {
		for {
			select {
			case <-ctx.Done():
				return nil
			case sig := <-sigs:
				switchVc(sig)
			}
		}
	}

	wk, err := newWaker()
	if err != nil {
		return err
	}
	pending := make(chan os.Signal, 16)
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				wk.wake()
				return
			case sig := <-sigs:
				select {
				case pending <- sig:
				case <-done:
					return
				}
				wk.wake()
			}
		}
	}()
	defer func() {
		close(done)
		wg.Wait()
		wk.close()
	}()

	fd := int(in.Fd())
	buf := make([]byte, readBufSize)
	for {
		for drained := false; !drained; {
			select {
			case sig := <-pending:
				switchVc(sig)
			default:
				drained = true
			}
		}
		if ctx.Err() != nil {
			return nil
		}

		fds := []unix.PollFd{
			{Fd: int32(fd), Events: unix.POLLIN},
			{Fd: int32(wk.r), Events: unix.POLLIN},
		}
		if _, err := unix.Poll(fds, -1); err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return err
		}
		if fds[1].Revents != 0 {
			wk.drain()
		}
		if fds[0].Revents == 0 {
			continue
		}

		rn, err := unix.Read(fd, buf)
		if err != nil {
			if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
				continue
			}
			return err
		}
		if rn == 0 {
			logger.Info("console input closed")
			return nil
		}
		drv.ReadyRead(buf[:rn])
		disp.flush()
	}
}
