//go:build linux

package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// inputEvent represents a Linux input event structure
// struct input_event { struct timeval time; __u16 type; __u16 code; __s32 value; };
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

type keyEventKind int

const (
	keyDown keyEventKind = iota
	keyUp
)

func (k keyEventKind) String() string {
	if k == keyDown {
		return "down"
	}
	return "up"
}

// keyEvent is a power key transition with the kernel-provided timestamp.
type keyEvent struct {
	At   time.Time
	Kind keyEventKind
}

// keyEventFromRaw filters a raw input event down to a power key event.
// Autorepeat (value=2) is mapped to down; the classifier treats repeated
// downs as noise.
func keyEventFromRaw(ev inputEvent) (keyEvent, bool) {
	if ev.Type != EV_KEY || ev.Code != KEY_POWER {
		return keyEvent{}, false
	}
	at := time.Unix(ev.Sec, ev.Usec*1000)
	switch ev.Value {
	case evValuePress, evValueRepeat:
		return keyEvent{At: at, Kind: keyDown}, true
	case evValueRelease:
		return keyEvent{At: at, Kind: keyUp}, true
	}
	return keyEvent{}, false
}

// findPowerKeyDevice scans byPathDir for the PMIC power key entry.
func findPowerKeyDevice(byPathDir string) (string, error) {
	entries, err := os.ReadDir(byPathDir)
	if err != nil {
		return "", fmt.Errorf("scan %s: %w", byPathDir, err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), powerKeyIdentifier) {
			return filepath.Join(byPathDir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("power key device not found under %s", byPathDir)
}

// keyEventSource is the capability the monitor loop needs from an input
// device: a goroutine-driven stream of key events plus a release hook.
type keyEventSource interface {
	readEvents(events chan<- keyEvent, readErr chan<- error)
	Close() error
}

// powerKeyDevice is an exclusively grabbed power key input device.
type powerKeyDevice struct {
	f       *os.File
	grabbed bool
	logger  *slog.Logger

	closeOnce sync.Once
	closeErr  error

	// ungrab is swappable so tests can observe the release without a real ioctl.
	ungrab func(fd int) error
}

// openPowerKeyDevice opens the device and grabs exclusive access. A failed
// grab is a warning, not an error: the monitor still works, but the desktop
// shell may also react to the key.
func openPowerKeyDevice(path string, logger *slog.Logger) (*powerKeyDevice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	d := &powerKeyDevice{f: f, logger: logger}
	d.ungrab = func(fd int) error { return unix.IoctlSetInt(fd, EVIOCGRAB, 0) }

	if err := unix.IoctlSetInt(int(f.Fd()), EVIOCGRAB, 1); err != nil {
		logger.Warn("failed to grab exclusive access to power key device", "device", path, "error", err)
		logger.Warn("the desktop shell may still receive power key events")
	} else {
		d.grabbed = true
		logger.Info("grabbed exclusive access to power key device", "device", path)
	}
	return d, nil
}

// Close releases the exclusive grab and closes the device. Safe to call
// more than once; only the first call does the work.
func (d *powerKeyDevice) Close() error {
	d.closeOnce.Do(func() {
		if d.grabbed {
			if err := d.ungrab(int(d.f.Fd())); err != nil {
				d.logger.Warn("failed to release power key grab", "error", err)
			}
			d.grabbed = false
		}
		d.closeErr = d.f.Close()
	})
	return d.closeErr
}

// readEvents reads power key events via epoll and sends them to events.
// Transient failures are retried with backoff; after
// maxConsecutiveReadErrors in a row the error goes to readErr and the
// reader stops. Runs in a dedicated goroutine and blocks in epoll_wait.
func (d *powerKeyDevice) readEvents(events chan<- keyEvent, readErr chan<- error) {
	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		readErr <- fmt.Errorf("epoll_create1: %w", err)
		return
	}
	defer unix.Close(epfd)

	fd := int(d.f.Fd())
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, fd, &unix.EpollEvent{
		Events: unix.EPOLLIN,
		Fd:     int32(fd),
	}); err != nil {
		readErr <- fmt.Errorf("epoll_ctl_add: %w", err)
		return
	}

	evSize := binary.Size(inputEvent{})
	buf := make([]byte, evSize)
	reader := bytes.NewReader(buf)
	epollEvents := make([]unix.EpollEvent, 4)
	failures := 0

	for {
		n, err := unix.EpollWait(epfd, epollEvents, -1)
		if err != nil {
			if err == syscall.EINTR {
				continue
			}
			failures++
			if failures >= maxConsecutiveReadErrors {
				readErr <- fmt.Errorf("epoll_wait: %w", err)
				return
			}
			d.logger.Warn("epoll_wait failed, retrying", "error", err, "attempt", failures)
			time.Sleep(epollRetryDelay)
			continue
		}

		for i := 0; i < n; i++ {
			if epollEvents[i].Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
				readErr <- fmt.Errorf("device error/hangup: %s", d.f.Name())
				return
			}

			// A partial read must never decode as an event.
			if _, err := io.ReadFull(d.f, buf); err != nil {
				failures++
				if failures >= maxConsecutiveReadErrors {
					readErr <- fmt.Errorf("read from %s: %w", d.f.Name(), err)
					return
				}
				d.logger.Warn("error reading event, retrying", "error", err, "attempt", failures)
				time.Sleep(readRetryDelay)
				continue
			}
			failures = 0

			reader.Reset(buf)
			var raw inputEvent
			if err := binary.Read(reader, binary.LittleEndian, &raw); err != nil {
				// Skip malformed events
				continue
			}

			d.logger.Debug("input event",
				"sec", raw.Sec, "usec", raw.Usec,
				"type", raw.Type, "code", raw.Code, "value", raw.Value)

			if ev, ok := keyEventFromRaw(raw); ok {
				events <- ev
			}
		}
	}
}
