package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// HardwareBackend is the capability interface for the hardware writes the
// mode controller needs. The sysfs implementation touches the real
// attributes; the dry-run implementation only logs.
type HardwareBackend interface {
	SetDisplayPower(on bool) error
	SetCPUFreqBounds(minKHz, maxKHz int) error
	RestoreCPUFreqBounds() error
	SetRadioBlocked(r Radio, blocked bool) error
}

// displayPaths are the sysfs directories involved in a display toggle.
// The backlight is required; framebuffer and DRM panel are best-effort.
type displayPaths struct {
	Backlight   string
	Framebuffer string // "" when absent
	DRMPanel    string // "" when absent
}

// cpuPolicy is a cpufreq policy directory with the governor's default
// bounds captured once at startup. Restore rewrites the captured values;
// nothing is ever read back later.
type cpuPolicy struct {
	Path       string
	DefaultMin string // raw attribute contents, "" when unreadable at startup
	DefaultMax string
}

func newCPUPolicy(path string) cpuPolicy {
	p := cpuPolicy{Path: path}
	if b, err := os.ReadFile(filepath.Join(path, "scaling_min_freq")); err == nil {
		p.DefaultMin = strings.TrimSpace(string(b))
	}
	if b, err := os.ReadFile(filepath.Join(path, "scaling_max_freq")); err == nil {
		p.DefaultMax = strings.TrimSpace(string(b))
	}
	return p
}

// sysfsBackend applies hardware state through sysfs attribute writes.
type sysfsBackend struct {
	display displayPaths
	cpu     cpuPolicy
	rfkill  map[Radio]string
	logger  *slog.Logger
}

func newSysfsBackend(display displayPaths, cpu cpuPolicy, rfkill map[Radio]string, logger *slog.Logger) *sysfsBackend {
	return &sysfsBackend{
		display: display,
		cpu:     cpu,
		rfkill:  rfkill,
		logger:  logger,
	}
}

// writeAttr writes one sysfs attribute value.
func writeAttr(dir, name, value string) error {
	if dir == "" {
		return fmt.Errorf("%s: no device path", name)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write %q to %s: %w", value, p, err)
	}
	return nil
}

// writeOptional writes a best-effort attribute on a device that may be absent.
func (b *sysfsBackend) writeOptional(dir, name, value string) {
	if dir == "" {
		return
	}
	if err := writeAttr(dir, name, value); err != nil {
		b.logger.Debug("optional attribute write failed", "error", err)
	}
}

// SetDisplayPower drives the backlight, and best-effort the framebuffer
// blanking and DRM panel status. Power-off order is the reverse of
// power-on so the panel is never lit while blanked.
func (b *sysfsBackend) SetDisplayPower(on bool) error {
	if on {
		b.writeOptional(b.display.Framebuffer, "blank", "0")
		err := writeAttr(b.display.Backlight, "bl_power", "0")
		b.writeOptional(b.display.DRMPanel, "status", "detect")
		if err != nil {
			return fmt.Errorf("backlight: %w", err)
		}
		return nil
	}

	b.writeOptional(b.display.DRMPanel, "status", "off")
	b.writeOptional(b.display.Framebuffer, "blank", "1")
	if err := writeAttr(b.display.Backlight, "bl_power", "4"); err != nil {
		return fmt.Errorf("backlight: %w", err)
	}
	return nil
}

// SetCPUFreqBounds writes both scaling bounds. The max write is attempted
// even if the min write fails.
func (b *sysfsBackend) SetCPUFreqBounds(minKHz, maxKHz int) error {
	errMin := writeAttr(b.cpu.Path, "scaling_min_freq", strconv.Itoa(minKHz))
	errMax := writeAttr(b.cpu.Path, "scaling_max_freq", strconv.Itoa(maxKHz))
	return errors.Join(errMin, errMax)
}

// RestoreCPUFreqBounds rewrites the bounds captured at startup. When the
// defaults could not be read at startup there is nothing to restore.
func (b *sysfsBackend) RestoreCPUFreqBounds() error {
	if b.cpu.DefaultMin == "" || b.cpu.DefaultMax == "" {
		b.logger.Debug("default cpu frequency bounds unknown, skipping restore")
		return nil
	}
	errMin := writeAttr(b.cpu.Path, "scaling_min_freq", b.cpu.DefaultMin)
	errMax := writeAttr(b.cpu.Path, "scaling_max_freq", b.cpu.DefaultMax)
	return errors.Join(errMin, errMax)
}

// SetRadioBlocked writes the rfkill soft-block state: "0" blocked, "1" unblocked.
func (b *sysfsBackend) SetRadioBlocked(r Radio, blocked bool) error {
	dir, ok := b.rfkill[r]
	if !ok || dir == "" {
		return fmt.Errorf("no rfkill path for radio %s", r)
	}
	value := "1"
	if blocked {
		value = "0"
	}
	return writeAttr(dir, "state", value)
}

// dryRunBackend logs every call instead of touching sysfs. It lets an
// operator validate classification and mode toggling without disturbing a
// running session.
type dryRunBackend struct {
	logger *slog.Logger
}

func newDryRunBackend(logger *slog.Logger) *dryRunBackend {
	return &dryRunBackend{logger: logger}
}

func (b *dryRunBackend) SetDisplayPower(on bool) error {
	b.logger.Info("dry-run: would set display power", "on", on)
	return nil
}

func (b *dryRunBackend) SetCPUFreqBounds(minKHz, maxKHz int) error {
	b.logger.Info("dry-run: would set cpu frequency bounds", "min_khz", minKHz, "max_khz", maxKHz)
	return nil
}

func (b *dryRunBackend) RestoreCPUFreqBounds() error {
	b.logger.Info("dry-run: would restore default cpu frequency bounds")
	return nil
}

func (b *dryRunBackend) SetRadioBlocked(r Radio, blocked bool) error {
	b.logger.Info("dry-run: would set radio state", "radio", r, "blocked", blocked)
	return nil
}
