package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, dir, name, value string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(value), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFixture(t *testing.T, dir, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestSysfsBackend_SetCPUFreqBounds(t *testing.T) {
	policy := t.TempDir()
	backend := newSysfsBackend(displayPaths{}, cpuPolicy{Path: policy}, nil, newTestLogger())

	if err := backend.SetCPUFreqBounds(100000, 600000); err != nil {
		t.Fatalf("SetCPUFreqBounds failed: %v", err)
	}
	if got := readFixture(t, policy, "scaling_min_freq"); got != "100000" {
		t.Errorf("expected min 100000, got %q", got)
	}
	if got := readFixture(t, policy, "scaling_max_freq"); got != "600000" {
		t.Errorf("expected max 600000, got %q", got)
	}
}

func TestSysfsBackend_RestoreRewritesCapturedDefaults(t *testing.T) {
	policy := t.TempDir()
	writeFixture(t, policy, "scaling_min_freq", "408000\n")
	writeFixture(t, policy, "scaling_max_freq", "1800000\n")

	cpu := newCPUPolicy(policy)
	if cpu.DefaultMin != "408000" || cpu.DefaultMax != "1800000" {
		t.Fatalf("defaults not captured: min=%q max=%q", cpu.DefaultMin, cpu.DefaultMax)
	}

	backend := newSysfsBackend(displayPaths{}, cpu, nil, newTestLogger())
	if err := backend.SetCPUFreqBounds(100000, 600000); err != nil {
		t.Fatal(err)
	}
	if err := backend.RestoreCPUFreqBounds(); err != nil {
		t.Fatalf("RestoreCPUFreqBounds failed: %v", err)
	}
	if got := readFixture(t, policy, "scaling_min_freq"); got != "408000" {
		t.Errorf("expected restored min 408000, got %q", got)
	}
	if got := readFixture(t, policy, "scaling_max_freq"); got != "1800000" {
		t.Errorf("expected restored max 1800000, got %q", got)
	}
}

func TestSysfsBackend_RestoreWithUnknownDefaultsIsNoop(t *testing.T) {
	policy := t.TempDir()
	backend := newSysfsBackend(displayPaths{}, newCPUPolicy(policy), nil, newTestLogger())

	if err := backend.RestoreCPUFreqBounds(); err != nil {
		t.Fatalf("restore with unknown defaults must not fail: %v", err)
	}
	if _, err := os.Stat(filepath.Join(policy, "scaling_min_freq")); !os.IsNotExist(err) {
		t.Error("restore with unknown defaults must not create attribute files")
	}
}

func TestSysfsBackend_SetDisplayPower(t *testing.T) {
	backlight := t.TempDir()
	fb := t.TempDir()
	drm := t.TempDir()
	display := displayPaths{Backlight: backlight, Framebuffer: fb, DRMPanel: drm}
	backend := newSysfsBackend(display, cpuPolicy{}, nil, newTestLogger())

	if err := backend.SetDisplayPower(false); err != nil {
		t.Fatalf("SetDisplayPower(false) failed: %v", err)
	}
	if got := readFixture(t, backlight, "bl_power"); got != "4" {
		t.Errorf("expected bl_power 4, got %q", got)
	}
	if got := readFixture(t, fb, "blank"); got != "1" {
		t.Errorf("expected blank 1, got %q", got)
	}
	if got := readFixture(t, drm, "status"); got != "off" {
		t.Errorf("expected status off, got %q", got)
	}

	if err := backend.SetDisplayPower(true); err != nil {
		t.Fatalf("SetDisplayPower(true) failed: %v", err)
	}
	if got := readFixture(t, backlight, "bl_power"); got != "0" {
		t.Errorf("expected bl_power 0, got %q", got)
	}
	if got := readFixture(t, fb, "blank"); got != "0" {
		t.Errorf("expected blank 0, got %q", got)
	}
	if got := readFixture(t, drm, "status"); got != "detect" {
		t.Errorf("expected status detect, got %q", got)
	}
}

func TestSysfsBackend_DisplayWithoutBacklightFails(t *testing.T) {
	backend := newSysfsBackend(displayPaths{}, cpuPolicy{}, nil, newTestLogger())

	if err := backend.SetDisplayPower(false); err == nil {
		t.Error("expected an error when no backlight is present")
	}
}

func TestSysfsBackend_SetRadioBlocked(t *testing.T) {
	rfkill := t.TempDir()
	backend := newSysfsBackend(displayPaths{}, cpuPolicy{}, map[Radio]string{RadioWifi: rfkill}, newTestLogger())

	if err := backend.SetRadioBlocked(RadioWifi, true); err != nil {
		t.Fatalf("block failed: %v", err)
	}
	if got := readFixture(t, rfkill, "state"); got != "0" {
		t.Errorf("expected blocked state 0, got %q", got)
	}

	if err := backend.SetRadioBlocked(RadioWifi, false); err != nil {
		t.Fatalf("unblock failed: %v", err)
	}
	if got := readFixture(t, rfkill, "state"); got != "1" {
		t.Errorf("expected unblocked state 1, got %q", got)
	}

	if err := backend.SetRadioBlocked(RadioBluetooth, true); err == nil {
		t.Error("expected an error for a radio without an rfkill path")
	}
}
