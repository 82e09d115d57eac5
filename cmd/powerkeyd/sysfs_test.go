package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProbePath(t *testing.T) {
	dir := t.TempDir()
	if got := probePath(dir); got != dir {
		t.Errorf("expected existing dir to probe to itself, got %q", got)
	}
	if got := probePath(filepath.Join(dir, "missing")); got != "" {
		t.Errorf("expected empty string for a missing path, got %q", got)
	}
}

func TestFindDRMPanel(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"card1", "card1-HDMI-A-1", "card1-DSI-1"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	if got := findDRMPanel(dir); got != filepath.Join(dir, "card1-DSI-1") {
		t.Errorf("unexpected DSI panel path %q", got)
	}
}

func TestFindDRMPanel_Absent(t *testing.T) {
	if got := findDRMPanel(t.TempDir()); got != "" {
		t.Errorf("expected empty string when no DSI entry exists, got %q", got)
	}
	if got := findDRMPanel(filepath.Join(t.TempDir(), "missing")); got != "" {
		t.Errorf("expected empty string for a missing class dir, got %q", got)
	}
}

func TestDiscoverDisplayPaths_PrefersOverrides(t *testing.T) {
	cfg := DisplayConfig{
		BacklightPath:   "/custom/backlight",
		FramebufferPath: "/custom/fb",
		DRMPanelPath:    "/custom/drm",
	}

	d := discoverDisplayPaths(cfg)
	if d.Backlight != cfg.BacklightPath || d.Framebuffer != cfg.FramebufferPath || d.DRMPanel != cfg.DRMPanelPath {
		t.Errorf("configured paths must win over discovery, got %+v", d)
	}
}
