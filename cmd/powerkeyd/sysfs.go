package main

import (
	"os"
	"path/filepath"
	"strings"
)

// probePath returns path when it exists on this system, "" otherwise.
func probePath(path string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// findDRMPanel scans a DRM class directory for a DSI panel entry.
// Returns "" when no panel is present.
func findDRMPanel(classDir string) string {
	entries, err := os.ReadDir(classDir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), "DSI") {
			return filepath.Join(classDir, e.Name())
		}
	}
	return ""
}

// discoverDisplayPaths resolves the display sysfs directories, preferring
// configured overrides and falling back to the platform defaults.
func discoverDisplayPaths(cfg DisplayConfig) displayPaths {
	d := displayPaths{
		Backlight:   cfg.BacklightPath,
		Framebuffer: cfg.FramebufferPath,
		DRMPanel:    cfg.DRMPanelPath,
	}
	if d.Backlight == "" {
		d.Backlight = probePath(defaultBacklightPath)
	}
	if d.Framebuffer == "" {
		d.Framebuffer = probePath(defaultFramebufferPath)
	}
	if d.DRMPanel == "" {
		d.DRMPanel = findDRMPanel(drmClassPath)
	}
	return d
}
