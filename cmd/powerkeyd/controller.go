package main

import (
	"log/slog"
	"time"
)

// Mode is the daemon's operating profile.
type Mode int

const (
	ModeNormal Mode = iota
	ModePowerSaving
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModePowerSaving:
		return "power-saving"
	default:
		return "unknown"
	}
}

// Radio identifies a toggleable rfkill radio.
type Radio string

const (
	RadioWifi      Radio = "wifi"
	RadioBluetooth Radio = "bluetooth"
)

// cpuFreqBounds are the configured power-saving CPU frequency bounds in MHz.
type cpuFreqBounds struct {
	MinMHz int
	MaxMHz int
}

// modeController owns the Normal/PowerSaving state machine. A short press
// flips the mode and plans the hardware commands for the new mode; the
// monitor loop executes them.
//
// The mode flip is applied before any hardware write is attempted, so the
// tracked mode always reflects "last requested", not "last confirmed". A
// partial hardware failure can therefore leave the physical state behind
// the tracked one; the next toggle still starts from a consistent machine.
type modeController struct {
	mode      Mode
	savingCPU *cpuFreqBounds // nil: the CPU frequency step is skipped entirely
	radios    []Radio        // radios toggled alongside the mode
	logger    *slog.Logger
}

func newModeController(savingCPU *cpuFreqBounds, radios []Radio, logger *slog.Logger) *modeController {
	return &modeController{
		mode:      ModeNormal,
		savingCPU: savingCPU,
		radios:    radios,
		logger:    logger,
	}
}

func (mc *modeController) Mode() Mode { return mc.mode }

// handleShortPress flips the mode and returns the commands for the new
// mode, in order: display, CPU frequency bounds, radios.
func (mc *modeController) handleShortPress() []Command {
	if mc.mode == ModeNormal {
		mc.mode = ModePowerSaving
		mc.logger.Info("entering power-saving mode")
	} else {
		mc.mode = ModeNormal
		mc.logger.Info("exiting power-saving mode")
	}

	saving := mc.mode == ModePowerSaving

	cmds := []Command{CmdSetDisplayPower{On: !saving}}

	if mc.savingCPU != nil {
		if saving {
			cmds = append(cmds, CmdSetCPUFreqBounds{
				MinKHz: mc.savingCPU.MinMHz * 1000,
				MaxKHz: mc.savingCPU.MaxMHz * 1000,
			})
		} else {
			cmds = append(cmds, CmdRestoreCPUFreqBounds{})
		}
	} else {
		mc.logger.Debug("no saving CPU frequency configured, skipping CPU step")
	}

	for _, r := range mc.radios {
		cmds = append(cmds, CmdSetRadioBlocked{Radio: r, Blocked: saving})
	}
	return cmds
}

// handleLongPress is deliberately a no-op: long presses are classified and
// logged but reserved for future use.
func (mc *modeController) handleLongPress(held time.Duration) {
	mc.logger.Info("long press detected, no action implemented", "held", held)
}
