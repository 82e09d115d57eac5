package main

import "log/slog"

// runEffect executes a single controller-emitted Command against the
// hardware backend.
//
// Failures are absorbed here: a failed write is logged and the caller
// proceeds with the remaining commands, because a partial power-saving
// effect is preferred to none.
func runEffect(backend HardwareBackend, cmd Command, logger *slog.Logger) {
	logger.Debug("executing command", "command", cmd.String())

	switch c := cmd.(type) {
	case CmdSetDisplayPower:
		if err := backend.SetDisplayPower(c.On); err != nil {
			logger.Error("display power write failed", "on", c.On, "error", err)
		}

	case CmdSetCPUFreqBounds:
		if err := backend.SetCPUFreqBounds(c.MinKHz, c.MaxKHz); err != nil {
			logger.Error("cpu frequency write failed",
				"min_khz", c.MinKHz, "max_khz", c.MaxKHz, "error", err)
		}

	case CmdRestoreCPUFreqBounds:
		if err := backend.RestoreCPUFreqBounds(); err != nil {
			logger.Error("cpu frequency restore failed", "error", err)
		}

	case CmdSetRadioBlocked:
		if err := backend.SetRadioBlocked(c.Radio, c.Blocked); err != nil {
			logger.Error("radio write failed",
				"radio", c.Radio, "blocked", c.Blocked, "error", err)
		}

	default:
		logger.Warn("unknown command type", "command", cmd.String())
	}
}
