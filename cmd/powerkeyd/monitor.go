package main

import (
	"log/slog"
	"os"
)

// runMonitor owns the monitor loop: it spawns the device reader goroutine
// and serially classifies and applies every power key event, so the mode
// toggle for event N completes fully before event N+1 is handled.
//
// Returns nil on a clean signal-driven shutdown and the reader's error
// when the event source fails for good. The device grab is released
// before returning, on every path.
func runMonitor(
	dev keyEventSource,
	classifier *pressClassifier,
	ctrl *modeController,
	backend HardwareBackend,
	sigc <-chan os.Signal,
	logger *slog.Logger,
) error {
	defer dev.Close()

	events := make(chan keyEvent, 16)
	readErr := make(chan error, 1)
	go dev.readEvents(events, readErr)

	for {
		select {
		case sig := <-sigc:
			logger.Info("shutting down", "signal", sig.String())
			return nil

		case err := <-readErr:
			return err

		case ev := <-events:
			logger.Debug("power key event", "kind", ev.Kind.String(), "at", ev.At)

			cls, done := classifier.feed(ev)
			if !done {
				continue
			}

			switch cls.Kind {
			case pressShort:
				logger.Info("short press detected", "held", cls.Duration)
				for _, cmd := range ctrl.handleShortPress() {
					runEffect(backend, cmd, logger)
				}
				logger.Info("mode is now", "mode", ctrl.Mode().String())

			case pressLong:
				ctrl.handleLongPress(cls.Duration)

			case pressCancelled:
				logger.Warn("non-monotonic press duration, dropping event", "duration", cls.Duration)
			}
		}
	}
}
