package main

import "time"

// pressKind classifies a completed power key press.
type pressKind int

const (
	pressShort pressKind = iota
	pressLong
	pressCancelled
)

func (k pressKind) String() string {
	switch k {
	case pressShort:
		return "short"
	case pressLong:
		return "long"
	case pressCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// pressClassification is the result of one completed press: how long the
// key was held and what that means against the hold trigger.
type pressClassification struct {
	Duration time.Duration
	Kind     pressKind
}

// pressClassifier turns a stream of raw down/up events into classified
// presses.
//
// Some key drivers emit duplicate down events (and autorepeat) during a
// single physical press; those never reset the running timer. An up with
// no pending down is dropped the same way.
type pressClassifier struct {
	holdTrigger time.Duration

	down   bool
	downAt time.Time
}

func newPressClassifier(holdTrigger time.Duration) *pressClassifier {
	return &pressClassifier{holdTrigger: holdTrigger}
}

// feed consumes one key event. It returns a classification and true when
// an up event completes a press; everything else returns false.
func (c *pressClassifier) feed(ev keyEvent) (pressClassification, bool) {
	switch ev.Kind {
	case keyDown:
		if c.down {
			// Duplicate down without an intervening up: noise, keep the timer.
			return pressClassification{}, false
		}
		c.down = true
		c.downAt = ev.At
		return pressClassification{}, false

	case keyUp:
		if !c.down {
			return pressClassification{}, false
		}
		c.down = false
		d := ev.At.Sub(c.downAt)
		if d < 0 {
			// Clock anomaly: drop the press rather than act on garbage.
			return pressClassification{Duration: d, Kind: pressCancelled}, true
		}
		if d < c.holdTrigger {
			return pressClassification{Duration: d, Kind: pressShort}, true
		}
		return pressClassification{Duration: d, Kind: pressLong}, true
	}
	return pressClassification{}, false
}
