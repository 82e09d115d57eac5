package main

import (
	"testing"
	"time"
)

func ev(kind keyEventKind, at time.Time) keyEvent {
	return keyEvent{At: at, Kind: kind}
}

func TestClassifier_PressDurations(t *testing.T) {
	base := time.Unix(1000, 0)

	tests := []struct {
		name     string
		held     time.Duration
		wantKind pressKind
	}{
		{"well below threshold", 300 * time.Millisecond, pressShort},
		{"just below threshold", 699 * time.Millisecond, pressShort},
		{"exactly threshold", 700 * time.Millisecond, pressLong},
		{"well above threshold", 1200 * time.Millisecond, pressLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newPressClassifier(700 * time.Millisecond)

			if _, done := c.feed(ev(keyDown, base)); done {
				t.Fatal("down event must not complete a press")
			}
			cls, done := c.feed(ev(keyUp, base.Add(tt.held)))
			if !done {
				t.Fatal("up event must complete the press")
			}
			if cls.Kind != tt.wantKind {
				t.Errorf("expected %s, got %s", tt.wantKind, cls.Kind)
			}
			if cls.Duration != tt.held {
				t.Errorf("expected duration %v, got %v", tt.held, cls.Duration)
			}
		})
	}
}

func TestClassifier_DuplicateDownKeepsTimer(t *testing.T) {
	base := time.Unix(1000, 0)
	c := newPressClassifier(700 * time.Millisecond)

	c.feed(ev(keyDown, base))
	// Driver noise: repeated down 500ms in must not restart the timer.
	if _, done := c.feed(ev(keyDown, base.Add(500*time.Millisecond))); done {
		t.Fatal("duplicate down must not complete a press")
	}

	cls, done := c.feed(ev(keyUp, base.Add(900*time.Millisecond)))
	if !done {
		t.Fatal("up event must complete the press")
	}
	// Measured from the first down (900ms >= 700ms), not the duplicate (400ms).
	if cls.Kind != pressLong {
		t.Errorf("expected long press, got %s", cls.Kind)
	}
	if cls.Duration != 900*time.Millisecond {
		t.Errorf("expected duration 900ms, got %v", cls.Duration)
	}
}

func TestClassifier_UpWithoutDownIgnored(t *testing.T) {
	c := newPressClassifier(700 * time.Millisecond)

	if _, done := c.feed(ev(keyUp, time.Unix(1000, 0))); done {
		t.Fatal("up without a pending down must be ignored")
	}
}

func TestClassifier_NegativeDurationCancelled(t *testing.T) {
	base := time.Unix(1000, 0)
	c := newPressClassifier(700 * time.Millisecond)

	c.feed(ev(keyDown, base))
	cls, done := c.feed(ev(keyUp, base.Add(-time.Second)))
	if !done {
		t.Fatal("anomalous up still completes the press")
	}
	if cls.Kind != pressCancelled {
		t.Errorf("expected cancelled, got %s", cls.Kind)
	}
}

func TestClassifier_SequentialPresses(t *testing.T) {
	base := time.Unix(1000, 0)
	c := newPressClassifier(700 * time.Millisecond)

	c.feed(ev(keyDown, base))
	first, _ := c.feed(ev(keyUp, base.Add(200*time.Millisecond)))
	if first.Kind != pressShort {
		t.Fatalf("first press: expected short, got %s", first.Kind)
	}

	second := base.Add(5 * time.Second)
	c.feed(ev(keyDown, second))
	cls, done := c.feed(ev(keyUp, second.Add(time.Second)))
	if !done || cls.Kind != pressLong {
		t.Fatalf("second press: expected long, got done=%v kind=%s", done, cls.Kind)
	}
}
