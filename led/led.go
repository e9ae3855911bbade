// Package led drives the receiver status LED.
//
// On: link live. Slow flash: a direction reversal is waiting for its dwell
// time. Fast flash: failsafe, the link is lost.
package led

import "time"

// Pin is an output pin. It is implemented by machine.Pin.
type Pin interface {
	High()
	Low()
}

// Pattern is a blink pattern.
type Pattern uint8

// Define LED patterns
const (
	Off Pattern = iota
	On
	SlowFlash
	FastFlash
)

// halfPeriod returns how long the LED stays in each state while flashing.
func (p Pattern) halfPeriod() time.Duration {
	switch p {
	case SlowFlash:
		return 250 * time.Millisecond
	case FastFlash:
		return 50 * time.Millisecond
	default:
		return 0
	}
}

// Indicator is a single status LED.
type Indicator struct {
	pin        Pin
	pattern    Pattern
	isOn       bool
	lastToggle time.Time
}

// New creates an indicator with the LED off.
func New(pin Pin) *Indicator {
	pin.Low()
	return &Indicator{pin: pin}
}

// Pattern returns the current pattern.
func (ind *Indicator) Pattern() Pattern {
	return ind.pattern
}

// IsOn reports whether the LED is currently lit.
func (ind *Indicator) IsOn() bool {
	return ind.isOn
}

// Set selects a pattern. Selecting the current pattern keeps the blink phase.
func (ind *Indicator) Set(pattern Pattern) {
	if pattern == ind.pattern {
		return
	}
	ind.pattern = pattern
	ind.lastToggle = time.Time{}
}

// Update drives the pin for the current pattern at time now.
func (ind *Indicator) Update(now time.Time) {
	switch ind.pattern {
	case Off:
		ind.set(false, now)
	case On:
		ind.set(true, now)
	default:
		if ind.lastToggle.IsZero() || now.Sub(ind.lastToggle) >= ind.pattern.halfPeriod() {
			ind.set(!ind.isOn, now)
		}
	}
}

func (ind *Indicator) set(on bool, now time.Time) {
	if on {
		ind.pin.High()
	} else {
		ind.pin.Low()
	}
	ind.isOn = on
	ind.lastToggle = now
}

// ForLink picks the pattern for the link and drive state of a control cycle.
func ForLink(failsafe, reversalPending bool) Pattern {
	switch {
	case failsafe:
		return FastFlash
	case reversalPending:
		return SlowFlash
	default:
		return On
	}
}
