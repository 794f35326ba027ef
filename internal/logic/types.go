// Package logic contains pure control logic for the weather display:
// button debouncing and the display session state machine.
// This package has NO external dependencies (no GPIO, I2C, MQTT, OS, or
// time.Sleep). Time is always injectable via time.Time parameters.
package logic

import "time"

// Level is a logical button level. Polarity (active-low wiring) is resolved
// by the button reader before values reach this package.
type Level bool

const (
	Pressed  Level = true
	Released Level = false
)

// String returns "PRESSED" or "RELEASED".
func (l Level) String() string {
	if l == Pressed {
		return "PRESSED"
	}
	return "RELEASED"
}

// Edge is a committed (debounced) button transition.
type Edge struct {
	Timestamp time.Time
	Level     Level
}

// SessionState is the display session state.
type SessionState string

const (
	SessionOff     SessionState = "OFF"
	SessionWelcome SessionState = "WELCOME"
	SessionActive  SessionState = "ACTIVE"
)

// Surface is the character display as seen by the session machine and the
// renderer. Implementations live in internal/display.
type Surface interface {
	// Clear blanks the whole surface.
	Clear()
	// WriteAt writes text starting at (col, row), clipped to the surface width.
	WriteAt(col, row int, text string)
	// PowerOn asserts display power and backlight. Idempotent.
	PowerOn()
	// PowerOff deasserts display power and backlight. Idempotent.
	PowerOff()
}

// Welcome text shown for the dwell period after every power-on.
const (
	WelcomeLine1 = "Welcome to"
	WelcomeLine2 = "Wired Wanderer"
)

// EventCounts tracks loop activity since startup.
type EventCounts struct {
	DisplayOn  int
	DisplayOff int
	Polls      int
	PollErrors int
}
