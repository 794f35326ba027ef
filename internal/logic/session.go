package logic

import "time"

// Session owns the display's on/off lifecycle. The display is powered iff
// the session is in WELCOME or ACTIVE. Power-on always passes through a
// fixed-duration welcome screen; the dwell is a polled deadline, never a
// sleep, so the button stays responsive throughout.
type Session struct {
	surface      Surface
	dwell        time.Duration
	state        SessionState
	welcomeStart time.Time
}

// NewSession creates a Session in the OFF state.
func NewSession(surface Surface, dwell time.Duration) *Session {
	return &Session{
		surface: surface,
		dwell:   dwell,
		state:   SessionOff,
	}
}

// ToggleOn powers the display and shows the welcome screen. It only acts
// from OFF; in any other state it is a no-op and reports false.
func (s *Session) ToggleOn(now time.Time) bool {
	if s.state != SessionOff {
		return false
	}
	s.state = SessionWelcome
	s.welcomeStart = now
	s.surface.Clear()
	s.surface.PowerOn()
	s.surface.WriteAt(0, 0, WelcomeLine1)
	s.surface.WriteAt(0, 1, WelcomeLine2)
	return true
}

// ToggleOff clears and powers down the display. It only acts from WELCOME
// or ACTIVE; when already OFF it is a no-op and reports false.
func (s *Session) ToggleOff() bool {
	if s.state == SessionOff {
		return false
	}
	s.state = SessionOff
	s.surface.Clear()
	s.surface.PowerOff()
	return true
}

// Tick resolves the pending WELCOME→ACTIVE transition once the dwell has
// elapsed. It reports true on the tick the transition happens.
func (s *Session) Tick(now time.Time) bool {
	if s.state != SessionWelcome {
		return false
	}
	if now.Sub(s.welcomeStart) < s.dwell {
		return false
	}
	s.state = SessionActive
	s.surface.Clear()
	return true
}

// Active reports whether the sensor/render pipeline should run this tick.
func (s *Session) Active() bool {
	return s.state == SessionActive
}

// State returns the current session state.
func (s *Session) State() SessionState {
	return s.state
}
