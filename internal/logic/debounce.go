package logic

import "time"

// Debouncer filters a noisy raw button line into at most one committed Edge
// per physical press or release. It must be fed every loop tick.
type Debouncer struct {
	delay      time.Duration
	lastRaw    Level
	stable     Level
	lastChange time.Time
}

// NewDebouncer creates a Debouncer with the given settle delay. The line is
// assumed released at startup so a cold boot can never produce a spurious
// toggle before the first real press.
func NewDebouncer(delay time.Duration, start time.Time) *Debouncer {
	return &Debouncer{
		delay:      delay,
		lastRaw:    Released,
		stable:     Released,
		lastChange: start,
	}
}

// Observe feeds one raw sample. It returns a committed Edge when the raw
// level has held a new value for longer than the settle delay.
func (d *Debouncer) Observe(raw Level, now time.Time) (Edge, bool) {
	if raw != d.lastRaw {
		// Could be noise; restart the settle window.
		d.lastRaw = raw
		d.lastChange = now
		return Edge{}, false
	}

	if now.Sub(d.lastChange) > d.delay && raw != d.stable {
		d.stable = raw
		return Edge{Timestamp: now, Level: raw}, true
	}

	return Edge{}, false
}

// Stable returns the current committed level.
func (d *Debouncer) Stable() Level {
	return d.stable
}
