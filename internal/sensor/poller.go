package sensor

import "time"

// Poller rate-limits reads of a Reader. It performs at most one hardware
// transaction per interval regardless of how often Poll is called, and it
// advances the schedule even when a read fails so a broken sensor is never
// hammered every tick.
type Poller struct {
	r        Reader
	interval time.Duration
	lastPoll time.Time
}

// NewPoller creates a Poller. The first read becomes eligible one full
// interval after start.
func NewPoller(r Reader, interval time.Duration, start time.Time) *Poller {
	return &Poller{
		r:        r,
		interval: interval,
		lastPoll: start,
	}
}

// Poll reads the sensor if the interval has elapsed. The second return is
// false when no read was due this tick. A due read always produces a
// reading: the Invalid marker when the underlying read errored or either
// quantity came back not-a-number.
func (p *Poller) Poll(now time.Time) (Reading, bool) {
	if now.Sub(p.lastPoll) < p.interval {
		return Reading{}, false
	}
	p.lastPoll = now

	r, err := p.r.Read()
	if err != nil {
		return Invalid(), true
	}
	if !r.Valid() {
		return Invalid(), true
	}
	return r, true
}
