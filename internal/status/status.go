// Package status provides a thread-safe status tracker for the
// weather-display daemon. It is read by the HTTP status handlers and
// embedded in MQTT lifecycle events.
package status

import (
	"sync"
	"time"

	"github.com/wiredwanderer/weather-display/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	TickMs           int64
	DebounceMs       int64
	SensorIntervalMs int64
	WelcomeDwellMs   int64
	Broker           string
	HTTPAddr         string
}

// ReadingInfo is the most recent poll result. Valid is false when the last
// poll failed; the measurement fields are then meaningless.
type ReadingInfo struct {
	TemperatureC float64
	HumidityPct  float64
	Valid        bool
	Timestamp    time.Time
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Session       logic.SessionState
	LastReading   *ReadingInfo
	Counts        logic.EventCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Session:   logic.SessionOff,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the session state and event counts.
// Called from runLoop on every tick.
func (t *Tracker) Update(session logic.SessionState, counts logic.EventCounts) {
	t.mu.Lock()
	t.snap.Session = session
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetReading records the most recent poll result.
func (t *Tracker) SetReading(info ReadingInfo) {
	t.mu.Lock()
	r := info
	t.snap.LastReading = &r
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
