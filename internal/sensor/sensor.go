// Package sensor provides temperature/humidity sensing with hardware
// abstraction and a rate-limited poller that respects the sensor's minimum
// sampling interval.
package sensor

import (
	"math"
	"time"
)

// DefaultInterval is the minimum spacing between sensor reads. The DHT
// sensor class needs at least a second between samples; 3s leaves headroom.
const DefaultInterval = 3 * time.Second

// Reading is one temperature/humidity measurement. A failed measurement is
// represented by NaN in either field.
type Reading struct {
	TemperatureC float64
	HumidityPct  float64
}

// Invalid returns the failure marker reading.
func Invalid() Reading {
	return Reading{TemperatureC: math.NaN(), HumidityPct: math.NaN()}
}

// Valid reports whether both quantities were measured.
func (r Reading) Valid() bool {
	return !math.IsNaN(r.TemperatureC) && !math.IsNaN(r.HumidityPct)
}

// Reader reads the sensor once. Implementations must bound the transaction
// duration themselves; the loop treats the call as opaque.
type Reader interface {
	Read() (Reading, error)
	Close() error
}
