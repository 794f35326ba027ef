// Package telemetry publishes weather readings and session lifecycle events
// over MQTT, with abstraction for testing. The whole package is an optional
// fire-and-forget side channel: publish failures are reported but must
// never influence the control loop.
package telemetry

import (
	"encoding/json"
	"time"
)

// TopicReadings is the MQTT topic for sensor readings.
const TopicReadings = "home/weather-display/readings"

// TopicSystem is the MQTT topic for session/system lifecycle events.
const TopicSystem = "home/weather-display/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// PublishReading sends one poll result to the broker.
	// Returns error if publishing fails (should not crash the process).
	PublishReading(event ReadingEvent) error

	// PublishSystem sends a lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// ReadingEvent is one sensor poll result. Valid is false for a failed read;
// the measurement fields are then meaningless.
type ReadingEvent struct {
	Timestamp    time.Time
	TemperatureC float64
	HumidityPct  float64
	Valid        bool
}

// SystemEvent is a lifecycle event
// (e.g. "STARTUP", "DISPLAY_ON", "DISPLAY_OFF", "SHUTDOWN").
type SystemEvent struct {
	Timestamp  time.Time
	Event      string
	Reason     string // e.g. "SIGTERM" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload is the MQTT message payload for readings.
type Payload struct {
	Weather WeatherPayload `json:"weather"`
}

// WeatherPayload contains the reading details. The measurement fields are
// omitted on a failed read (NaN is not representable in JSON).
type WeatherPayload struct {
	Timestamp    string   `json:"timestamp"`
	Valid        bool     `json:"valid"`
	TemperatureC *float64 `json:"temperature_c,omitempty"`
	HumidityPct  *float64 `json:"humidity_pct,omitempty"`
}

// FormatReadingPayload creates the JSON payload for a reading event.
func FormatReadingPayload(event ReadingEvent) ([]byte, error) {
	payload := Payload{
		Weather: WeatherPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Valid:     event.Valid,
		},
	}
	if event.Valid {
		temp := event.TemperatureC
		hum := event.HumidityPct
		payload.Weather.TemperatureC = &temp
		payload.Weather.HumidityPct = &hum
	}
	return json.Marshal(payload)
}

// SystemPayload is the MQTT message payload for lifecycle events that don't
// carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the lifecycle event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a lifecycle event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
