package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Session       string       `json:"session"`
	DisplayOn     bool         `json:"display_on"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Reading       *ReadingJSON `json:"reading,omitempty"`
	Counts        CountsJSON   `json:"event_counts"`
	Config        ConfigJSON   `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// ReadingJSON is the JSON representation of the last poll result.
// Measurement fields are omitted when the poll failed (NaN does not
// serialize to JSON).
type ReadingJSON struct {
	Valid        bool     `json:"valid"`
	TemperatureC *float64 `json:"temperature_c,omitempty"`
	HumidityPct  *float64 `json:"humidity_pct,omitempty"`
	Timestamp    string   `json:"timestamp"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	DisplayOn  int `json:"display_on"`
	DisplayOff int `json:"display_off"`
	Polls      int `json:"polls"`
	PollErrors int `json:"poll_errors"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	TickMs           int64  `json:"tick_ms"`
	DebounceMs       int64  `json:"debounce_ms"`
	SensorIntervalMs int64  `json:"sensor_interval_ms"`
	WelcomeDwellMs   int64  `json:"welcome_dwell_ms"`
	Broker           string `json:"broker,omitempty"`
	HTTPAddr         string `json:"http_addr,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	session := string(snap.Session)
	if session == "" {
		session = "OFF"
	}

	inner := StatusInner{
		Session:       session,
		DisplayOn:     snap.Session != "OFF" && snap.Session != "",
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			DisplayOn:  snap.Counts.DisplayOn,
			DisplayOff: snap.Counts.DisplayOff,
			Polls:      snap.Counts.Polls,
			PollErrors: snap.Counts.PollErrors,
		},
		Config: ConfigJSON{
			TickMs:           snap.Config.TickMs,
			DebounceMs:       snap.Config.DebounceMs,
			SensorIntervalMs: snap.Config.SensorIntervalMs,
			WelcomeDwellMs:   snap.Config.WelcomeDwellMs,
			Broker:           snap.Config.Broker,
			HTTPAddr:         snap.Config.HTTPAddr,
		},
	}

	if r := snap.LastReading; r != nil {
		rj := &ReadingJSON{
			Valid:     r.Valid,
			Timestamp: r.Timestamp.UTC().Format(time.RFC3339),
		}
		if r.Valid {
			temp := r.TemperatureC
			hum := r.HumidityPct
			rj.TemperatureC = &temp
			rj.HumidityPct = &hum
		}
		inner.Reading = rj
	}

	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT lifecycle event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
