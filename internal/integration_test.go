package internal

import (
	"fmt"
	"testing"
	"time"

	"github.com/wiredwanderer/weather-display/internal/button"
	"github.com/wiredwanderer/weather-display/internal/display"
	"github.com/wiredwanderer/weather-display/internal/logic"
	"github.com/wiredwanderer/weather-display/internal/sensor"
	"github.com/wiredwanderer/weather-display/internal/telemetry"
)

// TestIntegrationFullFlow drives the debouncer, session, and poller through
// a complete usage cycle with fakes: press -> welcome -> readings -> press
// off. Tick step is 10ms, debounce 50ms, dwell 200ms, poll interval 300ms.
func TestIntegrationFullFlow(t *testing.T) {
	samples := []bool{
		// Baseline: button released
		false, false, // t=10..20ms
		// Press held (committed once 50ms of stability elapses)
		true, true, true, true, true, true, true, // t=30..90ms (edge at 90ms)
		// Released for the rest of the run
		false, false, false, false, false, false, false, // t=100..160ms
	}

	btn := button.NewFakeReader(samples)
	dht := sensor.NewFakeReader([]sensor.Reading{
		{TemperatureC: 24.5, HumidityPct: 55.0},
		{TemperatureC: 24.6, HumidityPct: 54.8},
	})
	surface := display.NewFakeSurface()
	publisher := telemetry.NewFakePublisher()

	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	debouncer := logic.NewDebouncer(50*time.Millisecond, startTime)
	session := logic.NewSession(surface, 200*time.Millisecond)
	poller := sensor.NewPoller(dht, 300*time.Millisecond, startTime)

	step := 10 * time.Millisecond

	// Simulate the main loop for one second of wall time.
	for i := 1; i <= 100; i++ {
		now := startTime.Add(time.Duration(i) * step)

		pressed, err := btn.Read()
		if err != nil {
			t.Fatalf("tick %d: button read error: %v", i, err)
		}
		level := logic.Released
		if pressed {
			level = logic.Pressed
		}
		if edge, ok := debouncer.Observe(level, now); ok && edge.Level == logic.Pressed {
			if session.State() == logic.SessionOff {
				session.ToggleOn(now)
			} else {
				session.ToggleOff()
			}
		}

		session.Tick(now)

		// Welcome text must be on screen for the whole dwell.
		if session.State() == logic.SessionWelcome {
			if got := surface.Line(0); got != logic.WelcomeLine1 {
				t.Fatalf("tick %d: line 0 during welcome: %q", i, got)
			}
		}

		if session.Active() {
			if r, ok := poller.Poll(now); ok {
				ev := telemetry.ReadingEvent{Timestamp: now, Valid: r.Valid()}
				if r.Valid() {
					surface.Clear()
					surface.WriteAt(0, 0, fmt.Sprintf("Temp: %.1f°C", r.TemperatureC))
					surface.WriteAt(0, 1, fmt.Sprintf("Humi: %.1f %%", r.HumidityPct))
					ev.TemperatureC = r.TemperatureC
					ev.HumidityPct = r.HumidityPct
				}
				if err := publisher.PublishReading(ev); err != nil {
					t.Fatalf("tick %d: publish error: %v", i, err)
				}
			}
		}
	}

	// Session turned on at 90ms, welcome until 290ms, then active.
	if session.State() != logic.SessionActive {
		t.Errorf("final session state: got %s, want ACTIVE", session.State())
	}
	if !surface.Powered {
		t.Error("display should be powered while active")
	}

	// Polls due at 300, 600, 900ms.
	if dht.Reads != 3 {
		t.Errorf("sensor reads: got %d, want 3", dht.Reads)
	}
	if len(publisher.ReadingEvents) != 3 {
		t.Fatalf("published readings: got %d, want 3", len(publisher.ReadingEvents))
	}
	first := publisher.ReadingEvents[0]
	if !first.Valid || first.TemperatureC != 24.5 {
		t.Errorf("first reading event: got %+v", first)
	}
	if want := startTime.Add(300 * time.Millisecond); !first.Timestamp.Equal(want) {
		t.Errorf("first reading at: got %v, want %v", first.Timestamp, want)
	}
	second := publisher.ReadingEvents[1]
	if second.TemperatureC != 24.6 {
		t.Errorf("second reading event: got %+v", second)
	}
}
