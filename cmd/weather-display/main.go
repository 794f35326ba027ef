// Command weather-display drives a button-toggled 16x2 LCD weather display
// from a DHT temperature/humidity sensor, with optional MQTT telemetry and
// an HTTP status page.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wiredwanderer/weather-display/internal/button"
	"github.com/wiredwanderer/weather-display/internal/display"
	"github.com/wiredwanderer/weather-display/internal/logic"
	"github.com/wiredwanderer/weather-display/internal/sensor"
	"github.com/wiredwanderer/weather-display/internal/status"
	"github.com/wiredwanderer/weather-display/internal/telemetry"
	"github.com/wiredwanderer/weather-display/internal/web"
)

func main() {
	tick := flag.Duration("tick", 10*time.Millisecond, "Loop tick interval")
	debounce := flag.Duration("debounce", 50*time.Millisecond, "Button settle time")
	sensorInterval := flag.Duration("sensor-interval", sensor.DefaultInterval, "Minimum spacing between sensor reads")
	welcomeDwell := flag.Duration("welcome-dwell", 4*time.Second, "Welcome screen duration")
	buttonChip := flag.String("button-chip", button.DefaultChip, "GPIO chip for the button")
	buttonPin := flag.Int("button-pin", button.DefaultPin, "BCM pin number for the button")
	activeLow := flag.Bool("active-low", true, "Button wired active-low with a pull-up")
	i2cBus := flag.String("i2c-bus", "", "I2C bus name (empty = first available)")
	i2cAddr := flag.Uint("i2c-addr", display.DefaultAddr, "I2C address of the LCD backpack")
	iioDir := flag.String("iio-dir", sensor.DefaultIIODir, "iio device directory for the DHT sensor")
	broker := flag.String("broker", "", "MQTT broker address (empty to disable telemetry)")
	httpAddr := flag.String("http", "", "HTTP status address (empty to disable)")
	printState := flag.Bool("print-state", false, "Print current button and sensor state and exit")

	flag.Parse()

	cfg := loopConfig{
		debounce:       *debounce,
		sensorInterval: *sensorInterval,
		welcomeDwell:   *welcomeDwell,
	}
	if err := run(*tick, cfg, *buttonChip, *buttonPin, *activeLow, *i2cBus, uint8(*i2cAddr), *iioDir, *broker, *httpAddr, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// loopConfig carries the timing constants of the control loop.
type loopConfig struct {
	debounce       time.Duration
	sensorInterval time.Duration
	welcomeDwell   time.Duration
}

func run(tick time.Duration, cfg loopConfig, chipName string, pin int, activeLow bool, i2cBus string, i2cAddr uint8, iioDir, broker, httpAddr string, printState bool) error {
	// Initialize button GPIO
	btn, err := button.NewRealReader(chipName, pin, activeLow)
	if err != nil {
		return fmt.Errorf("init button: %w", err)
	}
	defer btn.Close()

	dht := sensor.NewIIOReader(iioDir)
	defer dht.Close()

	// Print state mode
	if printState {
		pressed, err := btn.Read()
		if err != nil {
			return fmt.Errorf("read button: %w", err)
		}
		fmt.Printf("Button: %s\n", buttonString(pressed))
		r, err := dht.Read()
		if err != nil {
			return fmt.Errorf("read sensor: %w", err)
		}
		fmt.Printf("Temp: %.1f°C\nHumi: %.1f %%\n", r.TemperatureC, r.HumidityPct)
		return nil
	}

	// Initialize LCD
	lcd, err := display.Open(display.Config{Bus: i2cBus, Addr: i2cAddr, Cols: 16, Rows: 2})
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	defer lcd.Close()

	// Initialize MQTT telemetry (optional)
	var pub telemetry.Publisher
	var pubStatus telemetry.ConnectionStatus
	if broker != "" {
		rp, err := telemetry.NewRealPublisher(broker)
		if err != nil {
			return fmt.Errorf("init telemetry: %w", err)
		}
		defer rp.Close()
		pub = rp
		pubStatus = rp
	}

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		TickMs:           tick.Milliseconds(),
		DebounceMs:       cfg.debounce.Milliseconds(),
		SensorIntervalMs: cfg.sensorInterval.Milliseconds(),
		WelcomeDwellMs:   cfg.welcomeDwell.Milliseconds(),
		Broker:           broker,
		HTTPAddr:         httpAddr,
	})

	// Publish startup event with full status snapshot
	if pub != nil {
		snap := tracker.Snapshot()
		startupEvent := telemetry.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := pub.PublishSystem(startupEvent); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		} else {
			log.Printf("published startup event")
		}
	}

	// Start HTTP status server (optional)
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: tick=%v debounce=%v sensor-interval=%v welcome-dwell=%v",
		tick, cfg.debounce, cfg.sensorInterval, cfg.welcomeDwell)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(btn, dht, lcd, pub, pubStatus, tracker, cfg, time.Now, ticker.C, sigCh)
}

// runLoop is the cooperative scheduler. Per tick: sample and debounce the
// button, apply toggle edges to the session, resolve the welcome deadline,
// and (while the session is active) drive the sensor poller and render its
// output. Nothing here blocks; every wait is a deadline checked against the
// injected clock, which keeps the button responsive through the welcome
// dwell and between sensor polls.
func runLoop(btn button.Reader, dht sensor.Reader, surface logic.Surface, pub telemetry.Publisher, pubStatus telemetry.ConnectionStatus, tracker *status.Tracker, cfg loopConfig, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	startTime := now()
	debouncer := logic.NewDebouncer(cfg.debounce, startTime)
	session := logic.NewSession(surface, cfg.welcomeDwell)
	poller := sensor.NewPoller(dht, cfg.sensorInterval, startTime)
	var counts logic.EventCounts

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			if session.ToggleOff() {
				log.Printf("display powered off for shutdown")
			}
			if pub != nil {
				event := telemetry.SystemEvent{
					Timestamp: now(),
					Event:     "SHUTDOWN",
					Reason:    signalName,
					Retained:  true,
				}
				if tracker != nil {
					tracker.Update(session.State(), counts)
					event.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN", signalName)
				}
				if err := pub.PublishSystem(event); err != nil {
					log.Printf("failed to publish shutdown event: %v", err)
				} else {
					log.Printf("published shutdown event")
				}
			}
			return nil

		case <-tick:
			t := now()

			pressed, err := btn.Read()
			if err != nil {
				log.Printf("button read error: %v", err)
			} else {
				level := logic.Released
				if pressed {
					level = logic.Pressed
				}
				// Only the press edge toggles; the release edge is absorbed.
				if edge, ok := debouncer.Observe(level, t); ok && edge.Level == logic.Pressed {
					if session.State() == logic.SessionOff {
						session.ToggleOn(t)
						counts.DisplayOn++
						log.Printf("toggle: display on (welcome)")
						publishLifecycle(pub, tracker, session, counts, "DISPLAY_ON", t)
					} else {
						session.ToggleOff()
						counts.DisplayOff++
						log.Printf("toggle: display off")
						publishLifecycle(pub, tracker, session, counts, "DISPLAY_OFF", t)
					}
				}
			}

			session.Tick(t)

			if session.Active() {
				surface.PowerOn() // idempotent re-assert

				if r, ok := poller.Poll(t); ok {
					counts.Polls++
					ev := telemetry.ReadingEvent{Timestamp: t, Valid: r.Valid()}
					if r.Valid() {
						renderReading(surface, r)
						log.Printf("reading: temp=%.1fC humidity=%.1f%%", r.TemperatureC, r.HumidityPct)
						ev.TemperatureC = r.TemperatureC
						ev.HumidityPct = r.HumidityPct
					} else {
						counts.PollErrors++
						renderError(surface)
						log.Printf("sensor read failed")
					}
					if pub != nil {
						if err := pub.PublishReading(ev); err != nil {
							log.Printf("publish error: %v", err)
							// Don't crash on publish failure
						}
					}
					if tracker != nil {
						tracker.SetReading(status.ReadingInfo{
							TemperatureC: ev.TemperatureC,
							HumidityPct:  ev.HumidityPct,
							Valid:        ev.Valid,
							Timestamp:    t,
						})
					}
				}
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				tracker.Update(session.State(), counts)
				if pubStatus != nil {
					tracker.SetMQTTConnected(pubStatus.IsConnected())
				}
			}
		}
	}
}

// renderReading shows a valid measurement on the two display rows.
func renderReading(surface logic.Surface, r sensor.Reading) {
	surface.Clear()
	surface.WriteAt(0, 0, fmt.Sprintf("Temp: %.1f°C", r.TemperatureC))
	surface.WriteAt(0, 1, fmt.Sprintf("Humi: %.1f %%", r.HumidityPct))
}

// renderError shows the sensor failure message.
func renderError(surface logic.Surface) {
	surface.Clear()
	surface.WriteAt(0, 0, "DHT Error!")
	surface.WriteAt(0, 1, "Check wiring")
}

func publishLifecycle(pub telemetry.Publisher, tracker *status.Tracker, session *logic.Session, counts logic.EventCounts, name string, t time.Time) {
	if pub == nil {
		return
	}
	event := telemetry.SystemEvent{Timestamp: t, Event: name}
	if tracker != nil {
		tracker.Update(session.State(), counts)
		event.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), name, "")
	}
	if err := pub.PublishSystem(event); err != nil {
		log.Printf("failed to publish %s event: %v", name, err)
	}
}

func buttonString(pressed bool) string {
	if pressed {
		return "PRESSED"
	}
	return "RELEASED"
}
