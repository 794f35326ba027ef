package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/wiredwanderer/weather-display/internal/logic"
	"github.com/wiredwanderer/weather-display/internal/status"
)

func newTestServer(t *testing.T) (*httptest.Server, *status.Tracker) {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := status.Config{
		TickMs:           10,
		DebounceMs:       50,
		SensorIntervalMs: 3000,
		WelcomeDwellMs:   4000,
		Broker:           "tcp://192.168.1.200:1883",
		HTTPAddr:         ":8080",
	}
	tr := status.NewTracker(start, cfg)
	srv := New(":0", tr)
	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts, tr
}

func TestJSONEndpoint(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update(logic.SessionActive, logic.EventCounts{DisplayOn: 1, Polls: 5, PollErrors: 1})
	tr.SetReading(status.ReadingInfo{TemperatureC: 24.5, HumidityPct: 55.0, Valid: true, Timestamp: time.Now()})
	tr.SetMQTTConnected(true)

	resp, err := http.Get(ts.URL + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var sj status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&sj); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}

	if sj.Status.Session != "ACTIVE" {
		t.Errorf("session: got %q, want ACTIVE", sj.Status.Session)
	}
	if sj.Status.Reading == nil || sj.Status.Reading.TemperatureC == nil {
		t.Fatal("expected reading in JSON")
	}
	if *sj.Status.Reading.TemperatureC != 24.5 {
		t.Errorf("temperature: got %v, want 24.5", *sj.Status.Reading.TemperatureC)
	}
	if !sj.Status.MQTT.Connected {
		t.Error("expected mqtt connected")
	}
	if sj.Status.Counts.Polls != 5 {
		t.Errorf("polls: got %d, want 5", sj.Status.Counts.Polls)
	}
}

func TestIndexPage(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update(logic.SessionWelcome, logic.EventCounts{DisplayOn: 1})

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	html := string(body)
	if !strings.Contains(html, "Weather Display") {
		t.Error("page missing title")
	}
	if !strings.Contains(html, "WELCOME") {
		t.Error("page missing session state")
	}
	if !strings.Contains(html, "no reading yet") {
		t.Error("page missing reading placeholder")
	}
}

func TestIndexPageWithReading(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update(logic.SessionActive, logic.EventCounts{})
	tr.SetReading(status.ReadingInfo{TemperatureC: 24.5, HumidityPct: 55.0, Valid: true, Timestamp: time.Now()})

	resp, err := http.Get(ts.URL + "/index.html")
	if err != nil {
		t.Fatalf("GET /index.html: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	html := string(body)
	if !strings.Contains(html, "24.5") {
		t.Error("page missing temperature")
	}
	if !strings.Contains(html, "55.0") {
		t.Error("page missing humidity")
	}
}

func TestIndexPageFailedReading(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.SetReading(status.ReadingInfo{Valid: false, Timestamp: time.Now()})

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "read failed") {
		t.Error("page missing failed-read marker")
	}
}

func TestNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}
