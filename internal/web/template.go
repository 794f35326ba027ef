package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/wiredwanderer/weather-display/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"celsius": func(v float64) string {
		return fmt.Sprintf("%.1f °C", v)
	},
	"percent": func(v float64) string {
		return fmt.Sprintf("%.1f %%", v)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Weather Display</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.welcome { color: orange; font-weight: bold; }
.error { color: red; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Weather Display</h1>

<h2>Session</h2>
<table>
<tr><th>State</th><td class="{{if eq (printf "%s" .Session) "ACTIVE"}}on{{else if eq (printf "%s" .Session) "WELCOME"}}welcome{{else}}off{{end}}">{{.Session}}</td></tr>
</table>

<h2>Last Reading</h2>
<table>
{{if .LastReading}}{{if .LastReading.Valid}}<tr><th>Temperature</th><td>{{celsius .LastReading.TemperatureC}}</td></tr>
<tr><th>Humidity</th><td>{{percent .LastReading.HumidityPct}}</td></tr>
{{else}}<tr><th>Sensor</th><td class="error">read failed</td></tr>
{{end}}<tr><th>At</th><td>{{.LastReading.Timestamp.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
{{else}}<tr><th>Sensor</th><td>no reading yet</td></tr>
{{end}}</table>

<h2>Connectivity</h2>
<table>
{{if .Config.Broker}}<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
{{else}}<tr><th>MQTT</th><td>disabled</td></tr>
{{end}}</table>

<h2>Event Counts</h2>
<table>
<tr><th>Display ON</th><td>{{.Counts.DisplayOn}}</td></tr>
<tr><th>Display OFF</th><td>{{.Counts.DisplayOff}}</td></tr>
<tr><th>Polls</th><td>{{.Counts.Polls}}</td></tr>
<tr><th>Poll errors</th><td>{{.Counts.PollErrors}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Tick</th><td>{{.Config.TickMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>Sensor interval</th><td>{{.Config.SensorIntervalMs}}ms</td></tr>
<tr><th>Welcome dwell</th><td>{{.Config.WelcomeDwellMs}}ms</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
