package sensor

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultIIODir is where the kernel dht11 iio driver exposes its channels.
const DefaultIIODir = "/sys/bus/iio/devices/iio:device0"

// IIOReader reads the DHT sensor through the Linux industrial-I/O sysfs
// attributes written by the kernel dht11 driver (which also handles the
// DHT22). The kernel owns the timing-critical wire protocol; a read here is
// a plain file read and is bounded by the driver's own timeout.
type IIOReader struct {
	dir string
}

// NewIIOReader creates a reader over the given iio device directory.
func NewIIOReader(dir string) *IIOReader {
	if dir == "" {
		dir = DefaultIIODir
	}
	return &IIOReader{dir: dir}
}

// Read returns one measurement. The iio channels report millidegrees
// Celsius and milli-percent relative humidity.
func (r *IIOReader) Read() (Reading, error) {
	temp, err := readMilli(filepath.Join(r.dir, "in_temp_input"))
	if err != nil {
		return Reading{}, fmt.Errorf("read temperature: %w", err)
	}
	hum, err := readMilli(filepath.Join(r.dir, "in_humidityrelative_input"))
	if err != nil {
		return Reading{}, fmt.Errorf("read humidity: %w", err)
	}
	return Reading{TemperatureC: temp, HumidityPct: hum}, nil
}

// Close is a no-op; sysfs attributes are opened per read.
func (r *IIOReader) Close() error {
	return nil
}

func readMilli(path string) (float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return float64(n) / 1000, nil
}
