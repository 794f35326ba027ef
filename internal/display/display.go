// Package display drives a 16x2 HD44780 character LCD over I2C and provides
// a fake surface for testing. The real implementation satisfies
// logic.Surface; bus address and geometry are supplied at initialization.
package display

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers/hd44780i2c"
)

// Config selects the I2C bus and display geometry.
type Config struct {
	// Bus is the periph bus name ("" = first available, e.g. /dev/i2c-1).
	Bus string
	// Addr is the I2C address of the backpack (commonly 0x27 or 0x3F).
	Addr uint8
	// Cols and Rows give the character grid size.
	Cols int
	Rows int
}

// DefaultAddr is the usual PCF8574 backpack address.
const DefaultAddr = 0x27

// LCD is a character LCD behind an I2C backpack.
//
// Bus errors are logged and swallowed: the display is an output-only
// surface and the control loop must never stall on it.
type LCD struct {
	dev     hd44780i2c.Device
	bus     i2c.BusCloser
	cols    int
	rows    int
	powered bool
}

// Open initializes the host I2C bus and the LCD controller. The display
// starts powered off (session state OFF).
func Open(cfg Config) (*LCD, error) {
	if cfg.Cols == 0 {
		cfg.Cols = 16
	}
	if cfg.Rows == 0 {
		cfg.Rows = 2
	}
	if cfg.Addr == 0 {
		cfg.Addr = DefaultAddr
	}

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}
	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus: %w", err)
	}

	dev := hd44780i2c.New(bus, cfg.Addr)
	if err := dev.Configure(hd44780i2c.Config{
		Width:  uint8(cfg.Cols),
		Height: uint8(cfg.Rows),
	}); err != nil {
		bus.Close()
		return nil, fmt.Errorf("configure lcd at 0x%02X: %w", cfg.Addr, err)
	}

	l := &LCD{dev: dev, bus: bus, cols: cfg.Cols, rows: cfg.Rows}
	l.dev.ClearDisplay()
	l.PowerOff()
	return l, nil
}

// Clear blanks the display.
func (l *LCD) Clear() {
	l.dev.ClearDisplay()
}

// WriteAt writes text at (col, row), clipped to the display width.
func (l *LCD) WriteAt(col, row int, text string) {
	if row < 0 || row >= l.rows || col < 0 || col >= l.cols {
		return
	}
	data := encode(text)
	if max := l.cols - col; len(data) > max {
		data = data[:max]
	}
	l.dev.SetCursor(uint8(col), uint8(row))
	l.dev.Print(data)
}

// PowerOn turns the display and backlight on. Idempotent, so the loop can
// assert power every active tick without spamming the bus.
func (l *LCD) PowerOn() {
	if l.powered {
		return
	}
	l.dev.DisplayOn(true)
	l.dev.BacklightOn(true)
	l.powered = true
}

// PowerOff turns the display and backlight off. Idempotent.
func (l *LCD) PowerOff() {
	l.dev.DisplayOn(false)
	l.dev.BacklightOn(false)
	l.powered = false
}

// Close powers the display down and releases the bus.
func (l *LCD) Close() error {
	l.Clear()
	l.PowerOff()
	return l.bus.Close()
}

// encode maps text to the HD44780 ROM charset (A00). The degree sign has a
// dedicated glyph; other non-ASCII runes render as '?'.
func encode(text string) []byte {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		switch {
		case r == '°':
			out = append(out, 0xDF)
		case r < 0x80:
			out = append(out, byte(r))
		default:
			out = append(out, '?')
		}
	}
	return out
}
