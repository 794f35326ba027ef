// Package button provides push-button input reading with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package button

// Reader samples the button line once per loop tick.
type Reader interface {
	// Read returns the logical state of the button: true = pressed.
	// Wiring polarity (active-low with pull-up) is resolved here so callers
	// never see raw line levels.
	Read() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Defaults for the reference wiring (BCM numbering, pull-up, active low).
const (
	DefaultChip = "gpiochip0"
	DefaultPin  = 17
)
