package serial

import (
	"io"
)

// Port is the read side of the controller's debug console. The console only
// ever listens, so nothing is written back.
type Port = io.ReadCloser

// Config holds serial port configuration
type Config struct {
	Device      string // e.g. "/dev/ttyACM0", "COM3"
	Baud        int    // ignored by USB CDC
	ReadTimeout int    // milliseconds, 0 blocks
}

// consoleBaud matches the controller's UART console
const consoleBaud = 115200

// DefaultConfig returns blocking reads at the console rate
func DefaultConfig(device string) *Config {
	return &Config{Device: device, Baud: consoleBaud}
}
