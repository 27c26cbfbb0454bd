package serial

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// NativePort is a console port backed by tarm/serial
type NativePort struct {
	*serial.Port
}

// Open opens the console device and discards anything the controller printed
// before the port was opened, so the first line read is complete.
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("open console %s: %w", cfg.Device, err)
	}
	if err = p.Flush(); err != nil {
		p.Close()
		return nil, fmt.Errorf("flush console %s: %w", cfg.Device, err)
	}
	return &NativePort{Port: p}, nil
}

