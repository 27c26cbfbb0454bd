//go:build linux && !tinygo

package main

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/stianeikeland/go-rpio"

	"servotimer/core"
)

// pwmClockHz gives the PWM counter one-microsecond resolution
const pwmClockHz = 1000000

var (
	errNotPWMPin = errors.New("pin has no hardware PWM function")
	errNeedsRoot = errors.New("hardware PWM maps /dev/mem and needs root")
)

// RpioPWMDriver implements core.PWMDriver on the BCM283x PWM block through
// go-rpio. The PWM and clock-manager registers are only reachable through
// /dev/mem, not /dev/gpiomem, so the bench binary must run as root.
type RpioPWMDriver struct {
	mu      sync.Mutex
	periods map[core.PWMPin]uint32
}

// NewRpioPWMDriver maps the peripheral registers
func NewRpioPWMDriver() (*RpioPWMDriver, error) {
	if err := checkPWMAccess(os.Geteuid()); err != nil {
		return nil, err
	}
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open rpio: %w", err)
	}
	return &RpioPWMDriver{periods: make(map[core.PWMPin]uint32)}, nil
}

// checkPWMAccess fails early for non-root users, for whom rpio opens
// /dev/gpiomem and PWM writes silently do nothing
func checkPWMAccess(euid int) error {
	if euid != 0 {
		return errNeedsRoot
	}
	return nil
}

// ConfigureHardwarePWM switches the pin to its PWM alternate function
func (d *RpioPWMDriver) ConfigureHardwarePWM(pin core.PWMPin, periodUS uint32) error {
	switch pin {
	case 12, 13, 18, 19:
	default:
		return errNotPWMPin
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	p := rpio.Pin(pin)
	p.Mode(rpio.Pwm)
	p.Freq(pwmClockHz)
	p.DutyCycle(0, periodUS)
	d.periods[pin] = periodUS
	return nil
}

// SetPulseWidth sets the high time per period
func (d *RpioPWMDriver) SetPulseWidth(pin core.PWMPin, widthUS uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	period, exists := d.periods[pin]
	if !exists {
		return core.ErrNotConfigured
	}
	if widthUS > period {
		widthUS = period
	}
	rpio.Pin(pin).DutyCycle(widthUS, period)
	return nil
}

// Close unmaps the peripheral registers
func (d *RpioPWMDriver) Close() error {
	return rpio.Close()
}
