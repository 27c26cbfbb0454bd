//go:build rp2040

package main

import (
	"machine"

	"servotimer/core"
)

// numGPIO is the count of user GPIOs, GPIO0-GPIO29
const numGPIO = 30

// RPGPIODriver implements the GPIODriver interface for RP2040
type RPGPIODriver struct {
	// Track configured pins to prevent conflicts
	configuredPins map[core.GPIOPin]machine.Pin
}

// NewRPGPIODriver creates a new RP2040 GPIO driver
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{
		configuredPins: make(map[core.GPIOPin]machine.Pin),
	}
}

// ConfigureOutput configures a pin as a push-pull output
func (d *RPGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	if _, exists := d.configuredPins[pin]; exists {
		return nil
	}
	if pin >= numGPIO {
		return core.ErrInvalidPin
	}
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.configuredPins[pin] = p
	return nil
}

// ConfigureInputPullUp configures a pin as an input with the internal pull-up
func (d *RPGPIODriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	if _, exists := d.configuredPins[pin]; exists {
		return nil
	}
	if pin >= numGPIO {
		return core.ErrInvalidPin
	}
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	d.configuredPins[pin] = p
	return nil
}

// SetPin drives a configured output
func (d *RPGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	p, exists := d.configuredPins[pin]
	if !exists {
		return core.ErrNotConfigured
	}
	p.Set(value)
	return nil
}

// ReadPin samples a configured pin; unconfigured pins read low
func (d *RPGPIODriver) ReadPin(pin core.GPIOPin) bool {
	p, exists := d.configuredPins[pin]
	if !exists {
		return false
	}
	return p.Get()
}

// machinePin returns the configured machine.Pin for edge interrupt setup
func (d *RPGPIODriver) machinePin(pin core.GPIOPin) (machine.Pin, bool) {
	p, exists := d.configuredPins[pin]
	return p, exists
}
