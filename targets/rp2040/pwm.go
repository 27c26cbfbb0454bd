//go:build rp2040

package main

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers/servo"

	"servotimer/core"
)

// servoPeriodUS is fixed by the servo driver, which always configures 50Hz
const servoPeriodUS = 20000

var errServoPeriod = errors.New("servo slice only supports a 20ms period")

// RP2040PWMDriver implements the PWMDriver interface on the RP2040 PWM
// slices through the servo driver. Each pin gets its own slice.
type RP2040PWMDriver struct {
	// Key: pin number, Value: servo bound to that pin's slice
	servos map[core.PWMPin]servo.Servo
}

// NewRP2040PWMDriver creates a new RP2040 PWM driver
func NewRP2040PWMDriver() *RP2040PWMDriver {
	return &RP2040PWMDriver{
		servos: make(map[core.PWMPin]servo.Servo),
	}
}

// ConfigureHardwarePWM binds a pin to its PWM slice at the servo frame rate
func (d *RP2040PWMDriver) ConfigureHardwarePWM(pin core.PWMPin, periodUS uint32) error {
	if periodUS != servoPeriodUS {
		return errServoPeriod
	}
	if pin >= numGPIO {
		return core.ErrInvalidPin
	}
	// RP2040: GPIO pin N maps to slice (N >> 1) & 0x7, channel N & 1
	s, err := servo.New(pwmSlice(uint8((pin>>1)&0x7)), machine.Pin(pin))
	if err != nil {
		return err
	}
	d.servos[pin] = s
	return nil
}

// SetPulseWidth sets the high time of each frame; zero holds the line low
func (d *RP2040PWMDriver) SetPulseWidth(pin core.PWMPin, widthUS uint32) error {
	s, exists := d.servos[pin]
	if !exists {
		return core.ErrNotConfigured
	}
	if widthUS > servoPeriodUS {
		widthUS = servoPeriodUS
	}
	s.SetMicroseconds(int16(widthUS))
	return nil
}

// pwmSlice returns the PWM peripheral for a given slice number.
// TinyGo defines PWM0-PWM7 as globals of an unexported type, so they are
// returned through the servo.PWM interface.
func pwmSlice(slice uint8) servo.PWM {
	switch slice {
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return machine.PWM0
	}
}
