package core

import (
	"errors"

	"tinygo.org/x/drivers"
)

// I2CAddress is a 7-bit I2C device address.
type I2CAddress uint8

// ErrBusFault is wrapped by every BusError
var ErrBusFault = errors.New("i2c bus fault")

// BusError records which register transfer did not complete
type BusError struct {
	Register uint8
	Err      error
}

func (e *BusError) Error() string {
	msg := "i2c bus fault at reg " + utoa(uint32(e.Register))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BusError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrBusFault) match any BusError
func (e *BusError) Is(target error) bool { return target == ErrBusFault }

// I2CBus is the two-wire bus the RTC hangs off. machine.I2C satisfies it.
type I2CBus = drivers.I2C

// WriteRegister writes one byte to a device register
func WriteRegister(bus I2CBus, addr I2CAddress, reg, value uint8) error {
	if err := bus.Tx(uint16(addr), []byte{reg, value}, nil); err != nil {
		return &BusError{Register: reg, Err: err}
	}
	return nil
}

// ReadRegister reads one byte from a device register
func ReadRegister(bus I2CBus, addr I2CAddress, reg uint8) (uint8, error) {
	buf := []byte{0}
	if err := bus.Tx(uint16(addr), []byte{reg}, buf); err != nil {
		return 0, &BusError{Register: reg, Err: err}
	}
	return buf[0], nil
}
