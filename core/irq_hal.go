package core

import "errors"

// ErrInvalidSource is returned for an IRQSource the driver does not know
var ErrInvalidSource = errors.New("invalid interrupt source")

// IRQSource names one of the interrupt sources feeding the device handlers
type IRQSource uint8

const (
	IRQSecond   IRQSource = iota // RTC square-wave edge, once per second
	IRQDisplay                   // fast timer driving digit rotation
	IRQDebounce                  // timer counting down the button window
	IRQButton                    // button input edge
	IRQLimit                     // servo limit switch edge
)

// IRQDriver configures and gates interrupt sources. Edge sources ignore
// the period passed to ConfigureTickSource.
type IRQDriver interface {
	// ConfigureTickSource sets the period of a periodic source without enabling it
	ConfigureTickSource(src IRQSource, periodUS uint32) error

	// EnableInterrupt starts delivering the source to its handler
	EnableInterrupt(src IRQSource)

	// DisableInterrupt stops delivering the source
	DisableInterrupt(src IRQSource)
}

var irqDriver IRQDriver

// SetIRQDriver is called by target-specific code to register its driver.
func SetIRQDriver(d IRQDriver) {
	irqDriver = d
}

// MustIRQ returns the configured driver or panics if missing.
func MustIRQ() IRQDriver {
	if irqDriver == nil {
		panic("IRQ driver not configured")
	}
	return irqDriver
}
