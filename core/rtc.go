package core

import (
	"errors"

	"tinygo.org/x/drivers/ds1307"
)

// InitRTC programs the DS1307 to emit a 1 Hz square wave and makes sure its
// oscillator runs. Both writes are attempted even if the first fails.
func InitRTC(bus I2CBus) error {
	rtc := ds1307.New(bus)

	var errs []error
	if err := rtc.SetOscillatorFrequency(ds1307.SQW_1HZ); err != nil {
		errs = append(errs, &BusError{Register: ds1307.Control, Err: err})
	}
	if err := rtc.SetOscillatorRunning(true); err != nil {
		errs = append(errs, &BusError{Register: ds1307.TimeDate, Err: err})
	}
	return errors.Join(errs...)
}
