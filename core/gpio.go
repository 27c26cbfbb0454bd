// Digital output support shared by the LED, servo power gate and display lines
package core

// DigitalOut flags
const (
	DF_ON         = 1 << 0 // Current pin state (1=high, 0=low)
	DF_DEFAULT_ON = 1 << 1 // Level restored by Shutdown
	DF_FAULT      = 1 << 2 // Last write failed
)

// DigitalOut is a configured GPIO output that remembers its level so callers
// can skip redundant writes from hot interrupt paths
type DigitalOut struct {
	Pin   GPIOPin
	Flags uint8
}

// NewDigitalOut configures pin as an output and drives it to its default level
func NewDigitalOut(pin GPIOPin, defaultOn bool) (*DigitalOut, error) {
	dout := &DigitalOut{Pin: pin}
	if defaultOn {
		dout.Flags |= DF_DEFAULT_ON
	}
	if err := MustGPIO().ConfigureOutput(pin); err != nil {
		return nil, err
	}
	if err := dout.write(defaultOn); err != nil {
		return nil, err
	}
	return dout, nil
}

// Set drives the pin, skipping the write if it already holds value
func (d *DigitalOut) Set(value bool) {
	if d.IsOn() == value && d.Flags&DF_FAULT == 0 {
		return
	}
	if err := d.write(value); err != nil {
		RecordEvent(EvtDriverFault, uint32(d.Pin), 0)
	}
}

// Force drives the pin even if the cached level matches
func (d *DigitalOut) Force(value bool) {
	if err := d.write(value); err != nil {
		RecordEvent(EvtDriverFault, uint32(d.Pin), 0)
	}
}

// IsOn reports the last level written
func (d *DigitalOut) IsOn() bool {
	return d.Flags&DF_ON != 0
}

// Shutdown returns the pin to its default level
func (d *DigitalOut) Shutdown() {
	d.Force(d.Flags&DF_DEFAULT_ON != 0)
}

func (d *DigitalOut) write(value bool) error {
	if err := MustGPIO().SetPin(d.Pin, value); err != nil {
		d.Flags |= DF_FAULT
		return err
	}
	d.Flags &^= DF_FAULT
	if value {
		d.Flags |= DF_ON
	} else {
		d.Flags &^= DF_ON
	}
	return nil
}
