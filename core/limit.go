package core

// LimitSwitch is the end-of-travel input. It pulls up and reads low when
// the mechanism presses it.
type LimitSwitch struct {
	Pin GPIOPin
}

// NewLimitSwitch configures the input
func NewLimitSwitch(pin GPIOPin) (*LimitSwitch, error) {
	if err := MustGPIO().ConfigureInputPullUp(pin); err != nil {
		return nil, err
	}
	return &LimitSwitch{Pin: pin}, nil
}

// Pressed reports the current switch state
func (l *LimitSwitch) Pressed() bool {
	return !MustGPIO().ReadPin(l.Pin)
}
