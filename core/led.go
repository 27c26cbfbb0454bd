package core

// StatusLED blinks a double flash per frame while healthy and toggles every
// second while a fault is latched.
//
// The healthy pattern is lit at seconds 1 and 3 of each 8 s frame. A 4 s
// frame would light every odd second, the same as the fault toggle.
type StatusLED struct {
	out *DigitalOut
}

// NewStatusLED configures the LED output, initially off
func NewStatusLED(pin GPIOPin) (*StatusLED, error) {
	out, err := NewDigitalOut(pin, false)
	if err != nil {
		return nil, err
	}
	return &StatusLED{out: out}, nil
}

// Step sets the LED for the given second count
func (l *StatusLED) Step(fault bool, seconds uint16) {
	if fault {
		l.out.Set(seconds%2 != 0)
		return
	}
	switch seconds % BlinkFrame {
	case 1, 3:
		l.out.Set(true)
	default:
		l.out.Set(false)
	}
}

// On lights the LED, used as the test mode indicator
func (l *StatusLED) On() {
	l.out.Set(true)
}

// Off darkens the LED
func (l *StatusLED) Off() {
	l.out.Set(false)
}

// Shutdown leaves the LED dark
func (l *StatusLED) Shutdown() {
	l.out.Shutdown()
}

// IsOn reports the LED level
func (l *StatusLED) IsOn() bool {
	return l.out.IsOn()
}
