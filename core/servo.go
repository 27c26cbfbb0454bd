package core

// Servo drives the actuator through a PWM pulse and a power gate, and
// enforces the maximum continuous on-time.
type Servo struct {
	Pin     PWMPin
	power   *DigitalOut
	onPulse uint32
	maxOn   uint16

	pulse     uint32 // current pulse width, 0 = idle
	onSeconds uint16
	fault     bool
}

// NewServo configures the PWM output and power gate, leaving the servo idle
func NewServo(pin PWMPin, powerPin GPIOPin, onPulseUS uint32, maxOn uint16) (*Servo, error) {
	if err := MustPWM().ConfigureHardwarePWM(pin, ServoPeriodUS); err != nil {
		return nil, err
	}
	power, err := NewDigitalOut(powerPin, false)
	if err != nil {
		return nil, err
	}
	s := &Servo{
		Pin:     pin,
		power:   power,
		onPulse: onPulseUS,
		maxOn:   maxOn,
	}
	if err := MustPWM().SetPulseWidth(pin, 0); err != nil {
		return nil, err
	}
	return s, nil
}

// Activate powers the servo and applies the on pulse. Calling it while
// active restarts the on-time count.
func (s *Servo) Activate() {
	s.power.Set(true)
	s.setPulse(s.onPulse)
	s.onSeconds = 0
}

// Deactivate stops the pulse and drops the power gate unconditionally
func (s *Servo) Deactivate() {
	s.setPulse(0)
	s.power.Shutdown()
}

// Active reports whether the servo is being driven
func (s *Servo) Active() bool {
	return s.pulse != 0
}

// Check runs once per second while active. It returns true when the
// on-time exceeded the limit: the servo has then been switched off and
// the fault flag raised.
func (s *Servo) Check() bool {
	if !s.Active() {
		return false
	}
	s.onSeconds++
	if s.onSeconds <= s.maxOn {
		return false
	}
	s.Deactivate()
	s.fault = true
	return true
}

// OnSeconds returns the seconds spent active since the last activation
func (s *Servo) OnSeconds() uint16 {
	return s.onSeconds
}

// Fault reports a safety cutoff not yet acknowledged
func (s *Servo) Fault() bool {
	return s.fault
}

// ClearFault acknowledges a cutoff
func (s *Servo) ClearFault() {
	s.fault = false
}

func (s *Servo) setPulse(width uint32) {
	s.pulse = width
	if err := MustPWM().SetPulseWidth(s.Pin, width); err != nil {
		RecordEvent(EvtDriverFault, uint32(s.Pin), width)
	}
}
