package core

// PWMPin identifies a hardware pin capable of PWM output
type PWMPin uint32

// PWMDriver is the abstract PWM interface the servo uses.
// Values are pulse widths in microseconds rather than a duty fraction:
// hobby servos are specified by pulse width within a fixed frame.
type PWMDriver interface {
	// ConfigureHardwarePWM sets up a pin for PWM with the given frame period
	ConfigureHardwarePWM(pin PWMPin, periodUS uint32) error

	// SetPulseWidth sets the high time of each frame. 0 stops the pulses.
	SetPulseWidth(pin PWMPin, widthUS uint32) error
}

// Global singleton used by core code.
var pwmDriver PWMDriver

// SetPWMDriver is called by target-specific code to register its driver.
func SetPWMDriver(d PWMDriver) {
	pwmDriver = d
}

// MustPWM returns the configured driver or panics if missing.
func MustPWM() PWMDriver {
	if pwmDriver == nil {
		panic("PWM driver not configured")
	}
	return pwmDriver
}
