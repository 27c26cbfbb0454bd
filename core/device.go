// Device ties the components to their interrupt sources.
//
// Every exported handler runs inside one critical section, so component
// methods never race each other. Single writers per field:
//   - elapsed: OnSecond, and button actions (set, never increment)
//   - button state: OnButtonEdge and OnDebounceTick
//   - servo state: OnSecond, OnLimitSwitch, button actions
//   - display program: OnSecond (cycles), OnDisplayTick (position), button actions
package core

import "errors"

// Device is the whole appliance state, alive from power-on to power-off
type Device struct {
	cfg Config

	elapsed  uint16
	testMode bool
	busFault bool

	button  *Button
	servo   *Servo
	display *Display
	led     *StatusLED
	limit   *LimitSwitch
	gate    SleepGate
}

// NewDevice configures every output and input and leaves all interrupt
// sources disabled. Drivers must be registered first.
func NewDevice(cfg Config, pins Pins) (*Device, error) {
	d := &Device{cfg: cfg}

	var err error
	if d.display, err = NewDisplay(pins.Segments, pins.Coms); err != nil {
		return nil, err
	}
	if d.servo, err = NewServo(pins.Servo, pins.ServoPower, cfg.ServoOnPulseUS, cfg.MaxOnSeconds); err != nil {
		return nil, err
	}
	if d.led, err = NewStatusLED(pins.LED); err != nil {
		return nil, err
	}
	if d.limit, err = NewLimitSwitch(pins.Limit); err != nil {
		return nil, err
	}
	if err = MustGPIO().ConfigureInputPullUp(pins.Button); err != nil {
		return nil, err
	}
	if err = MustGPIO().ConfigureInputPullUp(pins.RTCSquare); err != nil {
		return nil, err
	}
	if err = MustIRQ().ConfigureTickSource(IRQDebounce, DebounceTickUS); err != nil {
		return nil, err
	}
	d.button = NewButton(cfg.DebounceWindow, cfg.DebounceGrace)
	d.gate = SleepGate{button: d.button, servo: d.servo, display: d.display}
	return d, nil
}

// Boot programs the RTC, shows the greeting and enables the edge sources.
// A bus error is recorded and returned, but the device runs regardless;
// bus may be nil when the tick source needs no programming.
func (d *Device) Boot(bus I2CBus) error {
	var busErr error
	if bus != nil {
		busErr = InitRTC(bus)
	}

	state := disableInterrupts()
	defer restoreInterrupts(state)

	resetUptime()
	if busErr != nil {
		d.busFault = true
		var be *BusError
		if errors.As(busErr, &be) {
			RecordEvent(EvtBusFault, uint32(be.Register), 0)
		} else {
			RecordEvent(EvtBusFault, 0xFF, 0)
		}
	}
	RecordEvent(EvtBoot, boolToU32(d.busFault), uint32(d.cfg.Period))

	d.display.Start(d.cfg.Greeting)
	irq := MustIRQ()
	irq.EnableInterrupt(IRQSecond)
	irq.EnableInterrupt(IRQButton)
	irq.EnableInterrupt(IRQLimit)
	return busErr
}

// OnSecond is the real-time handler, fired by the RTC square wave
func (d *Device) OnSecond() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	advanceUptime()
	d.elapsed++

	// The cutoff is evaluated before any activation in the same tick.
	if d.servo.Active() && d.servo.Check() {
		d.onCutoff()
	}

	if !d.servo.Active() && !d.servo.Fault() && d.elapsed >= d.threshold() {
		d.activate()
	}

	if !d.testMode {
		d.led.Step(d.servo.Fault(), d.elapsed)
	}

	if d.display.Active() {
		d.display.OnCycleTick()
	}
}

// OnDisplayTick is the fast multiplexing handler
func (d *Device) OnDisplayTick() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	d.display.OnDisplayTick()
}

// OnButtonEdge handles every raw button transition
func (d *Device) OnButtonEdge() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if d.button.OnEdge() {
		MustIRQ().EnableInterrupt(IRQDebounce)
	}
	d.gate.Wake()
}

// OnDebounceTick counts down the button window and runs the classified action
func (d *Device) OnDebounceTick() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	_, closed := d.button.OnDebounceTick()
	if !d.button.Collecting() {
		MustIRQ().DisableInterrupt(IRQDebounce)
	}
	if closed {
		d.handlePress(d.button.Consume())
	}
}

// OnLimitSwitch stops the servo when the mechanism reaches its end stop
func (d *Device) OnLimitSwitch() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	wasActive := d.servo.Active()
	d.servo.Deactivate()
	RecordEvent(EvtLimit, boolToU32(wasActive), boolToU32(d.limit.Pressed()))
	if wasActive {
		RecordEvent(EvtDeactivate, uint32(d.servo.OnSeconds()), 0)
	}
}

// MaySleep reports the sleep gate
func (d *Device) MaySleep() bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return d.gate.MaySleep()
}

// RequestSleep is called by the foreground loop. It returns true when the
// loop may enter its low-power wait.
func (d *Device) RequestSleep() bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	was := d.gate.Requested()
	ok := d.gate.Request()
	if ok && !was {
		RecordEvent(EvtSleep, uint32(d.elapsed), 0)
	}
	return ok
}

// Sleep runs wait with interrupts masked, but only if the sleep flag is
// still set. A handler that fired since RequestSleep has cleared the flag,
// so its wakeup is never lost. wait must return once an interrupt is
// pending even while masked, as WFI does on Cortex-M. It reports whether
// wait ran.
func (d *Device) Sleep(wait func()) bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if !d.gate.Requested() {
		return false
	}
	wait()
	return true
}

// SleepRequested reports whether the sleep flag is still set
func (d *Device) SleepRequested() bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return d.gate.Requested()
}

// Shutdown leaves the actuator off and the display dark
func (d *Device) Shutdown() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	irq := MustIRQ()
	irq.DisableInterrupt(IRQSecond)
	irq.DisableInterrupt(IRQButton)
	irq.DisableInterrupt(IRQLimit)
	irq.DisableInterrupt(IRQDebounce)
	d.servo.Deactivate()
	d.display.Shutdown()
	d.led.Shutdown()
	RecordEvent(EvtShutdown, uint32(d.elapsed), 0)
}

// Elapsed returns the seconds counted towards the next activation
func (d *Device) Elapsed() uint16 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return d.elapsed
}

// TestMode reports whether the shortened period is in effect
func (d *Device) TestMode() bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return d.testMode
}

// Fault reports a latched safety cutoff
func (d *Device) Fault() bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return d.servo.Fault()
}

// BusFault reports an RTC programming failure at boot
func (d *Device) BusFault() bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return d.busFault
}

// ServoActive reports whether the servo is driven
func (d *Device) ServoActive() bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return d.servo.Active()
}

// DisplayActive reports whether a display program runs
func (d *Device) DisplayActive() bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return d.display.Active()
}

func (d *Device) threshold() uint16 {
	if d.testMode {
		return d.cfg.TestPeriod
	}
	return d.cfg.Period
}

func (d *Device) activate() {
	d.display.Stop()
	d.servo.Activate()
	RecordEvent(EvtActivate, uint32(d.elapsed), boolToU32(d.testMode))
	d.elapsed = 0
	d.gate.Wake()
}

func (d *Device) onCutoff() {
	d.testMode = false
	RecordEvent(EvtCutoff, uint32(d.servo.OnSeconds()), 0)
}

func (d *Device) handlePress(p ButtonPress) {
	RecordEvent(EvtPress, uint32(p), boolToU32(p.Recognized()))
	d.gate.Wake()

	switch p {
	case PressManualStop:
		if d.servo.Active() {
			d.servo.Deactivate()
			RecordEvent(EvtDeactivate, uint32(d.servo.OnSeconds()), 0)
		}
		if d.servo.Fault() {
			d.display.Start(d.cfg.Error)
		} else {
			d.display.ShowTime(d.cfg.Time, NewTimeRemaining(d.threshold(), d.elapsed))
		}
	case PressResetTimer:
		d.elapsed = 0
		d.servo.ClearFault()
		d.testMode = false
		d.led.Off()
	case PressTestMode:
		// test mode stays locked out until the fault is acknowledged
		if d.servo.Fault() {
			return
		}
		d.elapsed = 0
		d.testMode = true
		d.led.On()
	}
}
