package core

// SleepGate aggregates component activity into the low-power decision.
// The gate is advisory: the target decides how to wait.
type SleepGate struct {
	button  *Button
	servo   *Servo
	display *Display

	requested bool
}

// MaySleep is true when no window is open, no press is pending, the servo
// is idle and no display program runs
func (g *SleepGate) MaySleep() bool {
	return !g.button.Collecting() &&
		!g.button.Pending() &&
		!g.servo.Active() &&
		!g.display.Active()
}

// Request sets the sleep flag if the gate allows it
func (g *SleepGate) Request() bool {
	g.requested = g.MaySleep()
	return g.requested
}

// Wake clears the sleep flag; called by every handler that starts activity
func (g *SleepGate) Wake() {
	g.requested = false
}

// Requested reports the sleep flag
func (g *SleepGate) Requested() bool {
	return g.requested
}
