// Multiplexed 3-digit 7-segment display
//
// The fast display tick lights one digit position per call, cycling 0,1,2.
// The once-per-second handler advances the program through its cycles and
// switches the display off when the last cycle has elapsed. For the time
// program each cycle shows one field: hours, minutes, then seconds.
package core

// DisplayContent selects what a program renders
type DisplayContent uint8

const (
	ContentNone DisplayContent = iota
	ContentTime
	ContentGreeting
	ContentError
)

// DisplayProgram is a content selection plus its cycle geometry
type DisplayProgram struct {
	Content         DisplayContent
	TotalCycles     uint8
	SecondsPerCycle uint8
}

// TimeRemaining is the snapshot rendered by a time program
type TimeRemaining struct {
	Hours   uint8
	Minutes uint8
	Seconds uint8
}

// NewTimeRemaining splits period-elapsed into fields, clamping at zero
func NewTimeRemaining(period, elapsed uint16) TimeRemaining {
	if elapsed >= period {
		return TimeRemaining{}
	}
	left := period - elapsed
	return TimeRemaining{
		Hours:   uint8(left / 3600),
		Minutes: uint8(left % 3600 / 60),
		Seconds: uint8(left % 60),
	}
}

// DigitBuffer holds the decimal digits of one field, least significant first
type DigitBuffer struct {
	digits [3]uint8
	n      uint8
}

// Load decomposes v in place. Zero yields a single 0 digit.
func (b *DigitBuffer) Load(v uint8) {
	b.n = 0
	for {
		b.digits[b.n] = v % 10
		b.n++
		v /= 10
		if v == 0 {
			break
		}
	}
}

// Reset empties the buffer
func (b *DigitBuffer) Reset() {
	b.n = 0
}

// Len returns the number of digits loaded
func (b *DigitBuffer) Len() int {
	return int(b.n)
}

// Digit returns the i-th least significant digit
func (b *DigitBuffer) Digit(i int) (uint8, bool) {
	if i < 0 || i >= int(b.n) {
		return 0, false
	}
	return b.digits[i], true
}

// Display owns the active program and the digit rotation
type Display struct {
	segments [8]*DigitalOut
	coms     [3]*DigitalOut

	program   DisplayProgram
	active    bool
	cycle     uint8
	timer     uint8
	position  uint8
	remaining TimeRemaining
	digits    DigitBuffer
}

// NewDisplay configures the segment and digit-select lines with everything dark
func NewDisplay(segPins [8]GPIOPin, comPins [3]GPIOPin) (*Display, error) {
	d := &Display{}
	for i, pin := range segPins {
		out, err := NewDigitalOut(pin, true)
		if err != nil {
			return nil, err
		}
		d.segments[i] = out
	}
	for i, pin := range comPins {
		out, err := NewDigitalOut(pin, false)
		if err != nil {
			return nil, err
		}
		d.coms[i] = out
	}
	if err := MustIRQ().ConfigureTickSource(IRQDisplay, DisplayTickUS); err != nil {
		return nil, err
	}
	return d, nil
}

// Start runs program p. It is refused while another program is active.
func (d *Display) Start(p DisplayProgram) bool {
	if d.active {
		return false
	}
	if p.SecondsPerCycle == 0 {
		p.SecondsPerCycle = 1
	}
	d.program = p
	d.active = true
	d.cycle = 1
	d.timer = 0
	d.position = 0
	d.loadField()
	MustIRQ().EnableInterrupt(IRQDisplay)
	RecordEvent(EvtDisplayStart, uint32(p.Content), 0)
	return true
}

// ShowTime pre-empts any running program and shows rem using program p
func (d *Display) ShowTime(p DisplayProgram, rem TimeRemaining) {
	d.Stop()
	d.remaining = rem
	p.Content = ContentTime
	d.Start(p)
}

// Stop blanks the display and disables the digit rotation tick
func (d *Display) Stop() {
	if !d.active {
		return
	}
	MustIRQ().DisableInterrupt(IRQDisplay)
	for _, com := range d.coms {
		com.Set(false)
	}
	d.writeSegments(SegBlank)
	RecordEvent(EvtDisplayStop, uint32(d.program.Content), uint32(d.cycle))
	d.active = false
	d.program = DisplayProgram{}
	d.digits.Reset()
}

// Shutdown stops any program and returns every line to its default level
func (d *Display) Shutdown() {
	d.Stop()
	for _, seg := range d.segments {
		seg.Shutdown()
	}
	for _, com := range d.coms {
		com.Shutdown()
	}
}

// OnDisplayTick lights the next digit position
func (d *Display) OnDisplayTick() {
	if !d.active {
		return
	}
	pos := d.position
	for _, com := range d.coms {
		com.Set(false)
	}
	d.writeSegments(d.pattern(pos))
	d.coms[pos].Set(true)

	d.position++
	if d.position > 2 {
		d.position = 0
	}
}

// OnCycleTick is called once per second. It returns true when the program
// finished on this tick and the display switched itself off.
func (d *Display) OnCycleTick() bool {
	if !d.active {
		return false
	}
	d.timer++
	if d.timer < d.program.SecondsPerCycle {
		return false
	}
	d.timer = 0
	d.cycle++
	if d.cycle > d.program.TotalCycles {
		d.Stop()
		return true
	}
	d.loadField()
	return false
}

// Active reports whether a program is running
func (d *Display) Active() bool {
	return d.active
}

// Program returns the running program
func (d *Display) Program() DisplayProgram {
	return d.program
}

// Cycle returns the 1-based index of the current cycle
func (d *Display) Cycle() uint8 {
	return d.cycle
}

// Remaining returns the snapshot of the last time program
func (d *Display) Remaining() TimeRemaining {
	return d.remaining
}

// Digits exposes the field currently decomposed for rendering
func (d *Display) Digits() *DigitBuffer {
	return &d.digits
}

// loadField refreshes the digit buffer when the displayed field changes
func (d *Display) loadField() {
	if d.program.Content != ContentTime {
		d.digits.Reset()
		return
	}
	switch d.cycle {
	case 1:
		d.digits.Load(d.remaining.Hours)
	case 2:
		d.digits.Load(d.remaining.Minutes)
	case 3:
		d.digits.Load(d.remaining.Seconds)
	default:
		d.digits.Reset()
	}
}

// pattern renders position pos (0..2) of the active program
func (d *Display) pattern(pos uint8) uint8 {
	switch d.program.Content {
	case ContentGreeting:
		return segGreeting[pos]
	case ContentError:
		return segError[pos]
	case ContentTime:
		return d.timePattern(pos)
	default:
		return SegBlank
	}
}

// timePattern lays a field out as [tens][ones][suffix]
func (d *Display) timePattern(pos uint8) uint8 {
	if d.digits.Len() == 0 {
		return SegBlank
	}
	switch pos {
	case 0:
		if tens, ok := d.digits.Digit(1); ok {
			return DigitPattern(tens)
		}
		return SegBlank
	case 1:
		ones, _ := d.digits.Digit(0)
		return DigitPattern(ones)
	default:
		if d.cycle == 1 {
			return SegHour
		}
		return SegDot
	}
}

// writeSegments drives the eight segment lines from an active-low pattern
func (d *Display) writeSegments(pattern uint8) {
	for i, seg := range d.segments {
		seg.Set(pattern&(1<<uint(i)) != 0)
	}
}
