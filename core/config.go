package core

// Compile-time thresholds. There is no runtime reconfiguration.
const (
	Period       = 28800 // seconds between automatic activations (8h)
	TestPeriod   = 30    // activation period in test mode
	MaxOnSeconds = 10    // servo safety cutoff

	DebounceWindow = 40    // debounce ticks after the last accepted click
	DebounceGrace  = 5     // edges within this many ticks of a click are bounce
	DebounceTickUS = 20000 // debounce tick period

	DisplayTickUS = 1664 // digit rotation period, ~200Hz per digit

	ServoPeriodUS  = 20000
	ServoOnPulseUS = 1400

	BlinkFrame = 8 // seconds per healthy blink frame
)

// Display program geometry
const (
	GreetingCycles          = 1
	GreetingSecondsPerCycle = 3
	TimeCycles              = 3 // hours, minutes, seconds
	TimeSecondsPerCycle     = 2
	ErrorCycles             = 2
	ErrorSecondsPerCycle    = 2
)

// Config carries the thresholds into a Device. Production code always uses
// DefaultConfig; tests shrink the periods.
type Config struct {
	Period         uint16
	TestPeriod     uint16
	MaxOnSeconds   uint16
	DebounceWindow uint8
	DebounceGrace  uint8
	ServoOnPulseUS uint32

	Greeting DisplayProgram
	Time     DisplayProgram
	Error    DisplayProgram
}

// DefaultConfig returns the compiled-in thresholds
func DefaultConfig() Config {
	return Config{
		Period:         Period,
		TestPeriod:     TestPeriod,
		MaxOnSeconds:   MaxOnSeconds,
		DebounceWindow: DebounceWindow,
		DebounceGrace:  DebounceGrace,
		ServoOnPulseUS: ServoOnPulseUS,
		Greeting:       DisplayProgram{Content: ContentGreeting, TotalCycles: GreetingCycles, SecondsPerCycle: GreetingSecondsPerCycle},
		Time:           DisplayProgram{Content: ContentTime, TotalCycles: TimeCycles, SecondsPerCycle: TimeSecondsPerCycle},
		Error:          DisplayProgram{Content: ContentError, TotalCycles: ErrorCycles, SecondsPerCycle: ErrorSecondsPerCycle},
	}
}

// Pins is the board wiring. Segment pins are ordered a..g then DP and are
// driven active low; Coms select digit positions 0..2 and are active high.
type Pins struct {
	Segments   [8]GPIOPin
	Coms       [3]GPIOPin
	LED        GPIOPin
	ServoPower GPIOPin
	Servo      PWMPin
	Button     GPIOPin
	Limit      GPIOPin
	RTCSquare  GPIOPin
}
