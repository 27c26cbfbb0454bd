package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures a state change for the console and post-mortem analysis
type Event struct {
	Type   uint8  // Event type code
	Second uint32 // Uptime in seconds when recorded
	Value1 uint32 // Context-dependent value
	Value2 uint32 // Context-dependent value
}

// Event type codes
const (
	EvtBoot         = 1  // v1=bus fault flag
	EvtActivate     = 2  // v1=elapsed at activation, v2=test mode
	EvtDeactivate   = 3  // v1=on seconds
	EvtCutoff       = 4  // v1=on seconds
	EvtPress        = 5  // v1=click count, v2=1 if recognized
	EvtDisplayStart = 6  // v1=content
	EvtDisplayStop  = 7  // v1=content, v2=cycle index
	EvtLimit        = 8  // v1=1 if servo was active
	EvtBusFault     = 9  // v1=register
	EvtDriverFault  = 10 // v1=pin
	EvtSleep        = 11 // v1=elapsed
	EvtShutdown     = 12 // v1=elapsed
)

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = true

	eventRing  [EventRingSize]Event
	eventHead  uint32 // total events ever recorded
	eventShown uint32 // events already drained to the writer
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// DebugPrintln writes a debug message using the platform-specific writer.
// Messages from interrupt context are dropped.
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil && !inInterrupt() {
		debugPrintln(msg)
	}
}

// RecordEvent appends an event to the ring. Safe from interrupt context:
// callers already hold the interrupt mask.
func RecordEvent(eventType uint8, value1, value2 uint32) {
	eventRing[eventHead%EventRingSize] = Event{
		Type:   eventType,
		Second: uptimeSeconds,
		Value1: value1,
		Value2: value2,
	}
	eventHead++
}

// DrainEvents prints events recorded since the last drain. Called from the
// foreground loop. If the ring overflowed, the oldest are reported as lost.
func DrainEvents() {
	state := disableInterrupts()
	head := eventHead
	shown := eventShown
	var pending [EventRingSize]Event
	lost := uint32(0)
	if head-shown > EventRingSize {
		lost = head - shown - EventRingSize
		shown = head - EventRingSize
	}
	n := head - shown
	for i := uint32(0); i < n; i++ {
		pending[i] = eventRing[(shown+i)%EventRingSize]
	}
	eventShown = head
	restoreInterrupts(state)

	if lost > 0 {
		DebugPrintln("[EVT] lost=" + utoa(lost))
	}
	for i := uint32(0); i < n; i++ {
		DebugPrintln(formatEvent(&pending[i]))
	}
}

// DumpEvents outputs the whole ring, oldest first (call on fault)
func DumpEvents() {
	DebugPrintln("[EVT] === Event Ring Dump ===")
	DebugPrintln("[EVT] uptime=" + utoa(uptimeSeconds) + " total=" + utoa(eventHead))

	start := uint32(0)
	if eventHead > EventRingSize {
		start = eventHead - EventRingSize
	}
	for i := start; i < eventHead; i++ {
		DebugPrintln(formatEvent(&eventRing[i%EventRingSize]))
	}
	DebugPrintln("[EVT] === End Dump ===")
}

// ClearEvents clears the event ring
func ClearEvents() {
	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventHead = 0
	eventShown = 0
}

// EventName returns the console name of an event type
func EventName(eventType uint8) string {
	switch eventType {
	case EvtBoot:
		return "BOOT"
	case EvtActivate:
		return "ACTIVATE"
	case EvtDeactivate:
		return "DEACTIVATE"
	case EvtCutoff:
		return "CUTOFF!"
	case EvtPress:
		return "PRESS"
	case EvtDisplayStart:
		return "DISPLAY_ON"
	case EvtDisplayStop:
		return "DISPLAY_OFF"
	case EvtLimit:
		return "LIMIT"
	case EvtBusFault:
		return "BUS_FAULT!"
	case EvtDriverFault:
		return "DRIVER_FAULT!"
	case EvtSleep:
		return "SLEEP"
	case EvtShutdown:
		return "SHUTDOWN"
	default:
		return "UNKNOWN"
	}
}

func formatEvent(evt *Event) string {
	return "[EVT] " + EventName(evt.Type) +
		" t=" + utoa(evt.Second) +
		" v1=" + utoa(evt.Value1) +
		" v2=" + utoa(evt.Value2)
}
