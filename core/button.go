package core

// ButtonPress is the click count resolved at the end of a debounce window
type ButtonPress uint8

// Recognized presses
const (
	PressManualStop ButtonPress = 1
	PressResetTimer ButtonPress = 2
	PressTestMode   ButtonPress = 3
)

// Recognized reports whether the press maps to an action
func (p ButtonPress) Recognized() bool {
	return p >= PressManualStop && p <= PressTestMode
}

// Button classifies bursts of clicks within a debounce window.
//
// An edge is counted when it opens a window or arrives more than grace ticks
// after the last counted click; counting re-arms the window. Edges inside the
// grace period are contact bounce. When the countdown reaches zero the window
// closes with exactly one classification.
type Button struct {
	window uint8
	grace  uint8

	clicks     uint8
	countdown  uint8
	collecting bool
	pending    bool
	press      ButtonPress
}

// NewButton creates a classifier with the given window and grace, in ticks
func NewButton(window, grace uint8) *Button {
	return &Button{window: window, grace: grace}
}

// OnEdge handles a raw input transition. It returns true when this edge
// opened a new window, so the caller must arm the debounce tick.
func (b *Button) OnEdge() bool {
	opened := b.clicks == 0
	if opened || b.countdown < b.window-b.grace {
		if b.clicks < 0xFF {
			b.clicks++
		}
		b.countdown = b.window
		b.collecting = true
	}
	return opened
}

// OnDebounceTick advances the window by one tick. When the window closes it
// returns the click count and true; counters are reset either way. Counts
// outside the recognized set are still returned so the caller can log them.
func (b *Button) OnDebounceTick() (ButtonPress, bool) {
	if b.countdown > 0 {
		b.countdown--
	}
	if b.countdown > 0 {
		return 0, false
	}

	if b.clicks == 0 {
		b.collecting = false
		return 0, false
	}

	press := ButtonPress(b.clicks)
	b.clicks = 0
	b.collecting = false
	b.pending = true
	b.press = press
	return press, true
}

// Consume clears the pending classification once the action has run
func (b *Button) Consume() ButtonPress {
	press := b.press
	b.pending = false
	b.press = 0
	return press
}

// Collecting reports whether a debounce window is open
func (b *Button) Collecting() bool {
	return b.collecting
}

// Pending reports a classification not yet consumed
func (b *Button) Pending() bool {
	return b.pending
}

// Clicks returns the clicks counted in the open window
func (b *Button) Clicks() uint8 {
	return b.clicks
}

// Countdown returns the remaining debounce ticks
func (b *Button) Countdown() uint8 {
	return b.countdown
}
