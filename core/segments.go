package core

// Segment patterns for a common-anode display, bit order DP g f e d c b a,
// a cleared bit lights the segment.
const (
	SegBlank = 0xFF
	SegDot   = 0x7F
	SegHour  = 0x8B // lowercase h
	SegH     = 0x89
	SegE     = 0x86
	SegY     = 0x91
	SegR     = 0xAF // lowercase r
)

var segDigits = [10]uint8{0xC0, 0xF9, 0xA4, 0xB0, 0x99, 0x92, 0x82, 0xF8, 0x80, 0x90}

// greeting and error messages, one pattern per position
var (
	segGreeting = [3]uint8{SegH, SegE, SegY}
	segError    = [3]uint8{SegE, SegR, SegR}
)

// DigitPattern returns the pattern for a decimal digit, blank if out of range
func DigitPattern(d uint8) uint8 {
	if d > 9 {
		return SegBlank
	}
	return segDigits[d]
}
