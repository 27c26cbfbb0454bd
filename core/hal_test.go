package core

import "errors"

// mockGPIO records pin configuration and levels
type mockGPIO struct {
	outputs map[GPIOPin]bool
	inputs  map[GPIOPin]bool
	levels  map[GPIOPin]bool
	writes  int
	failPin GPIOPin
	fail    bool
}

func newMockGPIO() *mockGPIO {
	return &mockGPIO{
		outputs: make(map[GPIOPin]bool),
		inputs:  make(map[GPIOPin]bool),
		levels:  make(map[GPIOPin]bool),
	}
}

func (m *mockGPIO) ConfigureOutput(pin GPIOPin) error {
	m.outputs[pin] = true
	m.levels[pin] = false
	return nil
}

func (m *mockGPIO) ConfigureInputPullUp(pin GPIOPin) error {
	m.inputs[pin] = true
	m.levels[pin] = true
	return nil
}

func (m *mockGPIO) SetPin(pin GPIOPin, value bool) error {
	if !m.outputs[pin] {
		return ErrNotConfigured
	}
	if m.fail && pin == m.failPin {
		return errors.New("mock write failure")
	}
	m.levels[pin] = value
	m.writes++
	return nil
}

func (m *mockGPIO) ReadPin(pin GPIOPin) bool {
	return m.levels[pin]
}

// mockPWM records the pulse width per pin
type mockPWM struct {
	periods map[PWMPin]uint32
	widths  map[PWMPin]uint32
}

func newMockPWM() *mockPWM {
	return &mockPWM{
		periods: make(map[PWMPin]uint32),
		widths:  make(map[PWMPin]uint32),
	}
}

func (m *mockPWM) ConfigureHardwarePWM(pin PWMPin, periodUS uint32) error {
	m.periods[pin] = periodUS
	return nil
}

func (m *mockPWM) SetPulseWidth(pin PWMPin, widthUS uint32) error {
	if _, ok := m.periods[pin]; !ok {
		return ErrNotConfigured
	}
	m.widths[pin] = widthUS
	return nil
}

// mockIRQ records which sources are enabled
type mockIRQ struct {
	periods  map[IRQSource]uint32
	enabled  map[IRQSource]bool
	enables  map[IRQSource]int
	disables map[IRQSource]int
}

func newMockIRQ() *mockIRQ {
	return &mockIRQ{
		periods:  make(map[IRQSource]uint32),
		enabled:  make(map[IRQSource]bool),
		enables:  make(map[IRQSource]int),
		disables: make(map[IRQSource]int),
	}
}

func (m *mockIRQ) ConfigureTickSource(src IRQSource, periodUS uint32) error {
	m.periods[src] = periodUS
	return nil
}

func (m *mockIRQ) EnableInterrupt(src IRQSource) {
	m.enabled[src] = true
	m.enables[src]++
}

func (m *mockIRQ) DisableInterrupt(src IRQSource) {
	m.enabled[src] = false
	m.disables[src]++
}

// mockBus emulates a register-addressed I2C device
type mockBus struct {
	regs   [64]byte
	writes [][]byte
	addr   uint16
	err    error
}

func (m *mockBus) Tx(addr uint16, w, r []byte) error {
	if m.err != nil {
		return m.err
	}
	m.addr = addr
	if len(w) == 0 {
		return nil
	}
	reg := int(w[0])
	if len(w) > 1 {
		m.writes = append(m.writes, append([]byte(nil), w...))
		copy(m.regs[reg:], w[1:])
	}
	if r != nil {
		copy(r, m.regs[reg:])
	}
	return nil
}

type mockDrivers struct {
	gpio *mockGPIO
	pwm  *mockPWM
	irq  *mockIRQ
}

// setupMockDrivers registers fresh fakes and clears global state
func setupMockDrivers() *mockDrivers {
	m := &mockDrivers{gpio: newMockGPIO(), pwm: newMockPWM(), irq: newMockIRQ()}
	SetGPIODriver(m.gpio)
	SetPWMDriver(m.pwm)
	SetIRQDriver(m.irq)
	ClearEvents()
	resetUptime()
	return m
}

func testPins() Pins {
	return Pins{
		Segments:   [8]GPIOPin{0, 1, 2, 3, 4, 5, 6, 7},
		Coms:       [3]GPIOPin{8, 9, 10},
		LED:        11,
		ServoPower: 12,
		Servo:      13,
		Button:     14,
		Limit:      15,
		RTCSquare:  16,
	}
}

// scenarioConfig shrinks the periods to test scale
func scenarioConfig() Config {
	cfg := DefaultConfig()
	cfg.Period = 20
	cfg.TestPeriod = 10
	cfg.MaxOnSeconds = 5
	return cfg
}

// segmentByte reassembles the pattern currently on the segment lines
func (m *mockGPIO) segmentByte() uint8 {
	var b uint8
	for i := 0; i < 8; i++ {
		if m.levels[GPIOPin(i)] {
			b |= 1 << uint(i)
		}
	}
	return b
}

// litComs returns the digit positions currently selected
func (m *mockGPIO) litComs() []int {
	var lit []int
	for i, pin := range testPins().Coms {
		if m.levels[pin] {
			lit = append(lit, i)
		}
	}
	return lit
}
