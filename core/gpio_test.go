package core

import "testing"

func TestDigitalOutSkipsRedundantWrites(t *testing.T) {
	m := setupMockDrivers()
	out, err := NewDigitalOut(3, false)
	if err != nil {
		t.Fatalf("NewDigitalOut failed: %v", err)
	}
	writes := m.gpio.writes

	out.Set(false)
	if m.gpio.writes != writes {
		t.Error("Expected redundant write skipped")
	}
	out.Set(true)
	if !m.gpio.levels[3] || !out.IsOn() {
		t.Error("Expected pin high")
	}
	out.Force(true)
	if m.gpio.writes != writes+2 {
		t.Errorf("Expected Force to write, got %d writes", m.gpio.writes-writes)
	}
}

func TestDigitalOutFaultRecorded(t *testing.T) {
	m := setupMockDrivers()
	out, _ := NewDigitalOut(4, true)
	m.gpio.fail = true
	m.gpio.failPin = 4

	out.Set(false)
	if eventHead != 1 || eventRing[0].Type != EvtDriverFault {
		t.Fatalf("Expected driver fault event, got %+v", eventRing[0])
	}
	if !out.IsOn() {
		t.Error("Expected cached level unchanged after failed write")
	}

	m.gpio.fail = false
	out.Shutdown()
	if !m.gpio.levels[4] {
		t.Error("Expected default level restored")
	}
}
