package core

import (
	"strings"
	"testing"
)

func captureDebug(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	SetDebugEnabled(true)
	t.Cleanup(func() { SetDebugWriter(func(string) {}) })
	return &lines
}

func TestDrainEventsPrintsNewEventsOnce(t *testing.T) {
	ClearEvents()
	resetUptime()
	lines := captureDebug(t)

	RecordEvent(EvtActivate, 20, 0)
	RecordEvent(EvtCutoff, 6, 0)
	DrainEvents()

	if len(*lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %v", len(*lines), *lines)
	}
	if (*lines)[0] != "[EVT] ACTIVATE t=0 v1=20 v2=0" {
		t.Errorf("Unexpected line: %q", (*lines)[0])
	}
	if !strings.HasPrefix((*lines)[1], "[EVT] CUTOFF!") {
		t.Errorf("Unexpected line: %q", (*lines)[1])
	}

	DrainEvents()
	if len(*lines) != 2 {
		t.Errorf("Expected no repeat output, got %v", *lines)
	}
}

func TestDrainEventsReportsOverflow(t *testing.T) {
	ClearEvents()
	lines := captureDebug(t)

	for i := 0; i < EventRingSize+4; i++ {
		RecordEvent(EvtPress, uint32(i), 1)
	}
	DrainEvents()

	if (*lines)[0] != "[EVT] lost=4" {
		t.Errorf("Expected lost report first, got %q", (*lines)[0])
	}
	if len(*lines) != EventRingSize+1 {
		t.Errorf("Expected %d lines, got %d", EventRingSize+1, len(*lines))
	}
	if !strings.Contains((*lines)[1], "v1=4 ") {
		t.Errorf("Expected oldest surviving event v1=4, got %q", (*lines)[1])
	}
}

func TestDebugDisabled(t *testing.T) {
	lines := captureDebug(t)
	SetDebugEnabled(false)
	defer SetDebugEnabled(true)

	DebugPrintln("hidden")
	if len(*lines) != 0 {
		t.Errorf("Expected no output while disabled, got %v", *lines)
	}
}

func TestDumpEvents(t *testing.T) {
	ClearEvents()
	lines := captureDebug(t)
	RecordEvent(EvtBoot, 0, 20)
	DumpEvents()

	out := strings.Join(*lines, "\n")
	if !strings.Contains(out, "BOOT") || !strings.Contains(out, "End Dump") {
		t.Errorf("Unexpected dump: %s", out)
	}
}

func TestUtoa(t *testing.T) {
	tests := map[uint32]string{0: "0", 7: "7", 42: "42", 4294967295: "4294967295"}
	for in, want := range tests {
		if got := utoa(in); got != want {
			t.Errorf("utoa(%d): expected %q, got %q", in, want, got)
		}
	}
}
