package core

import "testing"

// runWindow ticks the button until its window closes
func runWindow(t *testing.T, b *Button) (ButtonPress, int) {
	t.Helper()
	for i := 1; i <= 1000; i++ {
		if press, ok := b.OnDebounceTick(); ok {
			return press, i
		}
	}
	t.Fatal("Debounce window never closed")
	return 0, 0
}

// clickN feeds n counted clicks spaced gap ticks apart
func clickN(b *Button, n, gap int) {
	for i := 0; i < n; i++ {
		b.OnEdge()
		if i < n-1 {
			for j := 0; j < gap; j++ {
				b.OnDebounceTick()
			}
		}
	}
}

func TestButtonFirstEdgeOpensWindow(t *testing.T) {
	b := NewButton(40, 5)

	if !b.OnEdge() {
		t.Error("Expected first edge to open a window")
	}
	if b.Clicks() != 1 {
		t.Errorf("Expected 1 click, got %d", b.Clicks())
	}
	if b.Countdown() != 40 {
		t.Errorf("Expected countdown 40, got %d", b.Countdown())
	}
	if !b.Collecting() {
		t.Error("Expected button to be collecting")
	}

	b.OnDebounceTick()
	if b.OnEdge() {
		t.Error("Expected a later edge not to reopen the window")
	}
}

func TestButtonSingleClickClassifiedAfterWindow(t *testing.T) {
	b := NewButton(40, 5)
	b.OnEdge()

	press, ticks := runWindow(t, b)
	if press != PressManualStop {
		t.Errorf("Expected press 1, got %d", press)
	}
	if ticks != 40 {
		t.Errorf("Expected window to close after 40 ticks, got %d", ticks)
	}
}

func TestButtonBounceIgnored(t *testing.T) {
	b := NewButton(40, 5)
	b.OnEdge()

	// edges up to and including the grace period are bounce
	for i := 0; i < 5; i++ {
		b.OnDebounceTick()
		b.OnEdge()
	}
	if b.Clicks() != 1 {
		t.Errorf("Expected bounce to be ignored, got %d clicks", b.Clicks())
	}

	b.OnDebounceTick()
	b.OnEdge()
	if b.Clicks() != 2 {
		t.Errorf("Expected edge after grace to count, got %d clicks", b.Clicks())
	}
	if b.Countdown() != 40 {
		t.Errorf("Expected counted edge to re-arm the window, got %d", b.Countdown())
	}
}

func TestButtonClickCounts(t *testing.T) {
	for n := 1; n <= 3; n++ {
		b := NewButton(40, 5)
		clickN(b, n, 10)

		press, _ := runWindow(t, b)
		if int(press) != n {
			t.Errorf("Expected press %d, got %d", n, press)
		}
		if !press.Recognized() {
			t.Errorf("Expected press %d to be recognized", n)
		}
		if b.Clicks() != 0 || b.Countdown() != 0 {
			t.Errorf("Expected counters reset, got clicks=%d countdown=%d", b.Clicks(), b.Countdown())
		}
		if b.Collecting() {
			t.Error("Expected window closed")
		}
		if !b.Pending() {
			t.Error("Expected classification pending until consumed")
		}
		if got := b.Consume(); got != press {
			t.Errorf("Expected Consume to return %d, got %d", press, got)
		}
		if b.Pending() {
			t.Error("Expected pending cleared by Consume")
		}
	}
}

func TestButtonBurstAboveThreeIsOneUnrecognizedPress(t *testing.T) {
	b := NewButton(40, 5)
	clickN(b, 5, 8)

	events := 0
	var last ButtonPress
	for i := 0; i < 200; i++ {
		if press, ok := b.OnDebounceTick(); ok {
			events++
			last = press
		}
	}
	if events != 1 {
		t.Fatalf("Expected exactly one classification, got %d", events)
	}
	if last != 5 {
		t.Errorf("Expected click count 5, got %d", last)
	}
	if last.Recognized() {
		t.Error("Expected 5 clicks not to be recognized")
	}
	if b.Clicks() != 0 || b.Countdown() != 0 {
		t.Errorf("Expected counters reset, got clicks=%d countdown=%d", b.Clicks(), b.Countdown())
	}
}

func TestButtonTickWithoutClicks(t *testing.T) {
	b := NewButton(40, 5)
	if _, ok := b.OnDebounceTick(); ok {
		t.Error("Expected no classification without clicks")
	}
	if b.Pending() {
		t.Error("Expected nothing pending")
	}
}

// Edges closer than grace ticks to the last counted click are bounce, even
// though they fall well inside the window; only edges further apart count
// towards the click total.
func TestButtonCountedSpacingBoundary(t *testing.T) {
	tests := []struct {
		gap  int
		want ButtonPress
	}{
		{1, 1},
		{2, 1},
		{5, 1},
		{6, 2},
		{34, 2},
	}
	for _, tt := range tests {
		b := NewButton(40, 5)
		b.OnEdge()
		for i := 0; i < tt.gap; i++ {
			b.OnDebounceTick()
		}
		b.OnEdge()

		press, _ := runWindow(t, b)
		if press != tt.want {
			t.Errorf("gap %d: expected press %d, got %d", tt.gap, tt.want, press)
		}
	}
}
