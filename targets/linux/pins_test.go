//go:build linux && !tinygo

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"servotimer/core"
)

func writePinFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pins.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write pin file: %v", err)
	}
	return path
}

func TestDefaultPinMapValid(t *testing.T) {
	if err := DefaultPinMap().Validate(); err != nil {
		t.Errorf("Expected default map valid, got %v", err)
	}
}

func TestLoadPinMapOverridesDefaults(t *testing.T) {
	path := writePinFile(t, "chip: gpiochip4\nsegments: [5, 6, 9, 10, 26, 16, 20, 21]\nservo: 13\nbutton: 7\n")

	pm, err := LoadPinMap(path)
	if err != nil {
		t.Fatalf("LoadPinMap failed: %v", err)
	}
	if pm.Chip != "gpiochip4" {
		t.Errorf("Expected chip gpiochip4, got %s", pm.Chip)
	}
	if pm.I2CBus != "/dev/i2c-1" {
		t.Errorf("Expected default i2c bus kept, got %s", pm.I2CBus)
	}

	pins := pm.Pins()
	if pins.Servo != core.PWMPin(13) {
		t.Errorf("Expected servo 13, got %d", pins.Servo)
	}
	if pins.Button != core.GPIOPin(7) {
		t.Errorf("Expected button 7, got %d", pins.Button)
	}
	if pins.Segments[7] != core.GPIOPin(21) {
		t.Errorf("Expected DP segment 21, got %d", pins.Segments[7])
	}
}

func TestLoadPinMapRejectsBadWiring(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"coms: [1, 2]\n", "need 3 com lines"},
		{"segments: [1, 2, 3]\n", "need 8 segment lines"},
		{"led: 5\n", "already used by segments[0]"},
		{"limit: -1\n", "negative line"},
	}
	for _, tt := range tests {
		_, err := LoadPinMap(writePinFile(t, tt.body))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("LoadPinMap(%q): expected %q, got %v", tt.body, tt.want, err)
		}
	}
}
