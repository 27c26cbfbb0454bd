//go:build linux && !tinygo

package main

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"

	"servotimer/core"
)

// PinMap is the bench wiring in BCM line offsets, loaded from YAML
type PinMap struct {
	Chip       string `json:"chip"`
	I2CBus     string `json:"i2c_bus"`
	Segments   []int  `json:"segments"`
	Coms       []int  `json:"coms"`
	LED        int    `json:"led"`
	ServoPower int    `json:"servo_power"`
	Servo      int    `json:"servo"`
	Button     int    `json:"button"`
	Limit      int    `json:"limit"`
	RTCSquare  int    `json:"rtc_square"`
}

// DefaultPinMap matches the reference bench harness on a Raspberry Pi header
func DefaultPinMap() PinMap {
	return PinMap{
		Chip:       "gpiochip0",
		I2CBus:     "/dev/i2c-1",
		Segments:   []int{5, 6, 13, 19, 26, 16, 20, 21},
		Coms:       []int{22, 27, 17},
		LED:        23,
		ServoPower: 24,
		Servo:      18, // PWM0
		Button:     25,
		Limit:      12,
		RTCSquare:  4,
	}
}

// LoadPinMap reads a YAML pin map; keys left out keep their defaults
func LoadPinMap(path string) (PinMap, error) {
	pm := DefaultPinMap()
	dat, err := os.ReadFile(path)
	if err != nil {
		return pm, err
	}
	if err = yaml.Unmarshal(dat, &pm); err != nil {
		return pm, fmt.Errorf("parse %s: %w", path, err)
	}
	return pm, pm.Validate()
}

// Validate checks lengths and that no line is wired twice
func (pm PinMap) Validate() error {
	if len(pm.Segments) != 8 {
		return fmt.Errorf("need 8 segment lines, got %d", len(pm.Segments))
	}
	if len(pm.Coms) != 3 {
		return fmt.Errorf("need 3 com lines, got %d", len(pm.Coms))
	}
	seen := make(map[int]string)
	check := func(name string, line int) error {
		if line < 0 {
			return fmt.Errorf("%s: negative line %d", name, line)
		}
		if prev, ok := seen[line]; ok {
			return fmt.Errorf("%s: line %d already used by %s", name, line, prev)
		}
		seen[line] = name
		return nil
	}
	for i, l := range pm.Segments {
		if err := check(fmt.Sprintf("segments[%d]", i), l); err != nil {
			return err
		}
	}
	for i, l := range pm.Coms {
		if err := check(fmt.Sprintf("coms[%d]", i), l); err != nil {
			return err
		}
	}
	for _, p := range []struct {
		name string
		line int
	}{
		{"led", pm.LED}, {"servo_power", pm.ServoPower}, {"servo", pm.Servo},
		{"button", pm.Button}, {"limit", pm.Limit}, {"rtc_square", pm.RTCSquare},
	} {
		if err := check(p.name, p.line); err != nil {
			return err
		}
	}
	return nil
}

// Pins converts the map to the core wiring description
func (pm PinMap) Pins() core.Pins {
	var p core.Pins
	for i := range p.Segments {
		p.Segments[i] = core.GPIOPin(pm.Segments[i])
	}
	for i := range p.Coms {
		p.Coms[i] = core.GPIOPin(pm.Coms[i])
	}
	p.LED = core.GPIOPin(pm.LED)
	p.ServoPower = core.GPIOPin(pm.ServoPower)
	p.Servo = core.PWMPin(pm.Servo)
	p.Button = core.GPIOPin(pm.Button)
	p.Limit = core.GPIOPin(pm.Limit)
	p.RTCSquare = core.GPIOPin(pm.RTCSquare)
	return p
}
