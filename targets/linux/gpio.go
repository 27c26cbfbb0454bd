//go:build linux && !tinygo

package main

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"servotimer/core"
)

// CdevGPIODriver implements core.GPIODriver over the GPIO character device.
// Inputs registered with WatchEdge are requested with falling-edge
// detection and forwarded to the IRQ driver.
type CdevGPIODriver struct {
	mu    sync.Mutex
	chip  *gpiocdev.Chip
	lines map[core.GPIOPin]*gpiocdev.Line
	edges map[core.GPIOPin]core.IRQSource
	irq   *LinuxIRQDriver
}

// NewCdevGPIODriver opens the named chip, e.g. "gpiochip0"
func NewCdevGPIODriver(chipName string, irq *LinuxIRQDriver) (*CdevGPIODriver, error) {
	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer("servotimer"))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	return &CdevGPIODriver{
		chip:  chip,
		lines: make(map[core.GPIOPin]*gpiocdev.Line),
		edges: make(map[core.GPIOPin]core.IRQSource),
		irq:   irq,
	}, nil
}

// WatchEdge marks an input whose falling edges feed src. It must be called
// before the pin is configured.
func (d *CdevGPIODriver) WatchEdge(pin core.GPIOPin, src core.IRQSource) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.edges[pin] = src
}

// ConfigureOutput requests the line as an output driven low
func (d *CdevGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	return d.request(pin, gpiocdev.AsOutput(0))
}

// ConfigureInputPullUp requests the line as a pulled-up input
func (d *CdevGPIODriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput, gpiocdev.WithPullUp}
	d.mu.Lock()
	src, watched := d.edges[pin]
	d.mu.Unlock()
	if watched {
		opts = append(opts,
			gpiocdev.WithFallingEdge,
			gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { d.irq.Fire(src) }))
	}
	return d.request(pin, opts...)
}

func (d *CdevGPIODriver) request(pin core.GPIOPin, opts ...gpiocdev.LineReqOption) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.lines[pin]; exists {
		return nil
	}
	line, err := d.chip.RequestLine(int(pin), opts...)
	if err != nil {
		return fmt.Errorf("request line %d: %w", pin, err)
	}
	d.lines[pin] = line
	return nil
}

// SetPin drives a requested output
func (d *CdevGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	d.mu.Lock()
	line, exists := d.lines[pin]
	d.mu.Unlock()
	if !exists {
		return core.ErrNotConfigured
	}
	v := 0
	if value {
		v = 1
	}
	return line.SetValue(v)
}

// ReadPin samples a requested line; read errors read low
func (d *CdevGPIODriver) ReadPin(pin core.GPIOPin) bool {
	d.mu.Lock()
	line, exists := d.lines[pin]
	d.mu.Unlock()
	if !exists {
		return false
	}
	v, err := line.Value()
	if err != nil {
		return false
	}
	return v != 0
}

// Close releases every line and the chip
func (d *CdevGPIODriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	for pin, line := range d.lines {
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line %d: %w", pin, err))
		}
	}
	d.lines = make(map[core.GPIOPin]*gpiocdev.Line)
	if err := d.chip.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close chip: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
