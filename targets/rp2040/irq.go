//go:build rp2040

package main

import (
	"machine"
	"runtime/volatile"
	"time"

	"servotimer/core"
)

const numSources = int(core.IRQLimit) + 1

// edgeSource is a GPIO edge routed to a handler
type edgeSource struct {
	pin    machine.Pin
	change machine.PinChange
}

// RPIRQDriver gates the pin-change interrupts and the periodic tick loops.
// Tick loops run as goroutines and poll their enable flag once per period.
type RPIRQDriver struct {
	handlers [numSources]func()
	edges    [numSources]*edgeSource
	periods  [numSources]uint32
	enabled  [numSources]volatile.Register8
}

// NewRPIRQDriver creates an IRQ driver with no sources bound
func NewRPIRQDriver() *RPIRQDriver {
	return &RPIRQDriver{}
}

// BindEdge routes a pin edge to a handler
func (d *RPIRQDriver) BindEdge(src core.IRQSource, pin machine.Pin, change machine.PinChange, handler func()) {
	d.edges[src] = &edgeSource{pin: pin, change: change}
	d.handlers[src] = handler
}

// BindTick routes a periodic source to a handler and starts its loop
func (d *RPIRQDriver) BindTick(src core.IRQSource, handler func()) {
	d.handlers[src] = handler
	go d.tickLoop(src)
}

// ConfigureTickSource sets the period of a periodic source
func (d *RPIRQDriver) ConfigureTickSource(src core.IRQSource, periodUS uint32) error {
	if int(src) >= numSources {
		return core.ErrInvalidSource
	}
	d.periods[src] = periodUS
	return nil
}

// EnableInterrupt starts delivering the source
func (d *RPIRQDriver) EnableInterrupt(src core.IRQSource) {
	d.enabled[src].Set(1)
	if e := d.edges[src]; e != nil {
		handler := d.handlers[src]
		e.pin.SetInterrupt(e.change, func(machine.Pin) { handler() })
	}
}

// DisableInterrupt stops delivering the source
func (d *RPIRQDriver) DisableInterrupt(src core.IRQSource) {
	d.enabled[src].Set(0)
	if e := d.edges[src]; e != nil {
		e.pin.SetInterrupt(0, nil)
	}
}

func (d *RPIRQDriver) tickLoop(src core.IRQSource) {
	for {
		period := d.periods[src]
		if period == 0 {
			period = 1000
		}
		time.Sleep(time.Duration(period) * time.Microsecond)
		if d.enabled[src].Get() != 0 {
			d.handlers[src]()
		}
	}
}
