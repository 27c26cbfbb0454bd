//go:build linux && !tinygo

package main

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"servotimer/core"
)

const numSources = int(core.IRQLimit) + 1

// LinuxIRQDriver emulates the interrupt sources. Periodic sources are
// goroutines driven by time.Ticker; edge sources arrive through Fire from
// the GPIO event handlers. Handlers always run on their own goroutine,
// never from inside Enable or Disable.
type LinuxIRQDriver struct {
	mu       sync.Mutex
	handlers [numSources]func()
	periods  [numSources]time.Duration
	enabled  [numSources]atomic.Bool
	fired    [numSources]atomic.Uint32
}

// NewLinuxIRQDriver creates a driver with no handlers bound
func NewLinuxIRQDriver() *LinuxIRQDriver {
	return &LinuxIRQDriver{}
}

// Bind routes a source to its handler
func (d *LinuxIRQDriver) Bind(src core.IRQSource, handler func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[src] = handler
}

// ConfigureTickSource marks src periodic with the given period
func (d *LinuxIRQDriver) ConfigureTickSource(src core.IRQSource, periodUS uint32) error {
	if int(src) >= numSources || periodUS == 0 {
		return core.ErrInvalidSource
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.periods[src] = time.Duration(periodUS) * time.Microsecond
	return nil
}

// EnableInterrupt starts delivering src
func (d *LinuxIRQDriver) EnableInterrupt(src core.IRQSource) {
	d.enabled[src].Store(true)
}

// DisableInterrupt stops delivering src
func (d *LinuxIRQDriver) DisableInterrupt(src core.IRQSource) {
	d.enabled[src].Store(false)
}

// Fire delivers one occurrence of src if it is enabled
func (d *LinuxIRQDriver) Fire(src core.IRQSource) {
	if !d.enabled[src].Load() {
		return
	}
	d.mu.Lock()
	handler := d.handlers[src]
	d.mu.Unlock()
	if handler != nil {
		d.fired[src].Add(1)
		handler()
	}
}

// Fired reports how many times src reached its handler
func (d *LinuxIRQDriver) Fired(src core.IRQSource) uint32 {
	return d.fired[src].Load()
}

// Run drives every configured periodic source until ctx is cancelled
func (d *LinuxIRQDriver) Run(ctx context.Context) {
	var wg sync.WaitGroup
	d.mu.Lock()
	for i, period := range d.periods {
		if period == 0 {
			continue
		}
		wg.Add(1)
		go func(src core.IRQSource, period time.Duration) {
			defer wg.Done()
			ticker := time.NewTicker(period)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					d.Fire(src)
				}
			}
		}(core.IRQSource(i), period)
	}
	d.mu.Unlock()
	wg.Wait()
}
