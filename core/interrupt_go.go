//go:build !tinygo

package core

import "sync"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// irqMask stands in for the global interrupt enable bit. On a hosted target
// the edge and tick "interrupts" are goroutines, so masking is a mutex.
var irqMask sync.Mutex

// disableInterrupts blocks every other handler until restoreInterrupts
func disableInterrupts() State {
	irqMask.Lock()
	return 0
}

// restoreInterrupts releases the mask taken by disableInterrupts
func restoreInterrupts(state State) {
	irqMask.Unlock()
}

// inInterrupt is always false on regular Go: handlers run on goroutines
func inInterrupt() bool {
	return false
}
