//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks every interrupt source and returns the previous
// mask so nested critical sections restore correctly
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts restores the mask saved by disableInterrupts
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}

// inInterrupt reports whether the caller runs in interrupt context,
// where blocking writers (USB, UART) must not be touched
func inInterrupt() bool {
	return interrupt.In()
}
