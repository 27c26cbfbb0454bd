//go:build rp2040

package main

import (
	"machine"
)

// InitDebugConsole routes the core debug writer to USB CDC.
// Lines end in CRLF for terminal emulators.
func InitDebugConsole() error {
	return machine.Serial.Configure(machine.UARTConfig{})
}

// consoleWrite writes one line to the USB console
func consoleWrite(s string) {
	machine.Serial.Write([]byte(s))
	machine.Serial.Write([]byte("\r\n"))
}
