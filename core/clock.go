package core

// uptimeSeconds counts RTC pulses since boot and stamps events
var uptimeSeconds uint32

// Uptime returns seconds since boot
func Uptime() uint32 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return uptimeSeconds
}

// advanceUptime is called once per second from the second handler
func advanceUptime() {
	uptimeSeconds++
}

// resetUptime is used at boot
func resetUptime() {
	uptimeSeconds = 0
}
