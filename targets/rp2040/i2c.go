//go:build rp2040

package main

import (
	"machine"
)

// rtcBusFrequency is the DS1307's maximum SCL rate
const rtcBusFrequency = 100000

// InitRTCBus configures I2C0 on its default pins (SDA=GPIO4, SCL=GPIO5).
// machine.I2C satisfies core.I2CBus, so the bus is handed to the RTC driver
// directly.
func InitRTCBus() (*machine.I2C, error) {
	bus := machine.I2C0
	err := bus.Configure(machine.I2CConfig{
		Frequency: rtcBusFrequency,
		SDA:       machine.GPIO4,
		SCL:       machine.GPIO5,
	})
	if err != nil {
		return nil, err
	}
	return bus, nil
}
