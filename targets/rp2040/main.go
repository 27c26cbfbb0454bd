//go:build rp2040

package main

import (
	"device/arm"
	"machine"
	"time"

	"servotimer/core"
)

// boardPins is the wiring of the controller board
var boardPins = core.Pins{
	Segments:   [8]core.GPIOPin{6, 7, 8, 9, 10, 11, 12, 13}, // a..g, DP
	Coms:       [3]core.GPIOPin{14, 15, 16},
	LED:        25,
	ServoPower: 18,
	Servo:      20,
	Button:     2,
	Limit:      3,
	RTCSquare:  22,
}

// drainInterval bounds how long the foreground loop waits between event drains
const drainInterval = 50 * time.Millisecond

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	if err := InitDebugConsole(); err != nil {
		core.SetDebugEnabled(false)
	}
	core.SetDebugWriter(consoleWrite)

	gpioDriver := NewRPGPIODriver()
	core.SetGPIODriver(gpioDriver)
	core.SetPWMDriver(NewRP2040PWMDriver())
	irqDriver := NewRPIRQDriver()
	core.SetIRQDriver(irqDriver)

	dev, err := core.NewDevice(core.DefaultConfig(), boardPins)
	if err != nil {
		core.DebugPrintln("[BOOT] device init failed: " + err.Error())
		halt()
	}

	// Edge sources; inputs idle high through pull-ups
	bindEdge(irqDriver, gpioDriver, core.IRQSecond, boardPins.RTCSquare, dev.OnSecond)
	bindEdge(irqDriver, gpioDriver, core.IRQButton, boardPins.Button, dev.OnButtonEdge)
	bindEdge(irqDriver, gpioDriver, core.IRQLimit, boardPins.Limit, dev.OnLimitSwitch)
	irqDriver.BindTick(core.IRQDisplay, dev.OnDisplayTick)
	irqDriver.BindTick(core.IRQDebounce, dev.OnDebounceTick)

	bus, err := InitRTCBus()
	if err != nil {
		core.DebugPrintln("[BOOT] i2c init failed: " + err.Error())
		err = dev.Boot(nil)
	} else {
		err = dev.Boot(bus)
	}
	if err != nil {
		core.DebugPrintln("[BOOT] rtc: " + err.Error())
	}

	faulted := false
	for {
		core.DrainEvents()

		// dump the ring once per latched cutoff for post-mortem
		if f := dev.Fault(); f != faulted {
			faulted = f
			if f {
				core.DumpEvents()
			}
		}

		// WFI runs under the interrupt mask; an edge that cleared the flag
		// after RequestSleep skips it, one arriving later ends it
		if dev.RequestSleep() && dev.Sleep(waitForInterrupt) {
			continue
		}
		time.Sleep(drainInterval)
	}
}

func bindEdge(irq *RPIRQDriver, gpio *RPGPIODriver, src core.IRQSource, pin core.GPIOPin, handler func()) {
	p, ok := gpio.machinePin(pin)
	if !ok {
		core.DebugPrintln("[BOOT] edge pin not configured")
		return
	}
	irq.BindEdge(src, p, machine.PinFalling, handler)
}

func waitForInterrupt() {
	arm.Asm("wfi")
}

// halt parks the core after an unrecoverable init error
func halt() {
	for {
		time.Sleep(time.Second)
	}
}
