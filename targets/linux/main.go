//go:build linux && !tinygo

// Command servotimer-bench runs the controller on a Raspberry Pi bench rig:
// GPIO character device for the display and inputs, hardware PWM for the
// servo and i2c-dev for the DS1307.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servotimer/core"
)

// rtcAddress and rtcControl locate the DS1307 square-wave control register
const (
	rtcAddress core.I2CAddress = 0x68
	rtcControl uint8           = 0x07
)

var (
	pinFile  = flag.String("pins", "", "YAML pin map (defaults to the bench harness)")
	testMode = flag.Bool("fast", false, "Use the test period for every activation")
	noRTC    = flag.Bool("no-rtc", false, "Skip RTC programming")
	quiet    = flag.Bool("quiet", false, "Disable the event console")
)

func main() {
	flag.Parse()

	core.SetDebugWriter(func(s string) {
		fmt.Fprintf(os.Stderr, "%s %s\n", time.Now().Format("15:04:05.000"), s)
	})
	core.SetDebugEnabled(!*quiet)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	pm := DefaultPinMap()
	if *pinFile != "" {
		var err error
		if pm, err = LoadPinMap(*pinFile); err != nil {
			return err
		}
	}
	pins := pm.Pins()

	irq := NewLinuxIRQDriver()
	core.SetIRQDriver(irq)

	gpio, err := NewCdevGPIODriver(pm.Chip, irq)
	if err != nil {
		return err
	}
	defer gpio.Close()
	gpio.WatchEdge(pins.RTCSquare, core.IRQSecond)
	gpio.WatchEdge(pins.Button, core.IRQButton)
	gpio.WatchEdge(pins.Limit, core.IRQLimit)
	core.SetGPIODriver(gpio)

	pwm, err := NewRpioPWMDriver()
	if err != nil {
		return err
	}
	defer pwm.Close()
	core.SetPWMDriver(pwm)

	cfg := core.DefaultConfig()
	if *testMode {
		cfg.Period = cfg.TestPeriod
	}
	dev, err := core.NewDevice(cfg, pins)
	if err != nil {
		return fmt.Errorf("device init: %w", err)
	}
	defer dev.Shutdown()

	irq.Bind(core.IRQSecond, dev.OnSecond)
	irq.Bind(core.IRQDisplay, dev.OnDisplayTick)
	irq.Bind(core.IRQDebounce, dev.OnDebounceTick)
	irq.Bind(core.IRQButton, dev.OnButtonEdge)
	irq.Bind(core.IRQLimit, dev.OnLimitSwitch)

	var bus *DevI2C
	if !*noRTC {
		if bus, err = OpenI2C(pm.I2CBus); err != nil {
			return err
		}
		defer bus.Close()
	}
	if bus != nil {
		if err := dev.Boot(bus); err != nil {
			core.DebugPrintln("[BOOT] rtc: " + err.Error())
		} else if ctl, err := core.ReadRegister(bus, rtcAddress, rtcControl); err == nil {
			core.DebugPrintln(fmt.Sprintf("[BOOT] rtc control=0x%02x", ctl))
		}
	} else {
		dev.Boot(nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dump := make(chan os.Signal, 1)
	signal.Notify(dump, syscall.SIGUSR1)
	defer signal.Stop(dump)

	go irq.Run(ctx)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			core.DrainEvents()
			core.DebugPrintln(fmt.Sprintf("[EXIT] uptime=%ds", core.Uptime()))
			return nil
		case <-dump:
			core.DumpEvents()
		case <-ticker.C:
			core.DrainEvents()
		}
	}
}
