package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"servotimer/host/serial"
)

var (
	device     = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud       = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	eventsOnly = flag.Bool("events", false, "Print only decoded event records")
)

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	fmt.Printf("Listening on %s at %d baud\n", cfg.Device, cfg.Baud)

	console := serial.NewConsole(port)
	for {
		line, err := console.ReadLine()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: read failed: %v\n", err)
			os.Exit(1)
		}

		stamp := time.Now().Format("15:04:05.000")
		evt, perr := serial.ParseEvent(line)
		switch {
		case perr == nil:
			fmt.Printf("%s  %-14s t=%-6d v1=%-6d v2=%d\n", stamp, evt.Name, evt.Second, evt.Value1, evt.Value2)
		case !*eventsOnly:
			fmt.Printf("%s  %s\n", stamp, line)
		}
	}
}
