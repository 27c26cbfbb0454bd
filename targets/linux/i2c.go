//go:build linux && !tinygo

package main

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// i2cSlave is the i2c-dev ioctl selecting the target address
const i2cSlave = 0x0703

// DevI2C is an i2c-dev adapter. It satisfies core.I2CBus, so the RTC driver
// talks to it the same way it talks to machine.I2C.
type DevI2C struct {
	mu   sync.Mutex
	fd   int
	addr uint16
}

// OpenI2C opens an adapter such as /dev/i2c-1
func OpenI2C(path string) (*DevI2C, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &DevI2C{fd: fd, addr: 0xFFFF}, nil
}

// Tx writes w then reads into r. i2c-dev issues a stop between the two
// halves, which the DS1307 register pointer tolerates.
func (b *DevI2C) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if addr != b.addr {
		if err := unix.IoctlSetInt(b.fd, i2cSlave, int(addr)); err != nil {
			return fmt.Errorf("select 0x%02x: %w", addr, err)
		}
		b.addr = addr
	}
	if len(w) > 0 {
		n, err := unix.Write(b.fd, w)
		if err != nil {
			return fmt.Errorf("write: %w", err)
		}
		if n != len(w) {
			return fmt.Errorf("short write: %d of %d", n, len(w))
		}
	}
	if len(r) > 0 {
		n, err := unix.Read(b.fd, r)
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if n != len(r) {
			return fmt.Errorf("short read: %d of %d", n, len(r))
		}
	}
	return nil
}

// Close releases the adapter
func (b *DevI2C) Close() error {
	return unix.Close(b.fd)
}
