// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package spibus

import (
	"fmt"

	"golang.org/x/exp/io/spi"
	"golang.org/x/exp/io/spi/driver"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
)

// Devfs is a conn.Conn on a spidev device, for example /dev/spidev0.0.
type Devfs struct {
	dev  *spi.Device
	name string
}

// OpenDevfs opens path in SPI mode 0 with 8 bits words, clocked at most at
// maxHz.
func OpenDevfs(path string, maxHz physic.Frequency) (*Devfs, error) {
	if maxHz <= 0 {
		return nil, fmt.Errorf("spibus: %s: invalid speed %s", path, maxHz)
	}
	return openDevfs(&spi.Devfs{Dev: path, Mode: spi.Mode0, MaxSpeed: int64(maxHz / physic.Hertz)}, path)
}

func openDevfs(o driver.Opener, name string) (*Devfs, error) {
	dev, err := spi.Open(o)
	if err != nil {
		return nil, fmt.Errorf("spibus: %s: %w", name, err)
	}
	if err := dev.SetBitsPerWord(8); err != nil {
		_ = dev.Close()
		return nil, fmt.Errorf("spibus: %s: %w", name, err)
	}
	return &Devfs{dev: dev, name: name}, nil
}

func (d *Devfs) String() string {
	return d.name
}

// Tx implements conn.Conn. r may be nil; the kernel driver always needs a
// receive buffer of the same size so one is allocated.
func (d *Devfs) Tx(w, r []byte) error {
	if r == nil {
		r = make([]byte, len(w))
	}
	if len(r) != len(w) {
		return fmt.Errorf("spibus: %s: w and r must have the same size, got %d and %d", d.name, len(w), len(r))
	}
	if err := d.dev.Tx(w, r); err != nil {
		return fmt.Errorf("spibus: %s: %w", d.name, err)
	}
	return nil
}

// Duplex implements conn.Conn.
func (d *Devfs) Duplex() conn.Duplex {
	return conn.Full
}

// Close releases the device.
func (d *Devfs) Close() error {
	return d.dev.Close()
}

var _ conn.Conn = &Devfs{}
