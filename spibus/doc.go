// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package spibus adapts SPI implementations from outside of periph to
// conn.Conn, so that pcd8544.New can drive a display through them.
//
// Devfs talks to a Linux spidev character device through golang.org/x/exp/io/spi
// without initializing periph's host drivers. TinyGo wraps any
// tinygo.org/x/drivers SPI bus.
//
// Neither adapter is a spi.Port: the bus is already configured when it is
// wrapped, so pass the result to pcd8544.New instead of pcd8544.NewSPI.
package spibus
