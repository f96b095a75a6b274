// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pcd8544 controls a monochrome 84x48 LCD driven by a Philips
// PCD8544 controller, as found on the Nokia 5110 and 3310 breakout boards.
//
// The controller is write-only. The driver mirrors the function register
// (power-down and addressing mode) and the extended registers (operating
// voltage, bias and temperature coefficient) in memory, and re-sends the full
// function byte every time one of its bits changes.
//
// There is no local frame buffer: every pixel byte goes straight to the
// controller's display RAM (DDRAM). The RAM is organized as 6 banks of 84
// columns, each byte covering 8 vertical pixels with the least significant
// bit on top.
//
// # Wiring
//
// Connect DIN to SPI_MOSI, CLK to SPI_CLK. The D/C line is required. CE
// (chip enable) and RST are optional: pass nil when CE is tied low or driven
// by the SPI controller, and when RST is handled outside of this driver.
//
// Without a RST line, Reset and the reset pulse of Init are skipped entirely,
// delays included. The controller is then assumed to be reset externally.
//
// # Instruction sets
//
// Contrast, bias and temperature coefficient can only be programmed while the
// extended instruction set is active. Every operation touching them switches
// to the extended set, writes the register and switches back before
// returning, since basic commands are misinterpreted in extended mode.
//
// Command and Data bypass this bookkeeping.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/Monochrome/Nokia5110.pdf
package pcd8544
