// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcd8544

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

const (
	// The datasheet requires the RES pulse to last more than 100ns and less
	// than 100ms.
	minResetPulse = 100 * time.Nanosecond
	maxResetPulse = 100 * time.Millisecond

	resetSetup  = 500 * time.Microsecond
	resetSettle = 100 * time.Microsecond
)

// resetStep drives the reset line to level, then blocks for wait.
type resetStep struct {
	level gpio.Level
	wait  time.Duration
}

func (s resetStep) String() string {
	return fmt.Sprintf("%s/%s", s.level, s.wait)
}

// resetSequence returns the steps of a reset pulse of the given width.
func resetSequence(pulse time.Duration) []resetStep {
	return []resetStep{
		{level: gpio.High, wait: resetSetup},
		{level: gpio.Low, wait: pulse},
		{level: gpio.High, wait: resetSettle},
	}
}

// Reset pulses the RST line.
//
// The controller comes back powered down with its registers cleared; call
// Init, or Power(true) after re-applying the configuration, to use it again.
// The configured addressing mode, contrast, bias and temperature coefficient
// are kept in memory and re-applied by Init.
//
// Reset is a no-op without a RST line.
func (d *Dev) Reset() error {
	if !d.rst.present() {
		return nil
	}
	eh := errorHandler{d: d}
	for _, s := range resetSequence(d.opts.ResetPulse) {
		eh.rstOut(s.level)
		if eh.err != nil {
			return eh.err
		}
		d.sleep(s.wait)
	}
	d.fn.powerDown = true
	d.extended = false
	return nil
}
