// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcd8544

import "fmt"

// Instruction bytes. Parameters are OR'ed in after masking to their width.
const (
	// Both instruction sets.
	cmdFunctionSet byte = 0x20
	fnPowerDown    byte = 0x04
	fnVertical     byte = 0x02
	fnExtended     byte = 0x01

	// Basic instruction set (H=0).
	cmdDisplayBlank   byte = 0x08
	cmdDisplayAll     byte = 0x09
	cmdDisplayNormal  byte = 0x0C
	cmdDisplayInverse byte = 0x0D
	cmdBankAddr       byte = 0x40
	cmdColAddr        byte = 0x80

	// Extended instruction set (H=1).
	cmdTempCoeff byte = 0x04
	cmdBias      byte = 0x10
	cmdVop       byte = 0x80
)

const (
	colMask  = 0x7F
	bankMask = 0x3F
)

// AddressingMode selects how the DDRAM address advances after each data byte.
type AddressingMode byte

const (
	// Horizontal increments the column, then the bank. Text rendering
	// requires it.
	Horizontal AddressingMode = 0
	// Vertical increments the bank, then the column.
	Vertical AddressingMode = 1
)

func (m AddressingMode) String() string {
	switch m {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		return fmt.Sprintf("AddressingMode(%d)", byte(m))
	}
}

// functionState mirrors the bits of the last function set command written
// in the basic instruction set.
type functionState struct {
	powerDown  bool
	addressing AddressingMode
}

// encode returns the function set command for the mirrored state, selecting
// the extended instruction set when extended is true.
func (f functionState) encode(extended bool) byte {
	b := cmdFunctionSet
	if f.powerDown {
		b |= fnPowerDown
	}
	if f.addressing == Vertical {
		b |= fnVertical
	}
	if extended {
		b |= fnExtended
	}
	return b
}

func (f functionState) String() string {
	return fmt.Sprintf("{powerDown:%t %s}", f.powerDown, f.addressing)
}
