// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcd8544

import (
	"fmt"

	"github.com/GermanBionicSystems/nokia5110/pcd8544/font8x8"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
)

// Character grid of the 8x8 font.
const (
	TextCols = Width / font8x8.Width
	TextRows = Banks
)

// Write draws one glyph per byte of p, so multi-byte UTF-8 sequences show as
// one replacement glyph per byte. Use WriteString for text.
func (d *Dev) Write(p []byte) (int, error) {
	eh := errorHandler{d: d}
	for i, b := range p {
		eh.sendData(font8x8.Glyph(rune(b)))
		if eh.err != nil {
			return i, eh.err
		}
	}
	return len(p), nil
}

// WriteString draws one glyph per rune of s. On failure it returns the byte
// offset of the rune whose glyph could not be sent.
func (d *Dev) WriteString(s string) (int, error) {
	eh := errorHandler{d: d}
	for i, r := range s {
		eh.sendData(font8x8.Glyph(r))
		if eh.err != nil {
			return i, eh.err
		}
	}
	return len(s), nil
}

// MoveTo moves the cursor to the character cell at row, col.
func (d *Dev) MoveTo(row, col int) error {
	if err := checkRange("row", row, 0, TextRows-1); err != nil {
		return err
	}
	if err := checkRange("column", col, 0, TextCols-1); err != nil {
		return err
	}
	return d.SetCursor(col*font8x8.Width, row)
}

// Home moves the cursor to the top left character cell.
func (d *Dev) Home() error {
	return d.SetCursor(0, 0)
}

// Clear turns every pixel off and homes the cursor.
func (d *Dev) Clear() error {
	return d.Fill(false)
}

// Display shows or hides the DDRAM content.
func (d *Dev) Display(on bool) error {
	return d.Blank(!on)
}

// Halt powers the controller down. DDRAM content is preserved.
func (d *Dev) Halt() error {
	return d.Power(false)
}

// Rows returns the number of text rows.
func (d *Dev) Rows() int {
	return TextRows
}

// Cols returns the number of text columns.
func (d *Dev) Cols() int {
	return TextCols
}

// MinRow returns the first row number.
func (d *Dev) MinRow() int {
	return 0
}

// MinCol returns the first column number.
func (d *Dev) MinCol() int {
	return 0
}

// AutoScroll is not supported by the controller.
func (d *Dev) AutoScroll(enabled bool) error {
	return fmt.Errorf("pcd8544: auto scroll: %w", display.ErrNotImplemented)
}

// Move is not supported by the controller.
func (d *Dev) Move(dir display.CursorDirection) error {
	return fmt.Errorf("pcd8544: move: %w", display.ErrNotImplemented)
}

// Cursor accepts display.CursorOff only; the controller has no visible
// cursor.
func (d *Dev) Cursor(modes ...display.CursorMode) error {
	for _, m := range modes {
		if m != display.CursorOff {
			return fmt.Errorf("pcd8544: cursor mode %v: %w", m, display.ErrNotImplemented)
		}
	}
	return nil
}

// Contrast sets the operating voltage. Values above 127 are rejected.
func (d *Dev) Contrast(c display.Contrast) error {
	return d.SetContrast(int(c))
}

var _ conn.Resource = &Dev{}
var _ display.TextDisplay = &Dev{}
var _ display.DisplayContrast = &Dev{}
