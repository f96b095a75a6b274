// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcd8544

import (
	"bytes"
	"fmt"
	"time"

	"github.com/GermanBionicSystems/nokia5110/pcd8544/font8x8"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Display geometry.
const (
	Width     = 84
	Height    = 48
	Banks     = Height / 8
	DDRAMSize = Width * Banks
)

// MaxSpeed is the highest serial clock supported by the controller.
const MaxSpeed = 4 * physic.MegaHertz

// DefaultOpts is the recommended configuration for the common Nokia 5110
// breakout boards.
var DefaultOpts = Opts{
	Addressing: Horizontal,
	Contrast:   0x3F,
	Bias:       4,
	TempCoeff:  2,
	ResetPulse: 500 * time.Microsecond,
	FillChunk:  8,
}

// Opts defines the options for the device.
type Opts struct {
	Addressing AddressingMode
	// Contrast is the operating voltage (Vop), 0..127. 0x00 is 3.06V and each
	// step adds 0.06V at room temperature.
	Contrast int
	// Bias is the bias system, 0..7. 4 is the 1:40 mux rate recommended for
	// the 48 rows of the panel.
	Bias int
	// TempCoeff is the temperature coefficient of the LCD voltage, 0..3.
	TempCoeff int
	// ResetPulse is how long RST is held low. It must be within (100ns,
	// 100ms). Zero selects the default in New and keeps the current value
	// in Init.
	ResetPulse time.Duration
	// FillChunk is the size of each data transfer issued by Fill. Zero
	// selects the default in New and keeps the current value in Init. The
	// resulting DDRAM content doesn't depend on it.
	FillChunk int
}

// Validate returns the first invalid option.
func (o *Opts) Validate() error {
	if o.Addressing != Horizontal && o.Addressing != Vertical {
		return fmt.Errorf("%w: unknown addressing mode %s", ErrConfiguration, o.Addressing)
	}
	if err := checkRange("contrast", o.Contrast, 0, 127); err != nil {
		return err
	}
	if err := checkRange("bias", o.Bias, 0, 7); err != nil {
		return err
	}
	if err := checkRange("temperature coefficient", o.TempCoeff, 0, 3); err != nil {
		return err
	}
	if o.ResetPulse != 0 && (o.ResetPulse <= minResetPulse || o.ResetPulse >= maxResetPulse) {
		return fmt.Errorf("%w: reset pulse %s must be within (%s, %s)", ErrConfiguration, o.ResetPulse, minResetPulse, maxResetPulse)
	}
	if o.FillChunk < 0 {
		return fmt.Errorf("%w: fill chunk %d must be positive", ErrConfiguration, o.FillChunk)
	}
	return nil
}

func (o Opts) withDefaults() Opts {
	if o.ResetPulse == 0 {
		o.ResetPulse = DefaultOpts.ResetPulse
	}
	if o.FillChunk == 0 {
		o.FillChunk = DefaultOpts.FillChunk
	}
	return o
}

// Dev is an open handle to the display controller.
type Dev struct {
	// Communication
	c   conn.Conn
	dc  gpio.PinOut
	cs  line
	rst line

	// Mirror of the write-only controller registers.
	fn       functionState
	extended bool
	opts     Opts

	sleep func(time.Duration)
}

// NewSPI returns a Dev object that communicates over SPI to a PCD8544
// controller and initializes it.
//
// dc is required. cs and rst are optional, pass nil when they are not wired.
func NewSPI(p spi.Port, dc, cs, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	c, err := p.Connect(MaxSpeed, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("pcd8544: %w", err)
	}
	return New(c, dc, cs, rst, opts)
}

// New returns a Dev object using an already established connection and
// initializes the controller with opts. A nil opts uses DefaultOpts.
//
// The controller starts powered down in horizontal addressing mode with the
// basic instruction set, as after a reset.
func New(c conn.Conn, dc, cs, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: a bus connection is required", ErrConfiguration)
	}
	if dc == nil || dc == gpio.INVALID {
		return nil, fmt.Errorf("%w: dc pin is required", ErrConfiguration)
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	o := opts.withDefaults()
	if err := o.Validate(); err != nil {
		return nil, err
	}
	d := &Dev{
		c:     c,
		dc:    dc,
		cs:    optionalLine(cs),
		rst:   optionalLine(rst),
		fn:    functionState{powerDown: true, addressing: o.Addressing},
		opts:  o,
		sleep: time.Sleep,
	}
	eh := errorHandler{d: d}
	eh.dcOut(gpio.Low)
	eh.csOut(gpio.High)
	eh.rstOut(gpio.High)
	if eh.err != nil {
		return nil, eh.err
	}
	if err := d.Init(nil); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("pcd8544.Dev{%s, %s, %s}", d.c, d.dc, d.fn.addressing)
}

// Config returns the configuration currently mirrored by the driver.
func (d *Dev) Config() Opts {
	o := d.opts
	o.Addressing = d.fn.addressing
	return o
}

// Init resets the controller, programs temperature coefficient, bias and
// operating voltage, powers it on and sets the normal display mode.
//
// When opts is not nil it replaces the current configuration, so start from
// Config() to change only some registers: a zero Bias or TempCoeff is a
// valid register value. Zero ResetPulse and FillChunk keep their current
// values. opts is validated first; on failure nothing is sent and the
// configuration is left unchanged.
func (d *Dev) Init(opts *Opts) error {
	if opts != nil {
		o := *opts
		if o.ResetPulse == 0 {
			o.ResetPulse = d.opts.ResetPulse
		}
		if o.FillChunk == 0 {
			o.FillChunk = d.opts.FillChunk
		}
		if err := o.Validate(); err != nil {
			return err
		}
		d.opts = o
		d.fn.addressing = o.Addressing
	}
	if err := d.Reset(); err != nil {
		return err
	}
	eh := errorHandler{d: d}
	eh.extendedWrite(
		cmdTempCoeff|byte(d.opts.TempCoeff),
		cmdBias|byte(d.opts.Bias),
		cmdVop|byte(d.opts.Contrast),
	)
	d.fn.powerDown = false
	eh.functionSet(false)
	eh.sendCommand(cmdDisplayNormal)
	return eh.err
}

// SetAddressing selects the addressing mode. Nothing is sent; it takes effect
// with the next function set command, for example Power or Init.
func (d *Dev) SetAddressing(m AddressingMode) error {
	if m != Horizontal && m != Vertical {
		return &RangeError{Param: "addressing mode", Value: int(m), Min: int(Horizontal), Max: int(Vertical)}
	}
	d.fn.addressing = m
	return nil
}

// SetContrast sets the operating voltage, 0..127.
func (d *Dev) SetContrast(vop int) error {
	if err := checkRange("contrast", vop, 0, 127); err != nil {
		return err
	}
	d.opts.Contrast = vop
	return d.extendedWrite(cmdVop | byte(vop))
}

// SetBias sets the bias system, 0..7.
func (d *Dev) SetBias(bias int) error {
	if err := checkRange("bias", bias, 0, 7); err != nil {
		return err
	}
	d.opts.Bias = bias
	return d.extendedWrite(cmdBias | byte(bias))
}

// SetTempCoeff sets the temperature coefficient, 0..3.
func (d *Dev) SetTempCoeff(tc int) error {
	if err := checkRange("temperature coefficient", tc, 0, 3); err != nil {
		return err
	}
	d.opts.TempCoeff = tc
	return d.extendedWrite(cmdTempCoeff | byte(tc))
}

func (d *Dev) extendedWrite(cmd byte) error {
	eh := errorHandler{d: d}
	eh.ensureBasic()
	eh.extendedWrite(cmd)
	return eh.err
}

// SetCursor moves the DDRAM address to column col (0..83) and bank (0..5).
//
// Values are truncated to the width of the hardware registers instead of
// being rejected.
func (d *Dev) SetCursor(col, bank int) error {
	eh := errorHandler{d: d}
	eh.ensureBasic()
	eh.sendCommand(cmdColAddr | byte(col&colMask))
	eh.sendCommand(cmdBankAddr | byte(bank&bankMask))
	return eh.err
}

// Power turns the controller on or off. DDRAM content is preserved while
// powered down.
func (d *Dev) Power(on bool) error {
	d.fn.powerDown = !on
	eh := errorHandler{d: d}
	eh.functionSet(false)
	return eh.err
}

// Invert shows the DDRAM content inverted (white on black) or normally.
func (d *Dev) Invert(on bool) error {
	if on {
		return d.displayMode(cmdDisplayInverse)
	}
	return d.displayMode(cmdDisplayNormal)
}

// Blank hides the DDRAM content without clearing it.
func (d *Dev) Blank(on bool) error {
	if on {
		return d.displayMode(cmdDisplayBlank)
	}
	return d.displayMode(cmdDisplayNormal)
}

// TestPattern turns every pixel on regardless of DDRAM content. It is meant
// for checking the panel.
func (d *Dev) TestPattern(on bool) error {
	if on {
		return d.displayMode(cmdDisplayAll)
	}
	return d.displayMode(cmdDisplayNormal)
}

func (d *Dev) displayMode(cmd byte) error {
	eh := errorHandler{d: d}
	eh.ensureBasic()
	eh.sendCommand(cmd)
	return eh.err
}

// Fill sets every pixel of the display on or off, then moves the cursor to
// column 0, bank 0.
func (d *Dev) Fill(on bool) error {
	var v byte
	if on {
		v = 0xFF
	}
	chunk := bytes.Repeat([]byte{v}, min(d.opts.FillChunk, DDRAMSize))
	eh := errorHandler{d: d}
	for sent := 0; sent < DDRAMSize && eh.err == nil; sent += len(chunk) {
		eh.sendData(chunk[:min(len(chunk), DDRAMSize-sent)])
	}
	if eh.err != nil {
		return eh.err
	}
	return d.SetCursor(0, 0)
}

// DrawText writes one 8x8 glyph per rune at the current cursor position.
//
// Runes outside of printable ASCII are shown as the glyph of 0x7F. The
// cursor only advances the way the controller does it, so text is only
// readable in horizontal addressing mode; a glyph crossing column 83 wraps to
// the next bank.
func (d *Dev) DrawText(text string) error {
	eh := errorHandler{d: d}
	for _, r := range text {
		eh.sendData(font8x8.Glyph(r))
	}
	return eh.err
}

// Command sends a raw command byte. The caller is responsible for the
// instruction set the controller is in; the mirrored state isn't updated.
func (d *Dev) Command(cmd byte) error {
	eh := errorHandler{d: d}
	eh.sendCommand(cmd)
	return eh.err
}

// Data sends raw bytes to DDRAM at the current cursor position. An empty
// buffer sends nothing.
func (d *Dev) Data(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	eh := errorHandler{d: d}
	eh.sendData(p)
	return eh.err
}
