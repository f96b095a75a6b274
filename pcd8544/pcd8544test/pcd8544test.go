// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pcd8544test is a software model of the PCD8544 controller.
//
// Controller plays the role of both the SPI port and the D/C, SCE and RES
// lines, decodes every command of both instruction sets, and keeps the 504
// bytes of display RAM. It can be used to unit test code built on package
// pcd8544 or to preview a screen without the hardware.
package pcd8544test

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Panel geometry.
const (
	Width     = 84
	Height    = 48
	Banks     = Height / 8
	DDRAMSize = Width * Banks
)

// MaxSpeed is the fastest serial clock accepted by Connect.
const MaxSpeed = 4 * physic.MegaHertz

var (
	// ErrNotSelected is returned by Tx when SCE is wired and high.
	ErrNotSelected = errors.New("pcd8544test: transfer while chip select is high")
	// ErrInReset is returned by Tx when RES is wired and low.
	ErrInReset = errors.New("pcd8544test: transfer while reset is low")
	// ErrRead is returned by Tx when a read buffer is passed. The controller
	// has no output.
	ErrRead = errors.New("pcd8544test: read not supported")
)

// DisplayMode is the D and E bits of the display control command.
type DisplayMode byte

const (
	Blank   DisplayMode = 0 // D=0 E=0
	AllOn   DisplayMode = 1 // D=0 E=1
	Normal  DisplayMode = 4 // D=1 E=0
	Inverse DisplayMode = 5 // D=1 E=1
)

func (m DisplayMode) String() string {
	switch m {
	case Blank:
		return "Blank"
	case AllOn:
		return "AllOn"
	case Normal:
		return "Normal"
	case Inverse:
		return "Inverse"
	default:
		return fmt.Sprintf("DisplayMode(%d)", byte(m))
	}
}

// Op is one transfer, with the level D/C had while it happened.
type Op struct {
	DC gpio.Level
	W  []byte
}

func (o Op) String() string {
	if o.DC == gpio.Low {
		return fmt.Sprintf("cmd%#v", o.W)
	}
	return fmt.Sprintf("data%#v", o.W)
}

// Controller is a PCD8544 model.
//
// It implements spi.Port and spi.Conn. The zero value is not usable, use New.
type Controller struct {
	// DC, CS and RST are the control lines. Pass them to the driver; a line
	// that is never driven is considered not wired.
	DC, CS, RST *Line
	// OnChange, if set, is called after every transfer and every reset,
	// without the internal lock held.
	OnChange func(c *Controller)

	mu       sync.Mutex
	ops      []Op
	txErr    error
	freq     physic.Frequency
	resets   int
	powerDn  bool
	vertical bool
	extended bool
	mode     DisplayMode
	vop      byte
	bias     byte
	tc       byte
	x, y     int
	ddram    [DDRAMSize]byte
}

// New returns a controller in its power-on state: powered down, blank, with
// the basic instruction set selected. The display RAM is cleared.
func New() *Controller {
	c := &Controller{}
	c.DC = &Line{Pin: gpiotest.Pin{N: "DC", Num: 0, Fn: "Out"}, c: c}
	c.CS = &Line{Pin: gpiotest.Pin{N: "CS", Num: 1, Fn: "Out"}, c: c}
	c.RST = &Line{Pin: gpiotest.Pin{N: "RST", Num: 2, Fn: "Out"}, c: c}
	c.resetLocked()
	return c
}

func (c *Controller) String() string {
	return "pcd8544test"
}

// Connect implements spi.Port.
func (c *Controller) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	if f > MaxSpeed {
		return nil, fmt.Errorf("pcd8544test: %s is faster than %s", f, MaxSpeed)
	}
	if bits != 8 {
		return nil, fmt.Errorf("pcd8544test: %d bits per word not supported", bits)
	}
	// Data is sampled on the rising edge of SCLK.
	if m := mode & spi.Mode3; m != spi.Mode0 && m != spi.Mode3 {
		return nil, fmt.Errorf("pcd8544test: %s not supported", m)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.freq = f
	return c, nil
}

// Duplex implements conn.Conn.
func (c *Controller) Duplex() conn.Duplex {
	return conn.Half
}

// Tx implements conn.Conn. Each byte is decoded as a command when D/C is low
// and stored in display RAM when it is high.
func (c *Controller) Tx(w, r []byte) error {
	if err := c.tx(w, r); err != nil {
		return err
	}
	c.changed()
	return nil
}

// TxPackets implements spi.Conn.
func (c *Controller) TxPackets(p []spi.Packet) error {
	for i := range p {
		if err := c.tx(p[i].W, p[i].R); err != nil {
			return err
		}
	}
	c.changed()
	return nil
}

func (c *Controller) tx(w, r []byte) error {
	if len(r) != 0 {
		return ErrRead
	}
	if c.CS.Driven() && c.CS.Read() == gpio.High {
		return ErrNotSelected
	}
	if c.RST.Driven() && c.RST.Read() == gpio.Low {
		return ErrInReset
	}
	dc := c.DC.Read()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.txErr != nil {
		return c.txErr
	}
	c.ops = append(c.ops, Op{DC: dc, W: append([]byte(nil), w...)})
	for _, b := range w {
		if dc == gpio.Low {
			c.command(b)
		} else {
			c.data(b)
		}
	}
	return nil
}

func (c *Controller) changed() {
	if f := c.OnChange; f != nil {
		f(c)
	}
}

// SetTxError makes every following transfer fail with err. Pass nil to
// restore normal operation. Failed transfers are not logged.
func (c *Controller) SetTxError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.txErr = err
}

// command decodes b by its most significant set bit.
func (c *Controller) command(b byte) {
	switch {
	case b == 0:
		// NOP
	case b&0xF8 == 0x20:
		c.powerDn = b&0x04 != 0
		c.vertical = b&0x02 != 0
		c.extended = b&0x01 != 0
	case c.extended:
		switch {
		case b&0x80 != 0:
			c.vop = b & 0x7F
		case b&0xF8 == 0x10:
			c.bias = b & 0x07
		case b&0xFC == 0x04:
			c.tc = b & 0x03
		}
	default:
		switch {
		case b&0x80 != 0:
			c.x = int(b & 0x7F)
		case b&0xC0 == 0x40:
			c.y = int(b & 0x07)
		case b&0xF8 == 0x08:
			c.mode = DisplayMode(b & 0x05)
		}
	}
}

// data stores b at the current address, then advances it. Writes to an
// address outside of the panel are dropped.
func (c *Controller) data(b byte) {
	if c.x < Width && c.y < Banks {
		c.ddram[c.y*Width+c.x] = b
	}
	if c.vertical {
		if c.y++; c.y >= Banks {
			c.y = 0
			if c.x++; c.x >= Width {
				c.x = 0
			}
		}
		return
	}
	if c.x++; c.x >= Width {
		c.x = 0
		if c.y++; c.y >= Banks {
			c.y = 0
		}
	}
}

// resetLocked applies the register values the datasheet lists after reset.
// Display RAM is left untouched.
func (c *Controller) resetLocked() {
	c.powerDn = true
	c.vertical = false
	c.extended = false
	c.mode = Blank
	c.vop = 0
	c.bias = 0
	c.tc = 0
	c.x = 0
	c.y = 0
}

func (c *Controller) lineChanged(l *Line, prev, level gpio.Level, wasDriven bool) {
	if l != c.RST || level != gpio.Low || (wasDriven && prev == gpio.Low) {
		return
	}
	c.mu.Lock()
	c.resetLocked()
	c.resets++
	c.mu.Unlock()
	c.changed()
}

// Ops returns a copy of the transfer log.
func (c *Controller) Ops() []Op {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Op(nil), c.ops...)
}

// Commands returns every byte sent with D/C low, in order.
func (c *Controller) Commands() []byte {
	return c.bytes(gpio.Low)
}

// DataBytes returns every byte sent with D/C high, in order.
func (c *Controller) DataBytes() []byte {
	return c.bytes(gpio.High)
}

func (c *Controller) bytes(dc gpio.Level) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []byte
	for _, o := range c.ops {
		if o.DC == dc {
			out = append(out, o.W...)
		}
	}
	return out
}

// ClearOps empties the transfer log and the history of the lines.
func (c *Controller) ClearOps() {
	c.mu.Lock()
	c.ops = nil
	c.mu.Unlock()
	for _, l := range []*Line{c.DC, c.CS, c.RST} {
		l.mu.Lock()
		l.history = nil
		l.mu.Unlock()
	}
}

// DDRAM returns a copy of the display RAM, bank major.
func (c *Controller) DDRAM() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.ddram[:]...)
}

// Address returns the current column and bank.
func (c *Controller) Address() (col, bank int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.x, c.y
}

// Speed returns the frequency passed to Connect.
func (c *Controller) Speed() physic.Frequency {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.freq
}

// PowerDown returns the PD bit.
func (c *Controller) PowerDown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.powerDn
}

// Vertical returns the V bit.
func (c *Controller) Vertical() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vertical
}

// Extended returns the H bit.
func (c *Controller) Extended() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.extended
}

// DisplayMode returns the current display mode.
func (c *Controller) DisplayMode() DisplayMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Vop returns the operating voltage register.
func (c *Controller) Vop() byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vop
}

// Bias returns the bias system register.
func (c *Controller) Bias() byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bias
}

// TempCoeff returns the temperature coefficient register.
func (c *Controller) TempCoeff() byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tc
}

// Resets returns the number of falling edges seen on RST.
func (c *Controller) Resets() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resets
}

// Pixel reports whether the pixel at x, y is set in display RAM, regardless
// of the display mode.
func (c *Controller) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pixelLocked(x, y)
}

func (c *Controller) pixelLocked(x, y int) bool {
	return c.ddram[(y/8)*Width+x]&(1<<uint(y%8)) != 0
}

// Image returns what the panel shows: dark pixels are 0x00 and clear ones
// 0xFF. Power-down and blank show a clear panel.
func (c *Controller) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, Width, Height))
	c.mu.Lock()
	defer c.mu.Unlock()
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			on := false
			switch {
			case c.powerDn || c.mode == Blank:
			case c.mode == AllOn:
				on = true
			case c.mode == Inverse:
				on = !c.pixelLocked(x, y)
			default:
				on = c.pixelLocked(x, y)
			}
			if on {
				img.SetGray(x, y, color.Gray{})
			} else {
				img.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	return img
}

// Line is a control line of the controller.
type Line struct {
	gpiotest.Pin

	c       *Controller
	mu      sync.Mutex
	driven  bool
	history []gpio.Level
	err     error
}

// Out implements gpio.PinOut.
func (l *Line) Out(level gpio.Level) error {
	l.mu.Lock()
	if l.err != nil {
		err := l.err
		l.mu.Unlock()
		return err
	}
	prev, wasDriven := l.Pin.Read(), l.driven
	l.driven = true
	l.history = append(l.history, level)
	l.mu.Unlock()
	if err := l.Pin.Out(level); err != nil {
		return err
	}
	l.c.lineChanged(l, prev, level, wasDriven)
	return nil
}

// Driven reports whether Out was ever called.
func (l *Line) Driven() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.driven
}

// History returns every level passed to Out since the last ClearOps.
func (l *Line) History() []gpio.Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]gpio.Level(nil), l.history...)
}

// Fail makes every following call to Out return err. Pass nil to restore
// normal operation.
func (l *Line) Fail(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}

var _ spi.Port = &Controller{}
var _ spi.Conn = &Controller{}
var _ gpio.PinOut = &Line{}
