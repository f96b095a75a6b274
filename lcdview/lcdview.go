// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdview provides a display.Drawer that renders a monochrome frame
// the way a reflective LCD panel looks, and serves it over HTTP.
//
// Each logical pixel becomes a square of Scale screen pixels separated by a
// thin gap, drawn on a greenish background. HTTP clients get the current
// frame, then a new one on every change, as a multipart/x-mixed-replace
// stream of PNG or JPEG images.
package lcdview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/http"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/display"
)

// Panel colors.
var (
	Background = color.RGBA{0x9C, 0xB4, 0x8C, 0xFF}
	PixelOff   = color.RGBA{0x8E, 0xA6, 0x7E, 0xFF}
	PixelOn    = color.RGBA{0x1E, 0x26, 0x1E, 0xFF}
)

const captionHeight = 20

// Options for lcdview devices.
type Options struct {
	// Width and height of the logical frame, in panel pixels.
	Width, Height int
	// Scale is the size of a panel pixel on screen. Defaults to 6.
	Scale int
	// Gap is the space between two panel pixels on screen. It must be smaller
	// than Scale. Defaults to 1.
	Gap int
	// Caption, when set, is drawn under the panel.
	Caption string

	// Format is the default encoding of streamed frames.
	Format Format
	// JPEGQuality is used for JPEG frames, 1..100. Defaults to 90.
	JPEGQuality int
	// PNGCompression is used for PNG frames.
	PNGCompression png.CompressionLevel
}

// Display is the emulated panel.
type Display struct {
	opts Options
	face font.Face

	mu       sync.Mutex
	frame    *image.Gray
	rendered image.Image
	encoded  map[Format][]byte
	png      png.Encoder
	pngBuf   encoderBuffer
	changed  chan struct{}
	halt     chan struct{}
}

var _ display.Drawer = (*Display)(nil)
var _ http.Handler = (*Display)(nil)

// New creates a new lcdview device instance. The frame starts clear.
func New(opt *Options) (*Display, error) {
	o := *opt
	if o.Scale == 0 {
		o.Scale = 6
	}
	if o.Gap == 0 && o.Scale > 1 {
		o.Gap = 1
	}
	if o.JPEGQuality == 0 {
		o.JPEGQuality = 90
	}
	if o.Width <= 0 || o.Height <= 0 {
		return nil, fmt.Errorf("lcdview: invalid size %dx%d", o.Width, o.Height)
	}
	if o.Gap < 0 || o.Gap >= o.Scale {
		return nil, fmt.Errorf("lcdview: gap %d must be within [0, %d)", o.Gap, o.Scale)
	}
	if o.JPEGQuality < 1 || o.JPEGQuality > 100 {
		return nil, fmt.Errorf("lcdview: invalid JPEG quality %d", o.JPEGQuality)
	}
	d := &Display{
		opts:    o,
		frame:   image.NewGray(image.Rect(0, 0, o.Width, o.Height)),
		encoded: map[Format][]byte{},
		changed: make(chan struct{}),
		halt:    make(chan struct{}),
	}
	d.png = png.Encoder{CompressionLevel: o.PNGCompression, BufferPool: &d.pngBuf}
	draw.Draw(d.frame, d.frame.Bounds(), image.White, image.Point{}, draw.Src)
	if o.Caption != "" {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("lcdview: %w", err)
		}
		d.face = truetype.NewFace(f, &truetype.Options{Size: 12})
	}
	return d, nil
}

// String returns the name of the device.
func (d *Display) String() string {
	return fmt.Sprintf("LCDView{%dx%d}", d.opts.Width, d.opts.Height)
}

// Halt implements conn.Resource. It ends the running streams; later
// requests are served normally.
func (d *Display) Halt() error {
	d.mu.Lock()
	close(d.halt)
	d.halt = make(chan struct{})
	d.mu.Unlock()
	return nil
}

// ColorModel implements display.Drawer.
//
// Pixels darker than mid-gray are shown as set.
func (d *Display) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds implements display.Drawer.
func (d *Display) Bounds() image.Rectangle {
	return d.frame.Bounds()
}

// Draw implements display.Drawer.
func (d *Display) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	d.mu.Lock()
	draw.Draw(d.frame, dstRect, src, srcPts, draw.Src)
	d.changedLocked()
	d.mu.Unlock()
	return nil
}

// Snapshot returns the current frame as shown on screen. The returned image
// must not be modified.
func (d *Display) Snapshot() image.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.renderLocked()
}

// SavePNG writes the current frame as shown on screen to path.
func (d *Display) SavePNG(path string) error {
	if err := gg.SavePNG(path, d.Snapshot()); err != nil {
		return fmt.Errorf("lcdview: %w", err)
	}
	return nil
}

func (d *Display) renderLocked() image.Image {
	if d.rendered != nil {
		return d.rendered
	}
	s := d.opts.Scale
	h := d.opts.Height * s
	if d.face != nil {
		h += captionHeight
	}
	dc := gg.NewContext(d.opts.Width*s, h)
	dc.SetColor(Background)
	dc.Clear()
	// Every rectangle of a color is a sub path of a single fill.
	for _, on := range []bool{false, true} {
		for y := 0; y < d.opts.Height; y++ {
			for x := 0; x < d.opts.Width; x++ {
				if (d.frame.GrayAt(x, y).Y < 0x80) == on {
					dc.DrawRectangle(float64(x*s), float64(y*s), float64(s-d.opts.Gap), float64(s-d.opts.Gap))
				}
			}
		}
		if on {
			dc.SetColor(PixelOn)
		} else {
			dc.SetColor(PixelOff)
		}
		dc.Fill()
	}
	if d.face != nil {
		dc.SetFontFace(d.face)
		dc.SetColor(PixelOn)
		dc.DrawStringAnchored(d.opts.Caption, float64(d.opts.Width*s)/2, float64(d.opts.Height*s+captionHeight/2), 0.5, 0.5)
	}
	d.rendered = dc.Image()
	return d.rendered
}
