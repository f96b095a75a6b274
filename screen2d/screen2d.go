// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen2d implements a 2D display.Drawer that outputs to terminal
// (stdout) using ANSI color codes.
//
// Each frame is redrawn in place, so a small panel can be previewed while the
// hardware is not connected.
package screen2d

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"golang.org/x/image/draw"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	// W and H are the logical size of the display in pixels.
	W, H int
	// Cols and Rows are the size of the output in terminal cells. The frame is
	// scaled with nearest neighbor sampling. Zero means W and H.
	Cols, Rows int
	Palette    *ansi256.Palette

	_ struct{}
}

// Dev is a 2D display emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	rect    image.Rectangle
	out     image.Rectangle

	frame  *image.NRGBA
	scaled *image.NRGBA
	drawn  bool
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	return NewWriter(colorable.NewColorableStdout(), opts)
}

// NewWriter returns a Dev that writes the frames to w.
func NewWriter(w io.Writer, opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	cols, rows := opts.Cols, opts.Rows
	if cols == 0 {
		cols = opts.W
	}
	if rows == 0 {
		rows = opts.H
	}
	d := &Dev{
		w:       w,
		palette: *p,
		rect:    image.Rect(0, 0, opts.W, opts.H),
		out:     image.Rect(0, 0, cols, rows),
	}
	d.frame = image.NewNRGBA(d.rect)
	d.scaled = image.NewNRGBA(d.out)
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("Screen2D{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// Halt implements conn.Resource.
//
// It resets the terminal colors and moves below the last frame.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.rect)
	draw.Draw(d.frame, r, src, sp, draw.Src)
	return d.refresh()
}

func (d *Dev) refresh() error {
	draw.NearestNeighbor.Scale(d.scaled, d.out, d.frame, d.rect, draw.Src, nil)
	d.buf.Reset()
	if d.drawn {
		// Move back to the top of the previous frame.
		fmt.Fprintf(&d.buf, "\033[%dA", d.out.Dy())
	}
	for y := 0; y < d.out.Dy(); y++ {
		_, _ = d.buf.WriteString("\r\033[0m")
		for x := 0; x < d.out.Dx(); x++ {
			_, _ = io.WriteString(&d.buf, d.palette.Block(d.scaled.NRGBAAt(x, y)))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.drawn = true
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
