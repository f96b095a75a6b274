// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package screen2d

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/maruel/ansi256"
)

func TestDraw(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriter(&buf, &Opts{W: 2, H: 2})
	if s := d.String(); s != "Screen2D{2x2}" {
		t.Fatal(s)
	}
	if b := d.Bounds(); b != image.Rect(0, 0, 2, 2) {
		t.Fatal(b)
	}
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(0, 0, color.Gray{Y: 0xFF})
	if err := d.Draw(d.Bounds(), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	white := ansi256.Default.Block(color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF})
	black := ansi256.Default.Block(color.NRGBA{0, 0, 0, 0xFF})
	want := "\r\033[0m" + white + black + "\033[0m\n" +
		"\r\033[0m" + black + black + "\033[0m\n"
	if got := buf.String(); got != want {
		t.Fatalf("%q != %q", got, want)
	}

	// The second frame is drawn over the first one.
	buf.Reset()
	if err := d.Draw(d.Bounds(), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); !strings.HasPrefix(got, "\033[2A") || strings.TrimPrefix(got, "\033[2A") != want {
		t.Fatalf("%q", got)
	}
}

func TestDraw_scaled(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriter(&buf, &Opts{W: 2, H: 2, Cols: 4, Rows: 1})
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	// Nearest neighbor samples the second source row.
	src.SetGray(0, 1, color.Gray{Y: 0xFF})
	if err := d.Draw(d.Bounds(), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	white := ansi256.Default.Block(color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF})
	black := ansi256.Default.Block(color.NRGBA{0, 0, 0, 0xFF})
	want := "\r\033[0m" + white + white + black + black + "\033[0m\n"
	if got := buf.String(); got != want {
		t.Fatalf("%q != %q", got, want)
	}
}

func TestHalt(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriter(&buf, &Opts{W: 1, H: 1})
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\033[0m\n" {
		t.Fatalf("%q", got)
	}
}
