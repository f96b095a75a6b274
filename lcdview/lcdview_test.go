// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdview

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
)

func TestNewHalt(t *testing.T) {
	d, err := New(&Options{Width: 84, Height: 48})
	if err != nil {
		t.Fatal(err)
	}
	if s := d.String(); s != "LCDView{84x48}" {
		t.Fatal(s)
	}
	if err := d.Halt(); err != nil {
		t.Errorf("Halt() failed: %v", err)
	}
}

func TestNew_errors(t *testing.T) {
	for _, opt := range []Options{
		{Width: 0, Height: 48},
		{Width: 84, Height: -1},
		{Width: 84, Height: 48, Scale: 2, Gap: 2},
		{Width: 84, Height: 48, Gap: -1},
		{Width: 84, Height: 48, JPEGQuality: 101},
	} {
		if _, err := New(&opt); err == nil {
			t.Errorf("New(%+v) succeeded", opt)
		}
	}
}

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func TestSnapshot(t *testing.T) {
	d, err := New(&Options{Width: 2, Height: 1, Scale: 4, Gap: 1})
	if err != nil {
		t.Fatal(err)
	}
	src := image.NewGray(image.Rect(0, 0, 2, 1))
	src.SetGray(0, 0, color.Gray{})
	src.SetGray(1, 0, color.Gray{Y: 0xFF})
	if err := d.Draw(d.Bounds(), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	img := d.Snapshot()
	if got, want := img.Bounds().Size(), (image.Point{8, 4}); got != want {
		t.Fatalf("size %v, want %v", got, want)
	}
	for _, tc := range []struct {
		x, y int
		want color.RGBA
	}{
		{1, 1, PixelOn},
		{5, 1, PixelOff},
		{3, 3, Background},
		{7, 0, Background},
	} {
		if got := rgba(img.At(tc.x, tc.y)); got != tc.want {
			t.Errorf("At(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
	if d.Snapshot() != img {
		t.Fatal("unchanged frame rendered twice")
	}
	if err := d.Draw(d.Bounds(), image.White, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if got := rgba(d.Snapshot().At(1, 1)); got != PixelOff {
		t.Fatalf("stale frame: %v", got)
	}
}

func TestSnapshot_caption(t *testing.T) {
	d, err := New(&Options{Width: 84, Height: 48, Caption: "PCD8544"})
	if err != nil {
		t.Fatal(err)
	}
	img := d.Snapshot()
	if got, want := img.Bounds().Size(), (image.Point{84 * 6, 48*6 + captionHeight}); got != want {
		t.Fatalf("size %v, want %v", got, want)
	}
	// Some text was drawn in the caption area.
	found := false
	for y := 48 * 6; y < img.Bounds().Dy() && !found; y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			if rgba(img.At(x, y)) != Background {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("caption not drawn")
	}
}

func TestSavePNG(t *testing.T) {
	d, err := New(&Options{Width: 3, Height: 2})
	if err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(t.TempDir(), "frame.png")
	if err := d.SavePNG(p); err != nil {
		t.Fatal(err)
	}
	img, err := gg.LoadPNG(p)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := img.Bounds().Size(), (image.Point{18, 12}); got != want {
		t.Fatalf("size %v, want %v", got, want)
	}
	if err := d.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Fatal("expected error")
	}
}
