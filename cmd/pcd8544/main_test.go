// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/GermanBionicSystems/nokia5110/pcd8544"
	"github.com/GermanBionicSystems/nokia5110/pcd8544/font8x8"
	"github.com/GermanBionicSystems/nokia5110/pcd8544/pcd8544test"
)

func newEmulated(t *testing.T) (*pcd8544.Dev, *pcd8544test.Controller) {
	t.Helper()
	c := pcd8544test.New()
	dev, err := pcd8544.New(c, c.DC, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return dev, c
}

func TestShow(t *testing.T) {
	dev, c := newEmulated(t)
	s := content{text: "A", row: 2, col: 3, invert: true}
	if err := s.show(dev); err != nil {
		t.Fatal(err)
	}
	ram := c.DDRAM()
	g := font8x8.Glyph('A')
	for i, b := range g {
		if got := ram[2*pcd8544.Width+3*font8x8.Width+i]; got != b {
			t.Fatalf("DDRAM column %d = %#x, want %#x", i, got, b)
		}
	}
	if m := c.DisplayMode(); m != pcd8544test.Inverse {
		t.Fatalf("DisplayMode() = %s", m)
	}
}

func TestShow_fill(t *testing.T) {
	dev, c := newEmulated(t)
	if err := (&content{fill: true}).show(dev); err != nil {
		t.Fatal(err)
	}
	for i, b := range c.DDRAM() {
		if b != 0xFF {
			t.Fatalf("DDRAM[%d] = %#x", i, b)
		}
	}
}

func TestShow_test(t *testing.T) {
	dev, c := newEmulated(t)
	c.ClearOps()
	if err := (&content{test: true, text: "ignored"}).show(dev); err != nil {
		t.Fatal(err)
	}
	if m := c.DisplayMode(); m != pcd8544test.AllOn {
		t.Fatalf("DisplayMode() = %s", m)
	}
	if len(c.DataBytes()) != 0 {
		t.Fatal("test pattern wrote to the display RAM")
	}
}

func TestShow_outOfRange(t *testing.T) {
	dev, _ := newEmulated(t)
	if err := (&content{text: "x", row: 6}).show(dev); err == nil {
		t.Fatal("expected error")
	}
}

func TestOpenEmulated(t *testing.T) {
	opts := pcd8544.DefaultOpts
	if _, err := openEmulated("", "", 2*pcd8544.MaxSpeed, &opts, nil); err == nil {
		t.Fatal("expected speed error")
	}
}
