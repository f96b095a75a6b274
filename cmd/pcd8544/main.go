// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// pcd8544 initializes a PCD8544 (Nokia 5110) LCD and writes text to it.
//
// With -emulate, no hardware is used: the panel is emulated and shown in the
// terminal, and optionally saved as a PNG or served as an image stream.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/GermanBionicSystems/nokia5110/lcdview"
	"github.com/GermanBionicSystems/nokia5110/pcd8544"
	"github.com/GermanBionicSystems/nokia5110/pcd8544/pcd8544test"
	"github.com/GermanBionicSystems/nokia5110/screen2d"
	"github.com/GermanBionicSystems/nokia5110/spibus"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// content is what is shown once the panel is initialized.
type content struct {
	text     string
	row, col int
	fill     bool
	invert   bool
	test     bool
}

func (c *content) show(dev *pcd8544.Dev) error {
	if c.test {
		return dev.TestPattern(true)
	}
	if err := dev.Fill(c.fill); err != nil {
		return err
	}
	if c.text != "" {
		if err := dev.MoveTo(c.row, c.col); err != nil {
			return err
		}
		if _, err := dev.WriteString(c.text); err != nil {
			return err
		}
	}
	if c.invert {
		return dev.Invert(true)
	}
	return nil
}

func pin(name string) (gpio.PinOut, error) {
	if name == "" {
		return nil, nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("invalid pin %q", name)
	}
	return p, nil
}

func openHardware(spiID, devfs, dcName, csName, rstName string, hz physic.Frequency, opts *pcd8544.Opts) (*pcd8544.Dev, io.Closer, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}
	if dcName == "" {
		return nil, nil, errors.New("-dc is required")
	}
	dc, err := pin(dcName)
	if err != nil {
		return nil, nil, err
	}
	cs, err := pin(csName)
	if err != nil {
		return nil, nil, err
	}
	rst, err := pin(rstName)
	if err != nil {
		return nil, nil, err
	}

	var c conn.Conn
	var closer io.Closer
	if devfs != "" {
		d, err := spibus.OpenDevfs(devfs, hz)
		if err != nil {
			return nil, nil, err
		}
		c, closer = d, d
	} else {
		p, err := spireg.Open(spiID)
		if err != nil {
			return nil, nil, err
		}
		if c, err = p.Connect(hz, spi.Mode0, 8); err != nil {
			p.Close()
			return nil, nil, err
		}
		closer = p
	}
	log.Printf("Using %s", c)
	dev, err := pcd8544.New(c, dc, cs, rst, opts)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return dev, closer, nil
}

// openEmulated returns a driver connected to an emulated controller. Every
// change of the panel is drawn on the terminal and, when set, on view.
func openEmulated(csName, rstName string, hz physic.Frequency, opts *pcd8544.Opts, view *lcdview.Display) (*pcd8544.Dev, error) {
	c := pcd8544test.New()
	screen := screen2d.New(&screen2d.Opts{W: pcd8544.Width, H: pcd8544.Height, Cols: 2 * pcd8544.Width})
	c.OnChange = func(c *pcd8544test.Controller) {
		img := c.Image()
		if err := screen.Draw(screen.Bounds(), img, image.Point{}); err != nil {
			log.Printf("Terminal: %v", err)
		}
		if view != nil {
			if err := view.Draw(view.Bounds(), img, image.Point{}); err != nil {
				log.Printf("View: %v", err)
			}
		}
	}
	sc, err := c.Connect(hz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	// The flags tell which optional lines are wired.
	var cs, rst gpio.PinOut
	if csName != "" {
		cs = c.CS
	}
	if rstName != "" {
		rst = c.RST
	}
	return pcd8544.New(sc, c.DC, cs, rst, opts)
}

func mainImpl() error {
	spiID := flag.String("spi", "", "SPI port to use")
	devfs := flag.String("devfs", "", "spidev device to use directly, e.g. /dev/spidev0.0")
	dcName := flag.String("dc", "GPIO23", "D/C pin")
	csName := flag.String("cs", "", "SCE pin, when not driven by the SPI port")
	rstName := flag.String("rst", "GPIO24", "RST pin, empty when not wired")
	hz := pcd8544.MaxSpeed
	flag.Var(&hz, "hz", "SPI clock frequency")
	vop := flag.Int("vop", pcd8544.DefaultOpts.Contrast, "operating voltage (contrast), 0..127")
	bias := flag.Int("bias", pcd8544.DefaultOpts.Bias, "bias system, 0..7")
	temp := flag.Int("temp", pcd8544.DefaultOpts.TempCoeff, "temperature coefficient, 0..3")
	vertical := flag.Bool("vertical", false, "use vertical addressing")
	chunk := flag.Int("chunk", pcd8544.DefaultOpts.FillChunk, "bytes per transfer when clearing the display")
	var c content
	flag.StringVar(&c.text, "text", "", "text to write")
	flag.IntVar(&c.row, "row", 0, "text row, 0..5")
	flag.IntVar(&c.col, "col", 0, "text column, 0..9")
	flag.BoolVar(&c.fill, "fill", false, "set every pixel instead of clearing the display")
	flag.BoolVar(&c.invert, "invert", false, "invert the display")
	flag.BoolVar(&c.test, "test", false, "turn every pixel on without touching the display RAM")
	emulate := flag.Bool("emulate", false, "use an emulated panel shown in the terminal")
	pngPath := flag.String("png", "", "save the emulated panel as a PNG file")
	httpAddr := flag.String("http", "", "serve the emulated panel as an image stream, e.g. :8010")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}

	opts := pcd8544.DefaultOpts
	opts.Contrast = *vop
	opts.Bias = *bias
	opts.TempCoeff = *temp
	opts.FillChunk = *chunk
	if *vertical {
		opts.Addressing = pcd8544.Vertical
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	var dev *pcd8544.Dev
	var view *lcdview.Display
	if *emulate {
		if *pngPath != "" || *httpAddr != "" {
			var err error
			view, err = lcdview.New(&lcdview.Options{Width: pcd8544.Width, Height: pcd8544.Height, Caption: "PCD8544"})
			if err != nil {
				return err
			}
		}
		var err error
		if dev, err = openEmulated(*csName, *rstName, hz, &opts, view); err != nil {
			return err
		}
	} else {
		if *pngPath != "" || *httpAddr != "" {
			return errors.New("-png and -http require -emulate")
		}
		d, closer, err := openHardware(*spiID, *devfs, *dcName, *csName, *rstName, hz, &opts)
		if err != nil {
			return err
		}
		defer closer.Close()
		dev = d
	}
	log.Printf("%s %+v", dev, dev.Config())

	if err := c.show(dev); err != nil {
		return err
	}
	if *pngPath != "" {
		if err := view.SavePNG(*pngPath); err != nil {
			return err
		}
	}
	if *httpAddr != "" {
		fmt.Printf("Serving on %s\n", *httpAddr)
		return http.ListenAndServe(*httpAddr, view)
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "pcd8544: %s.\n", err)
		os.Exit(1)
	}
}
