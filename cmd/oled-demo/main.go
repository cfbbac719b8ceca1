// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// oled-demo exercises a SSD1306 OLED display: border lines, text, a fast
// counter, sleep/wake and a contrast sweep. Run with -sim to emulate the
// panel in the terminal instead of talking to real hardware, or with
// -banner to render arbitrary text with a TrueType face through the raw
// frame path.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"log"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/greenonline/ssd1306text"
	"github.com/greenonline/ssd1306text/oledsim"
)

func main() {
	sim := flag.Bool("sim", false, "emulate the display in the terminal instead of using hardware")
	busName := flag.String("bus", "", "I²C bus to use (default: the first available)")
	addr := flag.Uint("addr", 0x3C, "I²C address of the display")
	banner := flag.String("banner", "", "render this text as a TrueType banner and exit")
	delay := flag.Duration("delay", 500*time.Millisecond, "pause between demo stages")
	flag.Parse()

	var bus i2c.Bus
	show := func() {}
	if *sim {
		s := oledsim.New(&oledsim.Opts{Addr: uint16(*addr)})
		bus = s
		show = func() {
			if err := s.Render(); err != nil {
				log.Fatal(err)
			}
			fmt.Println()
		}
	} else {
		if _, err := host.Init(); err != nil {
			log.Fatal(err)
		}
		b, err := i2creg.Open(*busName)
		if err != nil {
			log.Fatal(err)
		}
		defer b.Close()
		bus = b
	}

	dev, err := ssd1306text.NewI2C(bus, &ssd1306text.Opts{Addr: uint16(*addr)})
	if err != nil {
		log.Fatalf("failed to initialize display: %s", err)
	}

	if *banner != "" {
		if err := drawBanner(dev, *banner); err != nil {
			log.Fatal(err)
		}
		show()
		return
	}
	if err := demo(dev, *delay, show); err != nil {
		log.Fatal(err)
	}
}

// drawBanner rasterizes text with a TrueType face into the controller's
// page layout and sends it as one full frame.
func drawBanner(d *ssd1306text.Dev, text string) error {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	dc := gg.NewContext(ssd1306text.Width, ssd1306text.Height)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: 24}))
	dc.DrawStringAnchored(text, ssd1306text.Width/2, ssd1306text.Height/2, 0.5, 0.5)

	img := image1bit.NewVerticalLSB(image.Rect(0, 0, ssd1306text.Width, ssd1306text.Height))
	draw.Draw(img, img.Bounds(), dc.Image(), image.Point{}, draw.Src)
	return d.DrawFrame(img.Pix)
}

// demo replays the classic library walkthrough.
func demo(d *ssd1306text.Dev, delay time.Duration, show func()) error {
	steps := []func() error{
		d.Clear,
		// Border.
		func() error { return d.DrawHLine(0, 0, 127) },
		func() error { return d.DrawHLine(0, 63, 127) },
		func() error { return d.DrawVLine(0, 0, 64) },
		func() error { return d.DrawVLine(127, 0, 64) },
		func() error { return writeAt(d, 25, 1, "DEMONSTRATION") },
		func() error { return writeAt(d, 6, 3, "The display will be") },
		func() error { return writeAt(d, 34, 4, "turned off") },
		func() error { return writeAt(d, 30, 5, "temporarily") },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	show()
	time.Sleep(4 * delay)

	if err := d.Sleep(); err != nil {
		return err
	}
	time.Sleep(delay)
	if err := d.Clear(); err != nil {
		return err
	}
	if err := d.Wake(); err != nil {
		return err
	}

	if err := writeAt(d, 2, 3, "   Counter = "); err != nil {
		return err
	}
	for i := 800; i > 0; i-- {
		if err := d.SetPosition(2+13*6, 3); err != nil {
			return err
		}
		if err := d.WriteInt(uint16(i)); err != nil {
			return err
		}
	}
	show()
	time.Sleep(2 * delay)

	if err := d.Clear(); err != nil {
		return err
	}
	if err := writeAt(d, 18, 4, "LOWEST CONTRAST"); err != nil {
		return err
	}
	time.Sleep(2 * delay)
	if err := d.SetContrast(0xFF); err != nil {
		return err
	}
	if err := writeAt(d, 14, 4, "HIGHEST CONTRAST"); err != nil {
		return err
	}
	show()
	time.Sleep(2 * delay)
	return d.SetContrast(0x00)
}

func writeAt(d *ssd1306text.Dev, x, page int, s string) error {
	if err := d.SetPosition(x, page); err != nil {
		return err
	}
	_, err := d.WriteString(s)
	return err
}
