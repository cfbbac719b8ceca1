// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package oledsim

import (
	"bytes"
	"image"
	"image/color"
	"io"

	"github.com/mattn/go-colorable"
	xdraw "golang.org/x/image/draw"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

var (
	lit   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	unlit = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
)

// RenderTo draws the emulated panel content to w as 64 lines of 128 ANSI
// color blocks. When the panel is slept the output is all dark, like the
// real thing.
func (s *Sim) RenderTo(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Assembled in one buffer to keep per-call allocations low and the
	// terminal update tear-free.
	var buf bytes.Buffer
	for y := 0; y < Height; y++ {
		buf.WriteString("\033[0m")
		for x := 0; x < Width; x++ {
			c := unlit
			if s.on && s.ram[(y/8)*Width+x]&(1<<(y%8)) != 0 {
				c = lit
			}
			buf.WriteString(s.palette.Block(c))
		}
		buf.WriteString("\033[0m\n")
	}
	_, err := buf.WriteTo(w)
	return err
}

// Render draws the emulated panel content to stdout.
func (s *Sim) Render() error {
	return s.RenderTo(colorable.NewColorableStdout())
}

// Snapshot returns the panel content as a 1-bit image in the controller's
// native vertical-LSB layout. The returned image does not alias the
// emulated RAM.
func (s *Sim) Snapshot() *image1bit.VerticalLSB {
	s.mu.Lock()
	defer s.mu.Unlock()
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, Width, Height))
	copy(img.Pix, s.ram[:])
	return img
}

// SnapshotScaled returns the panel content upscaled by an integer factor,
// one display pixel becoming a scale x scale block. Handy for saving
// legible screenshots of the tiny panel.
func (s *Sim) SnapshotScaled(scale int) image.Image {
	if scale < 1 {
		scale = 1
	}
	src := s.Snapshot()
	dst := image.NewRGBA(image.Rect(0, 0, Width*scale, Height*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
