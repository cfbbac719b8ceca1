// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306text

import "fmt"

// Clear zeroes the whole display RAM and leaves the cursor at (0, 0).
//
// The full 1024 bytes are streamed in one transaction; on a 100kHz bus this
// takes around 100ms.
func (d *Dev) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clear()
}

// DrawHLine draws a 1 pixel high horizontal run of length pixels starting
// at (x, y).
//
// The controller writes whole page bytes: every touched column gets all 8
// rows of page y/8 rewritten, with only row y lit. Text or graphics sharing
// that page band are erased. This is inherent to the page-oriented RAM and
// a frame-buffer-less driver; use DrawFrame to compose overlapping content.
func (d *Dev) DrawHLine(x, y, length int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := checkRun(x, y, length, Width-x); err != nil {
		return err
	}
	mask := byte(1) << (y % 8)
	if err := d.setPosition(x, y/8); err != nil {
		return err
	}
	d.buf = append(d.buf[:0], i2cData)
	for i := 0; i < length; i++ {
		d.buf = append(d.buf, mask)
	}
	return d.tx()
}

// DrawVLine draws a 1 pixel wide vertical run of length pixels starting at
// (x, y).
//
// The run spans pages y/8 through (y+length)/8. The first and last pages
// get boundary masks, intermediate pages a full 0xFF byte; each page is
// positioned and written in its own transaction since the cursor does not
// carry across a repositioning. A zero length degenerates to a single
// pixel.
func (d *Dev) DrawVLine(x, y, length int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := checkRun(x, y, length, Height-y); err != nil {
		return err
	}
	p0 := y / 8
	if length == 0 {
		return d.writePageByte(x, p0, 1<<(y%8))
	}
	end := y + length
	p1 := end / 8
	startMask := byte(0xFF) << (y % 8)
	endMask := byte(0xFF) >> (end % 8)
	if end%8 == 0 {
		// The run stops exactly at a page boundary: the shift degenerates to
		// a full byte, which belongs to the page above, not page end/8.
		p1--
		endMask = 0xFF
	}
	if p1 == p0 {
		return d.writePageByte(x, p0, startMask&endMask)
	}
	if err := d.writePageByte(x, p0, startMask); err != nil {
		return err
	}
	for p := p0 + 1; p < p1; p++ {
		if err := d.writePageByte(x, p, 0xFF); err != nil {
			return err
		}
	}
	return d.writePageByte(x, p1, endMask)
}

// DrawFrame writes a full frame of pixels to the display.
//
// pix must hold Width*Height/8 bytes in the GDDRAM layout: 8 horizontal
// bands of 8 pixels high, one byte per column, bit 0 on top. This is the
// layout of image1bit.VerticalLSB.Pix, which makes DrawFrame the
// read-modify-write escape hatch: compose into an image, then send it.
func (d *Dev) DrawFrame(pix []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(pix) != nbPages*pageSize {
		return fmt.Errorf("ssd1306text: invalid pixel stream length; expected %d bytes, got %d bytes", nbPages*pageSize, len(pix))
	}
	for page := 0; page < nbPages; page++ {
		if err := d.setPosition(0, page); err != nil {
			return err
		}
		if err := d.sendData(pix[page*pageSize : (page+1)*pageSize]); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dev) clear() error {
	if err := d.setPosition(0, 0); err != nil {
		return err
	}
	d.buf = append(d.buf[:0], i2cData)
	for i := 0; i < nbPages*pageSize; i++ {
		d.buf = append(d.buf, 0)
	}
	return d.tx()
}

// writePageByte positions the cursor and writes a single data byte, the
// unit of work for vertical runs.
func (d *Dev) writePageByte(x, page int, b byte) error {
	if err := d.setPosition(x, page); err != nil {
		return err
	}
	return d.sendData([]byte{b})
}

func checkRun(x, y, length, max int) error {
	if x < 0 || x >= Width {
		return fmt.Errorf("ssd1306text: invalid column %d", x)
	}
	if y < 0 || y >= Height {
		return fmt.Errorf("ssd1306text: invalid row %d", y)
	}
	if length < 0 || length > max {
		return fmt.Errorf("ssd1306text: invalid run length %d", length)
	}
	return nil
}
