// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306text

import (
	"fmt"

	"periph.io/x/conn/v3/display"
)

// Text cell geometry: a glyph is one blank spacer column plus 5 font
// columns, 8 pixels high, so the display holds 8 rows of 21 characters.
const (
	cellWidth = fontWidth + 1

	// TextCols and TextRows are the dimensions of the character grid.
	TextCols = Width / cellWidth
	TextRows = nbPages
)

// WriteString renders text at the current cursor position using the
// built-in 5x8 font.
//
// Each glyph is sent as its own data transaction; the controller's cursor
// auto-advance keeps consecutive glyphs contiguous. Characters outside the
// font (below ' ' or above 'z') render as a blank cell. Returns the number
// of bytes written.
func (d *Dev) WriteString(text string) (int, error) {
	return d.Write([]byte(text))
}

// Write renders text bytes at the current cursor position.
//
// It implements io.Writer for text content, the display.TextDisplay
// contract; it does not accept raw pixel data (see DrawFrame for that).
func (d *Dev) Write(p []byte) (n int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for ; n < len(p); n++ {
		if err = d.writeGlyph(p[n]); err != nil {
			return n, err
		}
	}
	return n, nil
}

// WriteInt renders n as decimal text at the current cursor position.
//
// The value is formatted right-aligned in a 5 digit field and only the
// significant digits are drawn, so the cursor advances by the number of
// digits, not the field width. WriteInt(0) draws "0".
func (d *Dev) WriteInt(n uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf, first := decimalField(n)
	for _, c := range buf[first:] {
		if err := d.writeGlyph(c); err != nil {
			return err
		}
	}
	return nil
}

// MoveTo moves the text cursor to the given character cell. Row 0, column 0
// is the top-left cell.
func (d *Dev) MoveTo(row, col int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if row < 0 || row >= TextRows || col < 0 || col >= TextCols {
		return fmt.Errorf("ssd1306text: invalid MoveTo(%d, %d)", row, col)
	}
	return d.setPosition(col*cellWidth, row)
}

// Home moves the text cursor to the top-left cell.
func (d *Dev) Home() error {
	return d.MoveTo(0, 0)
}

// Cols returns the number of columns of the character grid.
func (d *Dev) Cols() int {
	return TextCols
}

// Rows returns the number of rows of the character grid.
func (d *Dev) Rows() int {
	return TextRows
}

// MinCol returns the first addressable column of the character grid.
func (d *Dev) MinCol() int {
	return 0
}

// MinRow returns the first addressable row of the character grid.
func (d *Dev) MinRow() int {
	return 0
}

// Display turns the panel on or off.
func (d *Dev) Display(on bool) error {
	if on {
		return d.Wake()
	}
	return d.Sleep()
}

// AutoScroll is not supported by this device.
func (d *Dev) AutoScroll(enabled bool) error {
	return fmt.Errorf("ssd1306text: %w", display.ErrNotImplemented)
}

// Cursor is not supported by this device; the SSD1306 has no text cursor.
func (d *Dev) Cursor(mode ...display.CursorMode) error {
	return fmt.Errorf("ssd1306text: %w", display.ErrNotImplemented)
}

// Move is not supported by this device.
func (d *Dev) Move(dir display.CursorDirection) error {
	return fmt.Errorf("ssd1306text: %w", display.ErrNotImplemented)
}

// Contrast sets the panel contrast. It implements display.DisplayContrast.
func (d *Dev) Contrast(contrast display.Contrast) error {
	return d.SetContrast(byte(contrast))
}

// writeGlyph sends one character cell: the blank spacer column followed by
// the 5 font columns. The cursor must already be positioned; it ends up on
// the column after the glyph.
func (d *Dev) writeGlyph(c byte) error {
	d.buf = append(d.buf[:0], i2cData, 0x00)
	d.buf = append(d.buf, glyph(c)...)
	return d.tx()
}

// decimalField formats n right-aligned in a space-padded 5 byte decimal
// field and returns the index of the first significant digit. The caller
// renders buf[first:]; the padding exists so the field can overprint a
// previously drawn, possibly longer value.
func decimalField(n uint16) (buf [5]byte, first int) {
	powers := [5]uint16{10000, 1000, 100, 10, 1}
	first = len(buf) - 1
	found := false
	for pos, p := range powers {
		digit := byte(0)
		for n >= p {
			digit++
			n -= p
		}
		if !found {
			if digit == 0 {
				if pos < len(buf)-1 {
					buf[pos] = ' '
					continue
				}
			} else {
				first = pos
				found = true
			}
		}
		buf[pos] = '0' + digit
	}
	return buf, first
}

var _ display.TextDisplay = &Dev{}
var _ display.DisplayContrast = &Dev{}
