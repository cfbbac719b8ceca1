// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306text

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// Display geometry. The SSD1306 GDDRAM is organized as 8 pages of 128 bytes;
// each byte is a vertical strip of 8 pixels with bit 0 on top.
const (
	Width  = 128
	Height = 64

	nbPages  = Height / 8
	pageSize = Width
)

// Control bytes. The first byte of every I²C payload selects how the
// controller interprets the rest of the transaction.
const (
	i2cCmd  = 0x00 // transaction carries command bytes
	i2cData = 0x40 // transaction carries GDDRAM data bytes
)

const (
	_DISPLAYOFF       = 0xAE
	_DISPLAYON        = 0xAF
	_SETCONTRAST      = 0x81
	_PAGESTARTADDRESS = 0xB0
	_SETLOWCOLUMN     = 0x00
	_SETHIGHCOLUMN    = 0x10
	_COLUMNADDR       = 0x21
	_PAGEADDR         = 0x22
)

// initSequence is the power-on configuration replayed verbatim at startup.
// See the datasheet, section 10.1, for the individual registers.
var initSequence = []byte{
	_DISPLAYOFF, // Display off (sleep mode)
	0x20, 0x00,  // Memory addressing mode: horizontal
	0xB0,       // Page start address for page addressing mode
	0xC8,       // COM output scan direction: remapped
	0x00,       // Low column address
	0x10,       // High column address
	0x40,       // Display start line
	0x81, 0x00, // Contrast control register
	0xA1,       // Segment remap: column 127 mapped to SEG0
	0xA6,       // Normal (non-inverted) display
	0xA8, 0x3F, // Multiplex ratio: 64 lines
	0xA4,       // Output follows RAM content
	0xD3, 0x00, // Display offset: none
	0xD5, 0xF0, // Display clock divide ratio / oscillator frequency
	0xD9, 0x22, // Pre-charge period
	0xDA, 0x12, // COM pins hardware configuration
	0xDB, 0x20, // VCOMH deselect level: 0.77 x Vcc
	0x8D, 0x14, // Charge pump: enabled
	_DISPLAYON, // Display on in normal mode
	// Address window covering the whole display, so data writes auto-advance
	// through all 8 pages.
	_COLUMNADDR, 0x00, 0x7F,
	_PAGEADDR, 0x00, 0x07,
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Addr: 0x3C,
}

// Opts defines the options for the device.
type Opts struct {
	// Addr is the I²C address of the display, 0x3C or 0x3D depending on the
	// SA0 strap.
	Addr uint16
	// OnBusError, when not nil, is invoked with the wrapped error before any
	// failed bus operation returns. It stands in for the fault indicator of
	// bare-metal ports; the driver itself never retries.
	OnBusError func(error)
}

// NewI2C returns a Dev object that communicates over I²C to a SSD1306
// display controller, after replaying the power-on initialization sequence.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	addr := opts.Addr
	if addr == 0 {
		addr = DefaultOpts.Addr
	}
	d := &Dev{
		c:     &i2c.Dev{Bus: b, Addr: addr},
		addr:  addr,
		onErr: opts.OnBusError,
		buf:   make([]byte, 0, 1+pageSize*nbPages),
	}
	if err := d.sendCommand(initSequence); err != nil {
		return nil, err
	}
	return d, nil
}

// Dev is an open handle to the display controller.
//
// There is no local copy of the display RAM; all drawing methods write
// straight through to the controller. Methods serialize whole transactions,
// so a Dev may be shared, but interleaved drawing from multiple goroutines
// will interleave cursor positioning too.
type Dev struct {
	c     conn.Conn
	addr  uint16
	onErr func(error)

	mu sync.Mutex
	// Scratch for assembling one transaction; reused to avoid allocating on
	// every draw call.
	buf []byte
}

func (d *Dev) String() string {
	return fmt.Sprintf("ssd1306text.Dev{%dx%d @%#02x}", Width, Height, d.addr)
}

// SetPosition moves the controller's write cursor to column x of the given
// page. (0, 0) is the top-left corner of the display.
//
// The controller advances the cursor by one column after every data byte, so
// consecutive writes in one stream are contiguous. After any drawing method
// returns, the cursor position is unspecified; call SetPosition before a
// draw that is not intentionally contiguous.
func (d *Dev) SetPosition(x, page int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setPosition(x, page)
}

// Sleep turns the panel off. The controller retains its RAM and settings;
// Wake restores the image that was displayed.
func (d *Dev) Sleep() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sendCommand([]byte{_DISPLAYOFF})
}

// Wake turns the panel back on after Sleep.
func (d *Dev) Wake() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sendCommand([]byte{_DISPLAYON})
}

// SetContrast changes the screen contrast (brightness). 0 is dimmest.
func (d *Dev) SetContrast(level byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sendCommand([]byte{_SETCONTRAST, level})
}

// Halt turns off the display.
//
// It implements conn.Resource.
func (d *Dev) Halt() error {
	return d.Sleep()
}

func (d *Dev) setPosition(x, page int) error {
	if x < 0 || x >= Width {
		return fmt.Errorf("ssd1306text: invalid column %d", x)
	}
	if page < 0 || page >= nbPages {
		return fmt.Errorf("ssd1306text: invalid page %d", page)
	}
	return d.sendCommand([]byte{
		_PAGESTARTADDRESS | byte(page),
		_SETHIGHCOLUMN | byte(x>>4),
		_SETLOWCOLUMN | byte(x&0x0F),
	})
}

// sendCommand issues one transaction whose payload is interpreted as
// command bytes.
func (d *Dev) sendCommand(c []byte) error {
	return d.send(i2cCmd, c)
}

// sendData issues one transaction whose payload is written to GDDRAM at the
// cursor, which auto-advances.
func (d *Dev) sendData(data []byte) error {
	return d.send(i2cData, data)
}

// send frames payload with the control byte and transmits it as a single
// bus transaction (START, address, control byte, payload, STOP). The
// controller applies the control byte to the whole transaction, so command
// and data bytes can never be mixed in one stream.
func (d *Dev) send(control byte, payload []byte) error {
	d.buf = append(d.buf[:0], control)
	d.buf = append(d.buf, payload...)
	return d.tx()
}

// tx transmits the assembled scratch buffer.
func (d *Dev) tx() error {
	if err := d.c.Tx(d.buf, nil); err != nil {
		err = fmt.Errorf("ssd1306text: bus write failed: %w", err)
		if d.onErr != nil {
			d.onErr(err)
		}
		return err
	}
	return nil
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
