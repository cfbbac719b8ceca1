// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package oledsim emulates a SSD1306 display controller behind an i2c.Bus.
//
// The simulator decodes the command/data protocol a driver emits - control
// byte framing, page and column addressing, addressing modes, contrast and
// power commands - into a modeled 128x64 GDDRAM. The content can then be
// inspected pixel by pixel in tests, rendered to a terminal with ANSI
// colors, or exported as an image.
//
// Useful while you are waiting for your OLED module to come by mail.
package oledsim

import (
	"fmt"
	"sync"

	"github.com/maruel/ansi256"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Display geometry of the emulated panel.
const (
	Width  = 128
	Height = 64

	nbPages = Height / 8
)

// DefaultAddr is the I²C address the simulator answers on by default.
const DefaultAddr uint16 = 0x3C

// Addressing modes selected by command 0x20.
const (
	modeHorizontal = 0x00
	modeVertical   = 0x01
	modePage       = 0x02
)

// Opts represents the options available for the simulator.
type Opts struct {
	// Addr is the answered I²C address. Zero selects DefaultAddr.
	Addr uint16
	// Palette used for terminal rendering. Nil selects ansi256.Default.
	Palette *ansi256.Palette
}

// Sim is an emulated SSD1306 that can be passed anywhere an i2c.Bus is
// accepted.
type Sim struct {
	addr    uint16
	palette ansi256.Palette

	mu  sync.Mutex
	ram [nbPages * Width]byte
	// Write pointer and addressing window, the controller cursor model.
	page, col          int
	pageStart, pageEnd int
	colStart, colEnd   int
	mode               byte
	contrast           byte
	on                 bool
	// Multi-byte command currently being assembled.
	pendingCmd byte
	pendingN   int
	operands   [8]byte
	operandN   int
}

// New returns a simulator in the controller's reset state: display off,
// page addressing mode, window covering the whole RAM.
func New(opts *Opts) *Sim {
	addr := opts.Addr
	if addr == 0 {
		addr = DefaultAddr
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	return &Sim{
		addr:     addr,
		palette:  *p,
		pageEnd:  nbPages - 1,
		colEnd:   Width - 1,
		mode:     modePage,
		contrast: 0x7F,
	}
}

func (s *Sim) String() string {
	return fmt.Sprintf("oledsim(%dx%d @%#02x)", Width, Height, s.addr)
}

// SetSpeed implements i2c.Bus. The simulator has no timing model.
func (s *Sim) SetSpeed(f physic.Frequency) error {
	return nil
}

// Tx implements i2c.Bus. Each write transaction must start with a control
// byte; reads are not modeled.
func (s *Sim) Tx(addr uint16, w, r []byte) error {
	if addr != s.addr {
		return fmt.Errorf("oledsim: no device at address %#02x", addr)
	}
	if len(r) != 0 {
		return fmt.Errorf("oledsim: reads are not supported")
	}
	if len(w) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch w[0] {
	case 0x00:
		return s.commands(w[1:])
	case 0x40:
		s.data(w[1:])
		return nil
	default:
		return fmt.Errorf("oledsim: unknown control byte %#02x", w[0])
	}
}

// operandCount maps multi-byte commands to the number of operand bytes that
// follow them in the stream.
var operandCount = map[byte]int{
	0x20: 1, // memory addressing mode
	0x81: 1, // contrast
	0x8D: 1, // charge pump
	0xA8: 1, // multiplex ratio
	0xD3: 1, // display offset
	0xD5: 1, // clock divide
	0xD9: 1, // pre-charge
	0xDA: 1, // COM pins
	0xDB: 1, // VCOMH deselect
	0x21: 2, // column address window
	0x22: 2, // page address window
	0x26: 6, // horizontal scroll setup
	0x27: 6,
	0x29: 5, // diagonal scroll setup
	0x2A: 5,
}

func (s *Sim) commands(cmds []byte) error {
	for _, c := range cmds {
		if s.pendingN > 0 {
			s.operands[s.operandN] = c
			s.operandN++
			s.pendingN--
			if s.pendingN == 0 {
				s.apply()
			}
			continue
		}
		switch {
		case c >= 0xB0 && c <= 0xB7:
			s.page = int(c & 0x07)
		case c <= 0x0F:
			s.col = s.col&0xF0 | int(c)
		case c >= 0x10 && c <= 0x1F:
			s.col = int(c&0x0F)<<4 | s.col&0x0F
		case c >= 0x40 && c <= 0x7F:
			// Display start line; does not affect the write pointer.
		case c == 0xAE:
			s.on = false
		case c == 0xAF:
			s.on = true
		default:
			if n, ok := operandCount[c]; ok {
				s.pendingCmd = c
				s.pendingN = n
				s.operandN = 0
			}
			// Remaining single-byte configuration commands (segment remap,
			// scan direction, invert, ...) have no observable effect on the
			// RAM model and are accepted silently.
		}
	}
	return nil
}

// apply executes a fully assembled multi-byte command.
func (s *Sim) apply() {
	switch s.pendingCmd {
	case 0x20:
		s.mode = s.operands[0] & 0x03
	case 0x81:
		s.contrast = s.operands[0]
	case 0x21:
		s.colStart = int(s.operands[0]) & (Width - 1)
		s.colEnd = int(s.operands[1]) & (Width - 1)
		s.col = s.colStart
	case 0x22:
		s.pageStart = int(s.operands[0]) & (nbPages - 1)
		s.pageEnd = int(s.operands[1]) & (nbPages - 1)
		s.page = s.pageStart
	}
}

// data writes payload bytes at the cursor, advancing it the way the
// selected addressing mode does.
func (s *Sim) data(payload []byte) {
	for _, b := range payload {
		s.ram[s.page*Width+s.col] = b
		switch s.mode {
		case modeHorizontal:
			if s.col++; s.col > s.colEnd {
				s.col = s.colStart
				if s.page++; s.page > s.pageEnd {
					s.page = s.pageStart
				}
			}
		case modeVertical:
			if s.page++; s.page > s.pageEnd {
				s.page = s.pageStart
				if s.col++; s.col > s.colEnd {
					s.col = s.colStart
				}
			}
		default: // page addressing: wrap within the page
			if s.col++; s.col > s.colEnd {
				s.col = s.colStart
			}
		}
	}
}

// Pixel reports whether the pixel at (x, y) is lit.
func (s *Sim) Pixel(x, y int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return s.ram[(y/8)*Width+x]&(1<<(y%8)) != 0
}

// Page returns a copy of one 128 byte page of the emulated RAM.
func (s *Sim) Page(page int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 0 || page >= nbPages {
		return nil
	}
	p := make([]byte, Width)
	copy(p, s.ram[page*Width:(page+1)*Width])
	return p
}

// Contrast returns the last value written to the contrast register.
func (s *Sim) Contrast() byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contrast
}

// On reports whether the panel is powered on.
func (s *Sim) On() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.on
}

var _ i2c.Bus = &Sim{}
var _ fmt.Stringer = &Sim{}
