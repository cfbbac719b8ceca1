// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306text

import (
	"bytes"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

// setupRecord returns an initialized device on a recording bus, with the
// init sequence traffic already discarded.
func setupRecord(t *testing.T) (*i2ctest.Record, *Dev) {
	t.Helper()
	b := &i2ctest.Record{}
	d, err := NewI2C(b, &DefaultOpts)
	if err != nil {
		t.Fatal(err)
	}
	b.Ops = nil
	return b, d
}

// checkOps asserts the recorded write payloads, control byte included.
func checkOps(t *testing.T, b *i2ctest.Record, want ...[]byte) {
	t.Helper()
	if len(b.Ops) != len(want) {
		t.Fatalf("recorded %d transactions, want %d", len(b.Ops), len(want))
	}
	for i, op := range b.Ops {
		if op.Addr != DefaultOpts.Addr {
			t.Errorf("op #%d: addr %#02x, want %#02x", i, op.Addr, DefaultOpts.Addr)
		}
		if len(op.R) != 0 {
			t.Errorf("op #%d: unexpected read of %d bytes", i, len(op.R))
		}
		if !bytes.Equal(op.W, want[i]) {
			t.Errorf("op #%d: wrote % #x, want % #x", i, op.W, want[i])
		}
	}
}

func posCmd(x, page int) []byte {
	return []byte{i2cCmd, byte(0xB0 + page), byte(0x10 | x>>4), byte(x & 0x0F)}
}

func TestNewI2C_initSequence(t *testing.T) {
	b := &i2ctest.Record{}
	if _, err := NewI2C(b, &DefaultOpts); err != nil {
		t.Fatal(err)
	}
	want := append([]byte{i2cCmd}, initSequence...)
	checkOps(t, b, want)
}

func TestNewI2C_defaultAddr(t *testing.T) {
	b := &i2ctest.Record{}
	if _, err := NewI2C(b, &Opts{}); err != nil {
		t.Fatal(err)
	}
	if b.Ops[0].Addr != 0x3C {
		t.Errorf("addr %#02x, want 0x3c", b.Ops[0].Addr)
	}
}

func TestSetPosition_allPositions(t *testing.T) {
	b, d := setupRecord(t)
	for x := 0; x < Width; x++ {
		for page := 0; page < nbPages; page++ {
			b.Ops = nil
			if err := d.SetPosition(x, page); err != nil {
				t.Fatalf("SetPosition(%d, %d): %v", x, page, err)
			}
			checkOps(t, b, posCmd(x, page))
		}
	}
}

func TestSetPosition_outOfRange(t *testing.T) {
	b, d := setupRecord(t)
	for _, c := range [][2]int{{-1, 0}, {Width, 0}, {0, -1}, {0, nbPages}} {
		if err := d.SetPosition(c[0], c[1]); err == nil {
			t.Errorf("SetPosition(%d, %d): expected error", c[0], c[1])
		}
	}
	if len(b.Ops) != 0 {
		t.Errorf("rejected positions must not touch the bus, got %d ops", len(b.Ops))
	}
}

func TestPowerAndContrast(t *testing.T) {
	b, d := setupRecord(t)
	if err := d.Sleep(); err != nil {
		t.Fatal(err)
	}
	if err := d.Wake(); err != nil {
		t.Fatal(err)
	}
	if err := d.SetContrast(0x7F); err != nil {
		t.Fatal(err)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	checkOps(t, b,
		[]byte{i2cCmd, _DISPLAYOFF},
		[]byte{i2cCmd, _DISPLAYON},
		[]byte{i2cCmd, _SETCONTRAST, 0x7F},
		[]byte{i2cCmd, _DISPLAYOFF},
	)
}

func TestDisplayOnOff(t *testing.T) {
	b, d := setupRecord(t)
	if err := d.Display(false); err != nil {
		t.Fatal(err)
	}
	if err := d.Display(true); err != nil {
		t.Fatal(err)
	}
	checkOps(t, b,
		[]byte{i2cCmd, _DISPLAYOFF},
		[]byte{i2cCmd, _DISPLAYON},
	)
}

func TestBusError_propagates(t *testing.T) {
	// A playback with no scripted traffic fails the first transaction.
	hookCalls := 0
	pb := &i2ctest.Playback{DontPanic: true}
	_, err := NewI2C(pb, &Opts{OnBusError: func(error) { hookCalls++ }})
	if err == nil {
		t.Fatal("expected init to fail on a dead bus")
	}
	if hookCalls != 1 {
		t.Errorf("fault hook called %d times, want 1", hookCalls)
	}
}

func TestBusError_midDraw(t *testing.T) {
	// Script only the init and the first page positioning of the draw; the
	// first data transaction then fails and must abort the run.
	pb := &i2ctest.Playback{
		DontPanic: true,
		Ops: []i2ctest.IO{
			{Addr: 0x3C, W: append([]byte{i2cCmd}, initSequence...)},
			{Addr: 0x3C, W: posCmd(5, 0)},
		},
	}
	d, err := NewI2C(pb, &DefaultOpts)
	if err != nil {
		t.Fatal(err)
	}
	if err = d.DrawVLine(5, 0, 64); err == nil {
		t.Fatal("expected the draw to propagate the bus failure")
	}
}

func TestString(t *testing.T) {
	_, d := setupRecord(t)
	if s := d.String(); s != "ssd1306text.Dev{128x64 @0x3c}" {
		t.Errorf("unexpected String(): %q", s)
	}
}
