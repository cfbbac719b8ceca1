// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306text_test

import (
	"log"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/greenonline/ssd1306text"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	// Use i2creg I²C bus registry to find the first available I²C bus.
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()
	dev, err := ssd1306text.NewI2C(b, &ssd1306text.DefaultOpts)
	if err != nil {
		log.Fatalf("failed to initialize display: %s", err)
	}
	if err := dev.Clear(); err != nil {
		log.Fatal(err)
	}

	// Frame the panel.
	_ = dev.DrawHLine(0, 0, 128)
	_ = dev.DrawHLine(0, 63, 128)
	_ = dev.DrawVLine(0, 0, 64)
	_ = dev.DrawVLine(127, 0, 64)

	// Say hello, then show a number.
	if err := dev.MoveTo(2, 1); err != nil {
		log.Fatal(err)
	}
	if _, err := dev.WriteString("Hello from periph!"); err != nil {
		log.Fatal(err)
	}
	if err := dev.MoveTo(4, 1); err != nil {
		log.Fatal(err)
	}
	if _, err := dev.WriteString("Counter = "); err != nil {
		log.Fatal(err)
	}
	if err := dev.WriteInt(800); err != nil {
		log.Fatal(err)
	}

	_ = dev.Halt()
}
