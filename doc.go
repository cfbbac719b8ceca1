// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ssd1306text controls a 128x64 monochrome OLED display via a SSD1306
// controller over I²C, without keeping a local frame buffer.
//
// Unlike frame-buffered drivers, every drawing call is translated directly
// into positioned command and data transactions against the controller's
// page-oriented display RAM. This keeps the memory footprint near zero, at
// the cost of draws being write-only: the display content cannot be read
// back or composited, only overwritten.
//
// The driver renders text with a built-in 5x8 column font (one leading blank
// column per character, so 6 pixels of advance), draws horizontal and
// vertical line runs with page-boundary mask arithmetic, and exposes the
// panel's sleep, wake and contrast controls. It implements
// display.TextDisplay for generic consumers, with the display organized as
// 8 rows of 21 character cells.
//
// For off-hardware development, the oledsim subpackage provides an i2c.Bus
// that decodes the controller protocol into a simulated display.
//
// # Datasheet
//
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
package ssd1306text
