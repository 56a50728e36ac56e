// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sh1106 controls a monochrome OLED display via a SH1106 or SSD1306
// controller.
//
// The whole frame is kept in memory in the controller's page layout (see
// package image1bit) and drawn into with the primitives of Dev. Display()
// then sends it one page at a time, each page as a single data transfer.
// Nothing is sent to the controller while drawing.
//
// The SH1106 has 132 columns of RAM for a 128 pixels wide panel; the panel
// starts at column 2. The SSD1306 RAM matches the panel. The offset is not
// detected, set Opts.ColumnOffset or start from DefaultOpts (SH1106) or
// SSD1306Opts.
//
// The device can be driven on either I²C or SPI with 4 wires. Any other bus
// can be used by implementing Transport.
//
// # Datasheets
//
// SH1106
//
// https://cdn.velleman.eu/downloads/29/infosheets/sh1106_datasheet.pdf
//
// SSD1306
//
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
package sh1106
