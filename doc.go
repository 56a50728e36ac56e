// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package oled is a container for drivers of page addressed monochrome OLED
// displays.
//
// See package sh1106 for the driver, emulator for a terminal stand-in and
// cmd/oled for a command line tool.
package oled
