// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh1106_test

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/oled/sh1106"
	"github.com/GermanBionicSystems/oled/sh1106/image1bit"
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

	opts := sh1106.DefaultOpts
	dev, err := sh1106.NewI2C(b, &opts)
	if err != nil {
		log.Fatalf("failed to initialize display: %v", err)
	}
	fmt.Printf("device=%s\n", dev)

	// Frame around the screen.
	w, h := opts.W, opts.H
	dev.DrawVLine(0, 0, h, image1bit.On)
	dev.DrawVLine(w-1, 0, h, image1bit.On)
	dev.Image().DrawHLine(0, 0, w, image1bit.On)
	dev.Image().DrawHLine(0, h-1, w, image1bit.On)

	// An 8x8 smiley in the middle.
	smiley := []byte{0x3C, 0x42, 0xA5, 0x81, 0xA5, 0x99, 0x42, 0x3C}
	dev.DrawBitmap(w/2-4, h/2-4, smiley, 8, 8, image1bit.On)

	if err := dev.Display(); err != nil {
		log.Fatal(err)
	}
	_ = dev.Invert(true)
}
