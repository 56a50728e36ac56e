// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/oled/sh1106"
	"github.com/GermanBionicSystems/oled/sh1106/bitmap"
	"github.com/GermanBionicSystems/oled/sh1106/image1bit"
)

var invertImage bool

func init() {
	imageCmd.Flags().BoolVar(&invertImage, "invert", false, "light the dark pixels of the image instead")
	rootCmd.AddCommand(imageCmd)
}

var imageCmd = &cobra.Command{
	Use:   "image <file>",
	Short: "show an image",
	Long:  "show a PNG, GIF, JPEG or BMP image centered on the display",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(withDevice(func(dev *sh1106.Dev) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, 0)
			}
			defer f.Close()
			b, err := bitmap.Decode(f, invertImage)
			if err != nil {
				return errors.Wrap(err, 0)
			}
			r := dev.Bounds()
			dev.Clear()
			dev.DrawBitmap((r.Dx()-b.W)/2, (r.Dy()-b.H)/2, b.Bits, b.W, b.H, image1bit.On)
			return dev.Display()
		}))
	},
}
