// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"

	"github.com/fogleman/gg"
	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/oled/sh1106"
	"github.com/GermanBionicSystems/oled/sh1106/image1bit"
)

var hold time.Duration

func init() {
	demoCmd.Flags().DurationVar(&hold, "hold", 2*time.Second, "time each frame stays on screen")
	rootCmd.AddCommand(demoCmd)
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "run a few drawing demos",
	Long:  "draw nested rectangles, a sine wave, circles and a bitmap, then invert the display",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(withDevice(demo))
	},
}

// smiley is an 8x8 bitmap.
var smiley = []byte{0x3C, 0x42, 0xA5, 0x81, 0xA5, 0x99, 0x42, 0x3C}

func demo(dev *sh1106.Dev) error {
	for _, step := range []func(dev *sh1106.Dev) error{rectangles, sine, circles, sprites, invert} {
		if err := step(dev); err != nil {
			return errors.Wrap(err, 0)
		}
		time.Sleep(hold)
	}
	return dev.Invert(false)
}

// rectangles draws nested rectangles.
func rectangles(dev *sh1106.Dev) error {
	img := dev.Image()
	colors := []color.Color{image1bit.Lit, image1bit.Dark}
	w, h := dev.Bounds().Dx(), dev.Bounds().Dy()
	for n := 0; w > 0 && h > 0; w, h, n = w-4, h-4, n+1 {
		r := image.Rect(0, 0, w, h).Add(image.Pt(n*2, n*2))
		draw.Draw(img, r, image.NewUniform(colors[n%2]), image.Point{}, draw.Src)
	}
	return dev.Display()
}

// sine draws axes and a sine wave.
func sine(dev *sh1106.Dev) error {
	dev.Clear()
	w, h := dev.Bounds().Dx(), dev.Bounds().Dy()
	dev.Image().DrawHLine(0, h/2-1, w, image1bit.On)
	dev.DrawVLine(w/2-1, 0, h, image1bit.On)
	step := 4 * math.Pi / float64(w)
	scale := float64(h/2 - 4)
	for x := 0; x < w; x++ {
		y := int(math.Sin(float64(x)*step)*scale) + h/2
		dev.SetPixel(x, y, image1bit.Invert)
	}
	return dev.Display()
}

// circles renders anti-aliased circles with gg; the frame buffer thresholds
// them.
func circles(dev *sh1106.Dev) error {
	w, h := dev.Bounds().Dx(), dev.Bounds().Dy()
	dc := gg.NewContext(w, h)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(2)
	for r := 4.0; r < float64(h)/2; r += 6 {
		dc.DrawCircle(float64(w)/2, float64(h)/2, r)
		dc.Stroke()
	}
	return dev.Draw(dev.Bounds(), dc.Image(), image.Point{})
}

// sprites tiles the smiley, punching a hole with ClearRect.
func sprites(dev *sh1106.Dev) error {
	dev.Clear()
	w, h := dev.Bounds().Dx(), dev.Bounds().Dy()
	for y := 0; y < h; y += 10 {
		for x := 0; x < w; x += 10 {
			dev.DrawBitmap(x, y, smiley, 8, 8, image1bit.On)
		}
	}
	dev.ClearRect(w/4, h/4, w/2, h/2)
	return dev.Display()
}

func invert(dev *sh1106.Dev) error {
	return dev.Invert(true)
}
