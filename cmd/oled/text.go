// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"image"
	"os"

	"github.com/go-errors/errors"
	"github.com/golang/freetype/truetype"
	"github.com/spf13/cobra"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/GermanBionicSystems/oled/sh1106"
	"github.com/GermanBionicSystems/oled/sh1106/image1bit"
)

var (
	fontPath string
	fontSize float64
	goFont   bool
)

func init() {
	textCmd.Flags().StringVar(&fontPath, "font", "", "TrueType font file; defaults to a 7x13 bitmap font")
	textCmd.Flags().Float64Var(&fontSize, "size", 12, "font size in points, TrueType fonts only")
	textCmd.Flags().BoolVar(&goFont, "go-font", false, "use the Go regular TrueType font")
	rootCmd.AddCommand(textCmd)
}

var textCmd = &cobra.Command{
	Use:   "text <line>...",
	Short: "write text",
	Long:  "write each argument on its own line",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(withDevice(func(dev *sh1106.Dev) error {
			face, err := loadFace()
			if err != nil {
				return err
			}
			defer face.Close()
			dev.Clear()
			drawLines(dev.Image(), face, args)
			return dev.Display()
		}))
	},
}

func loadFace() (font.Face, error) {
	if fontPath == "" && !goFont {
		return basicfont.Face7x13, nil
	}
	ttf := goregular.TTF
	if fontPath != "" {
		b, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, errors.Wrap(err, 0)
		}
		ttf = b
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}
	// Hinting keeps the glyphs crisp once thresholded to 1 bit.
	return truetype.NewFace(f, &truetype.Options{Size: fontSize, Hinting: font.HintingFull}), nil
}

// drawLines draws one line per string, top to bottom, until the image is
// full.
func drawLines(dst *image1bit.VerticalLSB, face font.Face, lines []string) {
	m := face.Metrics()
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(image1bit.Lit),
		Face: face,
	}
	y := m.Ascent
	for _, line := range lines {
		if y.Ceil() > dst.Bounds().Max.Y {
			return
		}
		d.Dot = fixed.Point26_6{X: fixed.I(dst.Bounds().Min.X), Y: y}
		d.DrawString(line)
		y += m.Height
	}
}
