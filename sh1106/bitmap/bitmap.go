// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bitmap converts images into the row-major 1 bit bitmaps accepted by
// Dev.DrawBitmap.
//
// Each row is packed MSB first and padded to a whole byte. PNG, GIF, JPEG and
// BMP files can be decoded.
package bitmap

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoding.
	_ "image/jpeg" // Register JPEG decoding.
	_ "image/png"  // Register PNG decoding.
	"io"

	_ "golang.org/x/image/bmp" // Register BMP decoding.

	"github.com/GermanBionicSystems/oled/sh1106/image1bit"
)

// Bitmap is a packed 1 bit image.
type Bitmap struct {
	Bits []byte
	W    int
	H    int
}

// Stride is the number of bytes per row.
func (b *Bitmap) Stride() int {
	return (b.W + 7) / 8
}

// At reports whether the pixel at (x, y) is set. It returns false out of
// bounds.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return false
	}
	return b.Bits[y*b.Stride()+x>>3]&(0x80>>(x&7)) != 0
}

// Pack converts src. A pixel is set when image1bit.BitModel converts it to
// image1bit.Lit; with invert the selection is reversed, which suits dark
// artwork on a light background.
func Pack(src image.Image, invert bool) *Bitmap {
	r := src.Bounds()
	b := &Bitmap{W: r.Dx(), H: r.Dy()}
	stride := b.Stride()
	b.Bits = make([]byte, stride*b.H)
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			lit := image1bit.BitModel.Convert(src.At(r.Min.X+x, r.Min.Y+y)) == image1bit.Lit
			if lit != invert {
				b.Bits[y*stride+x>>3] |= 0x80 >> (x & 7)
			}
		}
	}
	return b
}

// Decode reads an image in any registered format and packs it.
func Decode(r io.Reader, invert bool) (*Bitmap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("bitmap: %w", err)
	}
	return Pack(img, invert), nil
}
