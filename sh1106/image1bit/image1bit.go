// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package image1bit implements the page organized 1 bit image used as the
// frame buffer of SH1106 and SSD1306 OLED controllers.
//
// Each byte holds 8 vertically stacked pixels, the least significant bit
// being the top one. Bytes are laid out in horizontal bands of 8 rows called
// pages, one byte per column.
package image1bit

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Bit implements a 1 bit color.
type Bit bool

// Possible bitness.
const (
	Lit  Bit = true
	Dark Bit = false
)

// RGBA returns either all white or all black.
//
// Technically the monochrome display could be colored but this information
// is unavailable here.
func (b Bit) RGBA() (uint32, uint32, uint32, uint32) {
	if b {
		return 65535, 65535, 65535, 65535
	}
	return 0, 0, 0, 65535
}

func (b Bit) String() string {
	if b {
		return "Lit"
	}
	return "Dark"
}

// BitModel is the color Model for 1 bit color.
var BitModel = color.ModelFunc(convert)

// Mode selects how a drawing operation combines with the pixels already in
// the buffer.
type Mode uint8

// Drawing modes.
const (
	Off    Mode = iota // Clear the pixel.
	On                 // Set the pixel.
	Invert             // Flip the pixel.
)

func (m Mode) String() string {
	switch m {
	case Off:
		return "Off"
	case On:
		return "On"
	case Invert:
		return "Invert"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// VerticalLSB is a 1 bit image where each byte represents a vertical column
// of 8 pixels.
type VerticalLSB struct {
	// Pix holds the image's pixels, as vertically LSB-first packed bitmap. It
	// can be passed directly to the controller.
	Pix []byte
	// Stride is the number of bytes between two pages, which is the width
	// of the image.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

// NewVerticalLSB returns an initialized VerticalLSB instance.
//
// The height does not need to be a multiple of 8; the last page is then
// partially used.
func NewVerticalLSB(r image.Rectangle) *VerticalLSB {
	w := r.Dx()
	pages := (r.Dy() + 7) / 8
	return &VerticalLSB{Pix: make([]byte, pages*w), Stride: w, Rect: r}
}

// ColorModel implements image.Image.
func (i *VerticalLSB) ColorModel() color.Model {
	return BitModel
}

// Bounds implements image.Image.
func (i *VerticalLSB) Bounds() image.Rectangle {
	return i.Rect
}

// At implements image.Image.
func (i *VerticalLSB) At(x, y int) color.Color {
	return Bit(i.BitAt(x, y))
}

// BitAt is the optimized version of At. It returns false out of bounds.
func (i *VerticalLSB) BitAt(x, y int) bool {
	offset, mask, ok := i.locate(x, y)
	if !ok {
		return false
	}
	return i.Pix[offset]&mask != 0
}

// Set implements draw.Image.
func (i *VerticalLSB) Set(x, y int, c color.Color) {
	m := Off
	if convertBit(c) {
		m = On
	}
	i.SetBit(x, y, m)
}

// SetBit applies m to the pixel at (x, y). Out of bounds is ignored.
func (i *VerticalLSB) SetBit(x, y int, m Mode) {
	offset, mask, ok := i.locate(x, y)
	if !ok {
		return
	}
	apply(&i.Pix[offset], mask, m)
}

// Clear turns off every pixel.
func (i *VerticalLSB) Clear() {
	for j := range i.Pix {
		i.Pix[j] = 0
	}
}

// DrawVLine draws h pixels downward starting at (x, y).
//
// It works on whole bytes: a leading partial byte, full middle bytes and a
// trailing partial byte. The run is clipped to the image.
func (i *VerticalLSB) DrawVLine(x, y, h int, m Mode) {
	if x < i.Rect.Min.X || x >= i.Rect.Max.X {
		return
	}
	if y, h = clip(y, h, i.Rect.Min.Y, i.Rect.Max.Y); h <= 0 {
		return
	}
	x -= i.Rect.Min.X
	y -= i.Rect.Min.Y
	offset := x + (y>>3)*i.Stride
	if mod := y & 7; mod != 0 {
		mask := byte(0xFF) << mod
		if n := 8 - mod; h < n {
			mask &= byte(0xFF) >> (n - h)
		}
		apply(&i.Pix[offset], mask, m)
		h -= 8 - mod
		offset += i.Stride
	}
	for ; h >= 8; h -= 8 {
		apply(&i.Pix[offset], 0xFF, m)
		offset += i.Stride
	}
	if h > 0 {
		apply(&i.Pix[offset], byte(0xFF)>>(8-h), m)
	}
}

// DrawHLine draws w pixels rightward starting at (x, y), clipped to the
// image.
func (i *VerticalLSB) DrawHLine(x, y, w int, m Mode) {
	if y < i.Rect.Min.Y || y >= i.Rect.Max.Y {
		return
	}
	if x, w = clip(x, w, i.Rect.Min.X, i.Rect.Max.X); w <= 0 {
		return
	}
	ly := y - i.Rect.Min.Y
	offset := x - i.Rect.Min.X + (ly>>3)*i.Stride
	mask := byte(1) << (ly & 7)
	for end := offset + w; offset < end; offset++ {
		apply(&i.Pix[offset], mask, m)
	}
}

// ClearRect turns off every pixel in [x, x+w) × [y, y+h), clipped to the
// image.
func (i *VerticalLSB) ClearRect(x, y, w, h int) {
	x, w = clip(x, w, i.Rect.Min.X, i.Rect.Max.X)
	y, h = clip(y, h, i.Rect.Min.Y, i.Rect.Max.Y)
	if w <= 0 || h <= 0 {
		return
	}
	for col := x; col < x+w; col++ {
		i.DrawVLine(col, y, h, Off)
	}
}

// DrawBitmap overlays a w×h bitmap at (x, y).
//
// The bitmap is row-major, 1 bit per pixel packed MSB first, each row padded
// to a whole byte. Set bits apply m, cleared bits leave the destination
// untouched. Rows missing from a short bitmap are treated as cleared.
func (i *VerticalLSB) DrawBitmap(x, y int, bitmap []byte, w, h int, m Mode) {
	if w <= 0 || h <= 0 {
		return
	}
	stride := (w-1)/8 + 1
	for row := 0; row < h; row++ {
		base := row * stride
		for col := 0; col < w; col++ {
			idx := base + col>>3
			if idx >= len(bitmap) {
				return
			}
			if bitmap[idx]&(0x80>>(col&7)) != 0 {
				i.SetBit(x+col, y+row, m)
			}
		}
	}
}

// clip restricts the run [pos, pos+n) to [lo, hi). The returned length is
// not positive when nothing is left. pos+n is never computed, so huge values
// do not wrap around.
func clip(pos, n, lo, hi int) (int, int) {
	if n <= 0 || pos >= hi {
		return pos, 0
	}
	if pos < lo {
		// skip is negative when lo-pos overflows; the run then ends before lo.
		skip := lo - pos
		if skip < 0 || skip >= n {
			return pos, 0
		}
		n -= skip
		pos = lo
	}
	if n > hi-pos {
		n = hi - pos
	}
	return pos, n
}

// locate returns the byte offset and bit mask of the pixel at (x, y).
func (i *VerticalLSB) locate(x, y int) (int, byte, bool) {
	if !image.Pt(x, y).In(i.Rect) {
		return 0, 0, false
	}
	x -= i.Rect.Min.X
	y -= i.Rect.Min.Y
	return x + (y>>3)*i.Stride, 1 << (y & 7), true
}

func apply(b *byte, mask byte, m Mode) {
	switch m {
	case On:
		*b |= mask
	case Off:
		*b &^= mask
	case Invert:
		*b ^= mask
	}
}

// A pixel is lit when any channel is at least half intensity.
func convert(c color.Color) color.Color {
	return Bit(convertBit(c))
}

func convertBit(c color.Color) bool {
	switch t := c.(type) {
	case Bit:
		return bool(t)
	default:
		r, g, b, _ := c.RGBA()
		return (r | g | b) >= 0x8000
	}
}

var _ draw.Image = &VerticalLSB{}
