// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bitmap

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/bmp"

	"github.com/GermanBionicSystems/oled/sh1106/image1bit"
)

func pattern() *image.Gray {
	// 10x2, set pixels on the diagonal and the last column.
	img := image.NewGray(image.Rect(5, 5, 15, 7))
	img.SetGray(5, 5, color.Gray{Y: 255})
	img.SetGray(6, 6, color.Gray{Y: 255})
	img.SetGray(14, 5, color.Gray{Y: 200})
	img.SetGray(14, 6, color.Gray{Y: 100})
	return img
}

func TestPack(t *testing.T) {
	got := Pack(pattern(), false)
	want := &Bitmap{
		W: 10, H: 2,
		Bits: []byte{
			0b10000000, 0b01000000,
			0b01000000, 0b00000000,
		},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Fatalf("Pack() difference (-got +want):\n%s", diff)
	}
	if !got.At(0, 0) || !got.At(9, 0) || got.At(9, 1) || got.At(10, 0) || got.At(-1, 0) {
		t.Fatal("unexpected At() result")
	}
}

func TestPackInvert(t *testing.T) {
	got := Pack(pattern(), true)
	want := []byte{
		0b01111111, 0b10000000,
		0b10111111, 0b11000000,
	}
	if diff := cmp.Diff(got.Bits, want); diff != "" {
		t.Fatalf("Pack() difference (-got +want):\n%s", diff)
	}
}

func TestDecode(t *testing.T) {
	for _, tc := range []struct {
		name   string
		encode func(buf *bytes.Buffer, img image.Image) error
	}{
		{"png", func(buf *bytes.Buffer, img image.Image) error { return png.Encode(buf, img) }},
		{"bmp", func(buf *bytes.Buffer, img image.Image) error { return bmp.Encode(buf, img) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tc.encode(&buf, pattern()); err != nil {
				t.Fatal(err)
			}
			got, err := Decode(&buf, false)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(got, Pack(pattern(), false)); diff != "" {
				t.Fatalf("Decode() difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode(strings.NewReader("not an image"), false); err == nil {
		t.Fatal("expected error")
	}
}

func TestDrawBitmap(t *testing.T) {
	b := Pack(pattern(), false)
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 16, 8))
	img.DrawBitmap(1, 1, b.Bits, b.W, b.H, image1bit.On)
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			if got, want := img.BitAt(x, y), b.At(x-1, y-1); got != want {
				t.Fatalf("(%d, %d) = %t, want %t", x, y, got, want)
			}
		}
	}
}
