// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package emulator

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/maruel/ansi256"

	"github.com/GermanBionicSystems/oled/sh1106"
	"github.com/GermanBionicSystems/oled/sh1106/image1bit"
)

func newPair(t *testing.T, offset int) (*sh1106.Dev, *Dev, *bytes.Buffer) {
	var out bytes.Buffer
	emu := New(&Opts{W: 16, H: 24, ColumnOffset: offset, Out: &out})
	dev, err := sh1106.New(emu, &sh1106.Opts{W: 16, H: 24, Supply: sh1106.SwitchCapVCC, ColumnOffset: offset})
	if err != nil {
		t.Fatal(err)
	}
	return dev, emu, &out
}

func TestMirrorsFrameBuffer(t *testing.T) {
	for _, offset := range []int{0, 2} {
		dev, emu, out := newPair(t, offset)
		if !emu.On() || emu.Contrast() != 0xCF {
			t.Fatalf("offset %d: init sequence not applied", offset)
		}
		dev.DrawVLine(3, 2, 19, image1bit.On)
		dev.DrawBitmap(8, 8, []byte{0xFF, 0x81, 0xFF}, 8, 3, image1bit.On)
		dev.SetPixel(15, 23, image1bit.On)
		if err := dev.Display(); err != nil {
			t.Fatal(err)
		}
		for y := 0; y < 24; y++ {
			for x := 0; x < 16; x++ {
				if got, want := emu.Pixel(x, y), dev.Pixel(x, y); got != want {
					t.Fatalf("offset %d: (%d, %d) = %t, want %t", offset, x, y, got, want)
				}
			}
		}
		if emu.Frames() != 1 {
			t.Fatalf("offset %d: %d frames rendered, want 1", offset, emu.Frames())
		}
		if lines := strings.Count(out.String(), "\n"); lines != 24 {
			t.Fatalf("offset %d: %d lines rendered, want 24", offset, lines)
		}
	}
}

func TestLitColor(t *testing.T) {
	var out bytes.Buffer
	emu := New(&Opts{W: 8, H: 16, Lit: color.RGBA{R: 255, A: 255}, Out: &out})
	dev, err := sh1106.New(emu, &sh1106.Opts{W: 8, H: 16, Supply: sh1106.SwitchCapVCC})
	if err != nil {
		t.Fatal(err)
	}
	dev.DrawVLine(0, 0, 16, image1bit.On)
	if err := dev.Display(); err != nil {
		t.Fatal(err)
	}
	red := ansi256.Default.Block(color.NRGBA{R: 255, A: 255})
	if got := strings.Count(out.String(), red); got < 16 {
		t.Fatalf("%d red blocks rendered, want at least 16", got)
	}
}

func TestColumnOffsetMismatch(t *testing.T) {
	var out bytes.Buffer
	emu := New(&Opts{W: 16, H: 16, ColumnOffset: 2, Out: &out})
	dev, err := sh1106.New(emu, &sh1106.Opts{W: 16, H: 16, Supply: sh1106.SwitchCapVCC})
	if err != nil {
		t.Fatal(err)
	}
	dev.SetPixel(2, 0, image1bit.On)
	if err := dev.Display(); err != nil {
		t.Fatal(err)
	}
	if !emu.Pixel(0, 0) || emu.Pixel(2, 0) {
		t.Fatal("picture should be shifted left by the offset")
	}
}

func TestInvertAndHalt(t *testing.T) {
	dev, emu, out := newPair(t, 2)
	dev.SetPixel(0, 0, image1bit.On)
	if err := dev.Display(); err != nil {
		t.Fatal(err)
	}
	if !emu.Lit(0, 0) || emu.Lit(1, 0) {
		t.Fatal("unexpected lit pixels")
	}
	if err := dev.Invert(true); err != nil {
		t.Fatal(err)
	}
	if !emu.Inverted() || emu.Lit(0, 0) || !emu.Lit(1, 0) {
		t.Fatal("inversion not applied")
	}
	if emu.Frames() != 2 {
		t.Fatalf("%d frames, want 2", emu.Frames())
	}
	if err := dev.Halt(); err != nil {
		t.Fatal(err)
	}
	if emu.On() || emu.Lit(1, 0) {
		t.Fatal("display should be off")
	}
	if err := dev.Display(); err != nil {
		t.Fatal(err)
	}
	if !emu.On() {
		t.Fatal("display should be back on")
	}
	if err := emu.Halt(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out.String(), "\033[0m") {
		t.Fatal("Halt() should reset colors")
	}
}

func TestScrollCommands(t *testing.T) {
	dev, emu, _ := newPair(t, 0)
	if err := dev.Scroll(sh1106.Right, sh1106.FrameRate2, 0, -1); err != nil {
		t.Fatal(err)
	}
	if !emu.Scrolling() {
		t.Fatal("scrolling should be active")
	}
	if err := dev.StopScroll(); err != nil {
		t.Fatal(err)
	}
	if emu.Scrolling() {
		t.Fatal("scrolling should be stopped")
	}
	// The arguments must not be taken for commands.
	if !emu.On() || emu.Inverted() {
		t.Fatal("scroll arguments corrupted the state")
	}
}

func TestStartLine(t *testing.T) {
	emu := New(&Opts{W: 8, H: 16, Out: &bytes.Buffer{}})
	if err := emu.SendCommands([]byte{0xB0, 0x00, 0x10}); err != nil {
		t.Fatal(err)
	}
	if err := emu.SendData([]byte{0x02}); err != nil {
		t.Fatal(err)
	}
	if !emu.Pixel(0, 1) {
		t.Fatal("(0, 1) should be set")
	}
	if err := emu.SendCommand(0x41); err != nil {
		t.Fatal(err)
	}
	if !emu.Pixel(0, 0) || emu.Pixel(0, 1) {
		t.Fatal("start line not applied")
	}
}

func TestUnreachable(t *testing.T) {
	emu := New(&Opts{W: 16, H: 16, Unreachable: true, Out: &bytes.Buffer{}})
	_, err := sh1106.New(emu, &sh1106.Opts{W: 16, H: 16, Supply: sh1106.SwitchCapVCC})
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("New() = %v, want %v", err, ErrUnreachable)
	}
	if err := emu.SendData([]byte{1}); err != ErrUnreachable {
		t.Fatalf("SendData() = %v", err)
	}
}

func TestString(t *testing.T) {
	emu := New(&Opts{W: 128, H: 64, Out: &bytes.Buffer{}})
	if got := emu.String(); got != "Emulator{128x64}" {
		t.Fatalf("String() = %q", got)
	}
}
