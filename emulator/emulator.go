// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package emulator implements a SH1106 controller that outputs to terminal
// (stdout) using ANSI color codes.
//
// It decodes the command and data stream the driver sends and keeps its own
// display RAM, so what is shown is what the panel would show. Useful while
// the display is still in the mail.
package emulator

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"github.com/GermanBionicSystems/oled/sh1106"
)

// The SH1106 RAM is 132 columns by 8 pages.
const (
	ramWidth = 132
	ramPages = 8
	ramRows  = ramPages * 8
)

// ErrUnreachable is returned by every transfer when Opts.Unreachable is set.
var ErrUnreachable = errors.New("emulator: no device acknowledged the address")

// Opts represents the options available for this display.
type Opts struct {
	W int
	H int
	// ColumnOffset is the first RAM column shown, like the physical panel
	// wiring. It must match sh1106.Opts.ColumnOffset for a correct picture.
	ColumnOffset int
	Palette      *ansi256.Palette
	// Lit is the color of lit pixels. Defaults to white.
	Lit color.Color
	// Out is where frames are written. Defaults to stdout.
	Out io.Writer
	// Unreachable makes every transfer fail, as if nothing answered on the
	// bus.
	Unreachable bool

	_ struct{}
}

// Dev is an OLED controller emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	opts    Opts
	palette ansi256.Palette
	lit     color.NRGBA

	ram       [ramPages][ramWidth]byte
	page      int
	col       int
	startLine int
	on        bool
	inverted  bool
	allOn     bool
	scrolling bool
	contrast  byte

	// Command waiting for its arguments.
	pending []byte
	frames  int
	buf     bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Out
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	lit := color.NRGBA{255, 255, 255, 255}
	if opts.Lit != nil {
		lit = color.NRGBAModel.Convert(opts.Lit).(color.NRGBA)
	}
	return &Dev{w: w, opts: *opts, palette: *p, lit: lit}
}

func (d *Dev) String() string {
	return fmt.Sprintf("Emulator{%dx%d}", d.opts.W, d.opts.H)
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the console is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// SendCommand implements sh1106.Transport.
func (d *Dev) SendCommand(c byte) error {
	return d.SendCommands([]byte{c})
}

// SendCommands implements sh1106.Transport.
func (d *Dev) SendCommands(c []byte) error {
	if d.opts.Unreachable {
		return ErrUnreachable
	}
	redraw := false
	for _, b := range c {
		d.pending = append(d.pending, b)
		if len(d.pending)-1 < argCount(d.pending[0]) {
			continue
		}
		if d.exec(d.pending[0], d.pending[1:]) {
			redraw = true
		}
		d.pending = d.pending[:0]
	}
	if redraw && d.frames != 0 {
		return d.refresh()
	}
	return nil
}

// SendData implements sh1106.Transport.
//
// Bytes are written at the current page from the current column, which
// increments after each byte. A frame is rendered once the last visible page
// is written.
func (d *Dev) SendData(p []byte) error {
	if d.opts.Unreachable {
		return ErrUnreachable
	}
	for _, b := range p {
		if d.col < ramWidth {
			d.ram[d.page][d.col] = b
		}
		d.col++
	}
	if d.page == (d.opts.H+7)/8-1 {
		return d.refresh()
	}
	return nil
}

// Pixel returns the content of the display RAM shown at (x, y), before
// inversion.
func (d *Dev) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= d.opts.W || y >= d.opts.H {
		return false
	}
	col := x + d.opts.ColumnOffset
	if col >= ramWidth {
		return false
	}
	row := (y + d.startLine) % ramRows
	return d.ram[row>>3][col]&(1<<(row&7)) != 0
}

// Lit reports whether the pixel at (x, y) is lit, taking the display state
// into account.
func (d *Dev) Lit(x, y int) bool {
	if !d.on {
		return false
	}
	if d.allOn {
		return true
	}
	return d.Pixel(x, y) != d.inverted
}

// On reports whether the display is on.
func (d *Dev) On() bool {
	return d.on
}

// Inverted reports whether the display is inverted.
func (d *Dev) Inverted() bool {
	return d.inverted
}

// Scrolling reports whether hardware scrolling is active.
func (d *Dev) Scrolling() bool {
	return d.scrolling
}

// Contrast returns the last contrast level set.
func (d *Dev) Contrast() byte {
	return d.contrast
}

// Frames returns the number of frames rendered.
func (d *Dev) Frames() int {
	return d.frames
}

// exec runs a complete command. It returns true when the output changed.
func (d *Dev) exec(c byte, args []byte) bool {
	switch {
	case c <= 0x0F:
		d.col = d.col&0xF0 | int(c&0x0F)
	case c <= 0x1F:
		d.col = int(c&0x0F)<<4 | d.col&0x0F
	case c >= 0x40 && c <= 0x7F:
		d.startLine = int(c & 0x3F)
		return true
	case c >= 0xB0 && c <= 0xB7:
		d.page = int(c & 0x07)
	}
	switch c {
	case 0xAE:
		d.on = false
		return true
	case 0xAF:
		d.on = true
		return true
	case 0xA6:
		d.inverted = false
		return true
	case 0xA7:
		d.inverted = true
		return true
	case 0xA4:
		d.allOn = false
		return true
	case 0xA5:
		d.allOn = true
		return true
	case 0x81:
		d.contrast = args[0]
	case 0x2E:
		d.scrolling = false
	case 0x2F:
		d.scrolling = true
	}
	return false
}

// argCount returns the number of argument bytes following command c.
func argCount(c byte) int {
	switch c {
	case 0x20, 0x81, 0x8D, 0xA8, 0xAD, 0xD3, 0xD5, 0xD9, 0xDA, 0xDB:
		return 1
	case 0x21, 0x22, 0xA3:
		return 2
	case 0x29, 0x2A:
		return 5
	case 0x26, 0x27:
		return 6
	}
	return 0
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	if d.frames != 0 {
		// Move back over the previous frame.
		fmt.Fprintf(&d.buf, "\033[%dA", d.opts.H)
	}
	dark := color.NRGBA{0, 0, 0, 255}
	for y := 0; y < d.opts.H; y++ {
		_, _ = d.buf.WriteString("\r\033[0m")
		for x := 0; x < d.opts.W; x++ {
			c := dark
			if d.Lit(x, y) {
				c = d.lit
			}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.frames++
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ sh1106.Transport = &Dev{}
var _ fmt.Stringer = &Dev{}
