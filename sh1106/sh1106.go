// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh1106

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/GermanBionicSystems/oled/sh1106/image1bit"
)

// Controller commands. Each is a single byte, some take arguments.
const (
	_MEMORYMODE                = 0x20
	_COLUMNADDR                = 0x21
	_PAGEADDR                  = 0x22
	_SETCONTRAST               = 0x81
	_CHARGEPUMP                = 0x8D
	_SEGREMAP                  = 0xA0
	_SETSEGMENTREMAP           = 0xA1
	_SETVERTICALSCROLLAREA     = 0xA3
	_DISPLAYALLON_RESUME       = 0xA4
	_DISPLAYALLON              = 0xA5
	_NORMALDISPLAY             = 0xA6
	_INVERTDISPLAY             = 0xA7
	_SETMULTIPLEX              = 0xA8
	_DISPLAYOFF                = 0xAE
	_DISPLAYON                 = 0xAF
	_PAGESTARTADDRESS          = 0xB0
	_COMSCANINC                = 0xC0
	_COMSCANDEC                = 0xC8
	_SETDISPLAYOFFSET          = 0xD3
	_SETDISPLAYCLOCKDIV        = 0xD5
	_SETPRECHARGE              = 0xD9
	_SETCOMPINS                = 0xDA
	_SETVCOMDETECT             = 0xDB
	_SETLOWCOLUMN              = 0x00
	_SETHIGHCOLUMN             = 0x10
	_SETSTARTLINE              = 0x40
	_RIGHT_HORIZONTAL_SCROLL   = 0x26
	_LEFT_HORIZONTAL_SCROLL    = 0x27
	_VERTICAL_RIGHT_HORIZONTAL = 0x29
	_VERTICAL_LEFT_HORIZONTAL  = 0x2A
	_DEACTIVATE_SCROLL         = 0x2E
	_ACTIVATE_SCROLL           = 0x2F
)

// ErrNotInitialized is returned when the frame buffer is flushed before the
// controller accepted its initialization sequence.
var ErrNotInitialized = errors.New("sh1106: display not initialized")

// Supply selects how the panel voltage is generated.
type Supply byte

// Supply modes.
const (
	// ExternalVCC is used when the panel voltage comes from an external
	// source.
	ExternalVCC Supply = 0x01
	// SwitchCapVCC generates the panel voltage from 3.3V with the internal
	// charge pump.
	SwitchCapVCC Supply = 0x02
)

func (s Supply) String() string {
	switch s {
	case ExternalVCC:
		return "ExternalVCC"
	case SwitchCapVCC:
		return "SwitchCapVCC"
	default:
		return fmt.Sprintf("Supply(%d)", byte(s))
	}
}

// FrameRate determines scrolling speed.
type FrameRate byte

// Possible frame rates. The value determines the number of refreshes between
// movement. The lower value, the higher speed.
const (
	FrameRate2   FrameRate = 7
	FrameRate3   FrameRate = 4
	FrameRate4   FrameRate = 5
	FrameRate5   FrameRate = 0
	FrameRate25  FrameRate = 6
	FrameRate64  FrameRate = 1
	FrameRate128 FrameRate = 2
	FrameRate256 FrameRate = 3
)

// Orientation is used for scrolling.
type Orientation byte

// Possible orientations for scrolling.
const (
	Left    Orientation = _LEFT_HORIZONTAL_SCROLL
	Right   Orientation = _RIGHT_HORIZONTAL_SCROLL
	UpRight Orientation = _VERTICAL_RIGHT_HORIZONTAL
	UpLeft  Orientation = _VERTICAL_LEFT_HORIZONTAL
)

// DefaultOpts is the recommended default options for a 128x64 SH1106 panel
// on I²C.
var DefaultOpts = Opts{
	W:            128,
	H:            64,
	Supply:       SwitchCapVCC,
	ColumnOffset: 2,
	Addr:         0x3c,
}

// SSD1306Opts are the options for a 128x64 SSD1306 panel, whose RAM is
// exactly as wide as the display.
var SSD1306Opts = Opts{
	W:            128,
	H:            64,
	Supply:       SwitchCapVCC,
	ColumnOffset: 0,
	Addr:         0x3c,
}

// Opts defines the options for the device.
type Opts struct {
	W int
	H int
	// Supply selects the charge pump setting and the matching contrast and
	// pre-charge values.
	Supply Supply
	// ColumnOffset is the first RAM column shown on the panel. The SH1106 has
	// 132 columns of RAM for a 128 pixels wide panel and needs 2, the SSD1306
	// needs 0.
	ColumnOffset int
	// Sequential corresponds to the Sequential/Alternative COM pin
	// configuration in the OLED panel hardware. Try toggling this if half the
	// rows appear to be missing on your display.
	Sequential bool
	// MirrorVertical corresponds to the COM remap configuration in the OLED
	// panel hardware. Try toggling this if the display is flipped vertically.
	MirrorVertical bool
	// MirrorHorizontal corresponds to the SEG remap configuration in the OLED
	// panel hardware. Try toggling this if the display is flipped
	// horizontally.
	MirrorHorizontal bool
	// SwapTopBottom corresponds to the Left/Right remap COM pin configuration
	// in the OLED panel hardware.
	SwapTopBottom bool
	// The I²C address of the display.
	Addr uint16
}

// NewI2C returns a Dev object that communicates over I²C to a SH1106 or
// SSD1306 display controller.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts.Addr == 0x00 {
		opts.Addr = DefaultOpts.Addr
	}
	// Maximum clock speed is 1/2.5µs = 400KHz.
	return New(&i2cTransport{c: &i2c.Dev{Bus: b, Addr: opts.Addr}}, opts)
}

// NewSPI returns a Dev object that communicates over 4-wire SPI to a SH1106
// or SSD1306 display controller.
//
// Connect SDA to SPI_MOSI, SCK to SPI_CLK, CS to SPI_CS and DC to the GPIO
// pin passed as dc.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("sh1106: a dc pin is required, 3-wire SPI is not supported")
	}
	if err := dc.Out(gpio.Low); err != nil {
		return nil, err
	}
	c, err := p.Connect(3300*physic.KiloHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	return New(&spiTransport{c: c, dc: dc}, opts)
}

// New returns a Dev driving the controller through t and runs the
// initialization sequence.
func New(t Transport, opts *Opts) (*Dev, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}
	d := &Dev{
		t:    t,
		opts: *opts,
		rect: image.Rect(0, 0, opts.W, opts.H),
		buf:  image1bit.NewVerticalLSB(image.Rect(0, 0, opts.W, opts.H)),
	}
	if err := d.Init(opts.Supply); err != nil {
		return nil, err
	}
	return d, nil
}

// Dev is an open handle to the display controller.
//
// Methods talking to the controller return ErrNotInitialized until Init
// succeeds. Drawing only touches the frame buffer and always works.
type Dev struct {
	t    Transport
	opts Opts

	// Display size.
	rect image.Rectangle
	// There is one page per band of 8 rows, each W bytes long. It is fully
	// assembled in memory and sent one page per transfer.
	buf *image1bit.VerticalLSB

	initialized bool
	halted      bool
}

func (d *Dev) String() string {
	return fmt.Sprintf("sh1106.Dev{%v, %s}", d.t, d.rect.Max)
}

// Init sends the initialization sequence to the controller.
//
// It can be called again to re-initialize the controller, for example after
// an external reset. On failure the device is left uninitialized and
// Display() refuses to run.
func (d *Dev) Init(s Supply) error {
	d.initialized = false
	if s != ExternalVCC && s != SwitchCapVCC {
		return fmt.Errorf("sh1106: invalid supply %s", s)
	}
	d.opts.Supply = s
	if err := d.t.SendCommands(initCmd(&d.opts)); err != nil {
		return fmt.Errorf("sh1106: device unreachable: %w", err)
	}
	d.initialized = true
	d.halted = false
	return nil
}

// Display sends the whole frame buffer to the controller, one page at a
// time.
func (d *Dev) Display() error {
	if !d.initialized {
		return ErrNotInitialized
	}
	if d.halted {
		if err := d.t.SendCommand(_DISPLAYON); err != nil {
			return err
		}
		d.halted = false
	}
	col := d.opts.ColumnOffset
	w := d.rect.Dx()
	for page := 0; page*8 < d.rect.Dy(); page++ {
		if err := d.t.SendCommand(_PAGESTARTADDRESS | byte(page)); err != nil {
			return err
		}
		if err := d.t.SendCommand(_SETLOWCOLUMN | byte(col&0x0F)); err != nil {
			return err
		}
		if err := d.t.SendCommand(_SETHIGHCOLUMN | byte(col>>4)); err != nil {
			return err
		}
		if err := d.t.SendData(d.buf.Pix[page*w : (page+1)*w]); err != nil {
			return err
		}
	}
	return nil
}

// Clear turns off every pixel of the frame buffer. Call Display() to show
// it.
func (d *Dev) Clear() {
	d.buf.Clear()
}

// SetPixel applies m to the pixel at (x, y). Out of bounds is ignored.
func (d *Dev) SetPixel(x, y int, m image1bit.Mode) {
	d.buf.SetBit(x, y, m)
}

// Pixel reports whether the pixel at (x, y) is on. It returns false out of
// bounds.
func (d *Dev) Pixel(x, y int) bool {
	return d.buf.BitAt(x, y)
}

// DrawVLine draws h pixels downward from (x, y).
func (d *Dev) DrawVLine(x, y, h int, m image1bit.Mode) {
	d.buf.DrawVLine(x, y, h, m)
}

// ClearRect turns off the pixels in the w×h rectangle at (x, y).
func (d *Dev) ClearRect(x, y, w, h int) {
	d.buf.ClearRect(x, y, w, h)
}

// DrawBitmap overlays a row-major, MSB first, w×h bitmap at (x, y).
func (d *Dev) DrawBitmap(x, y int, bitmap []byte, w, h int, m image1bit.Mode) {
	d.buf.DrawBitmap(x, y, bitmap, w, h, m)
}

// Buffer returns the frame buffer in controller layout. It is not a copy;
// callers may modify the bytes but must not resize it.
func (d *Dev) Buffer() []byte {
	return d.buf.Pix
}

// Image returns the frame buffer as a draw.Image.
func (d *Dev) Image() *image1bit.VerticalLSB {
	return d.buf
}

// ColorModel implements display.Drawer.
//
// It is a one bit color model, as implemented by image1bit.Bit.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
//
// It draws synchronously into the frame buffer and sends it to the display.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if img, ok := src.(*image1bit.VerticalLSB); ok && r == d.rect && img.Rect == d.rect && sp.X == 0 && sp.Y == 0 {
		// Exact size, full frame, image1bit encoding: fast path!
		copy(d.buf.Pix, img.Pix)
	} else {
		draw.Src.Draw(d.buf, r, src, sp)
	}
	return d.Display()
}

// Write writes a buffer of pixels to the display.
//
// The format is unusual as each byte represent 8 vertical pixels at a time.
// The format is horizontal bands of 8 pixels high.
//
// This function accepts the content of image1bit.VerticalLSB.Pix.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.buf.Pix) {
		return 0, fmt.Errorf("sh1106: invalid pixel stream length; expected %d bytes, got %d bytes", len(d.buf.Pix), len(pixels))
	}
	copy(d.buf.Pix, pixels)
	if err := d.Display(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Invert the display (black on white vs white on black).
//
// The frame buffer is left untouched; the controller inverts its output.
func (d *Dev) Invert(blackOnWhite bool) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	c := byte(_NORMALDISPLAY)
	if blackOnWhite {
		c = _INVERTDISPLAY
	}
	return d.t.SendCommand(c)
}

// SetContrast changes the screen contrast.
func (d *Dev) SetContrast(level byte) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	return d.t.SendCommands([]byte{_SETCONTRAST, level})
}

// Scroll scrolls an horizontal band.
//
// Only one scrolling operation can happen at a time.
//
// Both startLine and endLine must be multiples of 8.
//
// Use -1 for endLine to extend to the bottom of the display.
func (d *Dev) Scroll(o Orientation, rate FrameRate, startLine, endLine int) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	h := d.rect.Dy()
	if endLine == -1 {
		endLine = h
	}
	if startLine >= endLine {
		return fmt.Errorf("sh1106: startLine (%d) must be lower than endLine (%d)", startLine, endLine)
	}
	if startLine&7 != 0 || startLine < 0 || startLine >= h {
		return fmt.Errorf("sh1106: invalid startLine %d", startLine)
	}
	if endLine&7 != 0 || endLine < 0 || endLine > h {
		return fmt.Errorf("sh1106: invalid endLine %d", endLine)
	}
	startPage := byte(startLine / 8)
	endPage := byte(endLine / 8)
	switch o {
	case Left, Right:
		// <op>, dummy, <start page>, <rate>, <end page>, <dummy>, <dummy>, <ENABLE>
		return d.t.SendCommands([]byte{byte(o), 0x00, startPage, byte(rate), endPage - 1, 0x00, 0xFF, _ACTIVATE_SCROLL})
	case UpRight, UpLeft:
		// The vertical area covers the whole display.
		// <area>, <fixed rows>, <scrolled rows>, <op>, dummy, <start page>, <rate>, <end page>, <offset>, <ENABLE>
		return d.t.SendCommands([]byte{
			_SETVERTICALSCROLLAREA, 0x00, byte(h),
			byte(o), 0x00, startPage, byte(rate), endPage - 1, 0x01, _ACTIVATE_SCROLL,
		})
	default:
		return fmt.Errorf("sh1106: invalid orientation %#x", byte(o))
	}
}

// StopScroll stops any scrolling previously set.
//
// The RAM content is not restored; call Display() to redraw.
func (d *Dev) StopScroll() error {
	if !d.initialized {
		return ErrNotInitialized
	}
	return d.t.SendCommand(_DEACTIVATE_SCROLL)
}

// Halt turns off the display.
//
// The next Display() turns it back on.
func (d *Dev) Halt() error {
	if !d.initialized {
		return ErrNotInitialized
	}
	if err := d.t.SendCommand(_DISPLAYOFF); err != nil {
		return err
	}
	d.halted = true
	return nil
}

func validate(opts *Opts) error {
	if opts.W < 1 || opts.W > 128 {
		return fmt.Errorf("sh1106: invalid width %d", opts.W)
	}
	if opts.H < 16 || opts.H > 64 {
		return fmt.Errorf("sh1106: invalid height %d", opts.H)
	}
	if opts.ColumnOffset < 0 || opts.W+opts.ColumnOffset > 132 {
		return fmt.Errorf("sh1106: invalid column offset %d for width %d", opts.ColumnOffset, opts.W)
	}
	switch opts.Supply {
	case ExternalVCC, SwitchCapVCC:
	default:
		return fmt.Errorf("sh1106: invalid supply %s", opts.Supply)
	}
	return nil
}

// initCmd returns the initialization sequence, sent as a single command
// batch.
func initCmd(opts *Opts) []byte {
	chargePump, contrast, precharge := byte(0x14), byte(0xCF), byte(0xF1)
	if opts.Supply == ExternalVCC {
		chargePump, contrast, precharge = 0x10, 0x9F, 0x22
	}
	segRemap := byte(_SETSEGMENTREMAP)
	if opts.MirrorHorizontal {
		segRemap = _SEGREMAP
	}
	// Set COM output scan direction; C0 means normal; C8 means reversed.
	comScan := byte(_COMSCANDEC)
	if opts.MirrorVertical {
		comScan = _COMSCANINC
	}
	hwLayout := byte(0x02)
	if !opts.Sequential {
		hwLayout |= 0x10
	}
	if opts.SwapTopBottom {
		hwLayout |= 0x20
	}
	return []byte{
		_DISPLAYOFF,
		_SETDISPLAYCLOCKDIV, 0x80, // Power on reset value.
		_SETMULTIPLEX, byte(opts.H - 1),
		_SETDISPLAYOFFSET, 0x00,
		_SETSTARTLINE | 0x00,
		_CHARGEPUMP, chargePump,
		segRemap,
		comScan,
		_SETCOMPINS, hwLayout,
		_SETCONTRAST, contrast,
		_SETPRECHARGE, precharge,
		_SETVCOMDETECT, 0x40,
		_NORMALDISPLAY,
		_DISPLAYON,
	}
}

var _ display.Drawer = &Dev{}
