// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// oled draws on a SH1106 or SSD1306 display, or on a terminal emulation of
// one.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/oled/emulator"
	"github.com/GermanBionicSystems/oled/sh1106"
)

var rootCmd = &cobra.Command{
	Use:          "oled",
	Short:        "oled draws on a page addressed OLED display",
	Long:         "oled draws on a SH1106 or SSD1306 OLED display over I²C or SPI, or on a terminal emulation of one",
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
		os.Exit(1)
	},
}

var (
	debug bool
	flags devFlags
)

type devFlags struct {
	bus         string
	spiPort     string
	dc          string
	addr        uint16
	width       int
	height      int
	offset      int
	ssd1306     bool
	externalVCC bool
	sequential  bool
	emulate     bool
}

func init() {
	cobra.EnablePrefixMatching = true
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&debug, "debug", false, "print error stacks")
	pf.StringVar(&flags.bus, "bus", "", "I²C bus to use")
	pf.StringVar(&flags.spiPort, "spi", "", "SPI port to use instead of I²C")
	pf.StringVar(&flags.dc, "dc", "GPIO24", "data/command GPIO pin, SPI only")
	pf.Uint16Var(&flags.addr, "addr", sh1106.DefaultOpts.Addr, "I²C address")
	pf.IntVar(&flags.width, "width", sh1106.DefaultOpts.W, "display width")
	pf.IntVar(&flags.height, "height", sh1106.DefaultOpts.H, "display height")
	pf.IntVar(&flags.offset, "column-offset", -1, "first RAM column shown; -1 picks the controller default")
	pf.BoolVar(&flags.ssd1306, "ssd1306", false, "the controller is a SSD1306")
	pf.BoolVar(&flags.externalVCC, "external-vcc", false, "the panel voltage is supplied externally")
	pf.BoolVar(&flags.sequential, "sequential", false, "sequential COM pin configuration, often needed on 32 rows displays")
	pf.BoolVar(&flags.emulate, "emulate", false, "draw in the terminal instead of on a display")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// run executes fn and reports its error, with a stack trace in debug mode.
func run(fn func() error) {
	err := fn()
	if err == nil {
		return
	}
	if stackFramer, ok := err.(interface{ ErrorStack() string }); debug && ok {
		fmt.Fprintln(os.Stderr, stackFramer.ErrorStack())
		os.Exit(1)
	}
	log.Fatal(err)
}

func (f *devFlags) opts() sh1106.Opts {
	opts := sh1106.DefaultOpts
	if f.ssd1306 {
		opts = sh1106.SSD1306Opts
	}
	opts.W = f.width
	opts.H = f.height
	opts.Addr = f.addr
	opts.Sequential = f.sequential
	if f.offset >= 0 {
		opts.ColumnOffset = f.offset
	}
	if f.externalVCC {
		opts.Supply = sh1106.ExternalVCC
	}
	return opts
}

// openDevice opens the display selected by the flags. The returned function
// releases it.
func openDevice() (*sh1106.Dev, func() error, error) {
	opts := flags.opts()
	if flags.emulate {
		emu := emulator.New(&emulator.Opts{W: opts.W, H: opts.H, ColumnOffset: opts.ColumnOffset})
		dev, err := sh1106.New(emu, &opts)
		if err != nil {
			return nil, nil, errors.Wrap(err, 0)
		}
		return dev, emu.Halt, nil
	}

	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		return nil, nil, errors.Wrap(err, 0)
	}
	if flags.spiPort != "" {
		p, err := spireg.Open(flags.spiPort)
		if err != nil {
			return nil, nil, errors.Wrap(err, 0)
		}
		dc := gpioreg.ByName(flags.dc)
		if dc == nil {
			_ = p.Close()
			return nil, nil, errors.Errorf("invalid dc pin %q", flags.dc)
		}
		dev, err := sh1106.NewSPI(p, dc, &opts)
		if err != nil {
			_ = p.Close()
			return nil, nil, errors.Wrap(err, 0)
		}
		return dev, p.Close, nil
	}
	b, err := i2creg.Open(flags.bus)
	if err != nil {
		return nil, nil, errors.Wrap(err, 0)
	}
	dev, err := sh1106.NewI2C(b, &opts)
	if err != nil {
		_ = b.Close()
		return nil, nil, errors.Wrap(err, 0)
	}
	return dev, b.Close, nil
}

// withDevice opens the display, runs fn and releases the display.
func withDevice(fn func(dev *sh1106.Dev) error) func() error {
	return func() error {
		dev, closer, err := openDevice()
		if err != nil {
			return err
		}
		err = fn(dev)
		if cerr := closer(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, 0)
		}
		return err
	}
}
