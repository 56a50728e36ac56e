// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"strconv"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/oled/sh1106"
)

func init() {
	rootCmd.AddCommand(clearCmd, invertCmd, contrastCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "turn off every pixel",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(withDevice(func(dev *sh1106.Dev) error {
			dev.Clear()
			return dev.Display()
		}))
	},
}

var invertCmd = &cobra.Command{
	Use:   "invert <true|false>",
	Short: "invert the display",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func() error {
			on, err := strconv.ParseBool(args[0])
			if err != nil {
				return errors.Wrap(err, 0)
			}
			return withDevice(func(dev *sh1106.Dev) error {
				return dev.Invert(on)
			})()
		})
	},
}

var contrastCmd = &cobra.Command{
	Use:   "contrast <0-255>",
	Short: "set the contrast level",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func() error {
			level, err := strconv.ParseUint(args[0], 0, 8)
			if err != nil {
				return errors.Wrap(err, 0)
			}
			return withDevice(func(dev *sh1106.Dev) error {
				return dev.SetContrast(byte(level))
			})()
		})
	},
}
