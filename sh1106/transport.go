// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh1106

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// Transport sends framed writes to the controller.
//
// Commands and pixel data are distinguished by a control marker whose
// encoding depends on the bus. Implementations must send each call as one
// transfer.
type Transport interface {
	// SendCommand sends a single command byte.
	SendCommand(c byte) error
	// SendCommands sends a list of command bytes, including their arguments,
	// behind a single control marker.
	SendCommands(c []byte) error
	// SendData sends pixel data to the display RAM at the current page and
	// column.
	SendData(d []byte) error
}

const (
	i2cCmd  = 0x00 // I²C transaction has stream of command bytes
	i2cData = 0x40 // I²C transaction has stream of data bytes
)

// i2cTransport prefixes each transaction with a control byte.
type i2cTransport struct {
	c conn.Conn
}

func (t *i2cTransport) String() string {
	return t.c.String()
}

func (t *i2cTransport) SendCommand(c byte) error {
	return t.c.Tx([]byte{i2cCmd, c}, nil)
}

func (t *i2cTransport) SendCommands(c []byte) error {
	return t.c.Tx(append([]byte{i2cCmd}, c...), nil)
}

func (t *i2cTransport) SendData(d []byte) error {
	return t.c.Tx(append([]byte{i2cData}, d...), nil)
}

// spiTransport drives the DC line: low for commands, high for data.
type spiTransport struct {
	c  conn.Conn
	dc gpio.PinOut
}

func (t *spiTransport) String() string {
	return fmt.Sprintf("%s, %s", t.c, t.dc)
}

func (t *spiTransport) SendCommand(c byte) error {
	return t.SendCommands([]byte{c})
}

func (t *spiTransport) SendCommands(c []byte) error {
	if err := t.dc.Out(gpio.Low); err != nil {
		return err
	}
	return t.c.Tx(c, nil)
}

func (t *spiTransport) SendData(d []byte) error {
	if err := t.dc.Out(gpio.High); err != nil {
		return err
	}
	return t.c.Tx(d, nil)
}
