// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !nolegacycolors

package image1bit

// Historical names of the drawing modes, kept for code written against the
// Adafruit style API. Build with the nolegacycolors tag to drop them.
const (
	Black   = Off
	White   = On
	Inverse = Invert
)
