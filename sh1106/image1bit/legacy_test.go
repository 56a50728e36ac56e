// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !nolegacycolors

package image1bit

import "testing"

func TestLegacyNames(t *testing.T) {
	for _, tc := range []struct {
		legacy, canonical Mode
	}{
		{Black, Off},
		{White, On},
		{Inverse, Invert},
	} {
		if tc.legacy != tc.canonical {
			t.Errorf("%s != %s", tc.legacy, tc.canonical)
		}
	}
	if Black != 0 || White != 1 || Inverse != 2 {
		t.Errorf("unexpected values %d %d %d", Black, White, Inverse)
	}
}
