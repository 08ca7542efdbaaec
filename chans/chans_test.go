// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import "testing"

func TestCurrent(t *testing.T) {
	g := Chans{}
	g.SetAll(1, 2, 0.5, 0)
	erev := Chans{}
	erev.SetAll(1, -0.7, -0.5, 0.53)
	c := g.Current(&erev, 0)
	cor := Chans{Ca: -1, K: 1.4, L: 0.25, Na: 0}
	if c != cor {
		t.Errorf("current: %v != %v\n", c, cor)
	}
}
