// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	chk.Verbose = true
}

func Test_state01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state01. point store allocation and copy")

	sto := NewPointStore(2, 4, 1)
	chk.IntAssert(len(sto.Dev), 2*4*6)
	chk.IntAssert(len(sto.Mean), 2*4)
	chk.IntAssert(len(sto.Alp), 2*4)

	dev := sto.DevAt(1, 2)
	for i := 0; i < 6; i++ {
		dev[i] = float64(10 + i)
	}
	sto.Mean[6] = -3.0
	sto.AlpAt(6)[0] = 0.25

	other := sto.GetCopy()
	chk.Array(tst, "dev", 1e-17, other.DevAt(1, 2), []float64{10, 11, 12, 13, 14, 15})
	chk.Float64(tst, "mean", 1e-17, other.Mean[6], -3.0)
	chk.Float64(tst, "alp", 1e-17, other.AlpAt(6)[0], 0.25)

	// mutating the copy must not touch the original
	other.DevAt(1, 2)[0] = 99
	chk.Float64(tst, "original intact", 1e-17, sto.DevAt(1, 2)[0], 10.0)

	sto.Set(other)
	chk.Float64(tst, "set", 1e-17, sto.DevAt(1, 2)[0], 99.0)
	io.Pforan("sto.Mean = %v\n", sto.Mean)
}

func Test_state02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state02. constitutive map")

	pm := PtMap{Nip: 4}
	chk.IntAssert(pm.Index(0, 0), 0)
	chk.IntAssert(pm.Index(1, 2), 6)
	chk.IntAssert(pm.Index(3, 3), 15)

	// explicit map
	pm = PtMap{Nip: 2, Idx: []int{3, 2, 1, 0}}
	chk.IntAssert(pm.Index(0, 0), 3)
	chk.IntAssert(pm.Index(1, 1), 0)
}
