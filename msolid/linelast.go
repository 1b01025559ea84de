// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/CRC-IT/GEOSX/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// LinElast implements the reference isotropic linear elastic rate update:
//  mean += tr(Dadt)·K
//  dev  += 2·G·(Dadt - tr(Dadt)/3·I)
//  dev  := Rot·dev·Rotᵀ
type LinElast struct {
	K float64 // bulk modulus
	G float64 // shear modulus
}

// add model to factory
func init() {
	allocators["lin-elast"] = func() Model { return new(LinElast) }
}

// Init initialises model. Either K and G or E and nu must be given.
func (o *LinElast) Init(prms dbf.Params) (err error) {
	var E, ν float64
	var hasE, hasν bool
	for _, p := range prms {
		switch p.N {
		case "K":
			o.K = p.V
		case "G":
			o.G = p.V
		case "E":
			E, hasE = p.V, true
		case "nu":
			ν, hasν = p.V, true
		case "rho":
		default:
			return chk.Err("lin-elast: parameter named %q is incorrect", p.N)
		}
	}
	if hasE && hasν {
		o.K = Calc_K_from_Enu(E, ν)
		o.G = Calc_G_from_Enu(E, ν)
	}
	if o.K <= 0 || o.G <= 0 {
		return chk.Err("lin-elast: K=%g and G=%g must be positive", o.K, o.G)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o LinElast) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "K", V: 1000},
		&dbf.P{N: "G", V: 600},
	}
}

// Update updates the stress state of point (k,q) in place
func (o *LinElast) Update(dadt, rot *tsr.Ten, m, q, k int, sto *PointStore) (err error) {

	// volumetric part
	tr := dadt[0][0] + dadt[1][1] + dadt[2][2]
	sto.Mean[m] += tr * o.K

	// deviatoric increment
	dev := sto.DevAt(k, q)
	dev[0] += 2.0 * o.G * (dadt[0][0] - tr/3.0)
	dev[1] += 2.0 * o.G * dadt[1][0]
	dev[2] += 2.0 * o.G * (dadt[1][1] - tr/3.0)
	dev[3] += 2.0 * o.G * dadt[2][0]
	dev[4] += 2.0 * o.G * dadt[2][1]
	dev[5] += 2.0 * o.G * (dadt[2][2] - tr/3.0)

	// carry updated deviatoric stress back into the fixed frame
	var s tsr.Sym
	copy(s[:], dev)
	tsr.RotSym(&s, rot)
	copy(dev, s[:])
	return
}
