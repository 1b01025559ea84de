// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/CRC-IT/GEOSX/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// VonMises implements J2 plasticity with power-law isotropic hardening
//  σy(α) = Y0 + H·α^h
// via radial return. With h ≠ 1 the return mapping is solved by Newton
// iterations; failure to converge is surfaced as ConstitutiveError so the
// caller can retry with a smaller time step.
type VonMises struct {
	K      float64 // bulk modulus
	G      float64 // shear modulus
	Y0     float64 // initial yield stress
	H      float64 // hardening modulus
	Hexp   float64 // hardening exponent
	NmaxIt int     // max Newton iterations
	Tol    float64 // Newton tolerance
}

// add model to factory
func init() {
	allocators["vonmises"] = func() Model { return new(VonMises) }
}

// Init initialises model
func (o *VonMises) Init(prms dbf.Params) (err error) {
	o.Hexp = 1.0
	o.NmaxIt = 20
	o.Tol = 1e-10
	for _, p := range prms {
		switch p.N {
		case "K":
			o.K = p.V
		case "G":
			o.G = p.V
		case "Y0":
			o.Y0 = p.V
		case "H":
			o.H = p.V
		case "hexp":
			o.Hexp = p.V
		case "nmaxit":
			o.NmaxIt = int(p.V)
		case "tol":
			o.Tol = p.V
		case "rho":
		default:
			return chk.Err("vonmises: parameter named %q is incorrect", p.N)
		}
	}
	if o.K <= 0 || o.G <= 0 || o.Y0 <= 0 {
		return chk.Err("vonmises: K=%g, G=%g and Y0=%g must be positive", o.K, o.G, o.Y0)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o VonMises) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "K", V: 1000},
		&dbf.P{N: "G", V: 600},
		&dbf.P{N: "Y0", V: 0.5},
		&dbf.P{N: "H", V: 10},
		&dbf.P{N: "hexp", V: 0.5},
	}
}

// NIntVars returns the number of internal variables (the accumulated
// plastic strain α)
func (o VonMises) NIntVars() int { return 1 }

// Update updates the stress state of point (k,q) in place
func (o *VonMises) Update(dadt, rot *tsr.Ten, m, q, k int, sto *PointStore) (err error) {

	// volumetric part is always elastic
	tr := dadt[0][0] + dadt[1][1] + dadt[2][2]
	sto.Mean[m] += tr * o.K

	// trial deviatoric stress
	dev := sto.DevAt(k, q)
	dev[0] += 2.0 * o.G * (dadt[0][0] - tr/3.0)
	dev[1] += 2.0 * o.G * dadt[1][0]
	dev[2] += 2.0 * o.G * (dadt[1][1] - tr/3.0)
	dev[3] += 2.0 * o.G * dadt[2][0]
	dev[4] += 2.0 * o.G * dadt[2][1]
	dev[5] += 2.0 * o.G * (dadt[2][2] - tr/3.0)

	// equivalent stress: qtr = √(3/2)·‖dev‖ with off-diagonals twice
	nrm2 := dev[0]*dev[0] + dev[2]*dev[2] + dev[5]*dev[5] +
		2.0*(dev[1]*dev[1]+dev[3]*dev[3]+dev[4]*dev[4])
	qtr := math.Sqrt(1.5 * nrm2)

	α := &sto.AlpAt(m)[0]
	ftr := qtr - o.Y0 - o.H*math.Pow(*α, o.Hexp)
	if ftr > 0 {

		// radial return: solve qtr - 3G·Δγ - σy(α+Δγ) = 0 for Δγ
		Δγ := ftr / (3.0*o.G + o.H) // first guess from linear hardening
		var it int
		for it = 0; it < o.NmaxIt; it++ {
			f := qtr - 3.0*o.G*Δγ - o.Y0 - o.H*math.Pow(*α+Δγ, o.Hexp)
			if math.Abs(f) < o.Tol {
				break
			}
			dfdγ := -3.0*o.G - o.H*o.Hexp*math.Pow(*α+Δγ, o.Hexp-1.0)
			Δγ -= f / dfdγ
			if Δγ < 0 || math.IsNaN(Δγ) {
				return &ConstitutiveError{Eid: k, Ipid: q,
					Reason: io.Sf("return mapping diverged: Δγ = %g", Δγ)}
			}
		}
		if it == o.NmaxIt {
			return &ConstitutiveError{Eid: k, Ipid: q,
				Reason: io.Sf("return mapping did not converge after %d iterations", o.NmaxIt)}
		}

		// scale deviatoric stress back onto the yield surface
		c := 1.0 - 3.0*o.G*Δγ/qtr
		for i := 0; i < 6; i++ {
			dev[i] *= c
		}
		*α += Δγ
	}

	// carry updated deviatoric stress back into the fixed frame
	var s tsr.Sym
	copy(s[:], dev)
	tsr.RotSym(&s, rot)
	copy(dev, s[:])
	return
}
