// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package kinem implements the per-quadrature-point kinematics of the
// explicit Lagrangian solid mechanics update: displacement gradients,
// incremental deformation gradient, velocity gradient, and the
// Hughes-Winget objective-rate decomposition
package kinem

import (
	"github.com/CRC-IT/GEOSX/tsr"
)

// Gradient computes the gradient of a nodal field at a quadrature point:
//  grad_ij = Σ_n u[n][i] · g[n][j]
// where g[n] holds the shape function derivatives ∇N[n] at the point
func Gradient(grad *tsr.Ten, u, g [][3]float64) {
	grad[0][0], grad[0][1], grad[0][2] = 0, 0, 0
	grad[1][0], grad[1][1], grad[1][2] = 0, 0, 0
	grad[2][0], grad[2][1], grad[2][2] = 0, 0, 0
	for n := 0; n < len(u); n++ {
		for i := 0; i < 3; i++ {
			grad[i][0] += u[n][i] * g[n][0]
			grad[i][1] += u[n][i] * g[n][1]
			grad[i][2] += u[n][i] * g[n][2]
		}
	}
}

// Increment holds the incremental deformation data of one quadrature point
type Increment struct {
	F       tsr.Ten // midpoint incremental deformation gradient: I + dUdX + ½·dÛdX
	Finv    tsr.Ten // inverse of F
	DetF    float64 // determinant of F
	Fend    tsr.Ten // end-of-step deformation gradient: I + dUdX + dÛdX
	FendInv tsr.Ten // inverse of Fend
	DetFend float64 // determinant of Fend
	L       tsr.Ten // velocity gradient: (dÛdX/dt)·inv(F)
}

// Calc computes the incremental deformation data for given displacement
// gradient dUdX, incremental displacement gradient dUhatdX, and time step.
// A non-positive determinant means the element has inverted and is
// returned as InvalidGeometryError; no quantity may be consumed then.
func (o *Increment) Calc(dUdX, dUhatdX *tsr.Ten, dt float64, eid, ipid int) (err error) {

	// midpoint deformation gradient: F := I + dUdX + ½·dÛdX
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o.F[i][j] = dUdX[i][j] + 0.5*dUhatdX[i][j]
		}
		o.F[i][i] += 1.0
	}
	o.DetF = tsr.Det(&o.F)
	if o.DetF <= 0 {
		return &InvalidGeometryError{Eid: eid, Ipid: ipid, DetF: o.DetF}
	}
	if _, err = tsr.Inv(&o.Finv, &o.F); err != nil {
		return
	}

	// velocity gradient: L := (dÛdX/dt)·inv(F)
	var dvdX tsr.Ten
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dvdX[i][j] = dUhatdX[i][j] / dt
		}
	}
	tsr.Mul(&o.L, &dvdX, &o.Finv)

	// end-of-step deformation gradient: Fend := I + dUdX + dÛdX
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o.Fend[i][j] = dUdX[i][j] + dUhatdX[i][j]
		}
		o.Fend[i][i] += 1.0
	}
	o.DetFend = tsr.Det(&o.Fend)
	if o.DetFend <= 0 {
		return &InvalidGeometryError{Eid: eid, Ipid: ipid, DetF: o.DetFend}
	}
	_, err = tsr.Inv(&o.FendInv, &o.Fend)
	return
}

// HughesWinget decomposes the velocity gradient L into the incremental
// rotation rot and the rate-of-deformation increment dadt:
//  dadt := ½·(L + Lᵀ)·dt
//  Ω    := ½·(L - Lᵀ)·dt   (spin increment)
//  rot  := exp(Ω)           (Rodrigues, series fallback near identity)
// The constitutive update applies dadt in the unrotated frame and uses rot
// to carry the updated stress back into the fixed frame.
func HughesWinget(rot, dadt *tsr.Ten, L *tsr.Ten, dt float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dadt[i][j] = 0.5 * (L[i][j] + L[j][i]) * dt
		}
	}
	w0 := 0.5 * (L[2][1] - L[1][2]) * dt
	w1 := 0.5 * (L[0][2] - L[2][0]) * dt
	w2 := 0.5 * (L[1][0] - L[0][1]) * dt
	tsr.RodriguesRot(rot, w0, w1, w2)
}
