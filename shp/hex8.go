// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape function derivatives for the solid
// mechanics kernels: trilinear hexahedra with 2×2×2 Gauss quadrature,
// available precomputed (in two storage layouts) or computed on the fly
// from reference nodal coordinates
package shp

import (
	"math"

	"github.com/CRC-IT/GEOSX/tsr"
	"github.com/cpmech/gosl/chk"
)

// constants
const (
	Hex8Nverts = 8         // nodes per hex8 element
	Hex8Nip    = 8         // 2×2×2 Gauss points
	MINDETJ    = 1.0e-14   // minimum reference Jacobian determinant
)

// hex8nat holds the natural coordinates of the hex8 vertices; the node
// ordering is fixed and must match the topology generators
var hex8nat = [8][3]float64{
	{-1, -1, -1},
	{1, -1, -1},
	{1, 1, -1},
	{-1, 1, -1},
	{-1, -1, 1},
	{1, -1, 1},
	{1, 1, 1},
	{-1, 1, 1},
}

// Hex8Ips returns the natural coordinates of the 2×2×2 Gauss points
// (all weights are 1)
func Hex8Ips() [8][3]float64 {
	g := 1.0 / math.Sqrt(3.0)
	var ips [8][3]float64
	for q := 0; q < 8; q++ {
		ips[q][0] = g * hex8nat[q][0]
		ips[q][1] = g * hex8nat[q][1]
		ips[q][2] = g * hex8nat[q][2]
	}
	return ips
}

// Hex8Derivs computes the derivatives of the hex8 shape functions with
// respect to the natural coordinates at point r
func Hex8Derivs(dSdR *[8][3]float64, r [3]float64) {
	for n := 0; n < 8; n++ {
		a, b, c := hex8nat[n][0], hex8nat[n][1], hex8nat[n][2]
		dSdR[n][0] = a * (1.0 + r[1]*b) * (1.0 + r[2]*c) / 8.0
		dSdR[n][1] = b * (1.0 + r[0]*a) * (1.0 + r[2]*c) / 8.0
		dSdR[n][2] = c * (1.0 + r[0]*a) * (1.0 + r[1]*b) / 8.0
	}
}

// CalcElemGrads computes, for one hex8 element with reference nodal
// coordinates xl, the shape function derivatives with respect to the
// reference configuration and the Jacobian determinant at every Gauss
// point:
//  g[q][n] = ∇N[n](r_q)    detJ[q] = det(dx/dR)(r_q)
// A non-positive reference Jacobian means a broken mesh and is an error.
func CalcElemGrads(g [][][3]float64, detJ []float64, xl [][3]float64) (err error) {
	if len(xl) != Hex8Nverts {
		return chk.Err("hex8 element needs %d nodes, got %d", Hex8Nverts, len(xl))
	}
	ips := Hex8Ips()
	var dSdR [8][3]float64
	for q := 0; q < Hex8Nip; q++ {
		Hex8Derivs(&dSdR, ips[q])

		// dx/dR := Σ_n x[n] ⊗ dS[n]/dR
		var dxdR tsr.Ten
		for n := 0; n < 8; n++ {
			for i := 0; i < 3; i++ {
				dxdR[i][0] += xl[n][i] * dSdR[n][0]
				dxdR[i][1] += xl[n][i] * dSdR[n][1]
				dxdR[i][2] += xl[n][i] * dSdR[n][2]
			}
		}

		// dR/dx := inv(dx/dR)
		var dRdx tsr.Ten
		detJ[q] = tsr.Det(&dxdR)
		if detJ[q] < MINDETJ {
			return chk.Err("reference Jacobian is not positive @ ip %d: detJ = %g", q, detJ[q])
		}
		if _, err = tsr.Inv(&dRdx, &dxdR); err != nil {
			return
		}

		// ∇N[n] := dS[n]/dR · dR/dx
		for n := 0; n < 8; n++ {
			for j := 0; j < 3; j++ {
				g[q][n][j] = dSdR[n][0]*dRdx[0][j] + dSdR[n][1]*dRdx[1][j] + dSdR[n][2]*dRdx[2][j]
			}
		}
	}
	return
}
