// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tsr implements the small fixed-size tensor algebra used by the
// solid mechanics kernels: 3x3 second-order tensors and symmetric tensors
// stored with 6 independent components
package tsr

import "github.com/cpmech/gosl/chk"

// MINDET is the minimum determinant allowed when inverting tensors
const MINDET = 1.0e-20

// Ten is a second-order tensor in 3D
type Ten [3][3]float64

// Sym is a symmetric second-order tensor in 3D holding the lower triangle
// stored row-wise:
//  [0]=(0,0)  [1]=(1,0)  [2]=(1,1)  [3]=(2,0)  [4]=(2,1)  [5]=(2,2)
type Sym [6]float64

// It is the identity tensor
var It = Ten{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Det returns the determinant of t
func Det(t *Ten) float64 {
	return t[0][0]*(t[1][1]*t[2][2]-t[1][2]*t[2][1]) -
		t[0][1]*(t[1][0]*t[2][2]-t[1][2]*t[2][0]) +
		t[0][2]*(t[1][0]*t[2][1]-t[1][1]*t[2][0])
}

// Inv computes ti := inverse(t) and returns the determinant of t.
// An error is returned if |det| < MINDET.
func Inv(ti, t *Ten) (det float64, err error) {
	det = Det(t)
	if det < MINDET && det > -MINDET {
		return det, chk.Err("cannot invert tensor with |det| = %g < %g", det, MINDET)
	}
	ti[0][0] = (t[1][1]*t[2][2] - t[1][2]*t[2][1]) / det
	ti[0][1] = (t[0][2]*t[2][1] - t[0][1]*t[2][2]) / det
	ti[0][2] = (t[0][1]*t[1][2] - t[0][2]*t[1][1]) / det
	ti[1][0] = (t[1][2]*t[2][0] - t[1][0]*t[2][2]) / det
	ti[1][1] = (t[0][0]*t[2][2] - t[0][2]*t[2][0]) / det
	ti[1][2] = (t[0][2]*t[1][0] - t[0][0]*t[1][2]) / det
	ti[2][0] = (t[1][0]*t[2][1] - t[1][1]*t[2][0]) / det
	ti[2][1] = (t[0][1]*t[2][0] - t[0][0]*t[2][1]) / det
	ti[2][2] = (t[0][0]*t[1][1] - t[0][1]*t[1][0]) / det
	return
}

// Mul computes c := a·b  =>  c_ik = a_ij b_jk
func Mul(c, a, b *Ten) {
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			c[i][k] = a[i][0]*b[0][k] + a[i][1]*b[1][k] + a[i][2]*b[2][k]
		}
	}
}

// MulTr computes c := a·bᵀ  =>  c_ik = a_ij b_kj
func MulTr(c, a, b *Ten) {
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			c[i][k] = a[i][0]*b[k][0] + a[i][1]*b[k][1] + a[i][2]*b[k][2]
		}
	}
}

// Tr returns the trace of t
func Tr(t *Ten) float64 {
	return t[0][0] + t[1][1] + t[2][2]
}

// Sym2Ten expands the 6 stored components of s into the full tensor t,
// mirroring the lower triangle into the upper one
func Sym2Ten(t *Ten, s *Sym) {
	t[0][0] = s[0]
	t[1][0] = s[1]
	t[1][1] = s[2]
	t[2][0] = s[3]
	t[2][1] = s[4]
	t[2][2] = s[5]
	t[0][1] = t[1][0]
	t[0][2] = t[2][0]
	t[1][2] = t[2][1]
}

// Ten2Sym stores the lower triangle of t into s
func Ten2Sym(s *Sym, t *Ten) {
	s[0] = t[0][0]
	s[1] = t[1][0]
	s[2] = t[1][1]
	s[3] = t[2][0]
	s[4] = t[2][1]
	s[5] = t[2][2]
}

// RotSym computes the rotated symmetric tensor s := Q·S·Qᵀ in place,
// with S the expansion of s
func RotSym(s *Sym, q *Ten) {
	var t, tmp, rot Ten
	Sym2Ten(&t, s)
	Mul(&tmp, q, &t)
	MulTr(&rot, &tmp, q)
	Ten2Sym(s, &rot)
}
