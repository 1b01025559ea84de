// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

// UniaxialElastic gives the closed-form stress response of a linear
// elastic material under n repeated uniaxial strain increments
//  Dadt = inc·e0⊗e0   (no rotation)
// in the mean/deviatoric decomposition used by the kernels.
type UniaxialElastic struct {
	K   float64 // bulk modulus
	G   float64 // shear modulus
	Inc float64 // strain increment per step
}

// Mean returns the mean stress after n increments: n·inc·K
func (o *UniaxialElastic) Mean(n int) float64 {
	return float64(n) * o.Inc * o.K
}

// Dev returns the 6 deviatoric stress components after n increments,
// lower-triangle order (00,10,11,20,21,22)
func (o *UniaxialElastic) Dev(n int) []float64 {
	ax := float64(n) * 2.0 * o.G * o.Inc * 2.0 / 3.0  // axial
	lat := -float64(n) * 2.0 * o.G * o.Inc / 3.0      // lateral
	return []float64{ax, 0, lat, 0, 0, lat}
}
