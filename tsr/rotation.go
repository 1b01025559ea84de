// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsr

import "math"

// RodriguesRot computes rot := exp(Ω) for a skew tensor Ω given by its
// axial vector w. The spin tensor convention is
//  Ω = | 0   -w2   w1 |
//      | w2   0   -w0 |
//      |-w1   w0   0  |
// so that Ω·v = w × v. For small |w| the sin/cos factors are replaced by
// their series to keep the result accurate near the identity.
func RodriguesRot(rot *Ten, w0, w1, w2 float64) {
	th2 := w0*w0 + w1*w1 + w2*w2
	var a, b float64 // a = sin(θ)/θ, b = (1-cos(θ))/θ²
	if th2 < 1e-16 {
		a = 1.0 - th2/6.0
		b = 0.5 - th2/24.0
	} else {
		th := math.Sqrt(th2)
		a = math.Sin(th) / th
		b = (1.0 - math.Cos(th)) / th2
	}
	rot[0][0] = 1.0 - b*(w1*w1+w2*w2)
	rot[0][1] = -a*w2 + b*w0*w1
	rot[0][2] = a*w1 + b*w0*w2
	rot[1][0] = a*w2 + b*w0*w1
	rot[1][1] = 1.0 - b*(w0*w0+w2*w2)
	rot[1][2] = -a*w0 + b*w1*w2
	rot[2][0] = -a*w1 + b*w0*w2
	rot[2][1] = a*w0 + b*w1*w2
	rot[2][2] = 1.0 - b*(w0*w0+w1*w1)
}
